package rfcore

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	frames []string
	debug  []string
}

func (f *fakeSink) EmitFrame(line string) { f.frames = append(f.frames, line) }
func (f *fakeSink) EmitDebug(line string) { f.debug = append(f.debug, line) }

// frameBits returns the parity-framed bit sequence (true/false) for body,
// in the order FS20/FHT pulses would present it.
func frameBits(body []byte) []bool {
	var out []bool
	for _, by := range body {
		for i := 7; i >= 0; i-- {
			out = append(out, (by>>uint(i))&1 != 0)
		}
		out = append(out, bits.OnesCount8(by)%2 != 0)
	}
	return out
}

func TestReceiverEndToEndFS20Decode(t *testing.T) {
	sink := &fakeSink{}
	r := NewReceiver(Config{Report: ReportKnown}, sink, func() uint32 { return 0 })

	zero := wave{high: 20, low: 40}
	one := wave{high: 40, low: 20}

	// Opening + 4 sync pulses shaped like "zero", short enough to avoid
	// every special-opening table.
	r.onPulsePair(zero.high, zero.low) // opening: learns the zero template
	for i := 0; i < 4; i++ {
		r.onPulsePair(zero.high, zero.low)
	}
	require.Equal(t, StateSync, r.headBucket().state)

	// The pulse that breaks the sync run defines the "one" template and
	// promotes the bucket to COLLECT; it carries no bit of its own.
	r.onPulsePair(one.high, one.low)
	require.Equal(t, StateCollect, r.headBucket().state)

	body := []byte{0x12, 0x34, 0x56}
	frame := append(append([]byte{}, body...), cksum1(6, body))
	for _, bit := range frameBits(frame) {
		if bit {
			r.onPulsePair(one.high, one.low)
		} else {
			r.onPulsePair(zero.high, zero.low)
		}
	}

	require.GreaterOrEqual(t, r.headBucket().byteIdx, 2)

	r.OnSilence()

	require.Len(t, sink.frames, 1)
	assert.Equal(t, "F"+hexString(frame)+"\r\n", sink.frames[0])
}

func hexString(b []byte) string {
	const hex = "0123456789ABCDEF"
	out := make([]byte, 0, len(b)*2)
	for _, v := range b {
		out = append(out, hex[v>>4], hex[v&0x0f])
	}
	return string(out)
}

func TestReceiverBusyReflectsBucketState(t *testing.T) {
	sink := &fakeSink{}
	r := NewReceiver(Config{}, sink, func() uint32 { return 0 })
	assert.False(t, r.Busy())

	zero := wave{high: 20, low: 40}
	r.onPulsePair(zero.high, zero.low)
	assert.True(t, r.Busy())
}
