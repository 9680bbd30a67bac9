package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRawBits(b *bucket, data []byte, nbits int) {
	for i := 0; i < nbits; i++ {
		byteIdx, bitIdx := i/8, 7-(i%8)
		bit := data[byteIdx]&(1<<uint(bitIdx)) != 0
		b.addBit(bit)
	}
}

func TestDecodeITNeedsExactFrameLength(t *testing.T) {
	b := newTestBucket(StateIT)
	writeRawBits(b, []byte{0x11, 0x22, 0x33}, 24)

	out, ok := decodeIT(b)
	require.True(t, ok)
	assert.Equal(t, []byte{0x11, 0x22, 0x33}, out)
}

func TestDecodeITRejectsWrongState(t *testing.T) {
	b := newTestBucket(StateCollect)
	writeRawBits(b, []byte{0x11, 0x22, 0x33}, 24)

	_, ok := decodeIT(b)
	assert.False(t, ok)
}

func TestDecodeRevoltValidatesAdditiveChecksum(t *testing.T) {
	body := make([]byte, 11)
	for i := range body {
		body[i] = byte(i + 1)
	}
	var sum byte
	for _, v := range body {
		sum += v
	}

	b := newTestBucket(StateRevolt)
	writeRawBits(b, append(append([]byte{}, body...), sum), 12*8)

	out, ok := decodeRevolt(b)
	require.True(t, ok)
	assert.Equal(t, body, out)
}

func TestDecodeRevoltRejectsBadChecksum(t *testing.T) {
	body := make([]byte, 11)
	b := newTestBucket(StateRevolt)
	writeRawBits(b, append(append([]byte{}, body...), 0xFF), 12*8)

	_, ok := decodeRevolt(b)
	assert.False(t, ok)
}
