package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHoermannShapeBucket() *bucket {
	b := &bucket{state: StateCollect}
	b.zero = wave{960 / 16, 480 / 16}
	b.one = wave{480 / 16, 480 / 16}
	b.byteIdx, b.bitIdx = 4, 4
	b.data[0], b.data[1], b.data[2], b.data[3] = 0x11, 0x22, 0x33, 0x44
	return b
}

func TestDecodeHoermannAddsFinalSpeculativeBitBeforeCopy(t *testing.T) {
	b := newHoermannShapeBucket()

	out, ok := decodeHoermann(b, b.one.high) // hightime matches "one"
	require.True(t, ok)
	require.Len(t, out, 5)
	assert.Equal(t, byte(0x11), out[0])
	assert.Equal(t, byte(0x44), out[3])
	// The final bit is written at the cursor's bitIdx (4), i.e. bit value 1<<4.
	assert.NotZero(t, out[4]&(1<<4))
}

func TestDecodeHoermannFinalBitIsZeroWhenHightimeMatchesZero(t *testing.T) {
	b := newHoermannShapeBucket()

	out, ok := decodeHoermann(b, b.zero.high) // hightime matches "zero", not "one"
	require.True(t, ok)
	assert.Zero(t, out[4]&(1<<4))
}

func TestDecodeHoermannRejectsWrongShapeOrCursor(t *testing.T) {
	b := newHoermannShapeBucket()
	b.byteIdx = 3 // wrong cursor

	_, ok := decodeHoermann(b, b.one.high)
	assert.False(t, ok)
}
