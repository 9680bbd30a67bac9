package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCksum1Additive(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03}
	assert.Equal(t, byte(6+0x01+0x02+0x03), cksum1(6, buf))
	assert.Equal(t, byte(12+0x01+0x02+0x03), cksum1(12, buf))
}

func TestCksum2XOR(t *testing.T) {
	assert.Equal(t, byte(0x0F), cksum2([]byte{0xFF, 0xF0}))
	assert.Equal(t, byte(0x00), cksum2([]byte{0xAB, 0xAB}))
}

func TestCksum3FoldsBackToFrontSeededAtFive(t *testing.T) {
	buf := []byte{0x12, 0x34}

	// Hand-unrolled per rf_receive.c's cksum3(): fold back to front (0x34
	// then 0x12), x = running XOR (high nibble always, low nibble
	// conditionally), y = running sum seeded at 5, then y += x and pack
	// (y<<4)|x.
	//   i=1 (0x34): x = 0^3 = 3, then x^4 = 7; y = 5+3 = 8, then y+4 = 12
	//   i=0 (0x12): x = 7^1 = 6, then x^2 = 4; y = 12+1 = 13, then y+2 = 15
	//   y += x -> y = 19 (0x13); result = (0x13<<4)|0x4 = 0x34
	assert.Equal(t, byte(0x34), cksum3(buf, false))
}

func TestCksum3SkipsLowNibbleOfFirstProcessedByteOnNibbleTail(t *testing.T) {
	buf := []byte{0x12, 0x34}

	// Same fold, but the low nibble of buf[len(buf)-1] (0x34, processed
	// first since the fold runs back to front) is skipped because it
	// belongs to a trailing half-byte value, not real payload.
	//   i=1 (0x34): x = 0^3 = 3 (low nibble skipped); y = 5+3 = 8
	//   i=0 (0x12): x = 3^1 = 2, then x^2 = 0; y = 8+1 = 9, then y+2 = 11
	//   y += x -> y = 11 (0xB); result = (0xB<<4)|0x0 = 0xB0
	assert.Equal(t, byte(0xB0), cksum3(buf, true))
}
