package rfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketRingCommitAndDecodeCycle(t *testing.T) {
	var ring bucketRing

	assert.Nil(t, ring.nextToDecode())

	ring.ring[ring.bucketIn].state = StateCollect
	ring.commitBucket()

	b := ring.nextToDecode()
	require.NotNil(t, b)
	assert.Equal(t, StateCollect, b.state)

	ring.releaseDecoded()
	assert.Nil(t, ring.nextToDecode())
}

func TestBucketRingDiscardsCurrentBucketWhenFull(t *testing.T) {
	var overflowed bool
	ring := bucketRing{onOverflow: func() { overflowed = true }}

	for i := 0; i < RCVBuckets-1; i++ {
		ring.ring[ring.bucketIn].state = StateCollect
		ring.commitBucket()
	}
	assert.False(t, overflowed)

	// The ring is now full; committing once more must discard in place
	// rather than advance, per the full-ring policy.
	ring.ring[ring.bucketIn].state = StateCollect
	ring.commitBucket()

	assert.True(t, overflowed)
	assert.Equal(t, RCVBuckets-1, ring.nrUsed)
}

func TestBitCountTracksWrittenBits(t *testing.T) {
	b := &bucket{bitIdx: 7}
	assert.Equal(t, 0, b.bitCount())

	for i := 0; i < 10; i++ {
		b.addBit(i%2 == 0)
	}
	assert.Equal(t, 10, b.bitCount())
}

func TestAddBitThenDelBitIsIdentity(t *testing.T) {
	b := &bucket{bitIdx: 7}
	b.addBit(true)
	b.addBit(false)
	b.addBit(true)
	snapshot := *b

	b.addBit(true)
	b.delBit()

	assert.Equal(t, snapshot.byteIdx, b.byteIdx)
	assert.Equal(t, snapshot.bitIdx, b.bitIdx)
	assert.Equal(t, snapshot.data, b.data)
}
