package rfcore

// RCVBuckets is the capacity of the bucket ring, counting the slot the edge
// path is currently filling: at most RCVBuckets-1 frames may be fully
// received but not yet decoded at once. The decode task is
// expected to drain faster than new frames arrive; RCVBuckets only needs to
// absorb the jitter between edge bursts and task scheduling.
const RCVBuckets = 4

// bucketRing is the bounded single-producer/single-consumer ring of
// buckets: the edge/timebase path is the sole producer (advancing bucketIn),
// the decode path is the sole consumer (advancing bucketOut). Both sides
// take mu, so the ring is also safe to drive from a real interrupt context
// via a goroutine plus channel, or directly from a single goroutine in
// tests.
type bucketRing struct {
	ring     [RCVBuckets]bucket
	bucketIn int
	bucketOut int
	nrUsed   int

	// onOverflow, if set, is called (with mu held) whenever an in-progress
	// bucket is discarded because the ring is full, mirroring the
	// firmware's optional BOVF debug line.
	onOverflow func()
}

// commitBucket is called once a frame bucket is considered complete (an
// end-of-frame silence fired while collecting actual data). It advances
// bucketIn to the next ring slot so the edge path keeps writing into a
// fresh bucket, unless the ring is already full, in which case the
// in-progress bucket is discarded in place per the full-ring policy.
func (r *bucketRing) commitBucket() {
	if r.nrUsed+1 == RCVBuckets {
		if r.onOverflow != nil {
			r.onOverflow()
		}
		r.ring[r.bucketIn].reset()
		return
	}

	r.nrUsed++
	r.bucketIn++
	if r.bucketIn == RCVBuckets {
		r.bucketIn = 0
	}
}

// nextToDecode returns the oldest undecoded bucket, or nil if none is
// pending.
func (r *bucketRing) nextToDecode() *bucket {
	if r.nrUsed == 0 {
		return nil
	}
	return &r.ring[r.bucketOut]
}

// releaseDecoded retires the bucket returned by the most recent
// nextToDecode call: it is reset and the ring slot is freed for reuse.
func (r *bucketRing) releaseDecoded() {
	r.ring[r.bucketOut].reset()
	r.bucketOut++
	if r.bucketOut == RCVBuckets {
		r.bucketOut = 0
	}
	r.nrUsed--
}
