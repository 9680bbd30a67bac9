package rfcore

// Opening-pulse shape thresholds for STATE_RESET sync acquisition (§4.3),
// all in scaled units.
const (
	tcmOpenHighMin, tcmOpenHighMax = 420, 530
	tcmOpenLowMin, tcmOpenLowMax   = 8500, 9000
	tcmCompareTicks                = 4600

	itOpenHighMin, itOpenHighMax = 140, 600
	itOpenLowMin, itOpenLowMax   = 2500, 17000

	revoltOpenHighMin, revoltOpenHighMax = 9000, 12000
	revoltOpenLowMin, revoltOpenLowMax   = 150, 540

	openIgnoreThreshold = 1600
)

// Sync-burst classification thresholds (§4.3 STATE_SYNC).
const (
	hmsMinSync, hmsMinPeriod = 12, 1600
	esaMinSync, esaMaxPeriod = 10, 600
	esaCompareTicks          = 1000
)

// IT / ITV3 thresholds.
const (
	itLowSyncAbort    = 3000
	itLowV3Threshold  = 2400
	itV3LowMultiplier = 5
)

// TCM97001 thresholds.
const (
	tcmLowThreshold             = 187
	tcmZeroLowMin, tcmZeroLowMax = 110, 140
	tcmOneLowMin, tcmOneLowMax   = 230, 270
)

const revoltHighThreshold = 11

// HMS / ESA half-bit total-period acceptance windows (§4.3).
const (
	hmsPeriodMin, hmsPeriodMax = 750, 1250
	esaPeriodMin, esaPeriodMax = 375, 625
)

func inRange(v, lo, hi uint16) bool {
	return v >= lo && v <= hi
}

// checkRFSync tests whether a (low, short) pair has the shape of the fixed
// 768:384us RF-router sync burst (without PA ramping); l and s are both in
// scaled units.
func checkRFSync(l, s uint16) bool {
	return l >= 0x25 && l <= 0x3B && // 592..944
		s >= 0x0A && s <= 0x26 && // 160..608
		l > s
}

// SyncRouter lets an optional collaborator claim a sync burst that matches
// the fixed-size 768:384us RF-router shape instead of letting it fall
// through to STATE_COLLECT. Absent a router, sync bursts are always treated
// as ordinary protocol frames (equivalent to HAS_RF_ROUTER undefined).
type SyncRouter interface {
	// Active reports whether this receiver participates in the mesh (the
	// original's rf_router_myid != 0 test).
	Active() bool
	// HandOff is called once a matching burst is recognized; the bucket is
	// discarded immediately afterward.
	HandOff()
}

// headBucket returns the bucket currently being filled by the edge path.
func (r *Receiver) headBucket() *bucket {
	return &r.ring[r.bucketIn]
}

// onPulsePair is the classifier's main entry point for every pulse pair not
// belonging to an HMS/ESA half-bit frame (those are handled bit-by-bit by
// the timebase directly). It implements the per-bucket state machine of
// §4.3.
func (r *Receiver) onPulsePair(high, low uint16) {
	b := r.headBucket()

	if b.state == StateIT || b.state == StateITV3 {
		if low > itLowSyncAbort {
			b.sync = 0
			return
		}
		if b.sync == 0 {
			switch {
			case low > itLowV3Threshold:
				// This should be the start bit for IT V3.
				b.state = StateITV3
				return
			case b.state == StateITV3:
				b.sync = 1
				if int32(low)-1 > int32(high) {
					b.zero = wave{high, low}
				} else {
					b.zero = wave{high, high * itV3LowMultiplier}
				}
				b.one = wave{high, high}
				// Falls through: this pulse is also classified as a data bit below.
			default:
				b.sync = 1
				if uint32(high)*2 > uint32(low) {
					// Too close to differentiate: reject the opening.
					b.state = StateReset
					return
				}
				b.zero = wave{high, low + 1}
				b.one = wave{low + 1, high}
				// Falls through: this pulse is also classified as a data bit below.
			}
		}
	}

	if b.state == StateTCM97001 && b.sync == 0 {
		b.sync = 1
		b.zero.high = high
		b.one.high = high
		if low < tcmLowThreshold {
			b.zero.low = low
			b.one.low = low * 2
		} else {
			b.zero.low = low
			b.one.low = low / 2
		}
		// Falls through: this pulse is also classified as a data bit below.
	}

	switch b.state {
	case StateReset:
		r.handleResetOpening(b, high, low)

	case StateSync:
		r.handleSync(b, high, low)

	case StateRevolt:
		if high < revoltHighThreshold {
			b.addBit(false)
			b.zero.high = makeavg(b.zero.high, high)
			b.zero.low = makeavg(b.zero.low, low)
		} else {
			b.addBit(true)
			b.one.high = makeavg(b.one.high, high)
			b.one.low = makeavg(b.one.low, low)
		}

	case StateTCM97001:
		switch {
		case inRange(low, tcmZeroLowMin, tcmZeroLowMax):
			b.addBit(false)
			b.zero.high = makeavg(b.zero.high, high)
			b.zero.low = makeavg(b.zero.low, low)
		case inRange(low, tcmOneLowMin, tcmOneLowMax):
			b.addBit(true)
			b.one.high = makeavg(b.one.high, high)
			b.one.low = makeavg(b.one.low, low)
		}
		// Anything else is dropped, not reset.

	case StateITV3:
		b.addBit(waveEqualsITV3(high, low))

	default: // StateCollect, StateIT
		switch {
		case waveEquals(b.one, high, low, b.state):
			b.addBit(true)
			b.one.high = makeavg(b.one.high, high)
			b.one.low = makeavg(b.one.low, low)
		case waveEquals(b.zero, high, low, b.state):
			b.addBit(false)
			b.zero.high = makeavg(b.zero.high, high)
			b.zero.low = makeavg(b.zero.low, low)
		case b.state != StateIT:
			r.resetInputLocked()
		}
	}
}

// handleResetOpening matches the opening pulse of a new frame against the
// recognized sync templates (§4.3 STATE_RESET).
func (r *Receiver) handleResetOpening(b *bucket, high, low uint16) {
	switch {
	case inRange(high, tcmOpenHighMin, tcmOpenHighMax) && inRange(low, tcmOpenLowMin, tcmOpenLowMax):
		b.compareTicks = tcmCompareTicks
		b.sync = 0
		b.state = StateTCM97001
		b.byteIdx, b.bitIdx, b.data[0] = 0, 7, 0

	case inRange(high, itOpenHighMin, itOpenHighMax) && inRange(low, itOpenLowMin, itOpenLowMax):
		b.compareTicks = Silence
		b.sync = 0
		b.state = StateIT
		b.byteIdx, b.bitIdx, b.data[0] = 0, 7, 0

	case inRange(high, revoltOpenHighMin, revoltOpenHighMax) && inRange(low, revoltOpenLowMin, revoltOpenLowMax):
		b.zero = wave{6, 14}
		b.one = wave{19, 14}
		b.sync = 1
		b.state = StateRevolt
		b.byteIdx, b.bitIdx, b.data[0] = 0, 7, 0
		b.compareTicks = Silence

	case high > openIgnoreThreshold || low > openIgnoreThreshold:
		// Ignored: neither a recognized opening nor plausible sync noise.

	default:
		b.zero = wave{high, low}
		b.sync = 1
		b.state = StateSync
		b.compareTicks = Silence
	}
}

// handleSync counts the leading zero-cell burst and, once a non-matching
// pulse arrives, decides whether the burst was long enough to be real and
// what comes next (§4.3 STATE_SYNC).
func (r *Receiver) handleSync(b *bucket, high, low uint16) {
	if waveEquals(b.zero, high, low, StateSync) {
		b.zero.high = makeavg(b.zero.high, high)
		b.zero.low = makeavg(b.zero.low, low)
		b.sync++
		return
	}

	if b.sync < 4 {
		// Too few sync bits: treat as spurious and reinterpret this same
		// pulse as a fresh opening.
		b.state = StateReset
		r.handleResetOpening(b, high, low)
		return
	}

	b.compareTicks = Silence

	switch {
	case b.sync >= hmsMinSync && b.zero.sum() > hmsMinPeriod:
		b.state = StateHMS

	case b.sync >= esaMinSync && b.zero.sum() < esaMaxPeriod:
		b.state = StateESA
		b.compareTicks = esaCompareTicks

	case r.router != nil && r.router.Active() &&
		checkRFSync(high, low) && checkRFSync(b.zero.low, b.zero.high):
		r.router.HandOff()
		b.reset()
		return

	default:
		b.state = StateCollect
	}

	b.one = wave{high, low}
	b.byteIdx, b.bitIdx, b.data[0] = 0, 7, 0
}
