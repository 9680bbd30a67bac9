// Package rfcore implements the pulse demodulator and multi-protocol frame
// decoder for a sub-GHz home-automation transceiver: it turns a stream of
// scaled (hightime, lowtime) pulse pairs into decoded, deduplicated frames
// for FS20/FS10, FHT, HMS, EM, KS300, ESA, TX3, Revolt, InterTechno V1/V3,
// TCM97001 and Hoermann.
package rfcore

// Timing constants, all in scaled units (one unit is ~16us of real time;
// TSCALE divides a raw microsecond count by 16 before it ever reaches this
// package).
const (
	TDIFF   = 200 / 16 // tolerated diff to previous/avg high/low/total
	TDIFFIT = 350 / 16 // wider tolerance used while in StateIT
	Silence = 4000     // scaled ticks of no edges -> end of frame
	RepTime = 38        // ticks of the external tick source (~0.3s) for dedup window
)

// wave is a learned waveform template: the (high, low) shape of one bit
// cell, smoothed over successive observations by makeavg.
type wave struct {
	high, low uint16
}

// sum returns high+low, used for total-period matching and classification.
func (w wave) sum() uint16 {
	return w.high + w.low
}

// makeavg computes the 3:1 weighted running average used to smooth waveform
// templates: makeavg(i, j) = (3i + j) div 4. makeavg(x, x) == x for all x.
func makeavg(i, j uint16) uint16 {
	return uint16((3*uint32(i) + uint32(j)) / 4)
}

// waveEquals reports whether the pulse (htime, ltime) matches template a
// within the tolerance for state s: all three of the high, low and combined
// deltas must be smaller in magnitude than the tolerance. StateIT uses the
// wider TDIFFIT tolerance; every other state uses TDIFF.
func waveEquals(a wave, htime, ltime uint16, s State) bool {
	tol := int32(TDIFF)
	if s == StateIT {
		tol = TDIFFIT
	}

	dlow := int32(a.low) - int32(ltime)
	dhigh := int32(a.high) - int32(htime)
	dcomplete := int32(a.sum()) - int32(htime+ltime)

	return dlow < tol && dlow > -tol &&
		dhigh < tol && dhigh > -tol &&
		dcomplete < tol && dcomplete > -tol
}

// waveEqualsITV3 classifies an InterTechno V3 bit purely by whether the low
// time exceeds the high time by more than TDIFF: true means bit 1.
func waveEqualsITV3(htime, ltime uint16) bool {
	return int32(ltime)-TDIFF > int32(htime)
}
