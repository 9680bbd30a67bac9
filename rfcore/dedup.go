package rfcore

import "bytes"

// dedupState tracks the single last-emitted payload used for duplicate
// suppression, plus the tri-state bookkeeping InterTechno and TCM97001 need
// because those protocols repeat a code many times per button press with no
// reliable frame boundary of their own.
type dedupState struct {
	lastPayload []byte
	lastType    Type
	lastTicks   uint32

	// isNotRep mirrors packetCheckValues.isnotrep: once a repeated
	// InterTechno/TCM97001 payload has been confirmed and emitted, further
	// repeats within the same window are suppressed until resetIT clears
	// this flag (on the next STATE_RESET).
	isNotRep bool
}

// resetIT clears the InterTechno/TCM97001 confirmation latch; it is called
// from Receiver.resetInputLocked, i.e. when the in-progress bucket is
// discarded as malformed or too short. A bucket reset after decoding does
// not clear the latch.
func (d *dedupState) resetIT() {
	d.isNotRep = false
}

// isRepeatGroup reports whether typ participates in the confirm-before-emit
// dedup rule (InterTechno and TCM97001 send identical frames back-to-back
// with no boundary marker other than repetition itself).
func isRepeatGroup(typ Type) bool {
	return typ == TypeIT || typ == TypeTCM97001
}

// evaluate decides whether a freshly decoded frame should be emitted. ticks
// is the current value of the external ~8ms tick counter used to bound the
// duplicate window (RepTime ticks, roughly 0.3s). The window test is an
// unsigned uint32 subtraction, so it stays correct across a counter wrap.
//
// For ordinary protocols a frame is suppressed only if it is byte-identical
// to the previous emission and arrived inside the window. InterTechno and
// TCM97001 invert this: the first reception of a new code is held back, and
// only the second identical reception within the window is emitted; further
// repeats are then suppressed until the bucket resets.
func (d *dedupState) evaluate(typ Type, payload []byte, ticks uint32) (packageOK bool) {
	isRep := d.lastType == typ &&
		bytes.Equal(d.lastPayload, payload) &&
		ticks-d.lastTicks < RepTime

	if isRepeatGroup(typ) {
		if isRep && !d.isNotRep {
			d.isNotRep = true
			packageOK = true
		} else {
			packageOK = false
		}
	} else {
		packageOK = !isRep
	}

	d.lastPayload = append(d.lastPayload[:0], payload...)
	d.lastType = typ
	d.lastTicks = ticks

	return packageOK
}

// FHT control/acknowledgement command bytes that are always treated as
// repeats for dedup purposes, regardless of payload comparison: these are
// sent in bursts by design and must not flood the output.
const (
	fhtCmdAck       = 0x02
	fhtCmdAck2      = 0x04
	fhtCmdCanXmit   = 0x06
	fhtCmdCanRcv    = 0x07
	fhtCmdStartXmit = 0x01
	fhtCmdEndXmit   = 0x03
)

// isFHTAutoRepeat reports whether body (housecode-hi, housecode-lo,
// command, ...) names one of FHT's control commands, or carries the
// 0x70-masked "repeated" marker in its command byte.
func isFHTAutoRepeat(body []byte) bool {
	if len(body) < 3 {
		return false
	}
	cmd := body[2]
	if cmd&0x70 == 0x70 {
		return true
	}
	switch cmd {
	case fhtCmdAck, fhtCmdAck2, fhtCmdCanXmit, fhtCmdCanRcv, fhtCmdStartXmit, fhtCmdEndXmit:
		return true
	}
	return false
}
