package rfcore

// decodeHoermann recognizes a Hoermann garage-door-opener frame purely by
// its learned zero-cell shape (a fixed 960:480us cell, once scaled) and bit
// count. The protocol's payload semantics are undocumented upstream; this
// is a shape check and raw byte copy only, not a validated decode.
//
// hightime is the duration of the final, unterminated high pulse at the
// moment the end-of-frame silence fired: there is no matching falling edge
// to pair it with, so the frame's last bit must be added by hand before the
// copy, classified against the learned "one" template exactly like every
// other bit.
func decodeHoermann(b *bucket, hightime uint16) ([]byte, bool) {
	if b.byteIdx != 4 || b.bitIdx != 4 {
		return nil, false
	}
	if !waveEquals(b.zero, 960/16, 480/16, b.state) {
		return nil, false
	}

	b.addBit(waveEquals(b.one, hightime, 480/16, b.state))

	out := make([]byte, 5)
	copy(out, b.data[:5])
	return out, true
}
