package rfcore

// decodeTCM97001 recognizes a TCM 97001 weather-sensor frame: 3 raw bytes,
// no checksum.
func decodeTCM97001(b *bucket) ([]byte, bool) {
	if b.state != StateTCM97001 || b.byteIdx != 3 || b.bitIdx != 7 {
		return nil, false
	}
	out := make([]byte, 3)
	copy(out, b.data[:3])
	return out, true
}
