package rfcore

// unpackStopBitFrame extracts bytes framed LSB-first with a single 1 stop
// bit after every 8 data bits, as used by EM and KS300; a 0 in the stop-bit
// position ends the frame without that byte. When allowNibbleTail
// is set, a frame may also end after exactly 4 data bits (a half-byte)
// provided the following bit is a 0 stop bit; nibble reports whether that
// happened and the half-byte is returned as the last entry of out.
func unpackStopBitFrame(b *bucket, allowNibbleTail bool) (out []byte, nibble bool) {
	total := b.bitCount()
	r := newBitReader(b.data[:])

	for {
		switch {
		case r.remaining(total) >= 9:
			by := r.getBits(8, false)
			stop := r.getBit()
			if stop == 0 {
				return out, nibble
			}
			out = append(out, by)

		case allowNibbleTail && r.remaining(total) == 5:
			by := r.getBits(4, false)
			if r.getBit() == 0 {
				out = append(out, by)
				nibble = true
			}
			return out, nibble

		default:
			return out, nibble
		}
	}
}

// decodeEM recognizes an EM 1000/EM 100x energy-meter frame: 9 payload
// bytes followed by an XOR checksum byte.
func decodeEM(b *bucket) ([]byte, bool) {
	out, _ := unpackStopBitFrame(b, false)
	if len(out) != 10 {
		return nil, false
	}
	body, trailer := out[:9], out[9]
	if cksum2(body) != trailer {
		return nil, false
	}
	return body, true
}

// decodeKS300 recognizes a KS300 weather-station frame. Its final checksum
// byte is sometimes only a nibble wide; the dispatcher is expected to retry
// with a speculative extra bit appended (via bucket.addBit/delBit) when a
// straightforward decode fails, per the Design Notes.
func decodeKS300(b *bucket) (payload []byte, nibbleTail bool, ok bool) {
	out, nibble := unpackStopBitFrame(b, true)
	if len(out) < 2 {
		return nil, false, false
	}

	body, trailer := out[:len(out)-1], out[len(out)-1]
	if cksum3(body, nibble) != trailer {
		return nil, false, false
	}

	return body, nibble, true
}
