package rfcore

import "math/bits"

// unpackParityFrame extracts bytes framed as 8 MSB-first data bits followed
// by an even-parity bit, stopping at the first byte whose parity doesn't
// check out (or when the bucket runs out of bits). FS20 and FHT share this
// framing; they differ only in the checksum seed applied afterward.
func unpackParityFrame(b *bucket) []byte {
	total := b.bitCount()
	r := newBitReader(b.data[:])
	var out []byte

	for r.remaining(total) >= 9 {
		by := r.getBits(8, true)
		parity := r.getBit()
		if bits.OnesCount8(by)%2 != parity {
			break
		}
		out = append(out, by)
	}

	return out
}

// decodeFS20FHT unpacks the shared FS20/FHT bit framing and validates it
// against both protocols' checksums. It reports which protocol matched
// (fs20Repeater indicates the payload's trailing checksum was one greater
// than expected, the house-code repeater's canonical "already seen" marker,
// and has been rewritten to the base checksum before being returned).
func decodeFS20FHT(b *bucket) (payload []byte, typ Type, fs20Repeater bool, ok bool) {
	out := unpackParityFrame(b)
	if len(out) < 4 {
		return nil, TypeNone, false, false
	}

	body := out[:len(out)-1]
	trailer := out[len(out)-1]

	if fsSum := cksum1(6, body); fsSum == trailer {
		return out, TypeFS20, false, true
	} else if fsSum+1 == trailer {
		rewritten := make([]byte, len(out))
		copy(rewritten, out)
		rewritten[len(rewritten)-1] = fsSum
		return rewritten, TypeFS20, true, true
	}

	if cksum1(12, body) == trailer {
		return out, TypeFHT, false, true
	}

	return nil, TypeNone, false, false
}
