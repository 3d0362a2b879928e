package litepage

import "github.com/pkg/errors"

// MaxVarintLen is the maximum length of a varint-encoded integer.
const MaxVarintLen = 9

// ReadVarint decodes a big-endian variable-length integer starting at pos.
// It returns the value and the number of bytes consumed (1..9).
//
// The first eight bytes each contribute their low 7 bits and the high bit
// signals continuation. A ninth byte contributes all 8 bits.
func ReadVarint(buf []byte, pos int) (uint64, int, error) {
	if pos < 0 || pos >= len(buf) {
		return 0, 0, errors.Wrapf(ErrBounds, "varint at %d, buffer length %d", pos, len(buf))
	}

	var v uint64
	for i := 0; i < MaxVarintLen-1; i++ {
		if pos+i >= len(buf) {
			return 0, 0, errors.Wrapf(ErrBounds, "varint at %d truncated after %d bytes", pos, i)
		}

		c := buf[pos+i]
		v = v<<7 | uint64(c&0x7f)
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
	}

	if pos+MaxVarintLen-1 >= len(buf) {
		return 0, 0, errors.Wrapf(ErrBounds, "varint at %d truncated after %d bytes", pos, MaxVarintLen-1)
	}
	v = v<<8 | uint64(buf[pos+MaxVarintLen-1])
	return v, MaxVarintLen, nil
}

// VarintLen returns the number of bytes required to encode v.
func VarintLen(v uint64) int {
	if v>>56 != 0 {
		return MaxVarintLen
	}

	n := 1
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}

// AppendVarint appends the varint encoding of v to dst.
func AppendVarint(dst []byte, v uint64) []byte {
	n := VarintLen(v)
	if n == MaxVarintLen {
		var tmp [MaxVarintLen]byte
		tmp[8] = byte(v)
		v >>= 8
		for i := 7; i >= 0; i-- {
			tmp[i] = byte(v&0x7f) | 0x80
			v >>= 7
		}
		return append(dst, tmp[:]...)
	}

	for i := n - 1; i >= 0; i-- {
		c := byte(v>>(uint(i)*7)) & 0x7f
		if i != 0 {
			c |= 0x80
		}
		dst = append(dst, c)
	}
	return dst
}
