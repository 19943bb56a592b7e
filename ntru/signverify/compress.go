package signverify

import (
	"errors"
	"fmt"
)

// ErrEncoding reports a compressed s2 that cannot be produced or parsed.
var ErrEncoding = errors.New("signverify: invalid compressed encoding")

// maxCompressedAbs is the largest |s2[i]| the encoding represents.
const maxCompressedAbs = 2047

// CompressedLen is the fixed compressed size of s2 for dimension n.
func CompressedLen(n int) int {
	switch n {
	case 512:
		return 625
	case 1024:
		return 1239
	}
	return (n*625 + 511) / 512
}

// Compress encodes s into exactly size bytes. Each coefficient is written as
// a sign bit, the 7 low bits of |x|, then |x|>>7 zero bits closed by a one.
// Unused trailing bits are zero.
func Compress(s []int64, size int) ([]byte, error) {
	out := make([]byte, size)
	var acc uint32
	var accLen uint
	pos := 0
	for i, x := range s {
		if x < -maxCompressedAbs || x > maxCompressedAbs {
			return nil, fmt.Errorf("%w: s2[%d]=%d out of range", ErrEncoding, i, x)
		}
		w := uint32(x)
		if x < 0 {
			w = uint32(-x)
		}
		acc <<= 1
		if x < 0 {
			acc |= 1
		}
		acc = acc<<7 | (w & 0x7F)
		accLen += 8
		hi := uint(w >> 7)
		acc <<= hi + 1
		acc |= 1
		accLen += hi + 1
		for accLen >= 8 {
			accLen -= 8
			if pos >= size {
				return nil, fmt.Errorf("%w: %d bytes exceeded", ErrEncoding, size)
			}
			out[pos] = byte(acc >> accLen)
			pos++
		}
	}
	if accLen > 0 {
		if pos >= size {
			return nil, fmt.Errorf("%w: %d bytes exceeded", ErrEncoding, size)
		}
		out[pos] = byte(acc << (8 - accLen))
	}
	return out, nil
}

// Decompress parses n coefficients from buf. It rejects negative zero, values
// above 2047 and any non-zero padding.
func Decompress(buf []byte, n int) ([]int64, error) {
	out := make([]int64, n)
	var acc uint32
	var accLen uint
	pos := 0
	for i := 0; i < n; i++ {
		if pos >= len(buf) {
			return nil, fmt.Errorf("%w: truncated at coefficient %d", ErrEncoding, i)
		}
		acc = acc<<8 | uint32(buf[pos])
		pos++
		b := acc >> accLen
		neg := b&0x80 != 0
		m := b & 0x7F
		for {
			if accLen == 0 {
				if pos >= len(buf) {
					return nil, fmt.Errorf("%w: truncated at coefficient %d", ErrEncoding, i)
				}
				acc = acc<<8 | uint32(buf[pos])
				pos++
				accLen = 8
			}
			accLen--
			if (acc>>accLen)&1 != 0 {
				break
			}
			m += 128
			if m > maxCompressedAbs {
				return nil, fmt.Errorf("%w: coefficient %d too large", ErrEncoding, i)
			}
		}
		if neg && m == 0 {
			return nil, fmt.Errorf("%w: negative zero at coefficient %d", ErrEncoding, i)
		}
		if neg {
			out[i] = -int64(m)
		} else {
			out[i] = int64(m)
		}
	}
	if acc&((1<<accLen)-1) != 0 {
		return nil, fmt.Errorf("%w: non-zero trailing bits", ErrEncoding)
	}
	for _, b := range buf[pos:] {
		if b != 0 {
			return nil, fmt.Errorf("%w: non-zero padding", ErrEncoding)
		}
	}
	return out, nil
}
