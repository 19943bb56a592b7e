package ntru

import (
	"math/big"
	"math/bits"
)

// bitlenMaxAbsBig returns the maximum bit length among the absolute values
// of the big integers in s.
func bitlenMaxAbsBig(s []*big.Int) int {
	m := 0
	for _, v := range s {
		if v == nil {
			continue
		}
		if bl := v.BitLen(); bl > m {
			m = bl
		}
	}
	return m
}

// bitlenMaxAbsInt64 returns the maximum bit length among the absolute values
// of the int64 coefficients in s.
func bitlenMaxAbsInt64(s []int64) int {
	m := 0
	for _, v := range s {
		if v < 0 {
			v = -v
		}
		b := bits.Len64(uint64(v))
		if b > m {
			m = b
		}
	}
	return m
}

// byteSize rounds the maximum bit length of s up to a multiple of 8, with a
// floor of 53 bits (the float64 mantissa) as the Babai scaling requires.
func byteSize(s ...[]*big.Int) int {
	m := 0
	for _, p := range s {
		if bl := bitlenMaxAbsBig(p); bl > m {
			m = bl
		}
	}
	m = (m + 7) / 8 * 8
	if m < 53 {
		m = 53
	}
	return m
}
