package ntru

import (
	"fmt"
	"math/bits"
)

// NormSquared returns sum(c_i^2) over the coefficients of p, which are taken
// as their own centered representatives. Accumulation is exact; a total that
// does not fit in uint64 yields ErrOverflow.
func NormSquared(p RingElement) (uint64, error) {
	var acc uint64
	for i, c := range p.Coeffs {
		u := uint64(c)
		if c < 0 {
			u = -u
		}
		hi, lo := bits.Mul64(u, u)
		if hi != 0 {
			return 0, fmt.Errorf("square of coefficient %d: %w", i, ErrOverflow)
		}
		var carry uint64
		acc, carry = bits.Add64(acc, lo, 0)
		if carry != 0 {
			return 0, fmt.Errorf("norm accumulation at %d: %w", i, ErrOverflow)
		}
	}
	return acc, nil
}

// NormSquaredModQ centers every coefficient modulo q before squaring.
func NormSquaredModQ(p RingElement, q uint64) (uint64, error) {
	return NormSquared(p.Center(q))
}

// PairNormSquared returns ||a||^2 + ||b||^2 with centered representatives mod q.
func PairNormSquared(a, b RingElement, q uint64) (uint64, error) {
	na, err := NormSquaredModQ(a, q)
	if err != nil {
		return 0, err
	}
	nb, err := NormSquaredModQ(b, q)
	if err != nil {
		return 0, err
	}
	sum, carry := bits.Add64(na, nb, 0)
	if carry != 0 {
		return 0, fmt.Errorf("pair norm: %w", ErrOverflow)
	}
	return sum, nil
}
