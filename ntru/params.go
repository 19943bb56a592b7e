package ntru

import "fmt"

// Falcon-512 reference values.
const (
	Falcon512N    = 512
	Falcon512Q    = 12289
	Falcon512Beta = 34034726 // squared norm bound floor(beta^2)
	SaltBytes     = 40
)

// Params defines the cyclotomic dimension N, the modulus Q and the squared
// Euclidean bound a single signature (s1,s2) must stay strictly below.
type Params struct {
	N     int
	Q     uint64
	Beta2 uint64
}

// NewParams validates N (power of two) and Q (prime below 2^16 with
// Q = 1 mod 2N, so the NTT over Z_Q exists).
func NewParams(N int, Q uint64, beta2 uint64) (Params, error) {
	p := Params{N: N, Q: Q, Beta2: beta2}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate re-runs the NewParams checks on a hand-built value. Every error
// wraps ErrInvalidParams.
func (p Params) Validate() error {
	if p.N <= 0 || p.N&(p.N-1) != 0 {
		return fmt.Errorf("%w: N must be a power of two, got %d", ErrInvalidParams, p.N)
	}
	// HashToPoint samples 16-bit words.
	if p.Q < 3 || p.Q >= 1<<16 {
		return fmt.Errorf("%w: Q out of range: %d", ErrInvalidParams, p.Q)
	}
	if !isPrime(p.Q) {
		return fmt.Errorf("%w: Q must be prime, got %d", ErrInvalidParams, p.Q)
	}
	if (p.Q-1)%uint64(2*p.N) != 0 {
		return fmt.Errorf("%w: Q=%d is not NTT friendly for N=%d", ErrInvalidParams, p.Q, p.N)
	}
	if p.Beta2 == 0 {
		return fmt.Errorf("%w: norm bound must be positive", ErrInvalidParams)
	}
	return nil
}

// HalfQ is the largest centered representative, floor(Q/2).
func (p Params) HalfQ() int64 { return int64(p.Q / 2) }

func isPrime(q uint64) bool {
	if q < 2 {
		return false
	}
	for d := uint64(2); d*d <= q; d++ {
		if q%d == 0 {
			return false
		}
	}
	return true
}
