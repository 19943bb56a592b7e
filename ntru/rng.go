package ntru

import "math/rand"

// RNG wraps a deterministic rand.Rand for tests and benchmarks. It also
// serves as a reproducible entropy source for SignOpts.Rand.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a new RNG with given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Intn returns random int in [0,n).
func (r *RNG) Intn(n int) int {
	return r.r.Intn(n)
}

// Read fills p with pseudo-random bytes. It never fails.
func (r *RNG) Read(p []byte) (int, error) {
	return r.r.Read(p)
}
