package bench

import (
	"testing"

	"falcon-aggregate/ntru"
)

func randRingElement(rng *ntru.RNG, n int, bound int) ntru.RingElement {
	p := ntru.NewRingElement(n)
	for i := range p.Coeffs {
		p.Coeffs[i] = int64(rng.Intn(2*bound+1) - bound)
	}
	return p
}

func BenchmarkConvolveModQ(b *testing.B) {
	par := ntru.Falcon512()
	rng := ntru.NewRNG(1)
	a := randRingElement(rng, par.N, 6000)
	h := randRingElement(rng, par.N, 6000).ModQ(par.Q)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ntru.ConvolveModQ(a, h, par); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMulReduceSchoolbook(b *testing.B) {
	par := ntru.Falcon512()
	rng := ntru.NewRNG(1)
	a := randRingElement(rng, par.N, 2000)
	h := randRingElement(rng, par.N, 6000).ModQ(par.Q)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		raw, err := a.Mul(h)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := ntru.ReduceCyclotomic(raw, par.N); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHashToPoint(b *testing.B) {
	par := ntru.Falcon512()
	salt := make([]byte, ntru.SaltBytes)
	msg := []byte("benchmark message")
	for i := 0; i < b.N; i++ {
		_ = ntru.HashSaltMessage(salt, msg, par)
	}
}
