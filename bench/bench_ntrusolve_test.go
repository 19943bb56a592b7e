package bench

import (
	"testing"

	"falcon-aggregate/ntru"
)

func benchmarkParams() ntru.Params {
	p, _ := ntru.NewParams(64, 12289, ntru.Falcon512Beta)
	return p
}

func BenchmarkInvertModQ(b *testing.B) {
	par := ntru.Falcon512()
	rng := ntru.NewRNG(3)
	var f ntru.RingElement
	for {
		f = randRingElement(rng, par.N, 3)
		if _, ok := ntru.InvertModQ(f, par); ok {
			break
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := ntru.InvertModQ(f, par); !ok {
			b.Fatal("inverse failed")
		}
	}
}

func BenchmarkNTRUSolve(b *testing.B) {
	par := benchmarkParams()
	f, g, _, _, err := ntru.KeygenFromSeed([]byte("bench-ntrusolve"), par, ntru.KeygenOpts{})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := ntru.NTRUSolve(f, g, par); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKeygen512(b *testing.B) {
	par := ntru.Falcon512()
	seed := make([]byte, 32)
	for i := 0; i < b.N; i++ {
		seed[0] = byte(i)
		if _, _, _, _, err := ntru.KeygenFromSeed(seed, par, ntru.KeygenOpts{}); err != nil {
			b.Fatal(err)
		}
	}
}
