package ntru

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestSamplerPreimageCongruence(t *testing.T) {
	k := smallTrapdoor(t)
	s, err := NewSampler(k.f, k.g, k.F, k.G, k.par)
	if err != nil {
		t.Fatal(err)
	}
	h, err := PublicKeyH(RingElementFrom(k.f), RingElementFrom(k.g), k.par)
	if err != nil {
		t.Fatal(err)
	}
	c := HashToPoint([]byte("target"), k.par)
	for i := 0; i < 5; i++ {
		s1, s2, err := s.Preimage(c.Coeffs, rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		s2h, err := ConvolveModQ(RingElementFrom(s2), h, k.par)
		if err != nil {
			t.Fatal(err)
		}
		sum, _ := RingElementFrom(s1).Add(s2h)
		if !sum.ModQ(k.par.Q).Equal(c) {
			t.Fatalf("s1 + s2*h != c mod q")
		}
	}
}

func TestSamplerShortNorm(t *testing.T) {
	k := smallTrapdoor(t)
	s, err := NewSampler(k.f, k.g, k.F, k.G, k.par)
	if err != nil {
		t.Fatal(err)
	}
	c := HashToPoint([]byte("short"), k.par)
	s1, s2, err := s.SampleShort(c.Coeffs, SignOpts{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	n, err := PairNormSquared(RingElementFrom(s1), RingElementFrom(s2), k.par.Q)
	if err != nil {
		t.Fatal(err)
	}
	if n >= k.par.Beta2 {
		t.Fatalf("norm %d not below %d", n, k.par.Beta2)
	}
}

func TestSamplerRandomizedRounding(t *testing.T) {
	k := smallTrapdoor(t)
	s, err := NewSampler(k.f, k.g, k.F, k.G, k.par)
	if err != nil {
		t.Fatal(err)
	}
	c := HashToPoint([]byte("rounding"), k.par)
	_, a, err := s.Preimage(c.Coeffs, NewRNG(11))
	if err != nil {
		t.Fatal(err)
	}
	_, b, err := s.Preimage(c.Coeffs, NewRNG(11))
	if err != nil {
		t.Fatal(err)
	}
	if !RingElementFrom(a).Equal(RingElementFrom(b)) {
		t.Fatalf("same rounding seed gave different preimages")
	}
	if _, _, err := s.Preimage(c.Coeffs, bytes.NewReader(nil)); err == nil {
		t.Fatalf("expected error on empty entropy source")
	}
}

func TestSamplerRejectsBadBasis(t *testing.T) {
	k := smallTrapdoor(t)
	G := append([]int64(nil), k.G...)
	G[0]++
	if _, err := NewSampler(k.f, k.g, k.F, G, k.par); err == nil {
		t.Fatalf("broken basis accepted")
	}
	if _, err := NewSampler(k.f[:8], k.g, k.F, k.G, k.par); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSampleShortExhausted(t *testing.T) {
	k := smallTrapdoor(t)
	s, err := NewSampler(k.f, k.g, k.F, k.G, k.par)
	if err != nil {
		t.Fatal(err)
	}
	c := HashToPoint([]byte("never"), k.par)
	reject := func([]int64) bool { return false }
	if _, _, err := s.SampleShort(c.Coeffs, SignOpts{MaxSignTrials: 2}, reject); !errors.Is(err, ErrSignExhausted) {
		t.Fatalf("expected ErrSignExhausted, got %v", err)
	}
}
