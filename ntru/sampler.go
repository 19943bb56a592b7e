package ntru

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"falcon-aggregate/prof"

	"golang.org/x/crypto/sha3"
)

// ErrSignExhausted is returned when no draw met the norm bound.
var ErrSignExhausted = errors.New("ntru: no short preimage within the trial budget")

// Sampler produces short preimages (s1, s2) with s1 + s2*h = c mod q using
// the secret basis [[g,-f],[G,-F]]. The FFT images of the basis and the
// Gram-Schmidt coefficient are computed once.
type Sampler struct {
	Par              Params
	f, g, bigF, bigG []int64

	fHat, bigFHat FFTVec
	mu            FFTVec
}

// NewSampler checks fG - gF = q and precomputes the FFT data.
func NewSampler(f, g, F, G []int64, par Params) (*Sampler, error) {
	for _, v := range [][]int64{f, g, F, G} {
		if len(v) != par.N {
			return nil, ErrDimensionMismatch
		}
	}
	if !CheckNTRUIdentity(f, g, F, G, par) {
		return nil, errors.New("ntru: basis does not satisfy fG - gF = q")
	}
	fh, gh := FFTInt64(f), FFTInt64(g)
	Fh, Gh := FFTInt64(F), FFTInt64(G)
	num := Gh.Mul(gh.Adj()).Add(Fh.Mul(fh.Adj()))
	den := gh.Mul(gh.Adj()).Add(fh.Mul(fh.Adj()))
	return &Sampler{
		Par: par, f: f, g: g, bigF: F, bigG: G,
		fHat: fh, bigFHat: Fh,
		mu: num.Div(den),
	}, nil
}

// Preimage returns one nearest-plane draw for target c. It does not check the
// norm bound.
func (s *Sampler) Preimage(c []int64, rnd io.Reader) (s1, s2 []int64, err error) {
	if len(c) != s.Par.N {
		return nil, nil, ErrDimensionMismatch
	}
	rr, err := newRounder(rnd)
	if err != nil {
		return nil, nil, err
	}
	qInv := 1 / float64(s.Par.Q)
	ch := FFTInt64(c)
	t0 := ch.Mul(s.bigFHat).Scale(-qInv)
	t1 := ch.Mul(s.fHat).Scale(qInv)

	z1 := rr.roundVec(IFFT(t1))
	t0 = t0.Add(t1.Sub(FFTInt64(z1)).Mul(s.mu))
	z0 := rr.roundVec(IFFT(t0))

	z0f, err := MulNegacyclicZZ(z0, s.f)
	if err != nil {
		return nil, nil, err
	}
	z1F, err := MulNegacyclicZZ(z1, s.bigF)
	if err != nil {
		return nil, nil, err
	}
	z0g, err := MulNegacyclicZZ(z0, s.g)
	if err != nil {
		return nil, nil, err
	}
	z1G, err := MulNegacyclicZZ(z1, s.bigG)
	if err != nil {
		return nil, nil, err
	}
	s1 = make([]int64, s.Par.N)
	s2 = make([]int64, s.Par.N)
	for i := range s1 {
		s1[i] = c[i] - z0g[i] - z1G[i]
		s2[i] = z0f[i] + z1F[i]
	}
	return s1, s2, nil
}

// SampleShort draws preimages of c until ||(s1,s2)||^2 < Beta2 and accept
// (if non-nil) approves s2.
func (s *Sampler) SampleShort(c []int64, opts SignOpts, accept func(s2 []int64) bool) (s1, s2 []int64, err error) {
	defer prof.Track(time.Now(), "ntru/sample")
	opts.ApplyDefaults()
	for trial := 0; trial < opts.MaxSignTrials; trial++ {
		s1, s2, err = s.Preimage(c, opts.Rand)
		if err != nil {
			return nil, nil, err
		}
		n1, err := NormSquared(RingElementFrom(s1))
		if err != nil {
			continue
		}
		n2, err := NormSquared(RingElementFrom(s2))
		if err != nil {
			continue
		}
		if n1+n2 >= s.Par.Beta2 {
			dbg(os.Stderr, "[sample] trial=%d norm=%d >= %d\n", trial, n1+n2, s.Par.Beta2)
			continue
		}
		if accept != nil && !accept(s2) {
			dbg(os.Stderr, "[sample] trial=%d rejected by encoder\n", trial)
			continue
		}
		dbg(os.Stderr, "[sample] trial=%d norm=%d\n", trial, n1+n2)
		return s1, s2, nil
	}
	return nil, nil, fmt.Errorf("%w: %d trials", ErrSignExhausted, opts.MaxSignTrials)
}

// rounder rounds x to floor(x)+1 with probability frac(x), driven by a
// SHAKE256 stream keyed from the caller's entropy.
type rounder struct {
	xof sha3.ShakeHash
	buf [8]byte
}

func newRounder(rnd io.Reader) (*rounder, error) {
	var seed [32]byte
	if _, err := io.ReadFull(rnd, seed[:]); err != nil {
		return nil, fmt.Errorf("rounding seed: %w", err)
	}
	xof := sha3.NewShake256()
	xof.Write(seed[:])
	return &rounder{xof: xof}, nil
}

func (r *rounder) uniform() float64 {
	r.xof.Read(r.buf[:])
	return float64(binary.LittleEndian.Uint64(r.buf[:])>>11) / (1 << 53)
}

func (r *rounder) round(x float64) int64 {
	fl := math.Floor(x)
	if r.uniform() < x-fl {
		return int64(fl) + 1
	}
	return int64(fl)
}

func (r *rounder) roundVec(xs []float64) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = r.round(x)
	}
	return out
}
