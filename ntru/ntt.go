package ntru

import (
	"fmt"
	"os"
	"sync"

	"github.com/tuneinsight/lattigo/v4/ring"
)

var (
	ringMu    sync.Mutex
	ringCache = map[[2]uint64]*ring.Ring{}
)

// BuildRing returns the Lattigo ring for (N, Q). Rings are immutable once
// built and shared between callers.
func (p Params) BuildRing() (*ring.Ring, error) {
	key := [2]uint64{uint64(p.N), p.Q}
	ringMu.Lock()
	defer ringMu.Unlock()
	if r, ok := ringCache[key]; ok {
		return r, nil
	}
	dbg(os.Stderr, "[Ring] BuildRing N=%d Q=%d\n", p.N, p.Q)
	r, err := ring.NewRing(p.N, []uint64{p.Q})
	if err != nil {
		return nil, fmt.Errorf("build ring N=%d Q=%d: %w", p.N, p.Q, err)
	}
	ringCache[key] = r
	return r, nil
}

func toLimb(r *ring.Ring, a RingElement, q uint64) *ring.Poly {
	pl := r.NewPoly()
	copy(pl.Coeffs[0], DecenterToModQ(a.Coeffs, q))
	return pl
}

func fromLimb(pl *ring.Poly) RingElement {
	out := NewRingElement(len(pl.Coeffs[0]))
	for i, c := range pl.Coeffs[0] {
		out.Coeffs[i] = int64(c)
	}
	return out
}

// ConvolveModQ returns a*b mod (x^N+1, Q) with coefficients in [0,Q),
// computed in the NTT domain.
func ConvolveModQ(a, b RingElement, par Params) (RingElement, error) {
	if a.Len() != par.N || b.Len() != par.N {
		return RingElement{}, fmt.Errorf("convolve %d,%d with N=%d: %w", a.Len(), b.Len(), par.N, ErrDimensionMismatch)
	}
	r, err := par.BuildRing()
	if err != nil {
		return RingElement{}, err
	}
	pa := toLimb(r, a, par.Q)
	pb := toLimb(r, b, par.Q)
	r.MForm(pa, pa)
	r.MForm(pb, pb)
	r.NTT(pa, pa)
	r.NTT(pb, pb)
	res := r.NewPoly()
	r.MulCoeffsMontgomery(pa, pb, res)
	r.InvNTT(res, res)
	r.InvMForm(res, res)
	return fromLimb(res), nil
}

// InvertModQ returns f^{-1} in R_Q if it exists. f is a unit exactly when
// none of its NTT evaluations vanish; the inverse is taken slot by slot.
func InvertModQ(f RingElement, par Params) (RingElement, bool) {
	if f.Len() != par.N {
		return RingElement{}, false
	}
	r, err := par.BuildRing()
	if err != nil {
		return RingElement{}, false
	}
	pf := toLimb(r, f, par.Q)
	r.NTT(pf, pf)
	for i, v := range pf.Coeffs[0] {
		if v == 0 {
			return RingElement{}, false
		}
		pf.Coeffs[0][i] = powMod(v, par.Q-2, par.Q)
	}
	r.InvNTT(pf, pf)
	inv := fromLimb(pf)
	one, err := ConvolveModQ(f, inv, par)
	if err != nil || !one.Equal(One(par.N)) {
		dbg(os.Stderr, "[Inv] InvertModQ consistency check failed\n")
		return RingElement{}, false
	}
	return inv, true
}

// PublicKeyH computes h = g * f^{-1} (mod Q) in R_Q.
func PublicKeyH(f, g RingElement, par Params) (RingElement, error) {
	fInv, ok := InvertModQ(f, par)
	if !ok {
		return RingElement{}, fmt.Errorf("PublicKeyH: f is not invertible in R_q")
	}
	h, err := ConvolveModQ(g, fInv, par)
	if err != nil {
		return RingElement{}, fmt.Errorf("PublicKeyH: convolution failed: %w", err)
	}
	return h, nil
}

func powMod(x, e, q uint64) uint64 {
	result := uint64(1)
	x %= q
	for e > 0 {
		if e&1 == 1 {
			result = result * x % q
		}
		x = x * x % q
		e >>= 1
	}
	return result
}
