package ntru

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
)

// ErrSolveFailed reports that (f,g) admits no NTRU completion (the field
// norms at the bottom of the tower are not coprime) or that the reduction
// did not converge.
var ErrSolveFailed = errors.New("ntru: NTRUSolve failed")

// maxReduceIters bounds one Babai reduction; each pass removes roughly the
// float64 mantissa width from |F|,|G|, so this is far above what is needed.
const maxReduceIters = 4096

// NTRUSolve computes integer F,G such that f*G - g*F = q in Z[x]/(x^N+1).
// The tower descends through field norms N(f) = f(x)f(-x) down to degree 1,
// solves there with an extended gcd, lifts back up and Babai-reduces (F,G)
// against (f,g) at every level.
func NTRUSolve(f, g []int64, par Params) (F, G []int64, err error) {
	dbg(os.Stderr, "[NTRUSolve] enter N=%d Q=%d\n", par.N, par.Q)
	if len(f) != par.N || len(g) != par.N {
		return nil, nil, fmt.Errorf("NTRUSolve: %w", ErrDimensionMismatch)
	}
	fb := int64sToBig(f)
	gb := int64sToBig(g)
	Fb, Gb, err := solveTower(fb, gb, new(big.Int).SetUint64(par.Q))
	if err != nil {
		return nil, nil, err
	}
	Fi, ok1 := bigSliceToInt64(Fb)
	Gi, ok2 := bigSliceToInt64(Gb)
	if !ok1 || !ok2 {
		return nil, nil, fmt.Errorf("NTRUSolve: reduced basis does not fit int64: %w", ErrSolveFailed)
	}
	if !CheckNTRUIdentity(f, g, Fi, Gi, par) {
		return nil, nil, fmt.Errorf("NTRUSolve: identity check failed: %w", ErrSolveFailed)
	}
	dbg(os.Stderr, "[NTRUSolve] done |F|bits=%d\n", bitlenMaxAbsInt64(Fi))
	return Fi, Gi, nil
}

func solveTower(f, g []*big.Int, q *big.Int) (F, G []*big.Int, err error) {
	if len(f) == 1 {
		// f0*u + g0*v = 1  =>  f0*(q*u) - g0*(-q*v) = q
		u, v := new(big.Int), new(big.Int)
		d := new(big.Int).GCD(u, v, f[0], g[0])
		if d.Cmp(big.NewInt(1)) != 0 {
			return nil, nil, fmt.Errorf("base case gcd=%s: %w", d.String(), ErrSolveFailed)
		}
		F0 := new(big.Int).Mul(v, q)
		F0.Neg(F0)
		G0 := new(big.Int).Mul(u, q)
		return []*big.Int{F0}, []*big.Int{G0}, nil
	}
	Fp, Gp, err := solveTower(fieldNorm(f), fieldNorm(g), q)
	if err != nil {
		return nil, nil, err
	}
	F = mulNegacyclicBig(lift(Fp), galoisConjugate(g))
	G = mulNegacyclicBig(lift(Gp), galoisConjugate(f))
	return babaiReduce(f, g, F, G)
}

// babaiReduce subtracts k*(f,g) from (F,G) with k = round((F f* + G g*)/(f f* + g g*)),
// working on float64 approximations scaled to the top 53 bits and repeating
// until k vanishes.
func babaiReduce(f, g, F, G []*big.Int) ([]*big.Int, []*big.Int, error) {
	size := byteSize(f, g)
	fa := fftBigShifted(f, size-53)
	ga := fftBigShifted(g, size-53)
	den := fa.Mul(fa.Adj()).Add(ga.Mul(ga.Adj()))
	faAdj, gaAdj := fa.Adj(), ga.Adj()
	n := len(f)
	for iter := 0; iter < maxReduceIters; iter++ {
		Size := byteSize(F, G)
		if Size < size {
			return F, G, nil
		}
		Fa := fftBigShifted(F, Size-53)
		Ga := fftBigShifted(G, Size-53)
		num := Fa.Mul(faAdj).Add(Ga.Mul(gaAdj))
		kf := IFFT(num.Div(den))
		k := make([]*big.Int, n)
		allZero := true
		for i, x := range kf {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, nil, fmt.Errorf("babai: non-finite quotient: %w", ErrSolveFailed)
			}
			r := math.Round(x)
			if r != 0 {
				allZero = false
			}
			k[i], _ = big.NewFloat(r).Int(nil)
		}
		if allZero {
			return F, G, nil
		}
		fk := mulNegacyclicBig(f, k)
		gk := mulNegacyclicBig(g, k)
		sh := uint(Size - size)
		for i := 0; i < n; i++ {
			F[i].Sub(F[i], fk[i].Lsh(fk[i], sh))
			G[i].Sub(G[i], gk[i].Lsh(gk[i], sh))
		}
	}
	return nil, nil, fmt.Errorf("babai: no convergence after %d passes: %w", maxReduceIters, ErrSolveFailed)
}

// fieldNorm maps a in Z[x]/(x^n+1) to N(a) = a_e^2 - x*a_o^2 in Z[x]/(x^{n/2}+1),
// where a(x) = a_e(x^2) + x*a_o(x^2).
func fieldNorm(a []*big.Int) []*big.Int {
	n2 := len(a) / 2
	ae := make([]*big.Int, n2)
	ao := make([]*big.Int, n2)
	for i := 0; i < n2; i++ {
		ae[i] = a[2*i]
		ao[i] = a[2*i+1]
	}
	ae2 := mulNegacyclicBig(ae, ae)
	ao2 := mulNegacyclicBig(ao, ao)
	res := ae2
	for i := 0; i < n2-1; i++ {
		res[i+1].Sub(res[i+1], ao2[i])
	}
	res[0].Add(res[0], ao2[n2-1])
	return res
}

// lift embeds a(x) in Z[x]/(x^{n}+1) as a(x^2) in Z[x]/(x^{2n}+1).
func lift(a []*big.Int) []*big.Int {
	out := make([]*big.Int, 2*len(a))
	for i := range out {
		out[i] = new(big.Int)
	}
	for i, c := range a {
		out[2*i].Set(c)
	}
	return out
}

// galoisConjugate returns a(-x).
func galoisConjugate(a []*big.Int) []*big.Int {
	out := make([]*big.Int, len(a))
	for i, c := range a {
		out[i] = new(big.Int).Set(c)
		if i&1 == 1 {
			out[i].Neg(out[i])
		}
	}
	return out
}

// mulNegacyclicBig multiplies polynomials in Z[x]/(x^n+1).
func mulNegacyclicBig(f, g []*big.Int) []*big.Int {
	n := len(f)
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = new(big.Int)
	}
	tmp := new(big.Int)
	for i := 0; i < n; i++ {
		if f[i].Sign() == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			if g[j].Sign() == 0 {
				continue
			}
			tmp.Mul(f[i], g[j])
			if k := i + j; k < n {
				out[k].Add(out[k], tmp)
			} else {
				out[k-n].Sub(out[k-n], tmp)
			}
		}
	}
	return out
}

func int64sToBig(a []int64) []*big.Int {
	out := make([]*big.Int, len(a))
	for i, v := range a {
		out[i] = big.NewInt(v)
	}
	return out
}

func bigSliceToInt64(p []*big.Int) ([]int64, bool) {
	out := make([]int64, len(p))
	for i := range p {
		if !p[i].IsInt64() {
			return nil, false
		}
		out[i] = p[i].Int64()
	}
	return out, true
}

// MulNegacyclicZZ multiplies integer polys in Z[x]/(x^N+1) exactly.
// Returns ErrOverflow when a coefficient leaves int64.
func MulNegacyclicZZ(a, b []int64) ([]int64, error) {
	p, err := RingElementFrom(a).MulReduce(RingElementFrom(b))
	if err != nil {
		return nil, err
	}
	return p.Coeffs, nil
}

// CheckNTRUIdentity verifies fG - gF == q in Z[x]/(x^N+1).
func CheckNTRUIdentity(f, g, F, G []int64, par Params) bool {
	if len(f) != par.N || len(g) != par.N || len(F) != par.N || len(G) != par.N {
		return false
	}
	fG, err := MulNegacyclicZZ(f, G)
	if err != nil {
		return false
	}
	gF, err := MulNegacyclicZZ(g, F)
	if err != nil {
		return false
	}
	for i := 0; i < par.N; i++ {
		want := int64(0)
		if i == 0 {
			want = int64(par.Q)
		}
		if fG[i]-gF[i] != want {
			return false
		}
	}
	return true
}
