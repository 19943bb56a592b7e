package ntru

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"falcon-aggregate/prof"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// KeygenOpts controls trapdoor generation.
type KeygenOpts struct {
	MaxTrials int     // maximum (f,g) candidates before giving up (default 1000)
	Quality   float64 // Gram-Schmidt bound factor, ||b~||^2 <= Quality^2*q (default 1.17)
	Verbose   bool    // emit rejection counters
}

// ApplyDefaults fills unset fields.
func (o *KeygenOpts) ApplyDefaults() {
	if o.MaxTrials <= 0 {
		o.MaxTrials = 1000
	}
	if o.Quality <= 0 {
		o.Quality = 1.17
	}
}

// ErrKeygenExhausted is returned when no candidate passed every filter.
var ErrKeygenExhausted = errors.New("ntru: key generation exhausted its trials")

// KeygenFromSeed derives a trapdoor (f,g,F,G) deterministically from seed.
// The seed keys a PRNG; each candidate (f,g) has centered-binomial
// coefficients of standard deviation Quality*sqrt(q/2N) and is rejected when
// f is not invertible mod q, when either Gram-Schmidt vector of the basis
// [[g,-f],[G,-F]] is longer than Quality*sqrt(q), or when NTRUSolve fails.
func KeygenFromSeed(seed []byte, par Params, opts KeygenOpts) (f, g, F, G []int64, err error) {
	defer prof.Track(time.Now(), "ntru/keygen")
	opts.ApplyDefaults()
	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("keygen prng: %w", err)
	}
	sigma2 := opts.Quality * opts.Quality * float64(par.Q) / float64(2*par.N)
	eta := int(math.Round(2 * sigma2))
	if eta < 1 {
		eta = 1
	}
	gsBound := opts.Quality * opts.Quality * float64(par.Q)

	var failParity, failInvert, failGS, failSolve int
	for trial := 0; trial < opts.MaxTrials; trial++ {
		f, err = sampleBinomialPoly(prng, par.N, eta)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		g, err = sampleBinomialPoly(prng, par.N, eta)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		// f mod 2 and g mod 2 both non-units means N(f), N(g) are both even.
		if coeffSum(f)&1 == 0 && coeffSum(g)&1 == 0 {
			failParity++
			continue
		}
		if _, ok := InvertModQ(RingElementFrom(f), par); !ok {
			failInvert++
			continue
		}
		if n0, n1 := GramSchmidtNorms(f, g, par); n0 > gsBound || n1 > gsBound {
			failGS++
			continue
		}
		F, G, err = NTRUSolve(f, g, par)
		if err != nil {
			failSolve++
			dbg(os.Stderr, "[keygen] trial=%d solve: %v\n", trial, err)
			continue
		}
		if opts.Verbose || debugOn {
			fmt.Fprintf(os.Stderr, "[keygen] accepted trial=%d rejects parity=%d invert=%d gs=%d solve=%d\n",
				trial+1, failParity, failInvert, failGS, failSolve)
		}
		return f, g, F, G, nil
	}
	return nil, nil, nil, nil, fmt.Errorf("%w: %d trials (parity=%d invert=%d gs=%d solve=%d)",
		ErrKeygenExhausted, opts.MaxTrials, failParity, failInvert, failGS, failSolve)
}

// GramSchmidtNorms returns the squared norms of the two ring-level
// Gram-Schmidt vectors of [[g,-f],[G,-F]]: ||(g,f)||^2 and
// ||q*(f*,g*)/(ff*+gg*)||^2. The second one does not depend on F,G.
func GramSchmidtNorms(f, g []int64, par Params) (n0, n1 float64) {
	for i := range f {
		n0 += float64(f[i]*f[i] + g[i]*g[i])
	}
	fe := FFTInt64(f)
	ge := FFTInt64(g)
	q := float64(par.Q)
	for i := range fe {
		d := real(fe[i])*real(fe[i]) + imag(fe[i])*imag(fe[i]) +
			real(ge[i])*real(ge[i]) + imag(ge[i])*imag(ge[i])
		if d == 0 {
			return n0, math.Inf(1)
		}
		n1 += q * q / d
	}
	n1 /= float64(len(fe))
	return n0, n1
}

// sampleBinomialPoly draws n coefficients, each the difference of two sums
// of eta random bits (variance eta/2).
func sampleBinomialPoly(r io.Reader, n, eta int) ([]int64, error) {
	nb := (2*eta + 7) / 8
	buf := make([]byte, nb)
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("prng read: %w", err)
		}
		var pos, neg int
		for b := 0; b < 2*eta; b++ {
			bit := int(buf[b/8]>>(b%8)) & 1
			if b < eta {
				pos += bit
			} else {
				neg += bit
			}
		}
		out[i] = int64(pos - neg)
	}
	return out, nil
}

func coeffSum(a []int64) int64 {
	var s int64
	for _, v := range a {
		s += v
	}
	return s
}
