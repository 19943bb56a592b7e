package ntru

import (
	"math"
	"math/big"
	"math/bits"
)

// FFTVec holds the evaluations of a real polynomial of degree < n at the n
// roots of x^n+1, w_j = exp(i*pi*(2j+1)/n), in index order j.
type FFTVec []complex128

func twist(n int, inverse bool) []complex128 {
	tw := make([]complex128, n)
	for k := 0; k < n; k++ {
		a := math.Pi * float64(k) / float64(n)
		if inverse {
			a = -a
		}
		tw[k] = complex(math.Cos(a), math.Sin(a))
	}
	return tw
}

// dft runs an in-place radix-2 transform with kernel exp(sign*2*pi*i*jk/n).
func dft(a []complex128, sign float64) {
	n := len(a)
	if n <= 1 {
		return
	}
	logn := bits.TrailingZeros(uint(n))
	for i := 0; i < n; i++ {
		j := int(bits.Reverse(uint(i)) >> (bits.UintSize - logn))
		if j > i {
			a[i], a[j] = a[j], a[i]
		}
	}
	for size := 2; size <= n; size <<= 1 {
		ang := sign * 2 * math.Pi / float64(size)
		half := size / 2
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				w := complex(math.Cos(ang*float64(k)), math.Sin(ang*float64(k)))
				u := a[start+k]
				v := a[start+k+half] * w
				a[start+k] = u + v
				a[start+k+half] = u - v
			}
		}
	}
}

// FFT evaluates the real coefficients in the negacyclic domain.
func FFT(coeffs []float64) FFTVec {
	n := len(coeffs)
	tw := twist(n, false)
	out := make(FFTVec, n)
	for k, c := range coeffs {
		out[k] = complex(c, 0) * tw[k]
	}
	dft(out, 1)
	return out
}

// IFFT inverts FFT and returns the real parts of the coefficients.
func IFFT(v FFTVec) []float64 {
	n := len(v)
	tmp := append(FFTVec(nil), v...)
	dft(tmp, -1)
	tw := twist(n, true)
	out := make([]float64, n)
	for k := range tmp {
		out[k] = real(tmp[k]*tw[k]) / float64(n)
	}
	return out
}

// FFTInt64 is FFT over integer coefficients.
func FFTInt64(coeffs []int64) FFTVec {
	f := make([]float64, len(coeffs))
	for i, c := range coeffs {
		f[i] = float64(c)
	}
	return FFT(f)
}

// fftBigShifted converts big coefficients to float64 after an arithmetic
// right shift by sh bits.
func fftBigShifted(coeffs []*big.Int, sh int) FFTVec {
	f := make([]float64, len(coeffs))
	t := new(big.Int)
	for i, c := range coeffs {
		t.Rsh(c, uint(sh))
		f[i], _ = new(big.Float).SetInt(t).Float64()
	}
	return FFT(f)
}

// Adj returns the adjoint f*(x) = f(1/x), i.e. the slot-wise conjugate.
func (v FFTVec) Adj() FFTVec {
	out := make(FFTVec, len(v))
	for i, c := range v {
		out[i] = complex(real(c), -imag(c))
	}
	return out
}

// Mul is the slot-wise product.
func (v FFTVec) Mul(w FFTVec) FFTVec {
	out := make(FFTVec, len(v))
	for i := range v {
		out[i] = v[i] * w[i]
	}
	return out
}

// Add is the slot-wise sum.
func (v FFTVec) Add(w FFTVec) FFTVec {
	out := make(FFTVec, len(v))
	for i := range v {
		out[i] = v[i] + w[i]
	}
	return out
}

// Sub is the slot-wise difference.
func (v FFTVec) Sub(w FFTVec) FFTVec {
	out := make(FFTVec, len(v))
	for i := range v {
		out[i] = v[i] - w[i]
	}
	return out
}

// Div is the slot-wise quotient.
func (v FFTVec) Div(w FFTVec) FFTVec {
	out := make(FFTVec, len(v))
	for i := range v {
		out[i] = v[i] / w[i]
	}
	return out
}

// Scale multiplies every slot by s.
func (v FFTVec) Scale(s float64) FFTVec {
	out := make(FFTVec, len(v))
	for i := range v {
		out[i] = v[i] * complex(s, 0)
	}
	return out
}
