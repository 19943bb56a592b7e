package ntru

import (
	"fmt"
	"math/big"
	"math/bits"
)

// RingElement is a polynomial of Z[x]/(x^N+1) with signed integer
// coefficients. Its length is its dimension; operations never resize.
type RingElement struct {
	Coeffs []int64 `json:"coeffs"`
}

// NewRingElement allocates the zero element of dimension n.
func NewRingElement(n int) RingElement {
	return RingElement{Coeffs: make([]int64, n)}
}

// RingElementFrom copies coeffs into a new element.
func RingElementFrom(coeffs []int64) RingElement {
	return RingElement{Coeffs: append([]int64(nil), coeffs...)}
}

// One returns the multiplicative identity of dimension n.
func One(n int) RingElement {
	p := NewRingElement(n)
	if n > 0 {
		p.Coeffs[0] = 1
	}
	return p
}

// Len returns the number of coefficients.
func (p RingElement) Len() int { return len(p.Coeffs) }

// Clone returns a deep copy.
func (p RingElement) Clone() RingElement { return RingElementFrom(p.Coeffs) }

// Equal reports coefficient-wise equality (dimensions included).
func (p RingElement) Equal(q RingElement) bool {
	if len(p.Coeffs) != len(q.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if p.Coeffs[i] != q.Coeffs[i] {
			return false
		}
	}
	return true
}

// Add returns p+q coefficient-wise. No modular reduction is applied.
func (p RingElement) Add(q RingElement) (RingElement, error) {
	if len(p.Coeffs) != len(q.Coeffs) {
		return RingElement{}, fmt.Errorf("add %d vs %d: %w", len(p.Coeffs), len(q.Coeffs), ErrDimensionMismatch)
	}
	r := NewRingElement(len(p.Coeffs))
	for i := range p.Coeffs {
		s, ok := addInt64(p.Coeffs[i], q.Coeffs[i])
		if !ok {
			return RingElement{}, fmt.Errorf("add coefficient %d: %w", i, ErrOverflow)
		}
		r.Coeffs[i] = s
	}
	return r, nil
}

// Neg returns -p.
func (p RingElement) Neg() RingElement {
	r := NewRingElement(len(p.Coeffs))
	for i, c := range p.Coeffs {
		r.Coeffs[i] = -c
	}
	return r
}

// Sub returns p-q, defined as p.Add(q.Neg()).
func (p RingElement) Sub(q RingElement) (RingElement, error) {
	return p.Add(q.Neg())
}

// ScalarMul returns k*p, the element p added to itself k-1 times.
func (p RingElement) ScalarMul(k int64) (RingElement, error) {
	r := NewRingElement(len(p.Coeffs))
	for i, c := range p.Coeffs {
		v, ok := mulInt64(c, k)
		if !ok {
			return RingElement{}, fmt.Errorf("scale coefficient %d by %d: %w", i, k, ErrOverflow)
		}
		r.Coeffs[i] = v
	}
	return r, nil
}

// Mul returns the full product p*q over Z[x] (length 2N-1), without any
// cyclotomic reduction. Use ReduceCyclotomic to fold it back to N terms.
func (p RingElement) Mul(q RingElement) (RingElement, error) {
	n := len(p.Coeffs)
	if n != len(q.Coeffs) {
		return RingElement{}, fmt.Errorf("mul %d vs %d: %w", n, len(q.Coeffs), ErrDimensionMismatch)
	}
	if n == 0 {
		return RingElement{}, nil
	}
	out := NewRingElement(2*n - 1)
	// Worst case |sum| <= n * max|p| * max|q|.
	if bitlenMaxAbsInt64(p.Coeffs)+bitlenMaxAbsInt64(q.Coeffs)+bits.Len(uint(n)) < 63 {
		for i, a := range p.Coeffs {
			if a == 0 {
				continue
			}
			for j, b := range q.Coeffs {
				out.Coeffs[i+j] += a * b
			}
		}
		return out, nil
	}
	acc := make([]*big.Int, 2*n-1)
	for i := range acc {
		acc[i] = new(big.Int)
	}
	tmp := new(big.Int)
	for i, a := range p.Coeffs {
		if a == 0 {
			continue
		}
		ai := big.NewInt(a)
		for j, b := range q.Coeffs {
			tmp.Mul(ai, big.NewInt(b))
			acc[i+j].Add(acc[i+j], tmp)
		}
	}
	for i, v := range acc {
		if !v.IsInt64() {
			return RingElement{}, fmt.Errorf("mul coefficient %d: %w", i, ErrOverflow)
		}
		out.Coeffs[i] = v.Int64()
	}
	return out, nil
}

// ReduceCyclotomic folds raw modulo x^n+1: every exponent e >= n is moved to
// e mod n with sign (-1)^(e/n), since x^n = -1.
func ReduceCyclotomic(raw RingElement, n int) (RingElement, error) {
	if n <= 0 {
		return RingElement{}, fmt.Errorf("reduce to dimension %d: %w", n, ErrDimensionMismatch)
	}
	out := NewRingElement(n)
	for e, c := range raw.Coeffs {
		if c == 0 {
			continue
		}
		idx := e % n
		var (
			v  int64
			ok bool
		)
		if (e/n)&1 == 1 {
			v, ok = subInt64(out.Coeffs[idx], c)
		} else {
			v, ok = addInt64(out.Coeffs[idx], c)
		}
		if !ok {
			return RingElement{}, fmt.Errorf("reduce exponent %d: %w", e, ErrOverflow)
		}
		out.Coeffs[idx] = v
	}
	return out, nil
}

// MulReduce is Mul followed by ReduceCyclotomic to the operands' dimension.
func (p RingElement) MulReduce(q RingElement) (RingElement, error) {
	raw, err := p.Mul(q)
	if err != nil {
		return RingElement{}, err
	}
	return ReduceCyclotomic(raw, len(p.Coeffs))
}

// ModQ returns p with every coefficient mapped into [0,q).
func (p RingElement) ModQ(q uint64) RingElement {
	r := NewRingElement(len(p.Coeffs))
	qi := int64(q)
	for i, c := range p.Coeffs {
		v := c % qi
		if v < 0 {
			v += qi
		}
		r.Coeffs[i] = v
	}
	return r
}

func addInt64(a, b int64) (int64, bool) {
	s := a + b
	if (a >= 0) == (b >= 0) && (s >= 0) != (a >= 0) {
		return 0, false
	}
	return s, true
}

func subInt64(a, b int64) (int64, bool) {
	d := a - b
	if (a >= 0) != (b >= 0) && (d >= 0) != (a >= 0) {
		return 0, false
	}
	return d, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a || (a == -1 && b == minInt64) || (b == -1 && a == minInt64) {
		return 0, false
	}
	return r, true
}

const minInt64 = -1 << 63
