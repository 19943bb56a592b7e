package aggregate

import (
	"fmt"
	"math/bits"
	"time"

	"falcon-aggregate/measure"
	"falcon-aggregate/ntru"
	"falcon-aggregate/ntru/keys"
	"falcon-aggregate/prof"
)

// BoundPolicy maps the single-signature base limit and the number of
// aggregated signatures to the squared-norm limit for the aggregate.
type BoundPolicy func(base uint64, count int) (uint64, error)

// QuadraticBound is base * count^2.
func QuadraticBound(base uint64, count int) (uint64, error) {
	if count < 1 {
		return 0, ErrInvalidCount
	}
	k := uint64(count)
	hi, kk := bits.Mul64(k, k)
	if hi != 0 {
		return 0, fmt.Errorf("limit for count %d: %w", count, ntru.ErrOverflow)
	}
	hi, lim := bits.Mul64(base, kk)
	if hi != 0 {
		return 0, fmt.Errorf("limit for count %d: %w", count, ntru.ErrOverflow)
	}
	return lim, nil
}

// LinearBound is base * count. It is tighter than QuadraticBound when the
// aggregated s2 behave like independent samples.
func LinearBound(base uint64, count int) (uint64, error) {
	if count < 1 {
		return 0, ErrInvalidCount
	}
	hi, lim := bits.Mul64(base, uint64(count))
	if hi != 0 {
		return 0, fmt.Errorf("limit for count %d: %w", count, ntru.ErrOverflow)
	}
	return lim, nil
}

// NormLimit is the policy a Verifier applies when Policy is nil. It is
// QuadraticBound.
func NormLimit(base uint64, count int) (uint64, error) {
	return QuadraticBound(base, count)
}

// Report describes one aggregate verification.
type Report struct {
	Count    int    `json:"count"`
	NormS1   uint64 `json:"norm_s1"`
	NormS2   uint64 `json:"norm_s2"`
	Total    uint64 `json:"total"`
	Limit    uint64 `json:"limit"`
	Accepted bool   `json:"accepted"`
}

// Verifier checks aggregates against one parameter set. The zero BaseLimit
// means Params.Beta2 and a nil Policy means NormLimit.
type Verifier struct {
	Params    ntru.Params
	BaseLimit uint64
	Policy    BoundPolicy
}

// NewVerifier returns a verifier with the default limit and policy.
func NewVerifier(par ntru.Params) *Verifier {
	return &Verifier{Params: par}
}

func (v *Verifier) limit(count int) (uint64, error) {
	base := v.BaseLimit
	if base == 0 {
		base = v.Params.Beta2
	}
	policy := v.Policy
	if policy == nil {
		policy = NormLimit
	}
	return policy(base, count)
}

// Verify reports whether agg is an acceptable aggregate of count signatures
// on msg under pk. A norm at or above the limit yields (false, nil); errors
// are reserved for malformed input.
func (v *Verifier) Verify(msg []byte, agg *keys.Signature, pk *keys.PublicKey, count int) (bool, error) {
	rep, err := v.Inspect(msg, agg, pk, count)
	if err != nil {
		return false, err
	}
	return rep.Accepted, nil
}

// Inspect runs the verification and returns every intermediate quantity.
func (v *Verifier) Inspect(msg []byte, agg *keys.Signature, pk *keys.PublicKey, count int) (Report, error) {
	defer prof.Track(time.Now(), "aggregate/verify")
	par := v.Params
	if err := par.Validate(); err != nil {
		return Report{}, err
	}
	if count < 1 {
		return Report{}, ErrInvalidCount
	}
	if agg == nil || agg.Decoded == nil {
		return Report{}, ErrMissingDecodedComponent
	}
	if pk == nil {
		return Report{}, ErrNilPublicKey
	}
	if err := pk.Check(par); err != nil {
		return Report{}, err
	}
	s2 := *agg.Decoded
	if s2.Len() != par.N {
		return Report{}, fmt.Errorf("aggregate has %d coefficients, want %d: %w", s2.Len(), par.N, ntru.ErrDimensionMismatch)
	}

	c := ntru.HashSaltMessage(agg.Salt, msg, par)
	cAgg, err := c.ScalarMul(int64(count))
	if err != nil {
		return Report{}, err
	}
	raw, err := s2.Mul(pk.H)
	if err != nil {
		return Report{}, err
	}
	prod, err := ntru.ReduceCyclotomic(raw, par.N)
	if err != nil {
		return Report{}, err
	}
	s1, err := cAgg.Sub(prod)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Count: count}
	if rep.NormS1, err = ntru.NormSquaredModQ(s1, par.Q); err != nil {
		return Report{}, err
	}
	if rep.NormS2, err = ntru.NormSquaredModQ(s2, par.Q); err != nil {
		return Report{}, err
	}
	var carry uint64
	rep.Total, carry = bits.Add64(rep.NormS1, rep.NormS2, 0)
	if carry != 0 {
		return Report{}, fmt.Errorf("total norm: %w", ntru.ErrOverflow)
	}
	if rep.Limit, err = v.limit(count); err != nil {
		return Report{}, err
	}
	rep.Accepted = rep.Total < rep.Limit

	measure.Global.Max("aggregate/verify/max_total_norm", int64(rep.Total))
	ntru.Debugf("[aggregate] count=%d norm=%d limit=%d accepted=%v\n", count, rep.Total, rep.Limit, rep.Accepted)
	return rep, nil
}

// defaultVerifier derives a verifier from the key's dimension and modulus.
func defaultVerifier(pk *keys.PublicKey) (*Verifier, error) {
	if pk == nil {
		return nil, ErrNilPublicKey
	}
	par, err := ntru.ParamsFor(pk.N, pk.Q)
	if err != nil {
		return nil, err
	}
	return NewVerifier(par), nil
}

// VerifyAggregate verifies agg as count signatures on msg under pk with the
// default limit beta^2 * count^2, beta^2 being the preset bound for pk.
func VerifyAggregate(msg []byte, agg *keys.Signature, pk *keys.PublicKey, count int) (bool, error) {
	v, err := defaultVerifier(pk)
	if err != nil {
		return false, err
	}
	return v.Verify(msg, agg, pk, count)
}

// Inspect is VerifyAggregate returning the full Report.
func Inspect(msg []byte, agg *keys.Signature, pk *keys.PublicKey, count int) (Report, error) {
	v, err := defaultVerifier(pk)
	if err != nil {
		return Report{}, err
	}
	return v.Inspect(msg, agg, pk, count)
}
