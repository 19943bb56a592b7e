package aggregate

import (
	"bytes"
	"fmt"
	"time"

	"falcon-aggregate/measure"
	"falcon-aggregate/ntru"
	"falcon-aggregate/ntru/keys"
	"falcon-aggregate/prof"
)

// Aggregate sums the decoded s2 components of sigs from left to right. All
// inputs must carry a decoded component and the same salt. The result keeps
// that salt, has no compressed form, and shares no memory with the inputs.
func Aggregate(sigs []*keys.Signature) (*keys.Signature, error) {
	defer prof.Track(time.Now(), "aggregate/combine")
	if len(sigs) == 0 {
		return nil, ErrNoSignatures
	}
	for i, s := range sigs {
		if s == nil || s.Decoded == nil {
			return nil, fmt.Errorf("signature %d: %w", i, ErrMissingDecodedComponent)
		}
	}
	salt := sigs[0].Salt
	for i, s := range sigs[1:] {
		if !bytes.Equal(s.Salt, salt) {
			return nil, fmt.Errorf("signature %d: %w", i+1, ErrSaltMismatch)
		}
	}
	acc := sigs[0].Decoded.Clone()
	for i, s := range sigs[1:] {
		sum, err := acc.Add(*s.Decoded)
		if err != nil {
			return nil, fmt.Errorf("signature %d: %w", i+1, err)
		}
		acc = sum
	}
	measure.Global.Add("aggregate/combined_signatures", int64(len(sigs)))
	ntru.Debugf("[aggregate] combined %d signatures\n", len(sigs))
	return &keys.Signature{
		Version: keys.SigVersion,
		Salt:    append([]byte(nil), salt...),
		Decoded: &acc,
	}, nil
}
