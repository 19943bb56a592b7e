package aggregate

import "errors"

var (
	// ErrMissingDecodedComponent: a signature has no decoded s2.
	ErrMissingDecodedComponent = errors.New("aggregate: signature has no decoded component")
	// ErrSaltMismatch: the inputs do not share one salt.
	ErrSaltMismatch = errors.New("aggregate: signatures use different salts")
	// ErrNoSignatures: nothing to aggregate.
	ErrNoSignatures = errors.New("aggregate: no signatures")
	// ErrInvalidCount: the claimed signature count is below one.
	ErrInvalidCount = errors.New("aggregate: count must be at least 1")
	// ErrNilPublicKey: verification without a key.
	ErrNilPublicKey = errors.New("aggregate: nil public key")
)
