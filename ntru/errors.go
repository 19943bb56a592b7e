package ntru

import "errors"

var (
	// ErrDimensionMismatch is returned when ring operands do not share the same length.
	ErrDimensionMismatch = errors.New("ntru: dimension mismatch")
	// ErrOverflow is returned when an exact integer result leaves its fixed width.
	ErrOverflow = errors.New("ntru: integer overflow")
	// ErrInvalidParams is returned for a parameter set NewParams would reject.
	ErrInvalidParams = errors.New("ntru: invalid parameters")
)
