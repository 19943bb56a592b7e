package ntru

import (
	"crypto/rand"
	"io"
)

// DefaultMaxSignTrials bounds the resampling loop of a single signature.
const DefaultMaxSignTrials = 128

// SignOpts controls the signer.
type SignOpts struct {
	MaxSignTrials int       // max nearest-plane draws per signature (default 128)
	Rand          io.Reader // entropy for salts and rounding (default crypto/rand)
}

// ApplyDefaults fills unset fields.
func (opts *SignOpts) ApplyDefaults() {
	if opts.MaxSignTrials <= 0 {
		opts.MaxSignTrials = DefaultMaxSignTrials
	}
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
}
