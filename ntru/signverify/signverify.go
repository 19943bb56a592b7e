// Package signverify is the single-signature layer: deterministic key
// generation, salted signing and verification of compressed signatures.
package signverify

import (
	"errors"
	"fmt"
	"io"
	"time"

	"falcon-aggregate/measure"
	"falcon-aggregate/ntru"
	"falcon-aggregate/ntru/keys"
	"falcon-aggregate/prof"
)

// ErrSaltLength is returned for salts that are not ntru.SaltBytes long.
var ErrSaltLength = fmt.Errorf("signverify: salt must be %d bytes", ntru.SaltBytes)

// Keygen derives a Falcon-512 key pair from a 32-byte seed.
func Keygen(seed [32]byte) (*keys.PublicKey, *keys.PrivateKey, error) {
	return KeygenWithParams(seed[:], ntru.Falcon512(), ntru.KeygenOpts{})
}

// KeygenWithParams derives a key pair for par. The same seed always yields
// the same keys.
func KeygenWithParams(seed []byte, par ntru.Params, kg ntru.KeygenOpts) (*keys.PublicKey, *keys.PrivateKey, error) {
	f, g, F, G, err := ntru.KeygenFromSeed(seed, par, kg)
	if err != nil {
		return nil, nil, err
	}
	h, err := ntru.PublicKeyH(ntru.RingElementFrom(f), ntru.RingElementFrom(g), par)
	if err != nil {
		return nil, nil, err
	}
	sk := &keys.PrivateKey{
		Version: keys.PrivateVersion,
		N:       par.N,
		Q:       par.Q,
		Beta2:   par.Beta2,
		F:       F,
		G:       G,
		Fsmall:  f,
		Gsmall:  g,
		H:       h.Coeffs,
	}
	return sk.Public(), sk, nil
}

// Signer signs with a fixed private key. It is safe for concurrent use.
type Signer struct {
	par     ntru.Params
	sampler *ntru.Sampler
}

// NewSigner validates sk and precomputes its sampling data.
func NewSigner(sk *keys.PrivateKey) (*Signer, error) {
	if sk == nil {
		return nil, errors.New("signverify: nil private key")
	}
	par, err := sk.Params()
	if err != nil {
		return nil, err
	}
	s, err := ntru.NewSampler(sk.Fsmall, sk.Gsmall, sk.F, sk.G, par)
	if err != nil {
		return nil, err
	}
	return &Signer{par: par, sampler: s}, nil
}

// Params returns the signer's parameter set.
func (s *Signer) Params() ntru.Params { return s.par }

// Sign signs msg under a fresh random salt.
func (s *Signer) Sign(msg []byte, opts ntru.SignOpts) (*keys.Signature, error) {
	opts.ApplyDefaults()
	salt := make([]byte, ntru.SaltBytes)
	if _, err := io.ReadFull(opts.Rand, salt); err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}
	return s.SignWithSalt(msg, salt, opts)
}

// SignWithSalt signs msg under a caller-chosen salt. Signatures meant to be
// aggregated must share one salt.
func (s *Signer) SignWithSalt(msg, salt []byte, opts ntru.SignOpts) (*keys.Signature, error) {
	defer prof.Track(time.Now(), "signverify/sign")
	if len(salt) != ntru.SaltBytes {
		return nil, ErrSaltLength
	}
	opts.ApplyDefaults()
	c := ntru.HashSaltMessage(salt, msg, s.par)
	size := CompressedLen(s.par.N)
	var comp []byte
	_, _, err := s.sampler.SampleShort(c.Coeffs, opts, func(s2 []int64) bool {
		var cerr error
		comp, cerr = Compress(s2, size)
		return cerr == nil
	})
	if err != nil {
		return nil, err
	}
	measure.Global.Add("signverify/signature/compressed", int64(len(comp)))
	measure.Global.Add("signverify/signature/salt", int64(len(salt)))
	return keys.NewSignature(append([]byte(nil), salt...), comp), nil
}

// Sign signs msg with sk under a fresh salt.
func Sign(msg []byte, sk *keys.PrivateKey, opts ntru.SignOpts) (*keys.Signature, error) {
	s, err := NewSigner(sk)
	if err != nil {
		return nil, err
	}
	return s.Sign(msg, opts)
}

// SignWithSalt signs msg with sk under salt.
func SignWithSalt(msg []byte, sk *keys.PrivateKey, salt []byte, opts ntru.SignOpts) (*keys.Signature, error) {
	s, err := NewSigner(sk)
	if err != nil {
		return nil, err
	}
	return s.SignWithSalt(msg, salt, opts)
}

// Decode fills sig.Decoded from sig.Compressed.
func Decode(sig *keys.Signature, par ntru.Params) error {
	if sig == nil {
		return errors.New("signverify: nil signature")
	}
	if len(sig.Compressed) != CompressedLen(par.N) {
		return fmt.Errorf("%w: %d bytes, want %d", ErrEncoding, len(sig.Compressed), CompressedLen(par.N))
	}
	s2, err := Decompress(sig.Compressed, par.N)
	if err != nil {
		return err
	}
	d := ntru.RingElementFrom(s2)
	sig.Decoded = &d
	return nil
}

// Verify checks a single signature under pk with the norm bound of the
// matching preset.
func Verify(msg []byte, sig *keys.Signature, pk *keys.PublicKey) bool {
	if pk == nil {
		return false
	}
	par, err := ntru.ParamsFor(pk.N, pk.Q)
	if err != nil {
		return false
	}
	return VerifyWithParams(msg, sig, pk, par)
}

// VerifyWithParams accepts iff s1 = c - s2*h mod q satisfies
// ||s1||^2 + ||s2||^2 < par.Beta2 with centered coefficients. The compressed
// form is authoritative; Decoded is used only when no compressed bytes exist.
func VerifyWithParams(msg []byte, sig *keys.Signature, pk *keys.PublicKey, par ntru.Params) bool {
	if sig == nil || len(sig.Salt) != ntru.SaltBytes || pk.Check(par) != nil {
		return false
	}
	var s2 ntru.RingElement
	switch {
	case len(sig.Compressed) > 0:
		if len(sig.Compressed) != CompressedLen(par.N) {
			return false
		}
		coeffs, err := Decompress(sig.Compressed, par.N)
		if err != nil {
			ntru.Debugf("[verify] %v\n", err)
			return false
		}
		s2 = ntru.RingElementFrom(coeffs)
	case sig.Decoded != nil:
		s2 = *sig.Decoded
	default:
		return false
	}
	if s2.Len() != par.N {
		return false
	}
	c := ntru.HashSaltMessage(sig.Salt, msg, par)
	prod, err := ntru.ConvolveModQ(s2.ModQ(par.Q), pk.H, par)
	if err != nil {
		ntru.Debugf("[verify] convolve: %v\n", err)
		return false
	}
	s1, err := c.Sub(prod)
	if err != nil {
		return false
	}
	total, err := ntru.PairNormSquared(s1, s2, par.Q)
	if err != nil {
		return false
	}
	ntru.Debugf("[verify] norm=%d bound=%d\n", total, par.Beta2)
	return total < par.Beta2
}
