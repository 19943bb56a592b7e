package keys

import (
	"os"
	"path/filepath"

	"falcon-aggregate/ntru"
)

// PrivateKey holds the trapdoor basis [[g,-f],[G,-F]] and the matching h.
type PrivateKey struct {
	Version string  `json:"version"`
	N       int     `json:"N"`
	Q       uint64  `json:"Q"`
	Beta2   uint64  `json:"beta2"`
	F       []int64 `json:"F"`
	G       []int64 `json:"G"`
	Fsmall  []int64 `json:"f"`
	Gsmall  []int64 `json:"g"`
	H       []int64 `json:"h"`
}

// Params returns the parameter set recorded with the key.
func (sk *PrivateKey) Params() (ntru.Params, error) {
	return ntru.NewParams(sk.N, sk.Q, sk.Beta2)
}

// Public derives the public half.
func (sk *PrivateKey) Public() *PublicKey {
	return &PublicKey{Version: PublicVersion, N: sk.N, Q: sk.Q, H: ntru.RingElementFrom(sk.H)}
}

// SavePrivate writes the private key to dir/private.json with owner-only
// permissions.
func SavePrivate(dir string, sk *PrivateKey) error {
	if sk == nil {
		return nil
	}
	path := filepath.Join(dir, "private.json")
	if err := writeJSON(path, sk); err != nil {
		return err
	}
	return os.Chmod(path, 0o600)
}

// LoadPrivate reads the private key from dir/private.json.
func LoadPrivate(dir string) (*PrivateKey, error) {
	var sk PrivateKey
	if err := readJSON(filepath.Join(dir, "private.json"), &sk); err != nil {
		return nil, err
	}
	return &sk, nil
}
