package keys

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"falcon-aggregate/ntru"
)

const (
	PublicVersion  = "falcon-aggregate-public-v1"
	PrivateVersion = "falcon-aggregate-private-v1"
	SigVersion     = "falcon-aggregate-signature-v1"
)

// PublicKey holds h = g/f mod q with coefficients in [0,q).
type PublicKey struct {
	Version string           `json:"version"`
	N       int              `json:"N"`
	Q       uint64           `json:"Q"`
	H       ntru.RingElement `json:"h"`
}

// NewPublicKey wraps h for par.
func NewPublicKey(h ntru.RingElement, par ntru.Params) *PublicKey {
	return &PublicKey{Version: PublicVersion, N: par.N, Q: par.Q, H: h}
}

// Check reports whether the key matches par. A key for another ring is an
// ntru.ErrDimensionMismatch.
func (pk *PublicKey) Check(par ntru.Params) error {
	if pk == nil {
		return fmt.Errorf("nil public key")
	}
	if pk.N != par.N || pk.Q != par.Q {
		return fmt.Errorf("%w: public key (N=%d,Q=%d) does not match params (N=%d,Q=%d)", ntru.ErrDimensionMismatch, pk.N, pk.Q, par.N, par.Q)
	}
	if pk.H.Len() != par.N {
		return fmt.Errorf("%w: h has %d coefficients, want %d", ntru.ErrDimensionMismatch, pk.H.Len(), par.N)
	}
	return nil
}

// SavePublic writes the public key to dir/public.json.
func SavePublic(dir string, pk *PublicKey) error {
	if pk == nil {
		return nil
	}
	return writeJSON(filepath.Join(dir, "public.json"), pk)
}

// LoadPublic reads the public key from dir/public.json.
func LoadPublic(dir string) (*PublicKey, error) {
	var pk PublicKey
	if err := readJSON(filepath.Join(dir, "public.json"), &pk); err != nil {
		return nil, err
	}
	return &pk, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
