package keys

import (
	"os"
	"path/filepath"

	"falcon-aggregate/measure"
	"falcon-aggregate/ntru"
)

// Signature is a salted signature. Compressed carries the encoded s2 of a
// single signature; Decoded carries s2 as a ring element once decoded, and is
// the only form an aggregate has.
type Signature struct {
	Version    string            `json:"version"`
	Salt       []byte            `json:"salt"`
	Compressed []byte            `json:"compressed,omitempty"`
	Decoded    *ntru.RingElement `json:"decoded,omitempty"`
}

// NewSignature returns a signature with the current version tag.
func NewSignature(salt, compressed []byte) *Signature {
	return &Signature{Version: SigVersion, Salt: salt, Compressed: compressed}
}

// Save writes sig to dir/name.json.
func Save(dir, name string, sig *Signature) error {
	if sig == nil {
		return nil
	}
	path := filepath.Join(dir, name+".json")
	if err := writeJSON(path, sig); err != nil {
		return err
	}
	if measure.Enabled {
		if info, err := os.Stat(path); err == nil {
			measure.Global.Add("keys/signature/json_file", info.Size())
		}
	}
	return nil
}

// Load reads dir/name.json.
func Load(dir, name string) (*Signature, error) {
	var sig Signature
	if err := readJSON(filepath.Join(dir, name+".json"), &sig); err != nil {
		return nil, err
	}
	return &sig, nil
}
