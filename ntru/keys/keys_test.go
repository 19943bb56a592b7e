package keys

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"falcon-aggregate/ntru"
)

func TestPublicRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "keys")
	par := ntru.Falcon512()
	h := ntru.NewRingElement(par.N)
	h.Coeffs[0], h.Coeffs[511] = 7, 12288
	if err := SavePublic(dir, NewPublicKey(h, par)); err != nil {
		t.Fatalf("save: %v", err)
	}
	pk, err := LoadPublic(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := pk.Check(par); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !pk.H.Equal(h) || pk.Version != PublicVersion {
		t.Fatalf("public key changed across save/load")
	}
}

func TestPublicCheckRejectsMismatch(t *testing.T) {
	par := ntru.Falcon512()
	pk := NewPublicKey(ntru.NewRingElement(8), par)
	if err := pk.Check(par); !errors.Is(err, ntru.ErrDimensionMismatch) {
		t.Fatalf("short h: got %v", err)
	}
	wide := NewPublicKey(ntru.NewRingElement(1024), ntru.Falcon1024())
	if err := wide.Check(par); !errors.Is(err, ntru.ErrDimensionMismatch) {
		t.Fatalf("Falcon-1024 key against Falcon-512 params: got %v", err)
	}
	var nilKey *PublicKey
	if err := nilKey.Check(par); err == nil {
		t.Fatalf("expected error for nil key")
	}
}

func TestPrivateFileMode(t *testing.T) {
	dir := t.TempDir()
	sk := &PrivateKey{Version: PrivateVersion, N: 512, Q: 12289, Beta2: ntru.Falcon512Beta, Fsmall: []int64{1}}
	if err := SavePrivate(dir, sk); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "private.json"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode=%v want 0600", info.Mode().Perm())
	}
	got, err := LoadPrivate(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if par, err := got.Params(); err != nil || par != ntru.Falcon512() {
		t.Fatalf("params=%+v err=%v", par, err)
	}
}

func TestSignatureRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s2 := ntru.RingElementFrom([]int64{1, -2, 3})
	sig := NewSignature(bytes.Repeat([]byte{0xAB}, ntru.SaltBytes), nil)
	sig.Decoded = &s2
	if err := Save(dir, "agg", sig); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(dir, "agg")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got.Salt, sig.Salt) || got.Decoded == nil || !got.Decoded.Equal(s2) {
		t.Fatalf("signature changed across save/load: %+v", got)
	}
	if len(got.Compressed) != 0 {
		t.Fatalf("compressed form should stay empty")
	}
}

func TestSeedEncoding(t *testing.T) {
	seed := bytes.Repeat([]byte{1, 2, 3, 4, 5, 6, 7, 8}, 4)
	if got := EncodeSeed(seed); got != "AQIDBAUGBwgBAgMEBQYHCAECAwQFBgcIAQIDBAUGBwg=" {
		t.Fatalf("EncodeSeed=%q", got)
	}
	got, err := DecodeSeed(EncodeSeed(seed) + "\n")
	if err != nil || !bytes.Equal(got, seed) {
		t.Fatalf("seed=%v err=%v", got, err)
	}
	if _, err := DecodeSeed(EncodeSeed(seed[:16])); err == nil {
		t.Fatalf("short seed accepted")
	}
	if _, err := DecodeSeed("not base64!"); err == nil {
		t.Fatalf("malformed seed accepted")
	}
}

func TestSaltEncoding(t *testing.T) {
	salt := bytes.Repeat([]byte{0xC3}, ntru.SaltBytes)
	got, err := DecodeSalt(EncodeSalt(salt))
	if err != nil || !bytes.Equal(got, salt) {
		t.Fatalf("salt=%v err=%v", got, err)
	}
	if _, err := DecodeSalt(EncodeSalt(salt[:39])); err == nil {
		t.Fatalf("39-byte salt accepted")
	}
}
