package keys

import (
	"encoding/base64"
	"fmt"
	"strings"

	"falcon-aggregate/ntru"
)

// SeedBytes is the length of a keygen seed.
const SeedBytes = 32

// EncodeSalt returns the base64 form of a signature salt.
func EncodeSalt(salt []byte) string {
	return base64.StdEncoding.EncodeToString(salt)
}

// DecodeSalt parses a base64 salt of exactly ntru.SaltBytes bytes.
func DecodeSalt(s string) ([]byte, error) {
	return decodeFixed(s, ntru.SaltBytes, "salt")
}

// EncodeSeed returns the base64 form of a keygen seed.
func EncodeSeed(seed []byte) string {
	return base64.StdEncoding.EncodeToString(seed)
}

// DecodeSeed parses a base64 keygen seed of exactly SeedBytes bytes.
func DecodeSeed(s string) ([]byte, error) {
	return decodeFixed(s, SeedBytes, "seed")
}

func decodeFixed(s string, n int, what string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	if len(b) != n {
		return nil, fmt.Errorf("%s has %d bytes, want %d", what, len(b), n)
	}
	return b, nil
}
