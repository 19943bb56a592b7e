package ntru

import (
	"crypto/rand"
	"fmt"
)

// RandomBytes fills b from the system CSPRNG.
func RandomBytes(b []byte) (int, error) {
	n, err := rand.Read(b)
	if err != nil {
		return n, fmt.Errorf("system randomness: %w", err)
	}
	return n, nil
}
