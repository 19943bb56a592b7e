package ntru

import (
	"fmt"
	"strings"
)

// Falcon-1024 reference values.
const (
	Falcon1024N    = 1024
	Falcon1024Beta = 70265242
)

// Falcon512 returns the N=512, q=12289 parameter set.
func Falcon512() Params {
	return Params{N: Falcon512N, Q: Falcon512Q, Beta2: Falcon512Beta}
}

// Falcon1024 returns the N=1024, q=12289 parameter set.
func Falcon1024() Params {
	return Params{N: Falcon1024N, Q: Falcon512Q, Beta2: Falcon1024Beta}
}

// PresetByName resolves "falcon-512" or "falcon-1024" (case-insensitive,
// "falcon512" and "512" also accepted).
func PresetByName(name string) (Params, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "") {
	case "", "falcon512", "512":
		return Falcon512(), nil
	case "falcon1024", "1024":
		return Falcon1024(), nil
	}
	return Params{}, fmt.Errorf("unknown parameter preset %q", name)
}

// ParamsFor returns the preset matching (n, q), or a parameter set with the
// Falcon-512 bound when no preset matches.
func ParamsFor(n int, q uint64) (Params, error) {
	for _, p := range []Params{Falcon512(), Falcon1024()} {
		if p.N == n && p.Q == q {
			return p, nil
		}
	}
	return NewParams(n, q, Falcon512Beta)
}
