// Package io reads and writes parameter files for the command-line tools.
package io

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"falcon-aggregate/ntru"
)

// SystemParams is the on-disk form of ntru.Params.
type SystemParams struct {
	N     int    `json:"N"`
	Q     uint64 `json:"Q"`
	Beta2 uint64 `json:"beta2"`
}

// LoadParams reads a parameter file. Upper- and lowercase keys are both
// accepted, Q may be a number or a hex/decimal string, and a missing beta2
// falls back to the Falcon-512 bound.
func LoadParams(path string) (ntru.Params, error) {
	var rawAny map[string]any
	data, err := os.ReadFile(path)
	if err != nil {
		return ntru.Params{}, err
	}
	if err := json.Unmarshal(data, &rawAny); err != nil {
		return ntru.Params{}, fmt.Errorf("%s: %w", path, err)
	}
	var p SystemParams
	if v, ok := lookup(rawAny, "N", "n"); ok {
		if f, ok := v.(float64); ok {
			p.N = int(f)
		}
	}
	if v, ok := lookup(rawAny, "Q", "q"); ok {
		switch t := v.(type) {
		case float64:
			p.Q = uint64(t)
		case string:
			q, err := parseQString(t)
			if err != nil {
				return ntru.Params{}, err
			}
			p.Q = q
		}
	}
	if v, ok := lookup(rawAny, "beta2", "Beta2"); ok {
		if f, ok := v.(float64); ok {
			p.Beta2 = uint64(f)
		}
	}
	if p.N == 0 || p.Q == 0 {
		return ntru.Params{}, fmt.Errorf("invalid or missing N/Q in %s", path)
	}
	if p.Beta2 == 0 {
		p.Beta2 = ntru.Falcon512Beta
	}
	return ntru.NewParams(p.N, p.Q, p.Beta2)
}

// SaveParams writes par as indented JSON.
func SaveParams(path string, par ntru.Params) error {
	data, err := json.MarshalIndent(SystemParams{N: par.N, Q: par.Q, Beta2: par.Beta2}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func lookup(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func parseQString(s string) (uint64, error) {
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		x, err := hex.DecodeString(s[2:])
		if err != nil || len(x) > 8 {
			return 0, fmt.Errorf("invalid Q string: %q", s)
		}
		var q uint64
		for _, b := range x {
			q = (q << 8) | uint64(b)
		}
		return q, nil
	}
	q, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid Q string: %q", s)
	}
	return q, nil
}
