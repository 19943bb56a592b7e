package ntru

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestHashToPointDeterministic(t *testing.T) {
	par := Falcon512()
	salt := bytes.Repeat([]byte{7}, SaltBytes)
	a := HashSaltMessage(salt, []byte("test"), par)
	b := HashSaltMessage(salt, []byte("test"), par)
	if !a.Equal(b) {
		t.Fatalf("hash not deterministic")
	}
	if a.Len() != par.N {
		t.Fatalf("len=%d want %d", a.Len(), par.N)
	}
	for i, c := range a.Coeffs {
		if c < 0 || uint64(c) >= par.Q {
			t.Fatalf("coeff %d=%d out of [0,q)", i, c)
		}
	}
	if !a.Equal(HashToPoint(append(append([]byte(nil), salt...), "test"...), par)) {
		t.Fatalf("HashSaltMessage differs from hashing the concatenation")
	}
}

func TestHashToPointSeparatesInputs(t *testing.T) {
	par := Falcon512()
	salt := make([]byte, SaltBytes)
	seen := make(map[string]string)
	record := func(label string, p RingElement) {
		var key strings.Builder
		for _, c := range p.Coeffs {
			fmt.Fprintf(&key, "%d,", c)
		}
		if prev, ok := seen[key.String()]; ok {
			t.Fatalf("%s and %s hashed to the same point", prev, label)
		}
		seen[key.String()] = label
	}
	for i := 0; i < 256; i++ {
		msg := fmt.Sprintf("message-%d", i)
		record(msg, HashSaltMessage(salt, []byte(msg), par))
	}
	record("tesT", HashSaltMessage(salt, []byte("tesT"), par))
	record("test", HashSaltMessage(salt, []byte("test"), par))
	salt[0] = 1
	record("test/salt1", HashSaltMessage(salt, []byte("test"), par))
	if len(seen) != 259 {
		t.Fatalf("got %d distinct points, want 259", len(seen))
	}
}

func TestHashToPointSpread(t *testing.T) {
	par := Falcon512()
	p := HashToPoint([]byte("spread"), par)
	var lo, hi int
	for _, c := range p.Coeffs {
		if uint64(c) < par.Q/2 {
			lo++
		} else {
			hi++
		}
	}
	if lo < 180 || hi < 180 {
		t.Fatalf("skewed output lo=%d hi=%d", lo, hi)
	}
}
