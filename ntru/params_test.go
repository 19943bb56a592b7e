package ntru

import (
	"errors"
	"testing"
)

func TestNewParams(t *testing.T) {
	p, err := NewParams(512, 12289, Falcon512Beta)
	if err != nil {
		t.Fatal(err)
	}
	if p != Falcon512() {
		t.Fatalf("got %+v", p)
	}
	if p.HalfQ() != 6144 {
		t.Fatalf("HalfQ=%d", p.HalfQ())
	}
	bad := []struct {
		n    int
		q    uint64
		beta uint64
	}{
		{500, 12289, 1},  // N not a power of two
		{512, 12288, 1},  // composite
		{512, 65537, 1},  // above 16 bits
		{4096, 12289, 1}, // no 2N-th root of unity
		{512, 12289, 0},  // empty bound
		{0, 12289, 1},    // empty ring
	}
	for _, tc := range bad {
		if _, err := NewParams(tc.n, tc.q, tc.beta); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("NewParams(%d,%d,%d): got %v", tc.n, tc.q, tc.beta, err)
		}
		if err := (Params{N: tc.n, Q: tc.q, Beta2: tc.beta}).Validate(); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("Validate(%d,%d,%d): got %v", tc.n, tc.q, tc.beta, err)
		}
	}
}

func TestPresetByName(t *testing.T) {
	for _, name := range []string{"falcon-512", "Falcon512", "512", ""} {
		p, err := PresetByName(name)
		if err != nil || p != Falcon512() {
			t.Fatalf("%q: got %+v, %v", name, p, err)
		}
	}
	p, err := PresetByName("falcon-1024")
	if err != nil || p != Falcon1024() {
		t.Fatalf("falcon-1024: got %+v, %v", p, err)
	}
	if _, err := NewParams(p.N, p.Q, p.Beta2); err != nil {
		t.Fatalf("Falcon1024 preset invalid: %v", err)
	}
	if _, err := PresetByName("falcon-2048"); err == nil {
		t.Fatalf("unknown preset accepted")
	}
}

func TestParamsFor(t *testing.T) {
	if p, err := ParamsFor(1024, 12289); err != nil || p != Falcon1024() {
		t.Fatalf("got %+v, %v", p, err)
	}
	p, err := ParamsFor(64, 12289)
	if err != nil || p.Beta2 != Falcon512Beta || p.N != 64 {
		t.Fatalf("got %+v, %v", p, err)
	}
}
