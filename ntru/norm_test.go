package ntru

import (
	"errors"
	"math"
	"testing"
)

func TestNormSquared(t *testing.T) {
	n, err := NormSquared(RingElementFrom([]int64{3, -4, 0}))
	if err != nil || n != 25 {
		t.Fatalf("got %d,%v want 25", n, err)
	}
	n, err = NormSquared(NewRingElement(512))
	if err != nil || n != 0 {
		t.Fatalf("zero element norm %d,%v", n, err)
	}
}

func TestNormSquaredModQCenters(t *testing.T) {
	q := uint64(12289)
	// 12288 = -1, 6144 stays, 6145 = -6144, -12290 = -1
	n, err := NormSquaredModQ(RingElementFrom([]int64{12288, 6144, 6145, -12290}), q)
	if err != nil {
		t.Fatal(err)
	}
	want := uint64(1 + 6144*6144 + 6144*6144 + 1)
	if n != want {
		t.Fatalf("got %d want %d", n, want)
	}
}

func TestNormSquaredOverflow(t *testing.T) {
	if _, err := NormSquared(RingElementFrom([]int64{math.MinInt64})); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow for squared coefficient, got %v", err)
	}
	p := RingElementFrom([]int64{1 << 31, 1 << 31, 1 << 31, 1 << 31})
	if _, err := NormSquared(p); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow for accumulation, got %v", err)
	}
}

func TestCenterModQ(t *testing.T) {
	got := CenterModQ([]int64{0, 6144, 6145, 12288, -1, 24578}, 12289)
	want := []int64{0, 6144, -6144, -1, -1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("coeff %d: got %d want %d", i, got[i], want[i])
		}
	}
	back := DecenterToModQ(got, 12289)
	if back[2] != 6145 || back[3] != 12288 {
		t.Fatalf("decenter %v", back)
	}
}
