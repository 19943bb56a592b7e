package aggregate

import (
	"context"
	"errors"
	"testing"

	"falcon-aggregate/ntru"
	"falcon-aggregate/ntru/keys"
)

func TestVerifyBatch(t *testing.T) {
	pk, sk := testKeys(t)
	msg := []byte("batch")
	agg, err := Aggregate(signDecoded(t, sk, msg, fixedSalt(), 3))
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	v := NewVerifier(ntru.Falcon512())
	items := []Item{
		{Msg: msg, Sig: agg, Count: 3},
		{Msg: msg, Sig: agg, Count: 4},
		{Msg: []byte("other"), Sig: agg, Count: 3},
	}
	res, err := v.VerifyBatch(context.Background(), items, pk)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	want := []bool{true, false, false}
	for i := range want {
		if res[i] != want[i] {
			t.Fatalf("item %d: got %v want %v", i, res[i], want[i])
		}
	}
}

func TestVerifyBatchStructuralError(t *testing.T) {
	par := ntru.Falcon512()
	pk := keys.NewPublicKey(ntru.NewRingElement(par.N), par)
	v := NewVerifier(par)
	items := []Item{
		{Msg: []byte("a"), Sig: &keys.Signature{Salt: fixedSalt()}, Count: 1},
	}
	if _, err := v.VerifyBatch(context.Background(), items, pk); !errors.Is(err, ErrMissingDecodedComponent) {
		t.Fatalf("expected ErrMissingDecodedComponent, got %v", err)
	}
}

func TestVerifyBatchCanceled(t *testing.T) {
	par := ntru.Falcon512()
	pk := keys.NewPublicKey(ntru.NewRingElement(par.N), par)
	s2 := ntru.NewRingElement(par.N)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	items := []Item{{Msg: []byte("a"), Sig: &keys.Signature{Salt: fixedSalt(), Decoded: &s2}, Count: 1}}
	if _, err := NewVerifier(par).VerifyBatch(ctx, items, pk); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
