package aggregate

import (
	"context"
	"fmt"
	"runtime"

	"falcon-aggregate/ntru/keys"

	"golang.org/x/sync/errgroup"
)

// Item is one aggregate to verify.
type Item struct {
	Msg   []byte
	Sig   *keys.Signature
	Count int
}

// VerifyBatch verifies independent aggregates under one public key in
// parallel. results[i] belongs to items[i]. The first structural error
// cancels the remaining work and is returned.
func (v *Verifier) VerifyBatch(ctx context.Context, items []Item, pk *keys.PublicKey) ([]bool, error) {
	results := make([]bool, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := v.Verify(items[i].Msg, items[i].Sig, pk, items[i].Count)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			results[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
