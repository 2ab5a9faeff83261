package relation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Build computes the relation for vocab offline. The solver never calls it;
// it backs the precompute command and tests.
// vocab is normalized, sorted and de-duplicated first.
func Build(ctx context.Context, vocab []string) (*Table, error) {
	sorted, err := words.SortedSet(vocab)
	if err != nil {
		return nil, err
	}
	n := len(sorted)
	codes := make([]feedback.Code, n*n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for row := 0; row < n; row++ {
		row := row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := codes[row*n : (row+1)*n]
			guess := sorted[row]
			for col, secret := range sorted {
				out[col] = feedback.Encode(feedback.Score(guess, secret))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return New(sorted, codes)
}
