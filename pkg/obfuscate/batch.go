package obfuscate

import (
	"context"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Batch obfuscates every text concurrently. Item i draws from its own
// stream seeded with (seed, i), so a fixed seed reproduces the whole batch
// regardless of scheduling. A zero seed picks one at random.
func Batch(ctx context.Context, cfg Config, seed uint64, texts []string) ([]Result, error) {
	return BatchFrom(ctx, cfg, seed, 0, texts)
}

// BatchFrom is Batch with item i drawing from stream start+i. Splitting a
// long input into consecutive chunks gives the same results as one Batch.
func BatchFrom(ctx context.Context, cfg Config, seed, start uint64, texts []string) ([]Result, error) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	// Fail fast on a bad config before starting any workers.
	if _, err := New(cfg, NewRand(seed, 0), nil); err != nil {
		return nil, err
	}

	results := make([]Result, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := New(cfg, NewRand(seed, start+uint64(i)), nil)
			if err != nil {
				return err
			}
			results[i] = o.Obfuscate(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Variants produces n independent obfuscations of the same text.
func Variants(ctx context.Context, cfg Config, seed uint64, text string, n int) ([]Result, error) {
	texts := make([]string, n)
	for i := range texts {
		texts[i] = text
	}
	return Batch(ctx, cfg, seed, texts)
}
