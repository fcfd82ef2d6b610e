package extract

import (
	"context"
	"runtime"
	"sync"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// MapChunks runs fn over independent chunks on a bounded worker pool and
// returns per-chunk results indexed by input position. Pattern matching
// over distinct chunks shares no mutable state, so workers never
// coordinate; the indexed result slice re-imposes document order on the
// combine step regardless of completion order.
func MapChunks[T any](ctx context.Context, chunks []domain.Chunk, workers int, fn func(context.Context, *domain.Chunk) []T) [][]T {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(chunks) {
		workers = len(chunks)
	}

	results := make([][]T, len(chunks))
	if len(chunks) == 0 {
		return results
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range chunks {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = fn(ctx, &chunks[i])
		}(i)
	}
	wg.Wait()
	return results
}
