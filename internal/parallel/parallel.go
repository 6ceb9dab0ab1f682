// Package parallel runs data-parallel loops over row ranges.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of rows handled by one task.
const DefaultChunkSize = 4096

// NumChunks returns the number of chunks needed to cover n rows.
func NumChunks(n, chunkSize int) int {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return (n + chunkSize - 1) / chunkSize
}

// Chunks splits [0,n) into consecutive chunks of chunkSize rows and calls fn
// for each chunk with at most workers concurrent calls. The chunk layout only
// depends on n and chunkSize.
//
// The first error cancels the context passed to the remaining calls.
func Chunks(ctx context.Context, n, chunkSize, workers int, fn func(ctx context.Context, chunk, lo, hi int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for c := range NumChunks(n, chunkSize) {
		lo := c * chunkSize
		hi := min(lo+chunkSize, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, c, lo, hi)
		})
	}
	return g.Wait()
}
