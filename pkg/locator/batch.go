package locator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/marmos91/chunkmap/pkg/chunk"
)

// FileRef identifies one file to resolve a chunk map for.
type FileRef struct {
	// ID is the file's numeric identity at the metadata service.
	ID uint64

	// Length is the file's total byte size.
	Length uint64
}

// ResolveAll fetches the chunk maps for several files concurrently,
// bounding in-flight fetches at concurrency (unbounded when <= 0).
//
// The result is index-aligned with files. The first failing fetch cancels
// the remaining ones and its error is returned; partial results are
// discarded, matching the all-or-nothing contract of a single fetch.
func ResolveAll(ctx context.Context, loc ChunkLocator, files []FileRef, concurrency int) ([][]chunk.Location, error) {
	group, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		group.SetLimit(concurrency)
	}

	results := make([][]chunk.Location, len(files))
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			locations, err := loc.ResolveChunkMap(ctx, file.ID, file.Length)
			if err != nil {
				return err
			}
			results[i] = locations
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
