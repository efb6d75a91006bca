// Package locator fetches chunk maps from the storage cluster's metadata
// service.
//
// The ChunkLocator interface separates "how a chunk map is fetched" from
// "what a chunk map is" (pkg/chunk): the range resolver and its callers only
// ever see []chunk.Location, so transports can be swapped or stubbed (see
// the testing subpackage) without touching resolution logic.
package locator

import (
	"context"

	"github.com/marmos91/chunkmap/pkg/chunk"
)

// ChunkLocator resolves the full chunk map for one file.
//
// Implementations must be safe for concurrent use: callers may issue
// ResolveChunkMap calls for the same or different files in parallel. Each
// call is an independent fetch; no caching or deduplication happens at this
// layer.
type ChunkLocator interface {
	// ResolveChunkMap returns the chunk map for the file identified by
	// fileID, in the order the metadata service emitted it (expected, but
	// not guaranteed, to be ascending by offset; the locator does not
	// re-sort). fileLength is the file's total byte size, recorded onto
	// every returned Location.
	//
	// The context bounds the fetch at the transport level; cancelling it
	// aborts the request. On any failure the whole call fails with a
	// *LocatorError and no partial map is returned.
	ResolveChunkMap(ctx context.Context, fileID uint64, fileLength uint64) ([]chunk.Location, error)

	// Close releases resources held by the locator, such as pooled
	// connections. The locator must not be used after Close.
	Close() error
}
