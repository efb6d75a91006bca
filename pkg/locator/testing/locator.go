// Package testing provides chunk-map fixtures and a ChunkLocator double for
// tests that exercise range resolution without a metadata service.
package testing

import (
	"context"
	"sync"

	"github.com/marmos91/chunkmap/pkg/chunk"
)

// StaticLocator is an in-memory ChunkLocator serving pre-seeded chunk maps.
//
// It records how often each file was resolved so tests can assert fetch
// behavior (e.g. that no caching happens above the locator).
type StaticLocator struct {
	mu sync.Mutex

	// Maps holds the chunk map served for each file id.
	Maps map[uint64][]chunk.Location

	// Err, when set, is returned by every ResolveChunkMap call.
	Err error

	// Calls counts ResolveChunkMap invocations per file id.
	Calls map[uint64]int

	closed bool
}

// NewStaticLocator creates an empty StaticLocator; seed it via Add.
func NewStaticLocator() *StaticLocator {
	return &StaticLocator{
		Maps:  make(map[uint64][]chunk.Location),
		Calls: make(map[uint64]int),
	}
}

// Add seeds the chunk map served for fileID.
func (s *StaticLocator) Add(fileID uint64, locations []chunk.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Maps[fileID] = locations
}

// ResolveChunkMap implements locator.ChunkLocator.
func (s *StaticLocator) ResolveChunkMap(ctx context.Context, fileID uint64, fileLength uint64) ([]chunk.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls[fileID]++

	if s.Err != nil {
		return nil, s.Err
	}
	return s.Maps[fileID], nil
}

// Close implements locator.ChunkLocator.
func (s *StaticLocator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *StaticLocator) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
