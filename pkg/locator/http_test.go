package locator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/chunkmap/pkg/chunk"
)

func newTestLocator(t *testing.T, handler http.HandlerFunc) *HTTPChunkLocator {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	loc, err := NewHTTPChunkLocator(server.URL, HTTPOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = loc.Close() })

	return loc
}

func TestHTTPChunkLocator(t *testing.T) {
	ctx := context.Background()

	t.Run("FetchesAndParsesChunkMap", func(t *testing.T) {
		var gotPath, gotInum string
		loc := newTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotInum = r.URL.Query().Get("inum")
			_, _ = w.Write([]byte(twoChunkDocument))
		})

		locations, err := loc.ResolveChunkMap(ctx, 4711, 200)
		require.NoError(t, err)

		assert.Equal(t, DefaultEndpointPath, gotPath)
		assert.Equal(t, "4711", gotInum)
		require.Len(t, locations, 2)
		assert.Equal(t, chunk.Chunk{Offset: 0, Length: 100}, locations[0].Chunk)
		assert.Equal(t, chunk.Chunk{Offset: 100, Length: 100}, locations[1].Chunk)
		assert.Equal(t, uint64(200), locations[0].FileLength)
	})

	t.Run("KeepsExplicitEndpointPath", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/custom/map", r.URL.Path)
			_, _ = w.Write([]byte(`<chunk_list></chunk_list>`))
		}))
		t.Cleanup(server.Close)

		loc, err := NewHTTPChunkLocator(server.URL+"/custom/map", HTTPOptions{})
		require.NoError(t, err)
		t.Cleanup(func() { _ = loc.Close() })

		_, err = loc.ResolveChunkMap(ctx, 1, 0)
		require.NoError(t, err)
	})

	t.Run("NotFoundStatusIsTransportError", func(t *testing.T) {
		loc := newTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		locations, err := loc.ResolveChunkMap(ctx, 1, 0)
		assert.Nil(t, locations)
		assertLocatorError(t, err, ErrTransport)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("ServerErrorStatusIsTransportError", func(t *testing.T) {
		loc := newTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "meltdown", http.StatusInternalServerError)
		})

		locations, err := loc.ResolveChunkMap(ctx, 1, 0)
		assert.Nil(t, locations)
		assertLocatorError(t, err, ErrTransport)
	})

	t.Run("ConnectionFailureIsTransportError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // nothing listens here anymore

		loc, err := NewHTTPChunkLocator(server.URL, HTTPOptions{})
		require.NoError(t, err)

		locations, err := loc.ResolveChunkMap(ctx, 1, 0)
		assert.Nil(t, locations)
		assertLocatorError(t, err, ErrTransport)
	})

	t.Run("MalformedBodyIsProtocolError", func(t *testing.T) {
		loc := newTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<chunk_list><chunk offset="0"`))
		})

		locations, err := loc.ResolveChunkMap(ctx, 1, 0)
		assert.Nil(t, locations)
		assertLocatorError(t, err, ErrProtocol)
	})

	t.Run("CancelledContextAbortsFetch", func(t *testing.T) {
		loc := newTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := loc.ResolveChunkMap(cancelled, 1, 0)
		assertLocatorError(t, err, ErrTransport)
	})

	t.Run("EachCallFetchesFresh", func(t *testing.T) {
		var fetches atomic.Int32
		loc := newTestLocator(t, func(w http.ResponseWriter, r *http.Request) {
			fetches.Add(1)
			_, _ = w.Write([]byte(twoChunkDocument))
		})

		for i := 0; i < 3; i++ {
			_, err := loc.ResolveChunkMap(ctx, 4711, 200)
			require.NoError(t, err)
		}
		assert.Equal(t, int32(3), fetches.Load())
	})

	t.Run("RejectsUnparseableEndpoint", func(t *testing.T) {
		_, err := NewHTTPChunkLocator("http://bad host/", HTTPOptions{})
		assertLocatorError(t, err, ErrTransport)
	})
}
