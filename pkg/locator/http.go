package locator

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marmos91/chunkmap/internal/logger"
	"github.com/marmos91/chunkmap/internal/ratelimiter"
	"github.com/marmos91/chunkmap/pkg/chunk"
)

// DefaultEndpointPath is the metadata service path queried when the
// configured endpoint URL has no path component.
const DefaultEndpointPath = "/mproxy/map_obj"

// HTTPOptions tunes the pooled transport shared by all fetches of one
// HTTPChunkLocator. The zero value of any field selects its default.
type HTTPOptions struct {
	// ConnectTimeout bounds TCP connection establishment.
	// Defaults to 10 seconds.
	ConnectTimeout time.Duration

	// MaxConnsPerHost caps concurrent connections to the metadata
	// service. Defaults to 10.
	MaxConnsPerHost int

	// ResponseHeaderTimeout bounds the wait for the response headers
	// after the request is written. Zero means no limit.
	ResponseHeaderTimeout time.Duration

	// RequestsPerSecond caps the sustained fetch rate against the
	// metadata service. Zero disables rate limiting.
	RequestsPerSecond uint

	// Burst is the rate limiter's burst capacity. Only meaningful when
	// RequestsPerSecond is set; values below it are raised to it.
	Burst uint

	// Metrics receives fetch instrumentation events. Nil disables
	// instrumentation.
	Metrics Metrics
}

func (o HTTPOptions) withDefaults() HTTPOptions {
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = 10 * time.Second
	}
	if o.MaxConnsPerHost == 0 {
		o.MaxConnsPerHost = 10
	}
	return o
}

// HTTPChunkLocator fetches chunk maps from the metadata service's REST
// endpoint with a single GET per call, streaming the response document
// through the parser without buffering it in memory.
//
// Safe for concurrent use; all calls share one pooled http.Client. There is
// no per-file cache and no retry: every call is a fresh fetch whose outcome
// is surfaced to the caller as-is.
type HTTPChunkLocator struct {
	endpoint url.URL
	client   *http.Client
	limiter  *ratelimiter.FetchLimiter
	metrics  Metrics
	log      *zap.SugaredLogger
}

// NewHTTPChunkLocator creates a locator for the metadata service at
// endpoint, e.g. "http://meta.cluster.local:14149". If the endpoint URL
// carries no path, DefaultEndpointPath is used.
func NewHTTPChunkLocator(endpoint string, opts HTTPOptions) (*HTTPChunkLocator, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, transportError("invalid endpoint URL", endpoint, err)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = DefaultEndpointPath
	}

	opts = opts.withDefaults()
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectTimeout,
		}).DialContext,
		MaxConnsPerHost:       opts.MaxConnsPerHost,
		MaxIdleConnsPerHost:   opts.MaxConnsPerHost,
		ResponseHeaderTimeout: opts.ResponseHeaderTimeout,
	}

	return &HTTPChunkLocator{
		endpoint: *u,
		client:   &http.Client{Transport: transport},
		limiter:  ratelimiter.New(opts.RequestsPerSecond, opts.Burst),
		metrics:  opts.Metrics,
		log:      logger.Named("locator"),
	}, nil
}

// ResolveChunkMap implements ChunkLocator.
func (l *HTTPChunkLocator) ResolveChunkMap(ctx context.Context, fileID uint64, fileLength uint64) ([]chunk.Location, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, transportError("waiting for fetch slot", l.endpoint.String(), err)
	}

	start := time.Now()
	if l.metrics != nil {
		l.metrics.FetchStarted()
	}

	locations, err := l.fetch(ctx, fileID, fileLength)
	if err != nil {
		if l.metrics != nil {
			l.metrics.FetchFailed(time.Since(start), errorCodeOf(err))
		}
		return nil, err
	}

	if l.metrics != nil {
		l.metrics.FetchSucceeded(time.Since(start), len(locations))
	}
	return locations, nil
}

// fetch performs one GET and streams the response through the parser.
func (l *HTTPChunkLocator) fetch(ctx context.Context, fileID uint64, fileLength uint64) ([]chunk.Location, error) {
	reqURL := l.endpoint
	query := reqURL.Query()
	query.Set("inum", strconv.FormatUint(fileID, 10))
	reqURL.RawQuery = query.Encode()

	requestID := uuid.NewString()
	l.log.Debugw("fetching chunk map",
		"request_id", requestID, "file_id", fileID, "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, transportError("building chunk map request failed", reqURL.String(), err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, transportError("chunk map request failed", reqURL.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Abort without draining; the server's answer is not trusted
		// past a non-success status.
		return nil, transportError(
			"unexpected HTTP status "+strconv.Itoa(resp.StatusCode), reqURL.String(), nil)
	}

	locations, err := parseChunkMap(ctx, resp.Body, fileLength)
	if err != nil {
		return nil, err
	}

	l.log.Debugw("fetched chunk map",
		"request_id", requestID, "file_id", fileID, "chunks", len(locations))
	return locations, nil
}

// Close releases the pooled connections. The locator must not be used
// afterwards.
func (l *HTTPChunkLocator) Close() error {
	l.client.CloseIdleConnections()
	return nil
}
