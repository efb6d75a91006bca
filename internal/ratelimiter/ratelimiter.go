// Package ratelimiter bounds the rate of chunk-map fetches against the
// metadata service.
//
// A scheduler resolving locality for thousands of inputs issues one fetch
// per file; the token bucket here keeps that burst from overloading the
// metadata service while still letting small batches through at full speed.
package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

// FetchLimiter is a token-bucket limiter for metadata fetches. All methods
// are safe for concurrent use.
type FetchLimiter struct {
	limiter *rate.Limiter
}

// New creates a FetchLimiter allowing requestsPerSecond sustained fetches
// with the given burst capacity. requestsPerSecond = 0 disables limiting.
func New(requestsPerSecond, burst uint) *FetchLimiter {
	if requestsPerSecond == 0 {
		return &FetchLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst < requestsPerSecond {
		burst = requestsPerSecond
	}
	return &FetchLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), int(burst)),
	}
}

// Wait blocks until a fetch may proceed or the context is cancelled.
func (l *FetchLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a fetch may proceed right now, consuming a token
// if so. Use it to reject instead of queue when the limit is exceeded.
func (l *FetchLimiter) Allow() bool {
	return l.limiter.Allow()
}
