package locator

import "time"

// Metrics receives instrumentation events from chunk-map fetches.
//
// The interface is defined here, next to the code that emits the events;
// pkg/metrics provides the Prometheus-backed implementation. A nil Metrics
// disables instrumentation.
type Metrics interface {
	// FetchStarted is called when a chunk-map fetch begins.
	FetchStarted()

	// FetchSucceeded is called after a successful fetch with its duration
	// and the number of chunk records parsed.
	FetchSucceeded(duration time.Duration, chunks int)

	// FetchFailed is called after a failed fetch with its duration and
	// the failure class.
	FetchFailed(duration time.Duration, code ErrorCode)
}

// errorCodeOf extracts the failure class from an error returned by a fetch,
// defaulting to ErrTransport for errors raised outside the parser.
func errorCodeOf(err error) ErrorCode {
	if locErr, ok := err.(*LocatorError); ok {
		return locErr.Code
	}
	return ErrTransport
}
