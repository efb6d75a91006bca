package locator

// LocatorError is the single error kind surfaced by chunk-map fetches.
//
// The Code separates the failure classes callers care about; the wrapped
// cause preserves the underlying transport or decode error for logging and
// errors.As inspection.
type LocatorError struct {
	// Code is the failure class.
	Code ErrorCode

	// Message is a human-readable description of the failure.
	Message string

	// Detail carries the offending context where known: the request URL
	// for transport failures, the tag or attribute name for protocol
	// failures.
	Detail string

	// Cause is the underlying error, if any.
	Cause error
}

// ErrorCode classifies a LocatorError.
type ErrorCode int

const (
	// ErrTransport indicates a network-level failure: connect or read
	// error, or a non-success HTTP status. The request is not retried.
	ErrTransport ErrorCode = iota

	// ErrProtocol indicates a malformed or incomplete chunk-map document:
	// missing required attribute, unparseable number, undecodable stream.
	ErrProtocol
)

// Error implements the error interface.
func (e *LocatorError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/errors.As chains.
func (e *LocatorError) Unwrap() error {
	return e.Cause
}

func transportError(message, detail string, cause error) *LocatorError {
	return &LocatorError{Code: ErrTransport, Message: message, Detail: detail, Cause: cause}
}

func protocolError(message, detail string, cause error) *LocatorError {
	return &LocatorError{Code: ErrProtocol, Message: message, Detail: detail, Cause: cause}
}
