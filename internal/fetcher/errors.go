package fetcher

import (
	"fmt"
)

// Kind classifies a fetch failure.
type Kind int

const (
	// KindOther covers failures that fit no more specific kind.
	KindOther Kind = iota

	// KindTimeout means the request exceeded its deadline.
	KindTimeout

	// KindConnection means the TCP connection could not be established
	// or broke mid-transfer.
	KindConnection

	// KindHTTPStatus means the server answered with a non-success status.
	KindHTTPStatus
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindHTTPStatus:
		return "http-status"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// FetchError describes a failed fetch of one URL.
// All fetch failures are per-URL recoverable: the engine logs them and
// abandons the URL without aborting the crawl.
type FetchError struct {
	// URL is the URL that failed.
	URL string

	// Kind classifies the failure.
	Kind Kind

	// StatusCode holds the HTTP status for KindHTTPStatus, zero otherwise.
	StatusCode int

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *FetchError) Unwrap() error {
	return e.Err
}
