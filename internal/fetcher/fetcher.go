package fetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"
)

// Fetcher retrieves the raw content of a single URL.
// Implementations must be safe for concurrent use by multiple workers.
type Fetcher interface {
	// Fetch performs an HTTP GET for url. The returned error, when
	// non-nil, is always a *FetchError.
	Fetch(ctx context.Context, url string) (*Content, error)
}

// Content is the raw result of a successful fetch.
type Content struct {
	// URL is the URL that was fetched.
	URL string

	// StatusCode is the HTTP response status (always 2xx on success).
	StatusCode int

	// ContentType is the value of the Content-Type response header.
	ContentType string

	// Body holds the response body, capped at the configured size limit.
	Body []byte
}

// Default fetcher settings.
const (
	// DefaultTimeout is the per-request deadline. Ten seconds is generous
	// for a single page while keeping a stuck worker bounded.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodySize caps the response body read. 5MB is plenty for
	// HTML pages while preventing memory exhaustion from runaway bodies.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies the crawler in HTTP requests.
	// A descriptive User-Agent lets operators identify crawler traffic.
	DefaultUserAgent = "WebCortex/1.0 (+https://github.com/webcortex/webcortex)"
)

// HTTPFetcher implements Fetcher over net/http.
//
// Design decision: We accept an external *http.Client rather than always
// building one internally because:
//  1. Transport configuration (proxies, TLS) stays in one place
//  2. Connection pooling can be shared across workers
//  3. Tests can inject a client pointed at httptest servers
type HTTPFetcher struct {
	// client is the HTTP client used for all requests.
	client *http.Client

	// timeout is the per-request deadline, applied via context.
	timeout time.Duration

	// userAgent is the User-Agent header to send.
	userAgent string

	// headers are extra headers applied to every request.
	headers map[string]string

	// maxBodySize caps how many bytes of the body are read.
	maxBodySize int64
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = client
	}
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithHeaders sets extra headers applied to every request.
func WithHeaders(headers map[string]string) Option {
	return func(f *HTTPFetcher) {
		f.headers = headers
	}
}

// WithMaxBodySize caps the response body read.
func WithMaxBodySize(size int64) Option {
	return func(f *HTTPFetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewHTTPFetcher creates an HTTPFetcher with the given options.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{}
	}
	return f
}

// Fetch performs an HTTP GET with the configured per-request timeout.
// Non-2xx responses, expired deadlines, and transport failures all yield
// a *FetchError classified by kind.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Content, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Kind: KindOther, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Kind: classify(err), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // Read errors surface below

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.maxBodySize)) //nolint:errcheck // Best effort drain
		return nil, &FetchError{URL: url, Kind: KindHTTPStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: url, Kind: classify(err), Err: err}
	}

	return &Content{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// classify maps a transport-level error onto a FetchError kind.
func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnection
	}

	return KindOther
}
