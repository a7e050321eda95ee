package frontier

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// AcquireState describes the outcome of a TryAcquire call.
type AcquireState int

const (
	// StateAcquired means a URL was returned and is now in flight.
	StateAcquired AcquireState = iota

	// StateEmpty means no URL is queued right now, but the crawl cannot
	// yet be declared complete. The caller should back off and retry.
	StateEmpty

	// StateExhausted means the page budget has been fully consumed.
	// No further URLs will ever be released.
	StateExhausted
)

// String returns a human-readable name for the state.
func (s AcquireState) String() string {
	switch s {
	case StateAcquired:
		return "acquired"
	case StateEmpty:
		return "empty"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Frontier is the deduplicating, budget-capped work queue of URLs to visit.
//
// URL identity is the normalized string form (see Normalize). The queue is
// FIFO, giving the crawl a breadth-first bias.
type Frontier struct {
	// mu guards every field below. All operations are single serialized
	// critical sections.
	mu sync.Mutex

	// queue holds normalized URLs pending acquisition, in discovery order.
	queue []string

	// visited tracks every normalized URL ever seeded, offered, or
	// acquired. It grows monotonically for the lifetime of the crawl.
	visited map[string]struct{}

	// budget is the maximum number of URLs ever released to workers.
	budget int

	// acquired counts URLs released via TryAcquire. Bounded by budget.
	acquired int

	// inFlight counts URLs released but not yet completed via Done.
	inFlight int
}

// New creates a Frontier with the given page budget.
// A non-positive budget yields a frontier that is exhausted immediately.
func New(budget int) *Frontier {
	return &Frontier{
		queue:   make([]string, 0, 64),
		visited: make(map[string]struct{}),
		budget:  budget,
	}
}

// Normalize canonicalizes a URL for deduplication: lowercase scheme and
// host, fragment stripped, empty path rewritten to "/". The query is kept
// because it usually selects distinct content.
//
// Only absolute http and https URLs are accepted.
func Normalize(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL %q has no host", raw)
	}

	u.Scheme = scheme
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String(), nil
}

// Seed inserts the start URL if it has not been scheduled yet and marks it
// visited. Seeding an already-known URL is a silent no-op.
// Returns an error only when the URL cannot be normalized.
func (f *Frontier) Seed(raw string) error {
	normalized, err := Normalize(raw)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[normalized]; ok {
		return nil
	}
	f.visited[normalized] = struct{}{}
	f.queue = append(f.queue, normalized)
	return nil
}

// TryAcquire returns the next URL to process.
//
// StateExhausted is returned once the number of URLs ever acquired reaches
// the budget. StateEmpty is returned when nothing is queued but completion
// cannot yet be determined; callers should back off and retry. Otherwise
// the head of the queue is returned and atomically marked in flight.
func (f *Frontier) TryAcquire() (string, AcquireState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.acquired >= f.budget {
		return "", StateExhausted
	}
	if len(f.queue) == 0 {
		return "", StateEmpty
	}

	u := f.queue[0]
	f.queue = f.queue[1:]
	f.acquired++
	f.inFlight++
	return u, StateAcquired
}

// Offer enqueues a URL discovered during extraction. The URL is normalized
// first; URLs already seen, URLs that fail normalization, and URLs offered
// after the budget has been reached are dropped silently. Dropped
// discoveries are acceptable loss, not an error.
//
// Returns true when the URL was actually enqueued.
func (f *Frontier) Offer(raw string) bool {
	normalized, err := Normalize(raw)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.acquired >= f.budget {
		return false
	}
	if _, ok := f.visited[normalized]; ok {
		return false
	}
	f.visited[normalized] = struct{}{}
	f.queue = append(f.queue, normalized)
	return true
}

// Done signals that an acquired URL has finished processing, successfully
// or not. Every TryAcquire that returned StateAcquired must be paired with
// exactly one Done call, after any Offer calls for that page.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight > 0 {
		f.inFlight--
	}
}

// IsDrained reports natural completion: the queue is empty, no URL is in
// flight, and the budget was not exhausted by count alone. Workers that
// observe StateEmpty use this to distinguish "wait for peers" from "stop".
func (f *Frontier) IsDrained() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.queue) == 0 && f.inFlight == 0 && f.acquired < f.budget
}

// Acquired returns the number of URLs released to workers so far.
func (f *Frontier) Acquired() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acquired
}

// Known returns the number of unique URLs ever seen (visited set size).
func (f *Frontier) Known() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}
