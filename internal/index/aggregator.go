package index

import (
	"sync"
	"time"

	"github.com/webcortex/webcortex/internal/model"
)

// Aggregator accumulates token frequencies and crawl statistics from all
// workers. Counts only ever grow for the duration of a run.
type Aggregator struct {
	// mu serializes Merge calls and guards all fields below.
	mu sync.Mutex

	// terms maps each token to its cumulative frequency.
	terms map[string]int

	// documents counts Merge calls (one per successfully processed page).
	documents int

	// tokens counts every token across all merged sequences.
	tokens int

	// startTime and endTime bracket the crawl for reporting.
	startTime time.Time
	endTime   time.Time
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		terms: make(map[string]int),
	}
}

// Start records the crawl start time. Call once before workers launch.
func (a *Aggregator) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.startTime = time.Now()
}

// Finish records the crawl end time. Call once after the pool has stopped.
func (a *Aggregator) Finish() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.endTime = time.Now()
}

// Merge folds one document's token sequence into the shared index:
// every token's frequency is incremented once per occurrence, the document
// count grows by one, and the total token count grows by len(tokens).
//
// Merging an empty sequence still counts as one processed document, because
// a page with no extractable text was nevertheless fetched and processed.
func (a *Aggregator) Merge(tokens []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, tok := range tokens {
		a.terms[tok]++
	}
	a.documents++
	a.tokens += len(tokens)
}

// Snapshot returns a consistent point-in-time copy of the index and the
// crawl statistics. The unique-term count is derived from the map
// cardinality at this moment, never tracked separately, so it cannot
// drift from the index contents.
//
// Snapshot is intended to be called after all workers have terminated;
// it still locks so a late merge cannot tear the view.
func (a *Aggregator) Snapshot() (map[string]int, model.CrawlStats) {
	a.mu.Lock()
	defer a.mu.Unlock()

	terms := make(map[string]int, len(a.terms))
	for term, count := range a.terms {
		terms[term] = count
	}

	stats := model.CrawlStats{
		StartTime:   a.startTime,
		EndTime:     a.endTime,
		Documents:   a.documents,
		Tokens:      a.tokens,
		UniqueTerms: len(terms),
	}
	return terms, stats
}
