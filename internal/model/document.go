package model

import (
	"sort"
	"time"
)

// Document is the per-page result produced by a worker after a successful
// fetch/extract/tokenize cycle.
//
// Design decision: We store the token count rather than the token sequence
// because:
//  1. The sequence is folded into the shared index immediately after
//     tokenization and is not needed afterwards
//  2. Keeping every token of every page alive for the final report would
//     grow memory linearly with crawl size
//  3. The report only needs per-page summaries
type Document struct {
	// URL is the normalized URL of the fetched page.
	URL string `json:"url"`

	// Title is the page title from the <title> tag, if any.
	Title string `json:"title,omitempty"`

	// TextLen is the length in bytes of the cleaned text.
	TextLen int `json:"text_len"`

	// TokenCount is the number of tokens extracted from the cleaned text.
	TokenCount int `json:"token_count"`

	// LinkCount is the number of outbound links discovered on the page.
	LinkCount int `json:"link_count"`

	// FetchedAt is the time the page fetch completed.
	FetchedAt time.Time `json:"fetched_at"`
}

// CrawlStats holds the running statistics of a crawl.
// UniqueTerms is always derived from the index cardinality at snapshot
// time, never tracked separately, so it cannot drift.
type CrawlStats struct {
	// StartTime is when the crawl began.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the worker pool fully stopped.
	EndTime time.Time `json:"end_time"`

	// Documents is the number of successfully processed pages.
	Documents int `json:"documents"`

	// Tokens is the total number of tokens merged across all documents.
	Tokens int `json:"tokens"`

	// UniqueTerms is the number of distinct tokens in the index.
	UniqueTerms int `json:"unique_terms"`
}

// Elapsed returns the wall-clock duration of the crawl.
func (s CrawlStats) Elapsed() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// CrawlReport is the final, reportable outcome of a crawl run.
// It is assembled from an aggregator snapshot after the worker pool has
// terminated, so no synchronization is needed to read it.
//
// A report is always produced, even when every individual fetch failed;
// Documents == 0 is a valid outcome, not an error.
type CrawlReport struct {
	// Seed is the normalized start URL of the crawl.
	Seed string `json:"seed"`

	// Stats holds the crawl statistics.
	Stats CrawlStats `json:"stats"`

	// Index maps each token to its cumulative frequency.
	Index map[string]int `json:"index"`

	// Pages lists per-page summaries in completion order.
	Pages []Document `json:"pages,omitempty"`

	// Interrupted is true when the crawl was cut short by cancellation
	// (e.g. SIGINT) rather than finishing by budget or drain.
	Interrupted bool `json:"interrupted,omitempty"`
}

// TermCount pairs a token with its cumulative frequency for ranked output.
type TermCount struct {
	// Term is the token text.
	Term string `json:"term"`

	// Count is the cumulative frequency across all documents.
	Count int `json:"count"`
}

// TopTerms returns the n most frequent terms in descending count order.
// Ties are broken alphabetically so the output is deterministic.
func (r *CrawlReport) TopTerms(n int) []TermCount {
	terms := make([]TermCount, 0, len(r.Index))
	for term, count := range r.Index {
		terms = append(terms, TermCount{Term: term, Count: count})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count == terms[j].Count {
			return terms[i].Term < terms[j].Term
		}
		return terms[i].Count > terms[j].Count
	})

	if n > 0 && len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
