// Package index implements the shared token-frequency index and its
// running crawl statistics.
//
// Merge is the single mutation entry point; no other code path writes to
// the index. Each Merge call is one serialized critical section, so
// contention is limited to brief bursts at merge time rather than during
// fetch, extract, or tokenize.
package index
