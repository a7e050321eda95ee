// Package crawler provides the crawl engine: a bounded pool of workers
// that drive fetch, extract, tokenize, and merge cycles against a shared
// frontier and token index.
//
// # Architecture
//
// The Engine seeds the frontier with the start URL and launches N workers
// under an errgroup. Each worker repeatedly acquires a URL from the
// frontier, runs the pipeline, offers newly discovered links back, and
// signals completion. The pool terminates when the page budget is
// exhausted, when the frontier drains naturally, or when the context is
// cancelled. Partial results are always valid: the final report reflects
// whatever subset of the budget actually completed.
//
// # Failure semantics
//
// No single URL failure aborts the crawl. Fetch and extraction errors are
// logged and the URL is abandoned; the worker moves on. Only budget
// exhaustion and frontier drainage are normal terminal conditions, and an
// external cancellation stops all workers promptly without losing
// already-merged index state.
package crawler
