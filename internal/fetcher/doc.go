// Package fetcher retrieves raw page content over HTTP for the crawler.
//
// Fetch failures are classified into a small taxonomy (timeout, connection
// error, HTTP status error, other) so the engine can log them uniformly
// while treating every kind as a recoverable per-URL failure.
package fetcher
