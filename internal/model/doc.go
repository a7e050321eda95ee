// Package model defines the data structures shared across the crawler:
// per-page documents, crawl statistics, and the final crawl report.
package model
