// Package database provides SQLite-based storage for WebCortex crawl
// history.
//
// This package implements the CrawlDB, which stores:
//   - One run record per crawl, including the full report as JSON
//   - Per-page summaries for each run
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
