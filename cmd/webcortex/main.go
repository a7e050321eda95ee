// Package main provides the entry point for the WebCortex CLI.
//
// WebCortex is a concurrent web crawler and indexer. Starting from a seed
// URL, it crawls pages on the seed's host up to a page budget, tokenizes
// the visible text, and builds a token frequency index.
//
// Usage:
//
//	webcortex crawl <start-url>
//	webcortex crawl --max-pages 100 --concurrent-tasks 4 <start-url>
//
// See --help for all available options.
package main

// main is the entry point for WebCortex.
func main() {
	Execute()
}
