// Package main provides the entry point for the WebCortex CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for WebCortex.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webcortex",
		Short: "Concurrent web crawler and token indexer",
		Long: `WebCortex crawls a website starting from a seed URL and builds a token
frequency index from the visible text of every page it visits.

The crawl stays on the seed's host, respects a page budget, and runs a
configurable number of concurrent workers. The resulting index and crawl
statistics can be printed, exported as JSON, or rendered as Markdown.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
