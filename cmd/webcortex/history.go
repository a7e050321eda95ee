package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/webcortex/webcortex/internal/config"
	"github.com/webcortex/webcortex/internal/database"
	"github.com/webcortex/webcortex/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [seed-url]",
		Short: "List recorded crawl runs",
		Long: `History lists crawl runs recorded in the local history database.
An optional seed URL argument restricts the listing to runs started from
that seed.

Use --id to print the full stored report of a single run instead.

Examples:
  # List all recorded runs
  webcortex history

  # List runs for one seed
  webcortex history https://example.com

  # Show the stored report of run 3
  webcortex history --id 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64("id", 0, "Show the full report of the run with this ID")
	cmd.Flags().Bool("json", false, "Output the run report as JSON (with --id)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no crawl history found (run a crawl first): %w", err)
	}
	defer db.Close()

	runID, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	if runID > 0 {
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		return showRun(cmd, db, runID, asJSON)
	}

	seed := ""
	if len(args) > 0 {
		seed = args[0]
	}
	return listRuns(cmd, db, seed)
}

// showRun prints the stored report of a single run.
func showRun(cmd *cobra.Command, db *database.CrawlDB, runID int64, asJSON bool) error {
	stored, err := db.GetRun(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", runID, err)
	}
	if stored == nil {
		return fmt.Errorf("run %d not found", runID)
	}

	if asJSON {
		_, err := report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint()).Write(stored)
		return err
	}
	_, err = report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(true)).Write(stored)
	return err
}

// listRuns prints a table of recorded runs, newest first.
func listRuns(cmd *cobra.Command, db *database.CrawlDB, seed string) error {
	runs, err := db.ListRuns(cmd.Context(), seed)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded crawl runs.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tSEED\tPAGES\tTOKENS\tTERMS\tSTATUS")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			formatRunTime(run.Started),
			run.Seed,
			run.Documents,
			run.Tokens,
			run.UniqueTerms,
			runStatus(run.Interrupted),
		)
	}
	return w.Flush()
}

// formatRunTime renders a run timestamp for the listing.
func formatRunTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// runStatus renders the interrupted flag.
func runStatus(interrupted bool) string {
	if interrupted {
		return "interrupted"
	}
	return "complete"
}
