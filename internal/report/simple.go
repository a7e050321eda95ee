package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/webcortex/webcortex/internal/model"
)

// defaultTopTerms is how many ranked terms the terminal summary shows.
const defaultTopTerms = 10

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// topTerms is the number of ranked terms to display.
	topTerms int

	// verbose enables the per-page listing in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithTopTerms sets how many ranked terms the summary shows.
func WithTopTerms(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if n > 0 {
			w.topTerms = n
		}
	}
}

// WithVerbose enables the per-page listing in the output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		topTerms:   defaultTopTerms,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the crawl report in human-readable format.
func (w *SimpleWriter) Write(report *model.CrawlReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeStats(&sb, report)
	w.writeTopTerms(&sb, report)
	if w.verbose {
		w.writePages(&sb, report)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with crawl information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.CrawlReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         WEBCORTEX CRAWL REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Seed URL:      %s\n", report.Seed))
	sb.WriteString(fmt.Sprintf("Started:       %s\n", report.Stats.StartTime.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Elapsed:       %s\n", report.Stats.Elapsed().Round(time.Millisecond)))

	if report.Interrupted {
		sb.WriteString("Status:        INTERRUPTED (partial results)\n")
	} else {
		sb.WriteString("Status:        Complete\n")
	}

	sb.WriteString("\n")
}

// writeStats writes the crawl statistics section.
func (w *SimpleWriter) writeStats(sb *strings.Builder, report *model.CrawlReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CRAWL STATISTICS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Documents:    %d\n", report.Stats.Documents))
	sb.WriteString(fmt.Sprintf("  Tokens:       %d\n", report.Stats.Tokens))
	sb.WriteString(fmt.Sprintf("  Unique terms: %d\n", report.Stats.UniqueTerms))
	sb.WriteString("\n")
}

// writeTopTerms writes the ranked term frequency section.
func (w *SimpleWriter) writeTopTerms(sb *strings.Builder, report *model.CrawlReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("TOP %d TERMS\n", w.topTerms))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	terms := report.TopTerms(w.topTerms)
	if len(terms) == 0 {
		sb.WriteString("  No terms indexed\n")
	} else {
		for i, tc := range terms {
			sb.WriteString(fmt.Sprintf("  %2d. %-30s %d\n", i+1, tc.Term, tc.Count))
		}
	}
	sb.WriteString("\n")
}

// writePages writes the per-page listing section.
func (w *SimpleWriter) writePages(sb *strings.Builder, report *model.CrawlReport) {
	if len(report.Pages) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PAGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, page := range report.Pages {
		sb.WriteString(fmt.Sprintf("  * %s\n", page.URL))
		if page.Title != "" {
			sb.WriteString(fmt.Sprintf("    Title:  %s\n", page.Title))
		}
		sb.WriteString(fmt.Sprintf("    Tokens: %d, Links: %d\n", page.TokenCount, page.LinkCount))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by WebCortex\n")
	sb.WriteString("https://github.com/webcortex/webcortex\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
