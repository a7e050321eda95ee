package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/webcortex/webcortex/internal/model"
)

// markdownTopTerms is how many ranked terms the Markdown report shows.
const markdownTopTerms = 20

// chartTerms is how many terms the frequency pie chart shows.
const chartTerms = 5

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the crawl report in Markdown format.
func (w *MarkdownWriter) Write(report *model.CrawlReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeStats(md, report)
	w.writeTopTerms(md, report)
	w.writePages(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with crawl information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.CrawlReport) {
	md.H1("WebCortex Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed URL", "`" + report.Seed + "`"},
			{"Started", report.Stats.StartTime.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Stats.Elapsed().String()},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")

	if report.Interrupted {
		md.Warningf("The crawl was interrupted; this report covers partial results only.")
		md.PlainText("")
	}
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.CrawlReport) string {
	if report.Interrupted {
		return "⚠️ Interrupted (partial results)"
	}
	return "✅ Complete"
}

// writeStats writes the crawl statistics section.
func (w *MarkdownWriter) writeStats(md *markdown.Markdown, report *model.CrawlReport) {
	md.H2("Crawl Statistics")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Documents", strconv.Itoa(report.Stats.Documents)},
			{"Tokens", strconv.Itoa(report.Stats.Tokens)},
			{"Unique terms", strconv.Itoa(report.Stats.UniqueTerms)},
		},
	})
	md.PlainText("")

	if report.Stats.Documents == 0 {
		md.Note("No pages were successfully processed.")
		md.PlainText("")
	}
}

// writeTopTerms writes the ranked term frequency section.
func (w *MarkdownWriter) writeTopTerms(md *markdown.Markdown, report *model.CrawlReport) {
	md.H2("Top Terms")
	md.PlainText("")

	terms := report.TopTerms(markdownTopTerms)
	if len(terms) == 0 {
		md.PlainText("No terms indexed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(terms))
	for i, tc := range terms {
		rows[i] = []string{strconv.Itoa(i + 1), "`" + tc.Term + "`", strconv.Itoa(tc.Count)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Term", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, terms)
}

// writePieChart writes a mermaid pie chart of the most frequent terms.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, terms []model.TermCount) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Term Frequency Distribution"),
		piechart.WithShowData(true),
	)

	limit := chartTerms
	if len(terms) < limit {
		limit = len(terms)
	}
	for _, tc := range terms[:limit] {
		chart.LabelAndIntValue(tc.Term, uint64(tc.Count))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writePages writes the per-page listing section.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, report *model.CrawlReport) {
	if len(report.Pages) == 0 {
		return
	}

	md.H2("Pages")
	md.PlainText("")

	rows := make([][]string, len(report.Pages))
	for i, page := range report.Pages {
		title := page.Title
		if title == "" {
			title = "-"
		}

		rows[i] = []string{
			"`" + truncateString(page.URL, 60) + "`",
			truncateString(title, 40),
			strconv.Itoa(page.TokenCount),
			strconv.Itoa(page.LinkCount),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Title", "Tokens", "Links"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [WebCortex](https://github.com/webcortex/webcortex)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
