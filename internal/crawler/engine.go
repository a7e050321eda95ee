package crawler

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/webcortex/webcortex/internal/extractor"
	"github.com/webcortex/webcortex/internal/fetcher"
	"github.com/webcortex/webcortex/internal/frontier"
	"github.com/webcortex/webcortex/internal/index"
	"github.com/webcortex/webcortex/internal/model"
	"github.com/webcortex/webcortex/internal/tokenizer"
)

// Default engine settings.
const (
	// DefaultMaxPages is the default page budget per crawl.
	DefaultMaxPages = 500

	// DefaultConcurrency is the default number of workers. This is the
	// crawler's sole admission-control mechanism; there is no per-host
	// throttling.
	DefaultConcurrency = 10

	// minBackoff and maxBackoff bound the wait between polls of an
	// empty frontier. Doubling between them keeps idle workers cheap
	// without turning drain detection sluggish.
	minBackoff = 10 * time.Millisecond
	maxBackoff = 250 * time.Millisecond
)

// Engine coordinates the crawl: frontier, worker pool, and aggregation.
type Engine struct {
	// fetcher retrieves raw page content.
	fetcher fetcher.Fetcher

	// tokenizer converts cleaned text to token sequences. Selected once
	// at startup; the engine never inspects which variant is active.
	tokenizer tokenizer.Tokenizer

	// logger is used for structured logging during the crawl.
	logger *slog.Logger

	// maxPages is the page budget enforced by the frontier.
	maxPages int

	// concurrency is the number of workers.
	concurrency int

	// ignorePatterns and followPatterns filter discovered links by URL
	// path, using glob syntax (e.g. "/admin/*", "*.pdf").
	ignorePatterns []string
	followPatterns []string

	// keepPages controls whether per-page summaries are collected for
	// the final report.
	keepPages bool

	// pages collects per-page summaries in completion order.
	pagesMu sync.Mutex
	pages   []model.Document
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxPages sets the page budget: the maximum number of URLs ever
// released to workers.
func WithMaxPages(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPages = n
		}
	}
}

// WithConcurrency sets the number of concurrent workers.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithIgnorePatterns sets URL path patterns to skip during link discovery.
func WithIgnorePatterns(patterns []string) Option {
	return func(e *Engine) {
		e.ignorePatterns = patterns
	}
}

// WithFollowPatterns sets URL path patterns to restrict link discovery.
// If set, only URLs matching at least one pattern are offered.
func WithFollowPatterns(patterns []string) Option {
	return func(e *Engine) {
		e.followPatterns = patterns
	}
}

// WithPageSummaries controls collection of per-page summaries for the
// report. Enabled by default; disable for very large crawls.
func WithPageSummaries(keep bool) Option {
	return func(e *Engine) {
		e.keepPages = keep
	}
}

// New creates an Engine with the given collaborators.
func New(f fetcher.Fetcher, t tokenizer.Tokenizer, opts ...Option) *Engine {
	e := &Engine{
		fetcher:     f,
		tokenizer:   t,
		maxPages:    DefaultMaxPages,
		concurrency: DefaultConcurrency,
		keepPages:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Crawl runs the full crawl from startURL and returns the final report.
//
// The crawl ends when the page budget is exhausted, when the frontier
// drains, or when ctx is cancelled. On cancellation the returned report
// holds everything merged so far, Interrupted is set, and the error is
// ctx's error; budget exhaustion and drain return a nil error.
func (e *Engine) Crawl(ctx context.Context, startURL string) (*model.CrawlReport, error) {
	front := frontier.New(e.maxPages)
	if err := front.Seed(startURL); err != nil {
		return nil, err
	}

	seed, err := frontier.Normalize(startURL)
	if err != nil {
		return nil, err
	}
	seedHost := hostOf(seed)

	agg := index.NewAggregator()
	agg.Start()

	e.logger.Info("starting crawl",
		"seed", seed,
		"maxPages", e.maxPages,
		"concurrency", e.concurrency,
		"tokenizer", e.tokenizer.Name(),
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < e.concurrency; i++ {
		g.Go(func() error {
			return e.worker(gctx, front, agg, seedHost)
		})
	}

	werr := g.Wait()
	agg.Finish()

	terms, stats := agg.Snapshot()
	report := &model.CrawlReport{
		Seed:        seed,
		Stats:       stats,
		Index:       terms,
		Pages:       e.collectedPages(),
		Interrupted: werr != nil,
	}

	e.logger.Info("crawl finished",
		"documents", stats.Documents,
		"tokens", stats.Tokens,
		"uniqueTerms", stats.UniqueTerms,
		"acquired", front.Acquired(),
		"elapsed", stats.Elapsed(),
		"interrupted", report.Interrupted,
	)

	return report, werr
}

// worker runs acquire/process cycles until the pool reaches a terminal
// condition. It returns nil on budget exhaustion or drain, and the
// context error on cancellation.
func (e *Engine) worker(ctx context.Context, front *frontier.Frontier, agg *index.Aggregator, seedHost string) error {
	backoff := minBackoff

	for {
		// Cancellation is observed at the top of the loop.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		u, state := front.TryAcquire()
		switch state {
		case frontier.StateExhausted:
			return nil

		case frontier.StateEmpty:
			if front.IsDrained() {
				return nil
			}
			// Peers still hold URLs in flight; yield briefly and retry
			// rather than spinning on the frontier lock.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = minBackoff

		e.process(ctx, front, agg, seedHost, u)
		front.Done()
	}
}

// process runs the fetch→extract→tokenize→merge→offer pipeline for one
// URL. Every failure is per-URL recoverable: log, abandon, return.
func (e *Engine) process(ctx context.Context, front *frontier.Frontier, agg *index.Aggregator, seedHost, pageURL string) {
	content, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		e.logger.Warn("fetch failed", "url", pageURL, "error", err)
		return
	}

	if !isHTML(content.ContentType) {
		e.logger.Debug("skipping non-HTML content", "url", pageURL, "contentType", content.ContentType)
		return
	}

	ext, err := extractor.New(pageURL)
	if err != nil {
		e.logger.Warn("extractor setup failed", "url", pageURL, "error", err)
		return
	}
	result, err := ext.Extract(bytes.NewReader(content.Body))
	if err != nil {
		e.logger.Warn("extraction failed", "url", pageURL, "error", err)
		return
	}

	tokens := e.tokenizer.Tokenize(result.Text)
	agg.Merge(tokens)

	offered := 0
	for _, link := range result.Links {
		if !e.shouldFollow(seedHost, link) {
			continue
		}
		if front.Offer(link) {
			offered++
		}
	}

	e.logger.Debug("page processed",
		"url", pageURL,
		"tokens", len(tokens),
		"links", len(result.Links),
		"offered", offered,
	)

	if e.keepPages {
		e.pagesMu.Lock()
		e.pages = append(e.pages, model.Document{
			URL:        pageURL,
			Title:      result.Title,
			TextLen:    len(result.Text),
			TokenCount: len(tokens),
			LinkCount:  len(result.Links),
			FetchedAt:  time.Now(),
		})
		e.pagesMu.Unlock()
	}
}

// shouldFollow reports whether a discovered link is eligible for the
// frontier: same host as the seed and allowed by the configured patterns.
func (e *Engine) shouldFollow(seedHost, link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if !strings.EqualFold(u.Host, seedHost) {
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range e.ignorePatterns {
		if matchPattern(pattern, path) {
			return false
		}
	}

	if len(e.followPatterns) > 0 {
		for _, pattern := range e.followPatterns {
			if matchPattern(pattern, path) {
				return true
			}
		}
		return false
	}

	return true
}

// collectedPages returns the per-page summaries gathered so far.
func (e *Engine) collectedPages() []model.Document {
	e.pagesMu.Lock()
	defer e.pagesMu.Unlock()
	pages := make([]model.Document, len(e.pages))
	copy(pages, e.pages)
	return pages
}

// hostOf extracts the host (including port) from a normalized URL.
func hostOf(normalized string) string {
	u, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	return u.Host
}

// isHTML reports whether a Content-Type header denotes an HTML document.
// An absent header is treated as HTML, since many small servers omit it.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	return strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "application/xhtml+xml")
}
