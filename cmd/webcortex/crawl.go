package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/webcortex/webcortex/internal/config"
	"github.com/webcortex/webcortex/internal/crawler"
	"github.com/webcortex/webcortex/internal/database"
	"github.com/webcortex/webcortex/internal/fetcher"
	"github.com/webcortex/webcortex/internal/frontier"
	"github.com/webcortex/webcortex/internal/log"
	"github.com/webcortex/webcortex/internal/model"
	"github.com/webcortex/webcortex/internal/report"
	"github.com/webcortex/webcortex/internal/tokenizer"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <start-url>",
		Short: "Crawl a website and build a token frequency index",
		Long: `Crawl starts from the given seed URL, visits pages on the same host up
to the page budget, and builds a token frequency index from the visible
text of every successfully fetched page.

Individual page failures (timeouts, HTTP errors, unreachable hosts) are
logged and skipped; the crawl always produces a report, even when every
fetch failed.

Examples:
  # Crawl with defaults (500 pages, 10 workers)
  webcortex crawl https://example.com

  # Small, polite crawl
  webcortex crawl --max-pages 50 --concurrent-tasks 2 https://example.com

  # Export the token index as JSON
  webcortex crawl --save-index https://example.com

  # Markdown report written to a file
  webcortex crawl --markdown --output report.md https://example.com

Configuration file (.webcortex) example:
  hosts:
    example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
      ignorePatterns:
        - "/admin/*"`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to crawl")
	cmd.Flags().IntP("concurrent-tasks", "n", config.DefaultConcurrency,
		"Number of concurrent crawl workers")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().String("tokenizer", config.DefaultTokenizer,
		"Tokenizer variant: auto, words, or regex")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with requests")

	// Index export flags
	cmd.Flags().BoolP("save-index", "s", false,
		"Save the token index as a JSON file after the crawl")
	cmd.Flags().String("index-file", config.DefaultIndexFile,
		"Output path for the saved token index")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webcortex in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the crawl history database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrent-tasks")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Tokenizer, err = cmd.Flags().GetString("tokenizer")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.SaveIndex, err = cmd.Flags().GetBool("save-index")
	if err != nil {
		return nil, err
	}

	cfg.IndexFile, err = cmd.Flags().GetString("index-file")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load host-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.HostConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.HostConfigs = &config.File{
			Hosts: make(map[string]config.HostConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory
	cfg.HistoryDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional argument: the seed URL
	cfg.StartURL = args[0]

	return cfg, nil
}

// runCrawl executes the crawl and emits the report.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	seed, err := frontier.Normalize(cfg.StartURL)
	if err != nil {
		return fmt.Errorf("invalid start URL %q: %w", cfg.StartURL, err)
	}

	hostCfg := getHostConfig(cfg, seed)

	tok, err := tokenizer.Select(cfg.Tokenizer)
	if err != nil {
		return err
	}

	// Open the history database before crawling so a storage problem
	// surfaces before any network traffic.
	var db *database.CrawlDB
	if cfg.SaveHistory {
		db, err = database.Open(cfg.HistoryDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("history database opened", "dir", cfg.HistoryDir)
	}

	engine := crawler.New(
		buildFetcher(cfg, hostCfg),
		tok,
		crawler.WithLogger(logger),
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithIgnorePatterns(hostCfg.IgnorePatterns),
		crawler.WithFollowPatterns(hostCfg.FollowPatterns),
	)

	fmt.Printf("Crawling %s...\n", seed)
	startTime := time.Now()

	crawlReport, crawlErr := engine.Crawl(ctx, cfg.StartURL)
	if crawlReport == nil {
		return crawlErr
	}

	elapsed := time.Since(startTime)
	if crawlReport.Interrupted {
		fmt.Printf("Crawl interrupted after %s, reporting partial results\n\n", elapsed.Round(time.Millisecond))
	} else {
		fmt.Printf("Crawl completed in %s\n\n", elapsed.Round(time.Millisecond))
	}

	// The report is always emitted, even for an interrupted crawl.
	if err := outputReport(cfg, crawlReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.SaveIndex {
		if err := saveIndex(cfg, crawlReport); err != nil {
			return fmt.Errorf("failed to save index: %w", err)
		}
		fmt.Printf("Token index saved to %s\n", cfg.IndexFile)
	}

	if db != nil {
		runID, err := db.SaveRun(ctx, crawlReport)
		if err != nil {
			logger.Error("failed to record crawl run", "error", err)
		} else {
			logger.Info("crawl run recorded", "runID", runID)
		}
	}

	// A cancelled crawl still produced a valid partial report; the
	// shutdown itself is not a failure.
	if crawlErr != nil && !errors.Is(crawlErr, context.Canceled) {
		return crawlErr
	}
	return nil
}

// getHostConfig returns the host-specific configuration for the seed URL.
// Falls back to defaults if no host-specific config exists.
func getHostConfig(cfg *config.Config, seed string) config.HostConfig {
	if cfg.HostConfigs == nil {
		return config.HostConfig{}
	}

	u, err := url.Parse(seed)
	if err != nil {
		return cfg.HostConfigs.Defaults
	}
	return cfg.HostConfigs.GetHostConfig(u.Hostname())
}

// buildFetcher constructs the HTTP fetcher from the crawl and host
// configuration.
func buildFetcher(cfg *config.Config, hostCfg config.HostConfig) fetcher.Fetcher {
	opts := []fetcher.Option{
		fetcher.WithTimeout(cfg.Timeout),
		fetcher.WithUserAgent(cfg.UserAgent),
	}
	if cfg.MaxBodySize > 0 {
		opts = append(opts, fetcher.WithMaxBodySize(cfg.MaxBodySize))
	}

	headers := make(map[string]string, len(hostCfg.Headers)+1)
	for k, v := range hostCfg.Headers {
		headers[k] = v
	}
	if hostCfg.Cookie != "" {
		headers["Cookie"] = hostCfg.Cookie
	}
	if len(headers) > 0 {
		opts = append(opts, fetcher.WithHeaders(headers))
	}

	return fetcher.NewHTTPFetcher(opts...)
}

// outputReport outputs the crawl report in the requested format.
func outputReport(cfg *config.Config, crawlReport *model.CrawlReport) error {
	output, closeFn, err := openOutput(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeFn()

	// JSON output (full report with all data)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(crawlReport)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(crawlReport)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err = writer.Write(crawlReport)
	return err
}

// saveIndex writes the token index artifact to cfg.IndexFile.
func saveIndex(cfg *config.Config, crawlReport *model.CrawlReport) error {
	output, closeFn, err := openOutput(cfg.IndexFile)
	if err != nil {
		return err
	}
	defer closeFn()

	_, err = report.NewJSONWriter(output).WriteIndex(crawlReport)
	return err
}

// openOutput opens the report destination: the given file path, or
// stdout when path is empty. The returned func closes the destination.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
