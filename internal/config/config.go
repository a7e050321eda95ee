package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the CLI flag defaults so that a Config constructed in code
// behaves the same as one parsed from a bare command line.
const (
	// DefaultTimeout applies per HTTP request. 10 seconds is generous for
	// ordinary web servers while keeping a stalled host from pinning a
	// worker for long.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxPages is the page budget per crawl. This bounds the total
	// number of URLs ever handed to workers, preventing runaway crawls on
	// large or infinitely-generating sites.
	DefaultMaxPages = 500

	// DefaultConcurrency is the number of crawl workers. Ten concurrent
	// requests is enough to keep the pipeline busy without hammering a
	// single host.
	DefaultConcurrency = 10

	// DefaultTokenizer selects the tokenizer variant. "auto" prefers the
	// word-segmentation tokenizer and falls back to the regex tokenizer.
	DefaultTokenizer = "auto"

	// DefaultIndexFile is the file the token index is exported to when
	// --save-index is set.
	DefaultIndexFile = "webcortex_index.json"

	// AppName is the application name used for XDG directory paths.
	AppName = "webcortex"

	// DefaultUserAgent identifies WebCortex in HTTP requests.
	// A descriptive User-Agent lets site operators identify crawler
	// traffic in their logs.
	DefaultUserAgent = "WebCortex/1.0 (+https://github.com/webcortex/webcortex)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for most HTML pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Config holds all configuration options for WebCortex.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// StartURL is the seed URL the crawl begins from.
	// Must be an absolute http or https URL.
	StartURL string

	// MaxPages is the page budget: the maximum number of URLs released
	// to workers over the whole crawl. A value of 0 means use the
	// default (DefaultMaxPages).
	MaxPages int

	// Concurrency is the number of concurrent crawl workers.
	Concurrency int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Tokenizer selects the tokenizer variant: "auto", "words", or "regex".
	Tokenizer string

	// SaveIndex enables exporting the final token index to IndexFile.
	SaveIndex bool

	// IndexFile is the path the token index is written to when SaveIndex
	// is set.
	IndexFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .webcortex in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// HostConfigs holds host-specific configurations loaded from the
	// config file. This is populated by LoadConfigFile and used when
	// building the fetcher and link filters.
	HostConfigs *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// HistoryDir is the directory path for storing the SQLite database of
	// past crawl runs. Defaults to the XDG data directory
	// (~/.local/share/webcortex on Linux).
	HistoryDir string

	// SaveHistory indicates whether to record the crawl run in the
	// history database.
	SaveHistory bool

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated. Set to 0 to use the
	// default (5MB).
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, budget).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		MaxPages:    DefaultMaxPages,
		Concurrency: DefaultConcurrency,
		Tokenizer:   DefaultTokenizer,
		IndexFile:   DefaultIndexFile,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		SaveHistory: true,
	}
}

// XDGDataDir returns the XDG data directory for WebCortex.
// On Linux: ~/.local/share/webcortex
// On macOS: ~/Library/Application Support/webcortex
// On Windows: %LOCALAPPDATA%\webcortex
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for WebCortex.
// On Linux: ~/.config/webcortex
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for WebCortex.
// On Linux: ~/.cache/webcortex
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before the crawl begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return ErrNoStartURL
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// The page budget must be positive; zero would mean no crawling
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	// Concurrency must be positive; zero workers would stall the crawl
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// MaxBodySize must be non-negative; 0 means use the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
