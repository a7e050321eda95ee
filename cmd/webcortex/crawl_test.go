package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/webcortex/webcortex/internal/config"
	"github.com/webcortex/webcortex/internal/model"
	"github.com/webcortex/webcortex/internal/report"
)

// TestNewCrawlCmd tests the crawl command creation.
func TestNewCrawlCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCrawlCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "crawl <start-url>" {
			t.Errorf("expected use 'crawl <start-url>', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		t.Parallel()
		if cmd.Args == nil {
			t.Error("expected Args validator")
		}
	})

	t.Run("has max-pages flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("max-pages")
		if flag == nil {
			t.Fatal("expected max-pages flag")
		}
		if flag.Shorthand != "p" {
			t.Errorf("expected shorthand 'p', got %q", flag.Shorthand)
		}
		if flag.DefValue != "500" {
			t.Errorf("expected default '500', got %q", flag.DefValue)
		}
	})

	t.Run("has concurrent-tasks flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("concurrent-tasks")
		if flag == nil {
			t.Fatal("expected concurrent-tasks flag")
		}
		if flag.Shorthand != "n" {
			t.Errorf("expected shorthand 'n', got %q", flag.Shorthand)
		}
		if flag.DefValue != "10" {
			t.Errorf("expected default '10', got %q", flag.DefValue)
		}
	})

	t.Run("has save-index flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("save-index")
		if flag == nil {
			t.Fatal("expected save-index flag")
		}
		if flag.Shorthand != "s" {
			t.Errorf("expected shorthand 's', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has tokenizer flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("tokenizer")
		if flag == nil {
			t.Fatal("expected tokenizer flag")
		}
		if flag.DefValue != "auto" {
			t.Errorf("expected default 'auto', got %q", flag.DefValue)
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("config")
		if flag == nil {
			t.Fatal("expected config flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has report format flags", func(t *testing.T) {
		t.Parallel()
		for name, shorthand := range map[string]string{"json": "j", "markdown": "m", "output": "o"} {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Fatalf("expected %s flag", name)
			}
			if flag.Shorthand != shorthand {
				t.Errorf("expected shorthand %q for %s, got %q", shorthand, name, flag.Shorthand)
			}
		}
	})

	t.Run("has no-history flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("no-history") == nil {
			t.Fatal("expected no-history flag")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewCrawlCmd()
		if getVerboseFlag(cmd) {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		_ = root.PersistentFlags().Set("verbose", "true")

		crawlCmd, _, err := root.Find([]string{"crawl"})
		if err != nil {
			t.Fatalf("failed to find crawl command: %v", err)
		}

		if !getVerboseFlag(crawlCmd) {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	t.Run("builds config with default values", func(t *testing.T) {
		cmd := NewCrawlCmd()
		cfg, err := buildConfig(cmd, []string{"http://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if cfg.StartURL != "http://example.com" {
			t.Errorf("expected start URL 'http://example.com', got %q", cfg.StartURL)
		}
		if cfg.MaxPages != config.DefaultMaxPages {
			t.Errorf("expected max pages %d, got %d", config.DefaultMaxPages, cfg.MaxPages)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", config.DefaultConcurrency, cfg.Concurrency)
		}
		if !cfg.SaveHistory {
			t.Error("expected SaveHistory to default to true")
		}
	})

	t.Run("builds config with custom page budget", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("max-pages", "50")
		cfg, err := buildConfig(cmd, []string{"http://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.MaxPages != 50 {
			t.Errorf("expected MaxPages 50, got %d", cfg.MaxPages)
		}
	})

	t.Run("builds config with custom concurrency", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("concurrent-tasks", "4")
		cfg, err := buildConfig(cmd, []string{"http://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Concurrency != 4 {
			t.Errorf("expected Concurrency 4, got %d", cfg.Concurrency)
		}
	})

	t.Run("builds config with save-index", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("save-index", "true")
		_ = cmd.Flags().Set("index-file", "out/index.json")
		cfg, err := buildConfig(cmd, []string{"http://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.SaveIndex {
			t.Error("expected SaveIndex to be true")
		}
		if cfg.IndexFile != "out/index.json" {
			t.Errorf("expected IndexFile 'out/index.json', got %q", cfg.IndexFile)
		}
	})

	t.Run("builds config with timeout", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("timeout", "30s")
		cfg, err := buildConfig(cmd, []string{"http://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("builds config with JSON flag", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("json", "true")
		cfg, err := buildConfig(cmd, []string{"http://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.JSONReport {
			t.Error("expected JSONReport to be true")
		}
	})

	t.Run("no-history disables history", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("no-history", "true")
		cfg, err := buildConfig(cmd, []string{"http://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.SaveHistory {
			t.Error("expected SaveHistory to be false")
		}
	})

	t.Run("builds config with valid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "webcortex.yml")

		content := []byte(`
defaults:
  ignorePatterns:
    - "/logout"
hosts:
  example.com:
    cookie: session=xyz
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("config", configPath)
		cfg, err := buildConfig(cmd, []string{"http://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.HostConfigs == nil {
			t.Fatal("expected HostConfigs to be loaded")
		}
		hostCfg := cfg.HostConfigs.GetHostConfig("example.com")
		if hostCfg.Cookie != "session=xyz" {
			t.Errorf("expected cookie 'session=xyz', got %q", hostCfg.Cookie)
		}
	})

	t.Run("returns error for invalid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yml")

		if err := os.WriteFile(configPath, []byte(`{invalid yaml`), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("config", configPath)
		if _, err := buildConfig(cmd, []string{"http://example.com"}); err == nil {
			t.Fatal("expected error for invalid config file")
		}
	})

	t.Run("returns error for missing explicit config file", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("config", filepath.Join(t.TempDir(), "no-such-file"))
		if _, err := buildConfig(cmd, []string{"http://example.com"}); err == nil {
			t.Fatal("expected error for missing explicit config file")
		}
	})

	t.Run("builds config with output file", func(t *testing.T) {
		cmd := NewCrawlCmd()
		_ = cmd.Flags().Set("output", "/tmp/report.json")
		cfg, err := buildConfig(cmd, []string{"http://example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.ReportFile != "/tmp/report.json" {
			t.Errorf("expected ReportFile '/tmp/report.json', got %q", cfg.ReportFile)
		}
	})
}

// TestGetHostConfig tests host configuration retrieval for the seed.
func TestGetHostConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns empty config for nil HostConfigs", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{HostConfigs: nil}
		result := getHostConfig(cfg, "http://example.com/")
		if result.Cookie != "" {
			t.Error("expected empty cookie")
		}
	})

	t.Run("returns merged config for configured host", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{
			HostConfigs: &config.File{
				Hosts: map[string]config.HostConfig{
					"example.com": {Cookie: "session=abc"},
				},
				Defaults: config.HostConfig{
					IgnorePatterns: []string{"/logout"},
				},
			},
		}

		result := getHostConfig(cfg, "http://example.com/")
		if result.Cookie != "session=abc" {
			t.Errorf("expected cookie 'session=abc', got %q", result.Cookie)
		}
		if len(result.IgnorePatterns) != 1 || result.IgnorePatterns[0] != "/logout" {
			t.Errorf("expected default ignore patterns, got %v", result.IgnorePatterns)
		}
	})

	t.Run("falls back to defaults for unknown host", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{
			HostConfigs: &config.File{
				Hosts: map[string]config.HostConfig{},
				Defaults: config.HostConfig{
					IgnorePatterns: []string{"/admin/*"},
				},
			},
		}

		result := getHostConfig(cfg, "http://other.example.com/")
		if len(result.IgnorePatterns) != 1 {
			t.Errorf("expected default patterns, got %v", result.IgnorePatterns)
		}
	})
}

// TestBuildFetcher tests fetcher construction from configuration.
func TestBuildFetcher(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Timeout = 5 * time.Second

	f := buildFetcher(cfg, config.HostConfig{
		Cookie:  "session=abc",
		Headers: map[string]string{"Authorization": "Bearer token"},
	})
	if f == nil {
		t.Fatal("expected non-nil fetcher")
	}
}

// TestOutputReport tests report emission in the supported formats.
func TestOutputReport(t *testing.T) {
	makeReport := func() *model.CrawlReport {
		start := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
		return &model.CrawlReport{
			Seed: "http://example.com/",
			Stats: model.CrawlStats{
				StartTime:   start,
				EndTime:     start.Add(time.Second),
				Documents:   1,
				Tokens:      3,
				UniqueTerms: 2,
			},
			Index: map[string]int{"alpha": 2, "beta": 1},
			Pages: []model.Document{
				{URL: "http://example.com/", Title: "Home", TokenCount: 3},
			},
		}
	}

	t.Run("writes simple report to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.txt")
		cfg := config.NewConfig()
		cfg.ReportFile = path

		if err := outputReport(cfg, makeReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "WEBCORTEX CRAWL REPORT") {
			t.Error("expected simple report header")
		}
	})

	t.Run("writes JSON report to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "report.json")
		cfg := config.NewConfig()
		cfg.ReportFile = path
		cfg.JSONReport = true

		if err := outputReport(cfg, makeReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		var parsed report.JSONReport
		if err := json.Unmarshal(content, &parsed); err != nil {
			t.Fatalf("report is not valid JSON: %v", err)
		}
		if parsed.Report == nil || parsed.Report.Seed != "http://example.com/" {
			t.Error("expected report payload with seed")
		}
	})

	t.Run("writes markdown report to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.md")
		cfg := config.NewConfig()
		cfg.ReportFile = path
		cfg.MarkdownReport = true

		if err := outputReport(cfg, makeReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "#") {
			t.Error("expected markdown headings")
		}
	})

	t.Run("saves index artifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.json")
		cfg := config.NewConfig()
		cfg.IndexFile = path

		if err := saveIndex(cfg, makeReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read index: %v", err)
		}
		var export report.IndexExport
		if err := json.Unmarshal(content, &export); err != nil {
			t.Fatalf("index is not valid JSON: %v", err)
		}
		if export.Index["alpha"] != 2 {
			t.Errorf("unexpected index content: %v", export.Index)
		}
	})
}
