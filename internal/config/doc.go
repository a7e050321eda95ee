// Package config provides configuration structures and utilities for
// WebCortex. It defines the crawl options (seed URL, page budget, worker
// count, timeouts), report generation preferences, and per-host settings
// loaded from the .webcortex YAML file.
package config
