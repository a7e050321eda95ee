package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/webcortex/webcortex/internal/config"
)

// configTemplate is the annotated starter configuration written by the
// init command.
const configTemplate = `# WebCortex configuration file
#
# Host-specific crawl settings. The crawl command looks up the seed's
# hostname in the hosts map; unlisted hosts fall back to the defaults
# section.
#
# Place this file as .webcortex in your working directory or home
# directory, or pass it explicitly with --config.

hosts:
  # example.com:
  #   # Cookie header sent with every request to this host
  #   cookie: "session_id=abc123"
  #
  #   # Extra HTTP headers
  #   headers:
  #     Authorization: "Bearer your-token"
  #
  #   # URL path patterns to skip (glob syntax; /admin/* matches the
  #   # whole subtree, *.pdf matches by extension)
  #   ignorePatterns:
  #     - "/admin/*"
  #     - "/logout"
  #     - "*.pdf"
  #
  #   # If set, only matching paths are followed
  #   followPatterns:
  #     - "/docs/*"

defaults:
  ignorePatterns:
    - "/logout"
`

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter configuration file",
		Long: `Init writes an annotated starter configuration file with commented-out
examples of host-specific settings (cookies, headers, URL patterns).

Examples:
  # Create .webcortex in the current directory
  webcortex init

  # Create a config file at a custom location
  webcortex init --output config/crawl.yml`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output path for the generated configuration file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite the file if it already exists")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", output)
		}
	}

	if dir := filepath.Dir(output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(output, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", output)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit it to add host-specific cookies, headers, and URL patterns.")
	return nil
}
