package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/wikiextract/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/wikiextract.yml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new wikiextract configuration file",
		Long: `Init creates a new .wikiextract.yml configuration file in the XDG config
directory.

The generated file includes:
- Default settings for parse timeouts and concurrency
- Commented examples for per-corpus-file configurations
- Documentation for all available options

Examples:
  # Create the config file in the XDG config directory
  wikiextract init

  # Create the config file in the current directory
  wikiextract init -o .wikiextract.yml

  # Force overwrite existing file
  wikiextract init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", filepath.Join(config.XDGConfigDir(), config.DefaultConfigFile),
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/wikiextract.yml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write configuration file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure per-corpus-file settings such as:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Parse timeout and concurrency")
	fmt.Fprintln(cmd.OutOrStdout(), "  - The wikitext column to parse")
	fmt.Fprintln(cmd.OutOrStdout(), "  - List handling and Unicode normalization")

	return nil
}
