package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/wikiextract/internal/config"
	"github.com/nao1215/wikiextract/internal/corpus"
	"github.com/nao1215/wikiextract/internal/log"
	"github.com/nao1215/wikiextract/internal/model"
	"github.com/nao1215/wikiextract/internal/report"
	"github.com/spf13/cobra"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <parquet_file> <page_id>",
		Short: "Extract a single article from a corpus file",
		Long: `Extract looks up one article by page ID and prints it.

The report shows the page ID, title, the character lengths of the official
and clone text, and a preview of the official article text. NULL values are
shown as "None".

Examples:
  # Show the article with page ID 12345
  wikiextract extract data/wiki_sample.parquet 12345

  # Show the clone text as well
  wikiextract extract --clone data/wiki_sample.parquet 12345

  # JSON report written to a file
  wikiextract extract -j -o report.json data/wiki_sample.parquet 12345`,
		Args: cobra.ArbitraryArgs,
		RunE: runExtractCmd,
	}

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("summary", "s", false,
		"Print the header summary without the article text")
	cmd.Flags().Bool("clone", false,
		"Include the clone article text in the report")

	return cmd
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, args []string) error {
	// The usage line goes to stdout so scripted callers see it on the
	// stream they capture.
	if len(args) < 2 {
		fmt.Fprintln(cmd.OutOrStdout(), "Usage: wikiextract extract <parquet_file> <page_id>")
		return errReported
	}

	// Build config from flags
	cfg, err := buildExtractConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runExtract(ctx, cfg, cmd.OutOrStdout(), logger)
}

// buildExtractConfig creates a Config from cobra command flags.
func buildExtractConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.InputFile = args[0]
	cfg.PageID = args[1]

	// Get flag values
	var err error

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Summary, err = cmd.Flags().GetBool("summary")
	if err != nil {
		return nil, err
	}

	cfg.ShowClone, err = cmd.Flags().GetBool("clone")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// runExtract looks up the article and writes the report.
func runExtract(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	table, err := corpus.OpenTable(cfg.InputFile)
	if err != nil {
		return err
	}
	defer table.Close()

	idColumn, ok := corpus.DetectPageIDColumn(table)
	if !ok {
		return fmt.Errorf("%w: no page ID column in %s", corpus.ErrColumnNotFound, cfg.InputFile)
	}

	logger.Debug("looking up article",
		"file", cfg.InputFile,
		"idColumn", idColumn,
		"pageID", cfg.PageID,
	)

	rec, err := table.FindFirst(ctx, idColumn, cfg.PageID)
	if err != nil {
		if errors.Is(err, corpus.ErrPageNotFound) {
			// The not-found message is part of the report, not an error
			// stream concern.
			fmt.Fprintf(stdout, "Page ID %s not found\n", cfg.PageID)
			return errReported
		}
		return err
	}

	article, err := rec.ToArticle()
	if err != nil {
		return err
	}

	return writeReport(cfg, stdout, article)
}

// newReportWriter selects the report format from the configuration.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output, report.WithMarkdownPreviewLimit(cfg.PreviewLimit))
	default:
		return report.NewPlainWriter(output,
			report.WithPreviewLimit(cfg.PreviewLimit),
			report.WithCloneText(cfg.ShowClone),
		)
	}
}

// writeReport writes the article report to the configured destination.
func writeReport(cfg *config.Config, stdout io.Writer, article *model.Article) error {
	// Determine output destination
	output := stdout
	if cfg.OutputFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writer := newReportWriter(cfg, output)
	if cfg.Summary {
		_, err := writer.WriteSummary(article)
		return err
	}
	_, err := writer.Write(article)
	return err
}
