package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/wikiextract/internal/config"
	"github.com/nao1215/wikiextract/internal/corpus"
	"github.com/nao1215/wikiextract/internal/log"
	"github.com/nao1215/wikiextract/internal/model"
	"github.com/nao1215/wikiextract/internal/pipeline"
	"github.com/nao1215/wikiextract/internal/wikitext"
	"github.com/spf13/cobra"
)

// cleanedSuffix is appended to the input file name for the default output.
const cleanedSuffix = "_cleaned"

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the parsed text columns of a corpus file",
		Long: `Clean removes leftover template markup from already-parsed text columns
and writes a new parquet file.

Columns whose names end in _paragraphs or _parsed are cleaned; the rest of
the file is copied unchanged. Cleaning strips unresolved {{...}} templates,
collapses the whitespace this leaves behind, and normalizes the text to
Unicode NFC form unless --normalize=false.

Examples:
  # Clean a parsed corpus file
  wikiextract clean -i data/wiki_sample_parsed.parquet

  # Keep the original Unicode form
  wikiextract clean -i data/wiki_sample_parsed.parquet --normalize=false`,
		RunE: runCleanCmd,
	}

	cmd.Flags().StringP("input", "i", "",
		"Parsed parquet file to clean (required)")
	cmd.Flags().StringP("output", "o", "",
		"Output parquet file path (default: input name with _cleaned suffix)")
	cmd.Flags().Bool("normalize", true,
		"Normalize cleaned text to Unicode NFC form")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wikiextract.yml in current or config directory)")

	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, _ []string) error {
	// Build config from flags
	cfg, err := buildPipelineConfig(cmd)
	if err != nil {
		return err
	}

	cfg.Normalize, err = cmd.Flags().GetBool("normalize")
	if err != nil {
		return err
	}

	applySourceOverrides(cmd, cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runClean(ctx, cfg, cmd.OutOrStdout(), logger)
}

// runClean executes the clean run.
func runClean(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	table, err := corpus.OpenTable(cfg.InputFile)
	if err != nil {
		return err
	}
	defer table.Close()

	columns := corpus.DetectParsedColumns(table)
	if len(columns) == 0 {
		return fmt.Errorf("%w: no parsed text columns in %s", corpus.ErrNoTextColumn, cfg.InputFile)
	}

	rewriter, err := corpus.NewRewriter(table, columns, nil)
	if err != nil {
		return err
	}

	logger.Info("cleaning corpus",
		"file", cfg.InputFile,
		"rows", table.NumRows(),
		"columns", columns,
		"concurrency", cfg.Concurrency,
	)

	records, err := table.ReadAllRows(ctx)
	if err != nil {
		return err
	}

	docs := buildDocuments(table, records, columns, true)

	cleaner := wikitext.NewCleaner(wikitext.WithNormalization(cfg.Normalize))
	factory := func() *pipeline.Pipeline {
		p := pipeline.New(
			pipeline.WithLogger(logger),
			pipeline.WithContinueOnError(true),
		)
		p.AddStep(pipeline.NewCleanStep(cleaner, pipeline.WithCleanLogger(logger)))
		return p
	}

	run := model.NewRunRecord("clean", cfg.InputFile)

	bp := pipeline.NewBatchProcessor(factory,
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
		pipeline.WithProgressEvery(cfg.ProgressEvery),
	)
	stats, err := bp.ProcessBatch(ctx, docs)
	if err != nil {
		run.ErrorMessage = err.Error()
		run.Finish()
		recordRun(cfg, run, logger)
		return err
	}

	outPath := cfg.OutputFile
	if outPath == "" {
		outPath = derivedOutputPath(cfg.InputFile, cleanedSuffix)
	}

	if err := writeRewritten(rewriter, records, docs, columns, outPath); err != nil {
		run.ErrorMessage = err.Error()
		run.Finish()
		recordRun(cfg, run, logger)
		return err
	}

	// Count per-column changes by comparing the cleaned text against the
	// still-loaded input records.
	changed := make(map[string]int, len(columns))
	for row, rec := range records {
		for i, column := range columns {
			doc := docs[row*len(columns)+i]
			if doc.Null {
				continue
			}
			before, err := rec.Display(column)
			if err != nil {
				continue
			}
			if doc.Text != before {
				changed[column]++
			}
		}
	}

	run.Rows = len(records)
	run.Skipped = stats.Skipped
	run.TimedOut = stats.TimedOut
	run.OutputFile = outPath
	run.Finish()
	recordRun(cfg, run, logger)

	fmt.Fprintf(stdout, "Cleaned %s\n", cfg.InputFile)
	for _, column := range columns {
		fmt.Fprintf(stdout, "  %s: %d of %d rows changed\n", column, changed[column], len(records))
	}
	fmt.Fprintf(stdout, "\nOutput written to %s\n", outPath)

	return nil
}
