package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/nao1215/wikiextract/internal/config"
	"github.com/nao1215/wikiextract/internal/corpus"
	"github.com/nao1215/wikiextract/internal/database"
	"github.com/nao1215/wikiextract/internal/log"
	"github.com/nao1215/wikiextract/internal/model"
	"github.com/nao1215/wikiextract/internal/pipeline"
	"github.com/nao1215/wikiextract/internal/wikitext"
	"github.com/segmentio/parquet-go"
	"github.com/spf13/cobra"
)

// NewParseCmd creates the parse command.
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse raw wikitext columns into plain paragraph text",
		Long: `Parse converts the wikitext columns of a corpus file into plain paragraph
text and writes a new parquet file.

Pair corpus files (official_text and clone_text) are parsed column-wise and
the text columns are renamed to official_text_paragraphs and
clone_text_paragraphs. For any other layout the text column is detected, or
chosen with --text-column, and renamed with a _parsed suffix. NULL text
stays NULL.

Examples:
  # Parse a pair corpus file
  wikiextract parse -i data/wiki_sample.parquet

  # Parse a specific column with a larger per-article budget
  wikiextract parse -i dump.parquet --text-column body_text -t 2m

  # Use a custom configuration file
  wikiextract parse -i data/wiki_sample.parquet -c myconfig.yml

Configuration file (.wikiextract.yml) example:
  defaults:
    timeoutSeconds: 60
  sources:
    wiki_sample.parquet:
      skipLists: true
    dump.parquet:
      textColumn: body_text`,
		RunE: runParseCmd,
	}

	cmd.Flags().StringP("input", "i", "",
		"Corpus parquet file to parse (required)")
	cmd.Flags().StringP("output", "o", "",
		"Output parquet file path (default: input name with _parsed suffix)")
	cmd.Flags().String("text-column", "",
		"Wikitext column to parse (default: auto-detect)")

	// Parse behavior flags
	cmd.Flags().Bool("skip-lists", false,
		"Drop list items instead of rendering them as paragraph text")
	cmd.Flags().DurationP("timeout", "t", config.DefaultParseTimeout,
		"Parse budget for each article")
	cmd.Flags().IntP("batch", "b", runtime.NumCPU(),
		"Number of articles parsed concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wikiextract.yml in current or config directory)")

	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runParseCmd executes the parse command.
func runParseCmd(cmd *cobra.Command, _ []string) error {
	// Build config from flags
	cfg, err := buildPipelineConfig(cmd)
	if err != nil {
		return err
	}

	cfg.TextColumn, err = cmd.Flags().GetString("text-column")
	if err != nil {
		return err
	}

	cfg.SkipLists, err = cmd.Flags().GetBool("skip-lists")
	if err != nil {
		return err
	}

	cfg.ParseTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("batch")
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

	return runParse(ctx, cfg, cmd.OutOrStdout(), logger)
}

// buildPipelineConfig reads the flags shared by the parse and clean
// commands into a fresh Config.
func buildPipelineConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.InputFile, err = cmd.Flags().GetString("input")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	cfg.Verbose = getVerboseFlag(cmd)

	if err := loadSourceConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadSourceConfig loads per-source settings from the configuration file.
// If user explicitly specified a config file path, error if not found.
// If no path specified, silently use empty config if no file found.
func loadSourceConfig(cfg *config.Config) error {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		sources, err := config.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Sources = sources
		return nil
	}

	if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Use empty config if no file found and user didn't explicitly specify one
	cfg.Sources = &config.File{
		Sources: make(map[string]config.SourceConfig),
	}
	return nil
}

// applySourceOverrides applies per-source settings from the configuration
// file for every flag the user did not set explicitly. Command line flags
// win over the file.
func applySourceOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cfg.Sources == nil || cfg.InputFile == "" {
		return
	}
	src := cfg.Sources.GetSourceConfig(cfg.InputFile)

	if src.TextColumn != "" && !cmd.Flags().Changed("text-column") {
		cfg.TextColumn = src.TextColumn
	}
	if src.TimeoutSeconds > 0 && !cmd.Flags().Changed("timeout") {
		cfg.ParseTimeout = time.Duration(src.TimeoutSeconds) * time.Second
	}
	if src.Concurrency > 0 && !cmd.Flags().Changed("batch") {
		cfg.Concurrency = src.Concurrency
	}
	if src.SkipLists != nil && !cmd.Flags().Changed("skip-lists") {
		cfg.SkipLists = *src.SkipLists
	}
	if src.Normalize != nil && !cmd.Flags().Changed("normalize") {
		cfg.Normalize = *src.Normalize
	}
	if src.History != nil && !cmd.Flags().Changed("no-history") {
		cfg.SaveHistory = *src.History
	}
}

// runParse executes the parse run.
func runParse(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	table, err := corpus.OpenTable(cfg.InputFile)
	if err != nil {
		return err
	}
	defer table.Close()

	columns, renames, err := parseTargets(table, cfg.TextColumn)
	if err != nil {
		return err
	}

	rewriter, err := corpus.NewRewriter(table, columns, renames)
	if err != nil {
		return err
	}

	logger.Info("parsing corpus",
		"file", cfg.InputFile,
		"rows", table.NumRows(),
		"columns", columns,
		"concurrency", cfg.Concurrency,
	)

	records, err := table.ReadAllRows(ctx)
	if err != nil {
		return err
	}

	docs := buildDocuments(table, records, columns, false)

	parser := wikitext.NewParser(
		wikitext.WithSkipLists(cfg.SkipLists),
		wikitext.WithLogger(logger),
	)
	factory := func() *pipeline.Pipeline {
		p := pipeline.New(
			pipeline.WithLogger(logger),
			pipeline.WithContinueOnError(true),
		)
		p.AddStep(pipeline.NewParseStep(parser,
			pipeline.WithParseTimeout(cfg.ParseTimeout),
			pipeline.WithParseLogger(logger),
		))
		return p
	}

	run := model.NewRunRecord("parse", cfg.InputFile)
	startTime := time.Now()

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
		outPath = derivedOutputPath(cfg.InputFile, corpus.ParsedSuffix)
	}

	if err := writeRewritten(rewriter, records, docs, columns, outPath); err != nil {
		run.ErrorMessage = err.Error()
		run.Finish()
		recordRun(cfg, run, logger)
		return err
	}

	run.Rows = len(records)
	run.Skipped = stats.Skipped
	run.TimedOut = stats.TimedOut
	run.OutputFile = outPath
	run.Finish()
	recordRun(cfg, run, logger)

	elapsed := time.Since(startTime)
	fmt.Fprintf(stdout, "Parsed %s\n", cfg.InputFile)
	fmt.Fprintf(stdout, "  rows processed: %d\n", len(records))
	fmt.Fprintf(stdout, "  skipped:        %d\n", stats.Skipped)
	fmt.Fprintf(stdout, "  timed out:      %d\n", stats.TimedOut)
	fmt.Fprintf(stdout, "  elapsed:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(stdout, "\nOutput written to %s\n", outPath)

	return nil
}

// parseTargets returns the text columns to parse and the renames for the
// output schema. An explicit override always names a single column, even
// on pair corpus files.
func parseTargets(table *corpus.Table, override string) ([]string, map[string]string, error) {
	if override == "" && corpus.IsPairLayout(table) {
		columns := []string{corpus.ColumnOfficialText, corpus.ColumnCloneText}
		renames := map[string]string{
			corpus.ColumnOfficialText: corpus.ColumnOfficialParagraphs,
			corpus.ColumnCloneText:    corpus.ColumnCloneParagraphs,
		}
		return columns, renames, nil
	}

	column := override
	if column == "" {
		detected, ok := corpus.DetectTextColumn(table)
		if !ok {
			return nil, nil, fmt.Errorf("%w in %s (use --text-column)", corpus.ErrNoTextColumn, table.Path())
		}
		column = detected
	} else if !table.HasColumn(column) {
		return nil, nil, fmt.Errorf("%w: %q in %s", corpus.ErrColumnNotFound, column, table.Path())
	}

	renames := map[string]string{column: column + corpus.ParsedSuffix}
	return []string{column}, renames, nil
}

// buildDocuments creates one document per row and text column. Document
// order is row-major, so the document for row r and column c sits at
// r*len(columns)+c. With parsed set, the column value lands in Text
// instead of Wikitext for steps that work on already-parsed text.
func buildDocuments(table *corpus.Table, records []corpus.Record, columns []string, parsed bool) []*model.Document {
	idColumn, hasID := corpus.DetectPageIDColumn(table)
	titleColumn, hasTitle := corpus.DetectTitleColumn(table)

	docs := make([]*model.Document, 0, len(records)*len(columns))
	for row, rec := range records {
		for _, column := range columns {
			doc := model.NewDocument(row, column)
			if hasID && !rec.IsNull(idColumn) {
				if s, err := rec.Display(idColumn); err == nil {
					doc.PageID = s
				}
			}
			if hasTitle && !rec.IsNull(titleColumn) {
				if s, err := rec.Display(titleColumn); err == nil {
					doc.Title = s
				}
			}
			if rec.IsNull(column) {
				doc.Null = true
			} else if value, err := rec.Display(column); err == nil {
				if parsed {
					doc.Text = value
				} else {
					doc.Wikitext = value
				}
			}
			docs = append(docs, doc)
		}
	}
	return docs
}

// writeRewritten writes every record to path with the processed document
// text substituted into the renamed text columns.
func writeRewritten(rewriter *corpus.Rewriter, records []corpus.Record, docs []*model.Document, columns []string, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := parquet.NewWriter(f, rewriter.Schema())
	for row, rec := range records {
		replacements := make(map[string]*string, len(columns))
		for i, column := range columns {
			doc := docs[row*len(columns)+i]
			if doc.Null {
				replacements[column] = nil
			} else {
				text := doc.Text
				replacements[column] = &text
			}
		}

		outRow, err := rewriter.Rewrite(rec, replacements)
		if err != nil {
			return err
		}
		if _, err := writer.WriteRows([]parquet.Row{outRow}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize output file: %w", err)
	}
	return nil
}

// derivedOutputPath inserts suffix between the file name and extension of
// input ("data/wiki.parquet" becomes "data/wiki_parsed.parquet").
func derivedOutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

// recordRun saves the run record to the history database, best effort.
// A fresh context is used so a cancelled run still gets recorded.
func recordRun(cfg *config.Config, run *model.RunRecord, logger *slog.Logger) {
	if !cfg.SaveHistory {
		return
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		return
	}
	defer db.Close()

	if err := db.SaveRun(context.Background(), run); err != nil {
		logger.Warn("failed to record run", "runID", run.ID, "error", err)
	}
}
