package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/wikiextract/internal/config"
	"github.com/nao1215/wikiextract/internal/corpus"
	"github.com/nao1215/wikiextract/internal/log"
	"github.com/nao1215/wikiextract/internal/model"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <parsed.parquet> [official_dir] [clone_dir]",
		Short: "Export article text to per-page files",
		Long: `Export writes the official and clone text of every article to individual
text files, one file per page and side.

Files are named <page_id>_official.txt and <page_id>_clone.txt and carry a
small header with the page ID and title. Files that already exist are
skipped, so an interrupted export can be re-run and picks up where it
stopped. Parsed paragraph columns are preferred over raw text columns.

Examples:
  # Export to the default directories under data/parsed_export
  wikiextract export data/wiki_sample_parsed.parquet

  # Export to custom directories
  wikiextract export data/wiki_sample_parsed.parquet out/official out/clone`,
		Args: cobra.RangeArgs(1, 3),
		RunE: runExportCmd,
	}

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wikiextract.yml in current or config directory)")

	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildExportConfig(cmd, args)
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

	officialDir := filepath.Join(cfg.ExportDir, "official")
	cloneDir := filepath.Join(cfg.ExportDir, "clone")
	if len(args) > 1 {
		officialDir = args[1]
	}
	if len(args) > 2 {
		cloneDir = args[2]
	}

	return runExport(ctx, cfg, officialDir, cloneDir, cmd.OutOrStdout(), logger)
}

// buildExportConfig creates a Config from cobra command flags.
func buildExportConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.InputFile = args[0]

	// Get flag values
	var err error

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

// exportSide tracks one output directory of the export run.
type exportSide struct {
	name    string
	column  string
	dir     string
	suffix  string
	written int
	skipped int
	empty   int
}

// runExport executes the export run.
func runExport(ctx context.Context, cfg *config.Config, officialDir, cloneDir string, stdout io.Writer, logger *slog.Logger) error {
	table, err := corpus.OpenTable(cfg.InputFile)
	if err != nil {
		return err
	}
	defer table.Close()

	var sides []*exportSide
	if column, ok := pickExportColumn(table, corpus.ColumnOfficialParagraphs, corpus.ColumnOfficialText); ok {
		sides = append(sides, &exportSide{name: "official", column: column, dir: officialDir, suffix: "_official.txt"})
	}
	if column, ok := pickExportColumn(table, corpus.ColumnCloneParagraphs, corpus.ColumnCloneText); ok {
		sides = append(sides, &exportSide{name: "clone", column: column, dir: cloneDir, suffix: "_clone.txt"})
	}
	if len(sides) == 0 {
		return fmt.Errorf("%w: no official or clone text columns in %s", corpus.ErrNoTextColumn, cfg.InputFile)
	}

	idColumn, ok := corpus.DetectPageIDColumn(table)
	if !ok {
		return fmt.Errorf("%w: no page ID column in %s", corpus.ErrColumnNotFound, cfg.InputFile)
	}
	titleColumn, hasTitle := corpus.DetectTitleColumn(table)

	for _, side := range sides {
		if err := os.MkdirAll(side.dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	logger.Info("exporting corpus",
		"file", cfg.InputFile,
		"rows", table.NumRows(),
		"sides", len(sides),
	)

	run := model.NewRunRecord("export", cfg.InputFile)

	err = table.Scan(ctx, func(row int64, rec corpus.Record) (bool, error) {
		pageID, err := rec.Display(idColumn)
		if err != nil {
			return true, fmt.Errorf("failed to read page ID of row %d: %w", row, err)
		}

		title := model.NullDisplay
		if hasTitle {
			if s, err := rec.Display(titleColumn); err == nil {
				title = s
			}
		}

		for _, side := range sides {
			if rec.IsNull(side.column) {
				side.empty++
				continue
			}
			text, err := rec.Display(side.column)
			if err != nil || text == "" {
				side.empty++
				continue
			}

			path := filepath.Join(side.dir, pageID+side.suffix)
			if _, err := os.Stat(path); err == nil {
				side.skipped++
				continue
			}

			content := "Page ID: " + pageID + "\nTitle: " + title + "\n" +
				strings.Repeat("=", 60) + "\n\n" + text
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				return true, fmt.Errorf("failed to write %s: %w", path, err)
			}
			side.written++
		}
		return false, nil
	})
	if err != nil {
		run.ErrorMessage = err.Error()
		run.Finish()
		recordRun(cfg, run, logger)
		return err
	}

	run.Rows = int(table.NumRows())
	switch {
	case len(sides) == 1:
		run.OutputFile = sides[0].dir
	case filepath.Dir(officialDir) == filepath.Dir(cloneDir):
		run.OutputFile = filepath.Dir(officialDir)
	default:
		run.OutputFile = officialDir + ", " + cloneDir
	}
	run.Finish()
	recordRun(cfg, run, logger)

	fmt.Fprintf(stdout, "Exported %s\n", cfg.InputFile)
	for _, side := range sides {
		fmt.Fprintf(stdout, "  %-9s %d written, %d skipped, %d empty -> %s\n",
			side.name+":", side.written, side.skipped, side.empty, side.dir)
	}

	return nil
}

// pickExportColumn returns the parsed paragraph column when present,
// falling back to the raw text column.
func pickExportColumn(table *corpus.Table, preferred, fallback string) (string, bool) {
	if table.HasColumn(preferred) {
		return preferred, true
	}
	if table.HasColumn(fallback) {
		return fallback, true
	}
	return "", false
}
