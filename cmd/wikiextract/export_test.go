package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/wikiextract/internal/config"
	"github.com/nao1215/wikiextract/internal/corpus"
	"github.com/nao1215/wikiextract/internal/database"
	"github.com/nao1215/wikiextract/internal/log"
)

// TestNewExportCmd tests the export command creation.
func TestNewExportCmd(t *testing.T) {
	t.Parallel()

	cmd := NewExportCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "export <parsed.parquet> [official_dir] [clone_dir]" {
			t.Errorf("unexpected use: %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
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

	t.Run("has no-history flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("no-history")
		if flag == nil {
			t.Fatal("expected no-history flag")
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})
}

// TestPickExportColumn tests export column selection.
func TestPickExportColumn(t *testing.T) {
	t.Parallel()

	openTable := func(t *testing.T, path string) *corpus.Table {
		t.Helper()
		table, err := corpus.OpenTable(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		t.Cleanup(func() { table.Close() }) //nolint:errcheck // test cleanup
		return table
	}

	t.Run("prefers the parsed paragraph column", func(t *testing.T) {
		t.Parallel()

		path := writeParquetFile(t, []parsedRow{{PageID: strPtr("1")}})
		table := openTable(t, path)

		column, ok := pickExportColumn(table, corpus.ColumnOfficialParagraphs, corpus.ColumnOfficialText)
		if !ok {
			t.Fatal("expected a column")
		}
		if column != "official_text_paragraphs" {
			t.Errorf("got %q, expected 'official_text_paragraphs'", column)
		}
	})

	t.Run("falls back to the raw text column", func(t *testing.T) {
		t.Parallel()

		path := writeParquetFile(t, []pairRow{{PageID: strPtr("1")}})
		table := openTable(t, path)

		column, ok := pickExportColumn(table, corpus.ColumnOfficialParagraphs, corpus.ColumnOfficialText)
		if !ok {
			t.Fatal("expected a column")
		}
		if column != "official_text" {
			t.Errorf("got %q, expected 'official_text'", column)
		}
	})

	t.Run("reports a missing column", func(t *testing.T) {
		t.Parallel()

		type bareRow struct {
			PageID int64 `parquet:"page_id"`
		}
		path := writeParquetFile(t, []bareRow{{PageID: 1}})
		table := openTable(t, path)

		if _, ok := pickExportColumn(table, corpus.ColumnOfficialParagraphs, corpus.ColumnOfficialText); ok {
			t.Error("expected no column")
		}
	})
}

// TestRunExport tests the export run end to end against fixture files.
func TestRunExport(t *testing.T) {
	t.Parallel()

	newExportConfig := func(t *testing.T, input string) *config.Config {
		t.Helper()
		cfg := config.NewConfig()
		cfg.InputFile = input
		cfg.DBDir = t.TempDir()
		return cfg
	}

	sampleParsed := func() []parsedRow {
		return []parsedRow{
			{
				PageID:             strPtr("101"),
				PageTitle:          strPtr("Москва"),
				OfficialParagraphs: strPtr("Официальный текст."),
				CloneParagraphs:    strPtr("Клонированный текст."),
			},
			{
				PageID:          strPtr("202"),
				PageTitle:       strPtr("Ленин"),
				CloneParagraphs: strPtr("Только клон."),
			},
		}
	}

	t.Run("writes one file per page and side", func(t *testing.T) {
		t.Parallel()

		path := writeParquetFile(t, sampleParsed())
		cfg := newExportConfig(t, path)
		base := t.TempDir()
		officialDir := filepath.Join(base, "official")
		cloneDir := filepath.Join(base, "clone")
		logger := log.NewLogger(io.Discard, false)

		var buf bytes.Buffer
		if err := runExport(context.Background(), cfg, officialDir, cloneDir, &buf, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(filepath.Join(officialDir, "101_official.txt"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Page ID: 101\nTitle: Москва\n" + strings.Repeat("=", 60) + "\n\nОфициальный текст."
		if string(content) != want {
			t.Errorf("got %q, expected %q", string(content), want)
		}

		for _, name := range []string{"101_clone.txt", "202_clone.txt"} {
			if _, err := os.Stat(filepath.Join(cloneDir, name)); err != nil {
				t.Errorf("expected %s: %v", name, err)
			}
		}
		if _, err := os.Stat(filepath.Join(officialDir, "202_official.txt")); err == nil {
			t.Error("did not expect a file for the NULL official text")
		}

		output := buf.String()
		if !strings.Contains(output, "Exported "+path) {
			t.Errorf("expected export summary, got %q", output)
		}
		if !strings.Contains(output, "official: 1 written, 0 skipped, 1 empty") {
			t.Errorf("expected official counts, got %q", output)
		}
		if !strings.Contains(output, "clone:    2 written, 0 skipped, 0 empty") {
			t.Errorf("expected clone counts, got %q", output)
		}
	})

	t.Run("skips files that already exist", func(t *testing.T) {
		t.Parallel()

		path := writeParquetFile(t, sampleParsed())
		cfg := newExportConfig(t, path)
		base := t.TempDir()
		officialDir := filepath.Join(base, "official")
		cloneDir := filepath.Join(base, "clone")
		logger := log.NewLogger(io.Discard, false)

		var first bytes.Buffer
		if err := runExport(context.Background(), cfg, officialDir, cloneDir, &first, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var second bytes.Buffer
		if err := runExport(context.Background(), cfg, officialDir, cloneDir, &second, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := second.String()
		if !strings.Contains(output, "official: 0 written, 1 skipped, 1 empty") {
			t.Errorf("expected skipped official counts, got %q", output)
		}
		if !strings.Contains(output, "clone:    0 written, 2 skipped, 0 empty") {
			t.Errorf("expected skipped clone counts, got %q", output)
		}
	})

	t.Run("uses None when the title column is missing", func(t *testing.T) {
		t.Parallel()

		type idTextRow struct {
			PageID       *string `parquet:"page_id,optional"`
			OfficialText *string `parquet:"official_text,optional"`
		}
		path := writeParquetFile(t, []idTextRow{{PageID: strPtr("7"), OfficialText: strPtr("Текст.")}})
		cfg := newExportConfig(t, path)
		base := t.TempDir()
		officialDir := filepath.Join(base, "official")
		cloneDir := filepath.Join(base, "clone")
		logger := log.NewLogger(io.Discard, false)

		var buf bytes.Buffer
		if err := runExport(context.Background(), cfg, officialDir, cloneDir, &buf, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(filepath.Join(officialDir, "7_official.txt"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(string(content), "Page ID: 7\nTitle: None\n") {
			t.Errorf("expected a None title header, got %q", string(content))
		}
	})

	t.Run("records the run in the history database", func(t *testing.T) {
		t.Parallel()

		path := writeParquetFile(t, sampleParsed())
		cfg := newExportConfig(t, path)
		base := t.TempDir()
		officialDir := filepath.Join(base, "official")
		cloneDir := filepath.Join(base, "clone")
		logger := log.NewLogger(io.Discard, false)

		var buf bytes.Buffer
		if err := runExport(context.Background(), cfg, officialDir, cloneDir, &buf, logger); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		run, err := db.LatestRun(context.Background(), "export")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run == nil {
			t.Fatal("expected a recorded run")
		}
		if run.Rows != 2 {
			t.Errorf("got %d rows, expected 2", run.Rows)
		}
		if run.OutputFile != base {
			t.Errorf("got output %q, expected %q", run.OutputFile, base)
		}
	})

	t.Run("rejects a file without text columns", func(t *testing.T) {
		t.Parallel()

		type bareRow struct {
			PageID int64 `parquet:"page_id"`
		}
		path := writeParquetFile(t, []bareRow{{PageID: 1}})
		cfg := newExportConfig(t, path)
		logger := log.NewLogger(io.Discard, false)

		var buf bytes.Buffer
		err := runExport(context.Background(), cfg, filepath.Join(t.TempDir(), "a"), filepath.Join(t.TempDir(), "b"), &buf, logger)
		if !errors.Is(err, corpus.ErrNoTextColumn) {
			t.Errorf("got %v, expected ErrNoTextColumn", err)
		}
	})

	t.Run("rejects a file without a page ID column", func(t *testing.T) {
		t.Parallel()

		type textOnlyRow struct {
			OfficialText *string `parquet:"official_text,optional"`
		}
		path := writeParquetFile(t, []textOnlyRow{{OfficialText: strPtr("x")}})
		cfg := newExportConfig(t, path)
		logger := log.NewLogger(io.Discard, false)

		var buf bytes.Buffer
		err := runExport(context.Background(), cfg, filepath.Join(t.TempDir(), "a"), filepath.Join(t.TempDir(), "b"), &buf, logger)
		if !errors.Is(err, corpus.ErrColumnNotFound) {
			t.Errorf("got %v, expected ErrColumnNotFound", err)
		}
	})
}
