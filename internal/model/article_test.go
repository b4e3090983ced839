package model

import (
	"errors"
	"testing"
)

// TestArticleTextLengths tests the text length methods.
func TestArticleTextLengths(t *testing.T) {
	t.Parallel()

	t.Run("counts ASCII text by characters", func(t *testing.T) {
		t.Parallel()

		article := &Article{
			OfficialText: "hello",
			CloneText:    "hi",
		}

		if got := article.OfficialTextLength(); got != 5 {
			t.Errorf("got %d, expected 5", got)
		}
		if got := article.CloneTextLength(); got != 2 {
			t.Errorf("got %d, expected 2", got)
		}
	})

	t.Run("counts multibyte text by code points not bytes", func(t *testing.T) {
		t.Parallel()

		// Five Cyrillic letters, ten bytes in UTF-8.
		article := &Article{OfficialText: "Ленин"}

		if got := article.OfficialTextLength(); got != 5 {
			t.Errorf("got %d, expected 5", got)
		}
	})

	t.Run("missing text counts the None literal", func(t *testing.T) {
		t.Parallel()

		article := &Article{
			OfficialText: NullDisplay,
			CloneText:    NullDisplay,
		}

		if got := article.OfficialTextLength(); got != 4 {
			t.Errorf("got %d, expected 4", got)
		}
		if got := article.CloneTextLength(); got != 4 {
			t.Errorf("got %d, expected 4", got)
		}
	})
}

// TestNewDocument tests the NewDocument constructor.
func TestNewDocument(t *testing.T) {
	t.Parallel()

	t.Run("sets display defaults for page id and title", func(t *testing.T) {
		t.Parallel()

		doc := NewDocument(3, "official_text")

		if doc.Row != 3 {
			t.Errorf("got row %d, expected 3", doc.Row)
		}
		if doc.Column != "official_text" {
			t.Errorf("got column %q, expected 'official_text'", doc.Column)
		}
		if doc.PageID != "unknown" {
			t.Errorf("got page id %q, expected 'unknown'", doc.PageID)
		}
		if doc.Title != "untitled" {
			t.Errorf("got title %q, expected 'untitled'", doc.Title)
		}
	})
}

// TestDocumentSetError tests the SetError method.
func TestDocumentSetError(t *testing.T) {
	t.Parallel()

	t.Run("records error and message", func(t *testing.T) {
		t.Parallel()

		doc := NewDocument(0, "text")
		doc.SetError(errors.New("boom"))

		if doc.Error == nil {
			t.Fatal("expected error to be set")
		}
		if doc.ErrorMessage != "boom" {
			t.Errorf("got %q, expected 'boom'", doc.ErrorMessage)
		}
	})

	t.Run("keeps the first error", func(t *testing.T) {
		t.Parallel()

		doc := NewDocument(0, "text")
		doc.SetError(errors.New("first"))
		doc.SetError(errors.New("second"))

		if doc.ErrorMessage != "first" {
			t.Errorf("got %q, expected 'first'", doc.ErrorMessage)
		}
	})

	t.Run("ignores nil error", func(t *testing.T) {
		t.Parallel()

		doc := NewDocument(0, "text")
		doc.SetError(nil)

		if doc.Error != nil {
			t.Errorf("expected no error, got %v", doc.Error)
		}
	})
}

// TestRunRecord tests run record creation and duration.
func TestRunRecord(t *testing.T) {
	t.Parallel()

	t.Run("new record gets id and start time", func(t *testing.T) {
		t.Parallel()

		record := NewRunRecord("parse", "input.parquet")

		if record.ID == "" {
			t.Error("expected non-empty id")
		}
		if record.Command != "parse" {
			t.Errorf("got %q, expected 'parse'", record.Command)
		}
		if record.InputFile != "input.parquet" {
			t.Errorf("got %q, expected 'input.parquet'", record.InputFile)
		}
		if record.StartedAt.IsZero() {
			t.Error("expected start time to be set")
		}
	})

	t.Run("duration is zero before finish", func(t *testing.T) {
		t.Parallel()

		record := NewRunRecord("clean", "input.parquet")

		if got := record.Duration(); got != 0 {
			t.Errorf("got %v, expected 0", got)
		}
	})

	t.Run("duration is positive after finish", func(t *testing.T) {
		t.Parallel()

		record := NewRunRecord("export", "input.parquet")
		record.Finish()

		if got := record.Duration(); got < 0 {
			t.Errorf("got negative duration %v", got)
		}
		if record.FinishedAt.IsZero() {
			t.Error("expected finish time to be set")
		}
	})

	t.Run("records get distinct ids", func(t *testing.T) {
		t.Parallel()

		first := NewRunRecord("parse", "a.parquet")
		second := NewRunRecord("parse", "a.parquet")

		if first.ID == second.ID {
			t.Errorf("expected distinct ids, both %q", first.ID)
		}
	})
}
