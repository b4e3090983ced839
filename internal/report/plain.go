package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/nao1215/wikiextract/internal/model"
)

// Layout constants of the plain text report.
const (
	// separatorWidth is the width of the "=" separator lines.
	separatorWidth = 60

	// DefaultPreviewLimit is the number of characters of article text
	// printed before truncation kicks in.
	DefaultPreviewLimit = 5000
)

// PlainWriter outputs articles in a fixed-format text report.
// This format is designed for terminal display and for diffing lookup
// results between corpus versions, so its layout is stable:
//
//	Page ID: 42
//	Title: Test
//
//	Official text length: 5
//	Clone text length: 5
//
//	============================================================
//	OFFICIAL TEXT:
//	============================================================
//	hello
//
// Lengths and truncation operate on Unicode code points, not bytes;
// most of the corpus is Cyrillic and byte counts would be misleading.
type PlainWriter struct {
	baseWriter

	// previewLimit is the number of characters of text printed before
	// truncation. Zero or negative disables truncation.
	previewLimit int

	// cloneText controls whether the clone text block is printed after
	// the official one.
	cloneText bool
}

// PlainWriterOption configures a PlainWriter.
type PlainWriterOption func(*PlainWriter)

// WithPreviewLimit sets the number of characters printed before the text
// is truncated. Zero or negative disables truncation.
func WithPreviewLimit(limit int) PlainWriterOption {
	return func(w *PlainWriter) {
		w.previewLimit = limit
	}
}

// WithCloneText configures the writer to print the clone text block
// after the official text.
func WithCloneText(show bool) PlainWriterOption {
	return func(w *PlainWriter) {
		w.cloneText = show
	}
}

// NewPlainWriter creates a PlainWriter that outputs to the given writer.
func NewPlainWriter(output io.Writer, opts ...PlainWriterOption) *PlainWriter {
	w := &PlainWriter{
		baseWriter:   newBaseWriter(output),
		previewLimit: DefaultPreviewLimit,
		cloneText:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full article report.
func (w *PlainWriter) Write(article *model.Article) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, article)
	w.writeText(&sb, "OFFICIAL TEXT:", article.OfficialText)
	if w.cloneText {
		w.writeText(&sb, "CLONE TEXT:", article.CloneText)
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs the identification and length lines only.
func (w *PlainWriter) WriteSummary(article *model.Article) (int, error) {
	var sb strings.Builder
	w.writeHeader(&sb, article)
	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the identification lines and the length lines.
func (w *PlainWriter) writeHeader(sb *strings.Builder, article *model.Article) {
	fmt.Fprintf(sb, "Page ID: %s\n", article.PageID)
	fmt.Fprintf(sb, "Title: %s\n", article.Title)
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Official text length: %d\n", article.OfficialTextLength())
	fmt.Fprintf(sb, "Clone text length: %d\n", article.CloneTextLength())
}

// writeText writes one separator-framed text block with truncation.
func (w *PlainWriter) writeText(sb *strings.Builder, header, text string) {
	separator := strings.Repeat("=", separatorWidth)

	sb.WriteString("\n")
	sb.WriteString(separator)
	sb.WriteString("\n")
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(separator)
	sb.WriteString("\n")

	preview, total, truncated := truncateRunes(text, w.previewLimit)
	sb.WriteString(preview)
	sb.WriteString("\n")
	if truncated {
		fmt.Fprintf(sb, "\n... (truncated, total %d characters)\n", total)
	}
}

// truncateRunes cuts s to the first limit runes. It returns the possibly
// shortened string, the total rune count, and whether a cut happened.
// A zero or negative limit disables cutting.
func truncateRunes(s string, limit int) (preview string, total int, truncated bool) {
	total = utf8.RuneCountInString(s)
	if limit <= 0 || total <= limit {
		return s, total, false
	}

	n := 0
	for i := range s {
		if n == limit {
			return s[:i], total, true
		}
		n++
	}
	return s, total, false
}
