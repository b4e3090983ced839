package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/wikiextract/internal/model"
)

// MarkdownWriter outputs articles in Markdown format.
// This format is designed for documentation and sharing lookup results.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// previewLimit is the number of characters of text included before
	// truncation. Zero or negative disables truncation.
	previewLimit int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownPreviewLimit sets the number of characters included before
// the text is truncated. Zero or negative disables truncation.
func WithMarkdownPreviewLimit(limit int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.previewLimit = limit
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter:   newBaseWriter(output),
		previewLimit: DefaultPreviewLimit,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full article in Markdown format.
func (w *MarkdownWriter) Write(article *model.Article) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, article)
	w.writeText(md, "Official Text", article.OfficialText)
	w.writeText(md, "Clone Text", article.CloneText)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the identification table.
func (w *MarkdownWriter) WriteSummary(article *model.Article) (int, error) {
	md := markdown.NewMarkdown(w.output)
	w.writeHeader(md, article)
	return len(md.String()), md.Build()
}

// writeHeader writes the article heading and the property table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, article *model.Article) {
	md.H1("Article " + article.PageID)
	md.PlainText("")

	rows := [][]string{
		{"Page ID", "`" + article.PageID + "`"},
		{"Title", article.Title},
		{"Official text length", strconv.Itoa(article.OfficialTextLength())},
		{"Clone text length", strconv.Itoa(article.CloneTextLength())},
	}
	if article.OfficialTimestamp != "" {
		rows = append(rows, []string{"Official timestamp", article.OfficialTimestamp})
	}
	if article.ClonePageTitle != "" {
		rows = append(rows, []string{"Clone page title", article.ClonePageTitle})
	}
	if article.CloneTimestamp != "" {
		rows = append(rows, []string{"Clone timestamp", article.CloneTimestamp})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeText writes one text section as a fenced block with truncation.
func (w *MarkdownWriter) writeText(md *markdown.Markdown, title, text string) {
	md.H2(title)
	md.PlainText("")

	preview, total, truncated := truncateRunes(text, w.previewLimit)
	md.CodeBlocks(markdown.SyntaxHighlightText, preview)
	md.PlainText("")

	if truncated {
		md.Note(fmt.Sprintf("Truncated to %d characters, total %d characters.", w.previewLimit, total))
		md.PlainText("")
	}
}
