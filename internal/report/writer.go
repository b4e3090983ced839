package report

import (
	"io"

	"github.com/nao1215/wikiextract/internal/model"
)

// Writer defines the interface for article report output.
// Implementations write lookup results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or buffers
// with the same API.
type Writer interface {
	// Write outputs the article report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(article *model.Article) (int, error)

	// WriteSummary outputs only the identification and length lines,
	// without the article body. This is useful for quick checks against
	// large articles.
	WriteSummary(article *model.Article) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write articles, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the article to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(article *model.Article) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(article)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteSummary outputs the summary to all configured Writers.
func (m *MultiWriter) WriteSummary(article *model.Article) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSummary(article)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
