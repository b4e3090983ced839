package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/wikiextract/internal/model"
)

// JSONWriter outputs articles in JSON format.
// This format is designed for tool integration and programmatic
// processing; unlike the plain writer it never truncates the texts.
//
// Design decision: We use standard encoding/json rather than a
// third-party JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter:   newBaseWriter(output),
		indent:       false,
		indentPrefix: "",
		indentString: "",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// jsonArticle wraps an article with the computed length fields so that
// consumers don't have to recompute them.
type jsonArticle struct {
	*model.Article
	OfficialTextLength int `json:"official_text_length"`
	CloneTextLength    int `json:"clone_text_length"`
}

// jsonSummary carries the identification and length fields without the
// article bodies.
type jsonSummary struct {
	PageID             string `json:"page_id"`
	Title              string `json:"title"`
	OfficialTextLength int    `json:"official_text_length"`
	CloneTextLength    int    `json:"clone_text_length"`
}

// Write outputs the full article in JSON format.
func (w *JSONWriter) Write(article *model.Article) (int, error) {
	return w.writeJSON(jsonArticle{
		Article:            article,
		OfficialTextLength: article.OfficialTextLength(),
		CloneTextLength:    article.CloneTextLength(),
	})
}

// WriteSummary outputs only the identification and length fields.
func (w *JSONWriter) WriteSummary(article *model.Article) (int, error) {
	return w.writeJSON(jsonSummary{
		PageID:             article.PageID,
		Title:              article.Title,
		OfficialTextLength: article.OfficialTextLength(),
		CloneTextLength:    article.CloneTextLength(),
	})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v interface{}) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
