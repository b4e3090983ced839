package wikitext

import (
	"log/slog"
	"strings"
)

// Complexity guard thresholds. Articles that combine large tables with
// masses of templates or image links blow up extraction time on the
// broken markup the clone wikis produce, so they are skipped outright.
const (
	// maxTableRows is the number of table row markers ("|-") above which
	// an article counts as table-heavy.
	maxTableRows = 50

	// maxTemplates is the number of template openers ("{{") tolerated in
	// a table-heavy article.
	maxTemplates = 200

	// maxFileLinks is the number of file links tolerated in a table-heavy
	// article.
	maxFileLinks = 50
)

// SkipComplexMarker replaces the text of articles rejected by the
// complexity guard. The marker is stored in the output corpus so that
// downstream consumers can recognize and filter these rows.
const SkipComplexMarker = "[Article skipped: contains complex nested structures that cause parsing issues]"

// Parser extracts plain paragraph text from raw wikitext.
type Parser struct {
	// skipLists drops bullet, numbered, and definition lists entirely
	// instead of folding their items into the surrounding paragraph.
	skipLists bool

	// logger is used for structured logging during parsing.
	logger *slog.Logger
}

// Option is a function that configures a Parser.
type Option func(*Parser)

// WithSkipLists configures the parser to drop all lists from the output.
func WithSkipLists(skip bool) Option {
	return func(p *Parser) {
		p.skipLists = skip
	}
}

// WithLogger sets a custom logger for the parser.
// If not set, the default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a new Parser with the given options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Parse converts wikitext into plain text paragraphs separated by blank
// lines. Articles rejected by the complexity guard come back as
// SkipComplexMarker; Skipped reports that case.
func (p *Parser) Parse(wikitext string) string {
	text, _ := p.parse(wikitext)
	return text
}

// ParseChecked is Parse with an explicit skipped indicator.
func (p *Parser) ParseChecked(wikitext string) (text string, skipped bool) {
	return p.parse(wikitext)
}

func (p *Parser) parse(wikitext string) (string, bool) {
	tableRows := strings.Count(wikitext, "|-")
	templates := strings.Count(wikitext, "{{")
	fileLinks := strings.Count(wikitext, "[[Файл:") + strings.Count(wikitext, "[[File:")

	if tableRows > maxTableRows && (templates > maxTemplates || fileLinks > maxFileLinks) {
		p.logger.Warn("skipping article: too complex",
			"table_rows", tableRows,
			"templates", templates,
			"file_links", fileLinks,
		)
		return SkipComplexMarker, true
	}

	text := extractText(wikitext, p.skipLists)
	text = expandTemplates(text)
	text = removeImageFragments(text)
	text = collapseNewlines(text)

	paragraphs := splitParagraphs(text)
	paragraphs = removeEmptySections(paragraphs)

	return strings.Join(paragraphs, "\n\n"), false
}

// splitParagraphs splits text on blank lines, trimming each paragraph and
// dropping empty ones.
func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			paragraphs = append(paragraphs, part)
		}
	}
	return paragraphs
}
