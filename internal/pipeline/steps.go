package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/wikiextract/internal/model"
	"github.com/nao1215/wikiextract/internal/wikitext"
)

// DefaultParseTimeout is the per-document parsing timeout.
// Broken clone markup occasionally makes extraction quadratic, and one
// stuck article must not stall a whole corpus run.
const DefaultParseTimeout = 30 * time.Second

// TimeoutMarker returns the placeholder text stored for a document whose
// parsing exceeded the timeout. The marker is written to the output
// corpus so that downstream consumers can recognize and filter these
// rows.
func TimeoutMarker(timeout time.Duration) string {
	return fmt.Sprintf("[Article skipped: parsing timeout after %d seconds]", int(timeout.Seconds()))
}

// ParseStep converts a document's raw wikitext into plain paragraph
// text. Null documents pass through untouched so that null input rows
// stay null in the output.
type ParseStep struct {
	// parser performs the wikitext extraction.
	parser *wikitext.Parser

	// timeout bounds the parsing of a single document.
	// Zero or negative means no timeout.
	timeout time.Duration

	// logger for structured logging.
	logger *slog.Logger
}

// ParseStepOption configures a ParseStep.
type ParseStepOption func(*ParseStep)

// WithParseTimeout sets the per-document parsing timeout.
// A zero or negative timeout disables the limit.
func WithParseTimeout(timeout time.Duration) ParseStepOption {
	return func(s *ParseStep) {
		s.timeout = timeout
	}
}

// WithParseLogger sets a custom logger for the parse step.
func WithParseLogger(logger *slog.Logger) ParseStepOption {
	return func(s *ParseStep) {
		s.logger = logger
	}
}

// NewParseStep creates a new parsing step around the given parser.
func NewParseStep(parser *wikitext.Parser, opts ...ParseStepOption) *ParseStep {
	s := &ParseStep{
		parser:  parser,
		timeout: DefaultParseTimeout,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// parseResult carries the parser output across the timeout boundary.
type parseResult struct {
	text    string
	skipped bool
}

// Do executes the parse step.
//
// The parser has no cancellation points, so the timeout abandons the
// parsing goroutine and the document is marked instead of waiting; the
// goroutine finishes on its own and its result is discarded.
func (s *ParseStep) Do(ctx context.Context, doc *model.Document) error {
	if doc.Null {
		return nil
	}

	if s.timeout <= 0 {
		doc.Text, doc.Skipped = s.parser.ParseChecked(doc.Wikitext)
		return nil
	}

	ch := make(chan parseResult, 1)
	go func() {
		text, skipped := s.parser.ParseChecked(doc.Wikitext)
		ch <- parseResult{text: text, skipped: skipped}
	}()

	select {
	case res := <-ch:
		doc.Text = res.text
		doc.Skipped = res.skipped
	case <-time.After(s.timeout):
		s.logger.Warn("parsing timed out",
			"row", doc.Row,
			"page_id", doc.PageID,
			"title", doc.Title,
			"timeout", s.timeout,
		)
		doc.TimedOut = true
		doc.Text = TimeoutMarker(s.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

// CleanStep scrubs leftover template markup from a document's text.
// It operates on the parsed text, not the raw wikitext, so it can run
// after ParseStep or on its own over an already-parsed corpus.
type CleanStep struct {
	// cleaner performs the text cleanup.
	cleaner *wikitext.Cleaner

	// logger for structured logging.
	logger *slog.Logger
}

// CleanStepOption configures a CleanStep.
type CleanStepOption func(*CleanStep)

// WithCleanLogger sets a custom logger for the clean step.
func WithCleanLogger(logger *slog.Logger) CleanStepOption {
	return func(s *CleanStep) {
		s.logger = logger
	}
}

// NewCleanStep creates a new cleanup step around the given cleaner.
func NewCleanStep(cleaner *wikitext.Cleaner, opts ...CleanStepOption) *CleanStep {
	s := &CleanStep{
		cleaner: cleaner,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CleanStep) Name() string {
	return "clean"
}

// Do executes the clean step.
func (s *CleanStep) Do(_ context.Context, doc *model.Document) error {
	if doc.Null {
		return nil
	}

	doc.Text = s.cleaner.Clean(doc.Text)
	return nil
}
