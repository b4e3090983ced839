package model

// Document is one text column of one corpus row moving through the parse
// pipeline. A pair-schema row produces two documents (official and clone);
// a single-schema row produces one.
//
// Design decision: The pipeline operates on one text at a time rather than
// on whole rows because the two texts of a pair are independent: one can
// time out or trip the complexity guard while the other parses normally.
type Document struct {
	// === Source Position ===

	// Row is the zero-based index of the source row in the corpus file.
	Row int `json:"row"`

	// Column is the name of the source column this text came from,
	// for example "official_text" or "clone_text".
	Column string `json:"column"`

	// PageID is the display form of the row's page identifier.
	// Set to "unknown" when the file has no page ID column.
	PageID string `json:"page_id"`

	// Title is the display form of the row's title.
	// Set to "untitled" when the file has no title column.
	Title string `json:"title"`

	// === Text State ===

	// Wikitext is the raw markup as read from the corpus file.
	Wikitext string `json:"-"` // Excluded from JSON due to size

	// Text is the current working text. Pipeline steps read and replace it;
	// after a successful run it holds the extracted plain paragraphs.
	Text string `json:"text,omitempty"`

	// Null is true when the source value was NULL. Null documents pass
	// through the pipeline untouched and are written back as NULL.
	Null bool `json:"null,omitempty"`

	// === Run State ===

	// Skipped is true if the complexity guard replaced the text with a
	// skip marker instead of parsing it.
	Skipped bool `json:"skipped,omitempty"`

	// TimedOut is true if parsing was abandoned after the per-article
	// timeout and the text was replaced with a timeout marker.
	TimedOut bool `json:"timed_out,omitempty"`

	// AppliedSteps lists the pipeline steps that ran on this document.
	AppliedSteps []string `json:"applied_steps,omitempty"`

	// Error contains the first error a pipeline step returned.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewDocument creates a document for the given row position and column.
// PageID and Title start at their display defaults and are overwritten
// when the corpus file carries the corresponding columns.
func NewDocument(row int, column string) *Document {
	return &Document{
		Row:    row,
		Column: column,
		PageID: "unknown",
		Title:  "untitled",
	}
}

// SetError records the first error that occurred while processing the
// document. Later calls keep the original error.
func (d *Document) SetError(err error) {
	if err == nil || d.Error != nil {
		return
	}
	d.Error = err
	d.ErrorMessage = err.Error()
}
