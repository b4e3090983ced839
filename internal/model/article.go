package model

import "unicode/utf8"

// NullDisplay is the canonical display form of a missing (NULL) value.
// Every value read from a corpus file is converted to a display string
// before it reaches a report writer, and NULL values become this literal.
// Length calculations operate on the display string, so a missing text
// reports a length of 4.
const NullDisplay = "None"

// Article represents a single corpus row in canonical display form.
// All fields are display strings: typed values (integers, floats,
// timestamps) are stringified on read and NULL values become NullDisplay.
//
// Design decision: We canonicalize at read time rather than carrying typed
// values because:
//  1. Every consumer (plain text, JSON, markdown) renders strings anyway
//  2. Length and truncation rules are defined over the display string
//  3. A row with an int64 page_id and a row with a string page_id become
//     indistinguishable, which is exactly what lookup by ID needs
type Article struct {
	// PageID is the page identifier of the official article.
	PageID string `json:"page_id"`

	// Title is the title of the official article.
	Title string `json:"title"`

	// OfficialText is the article body from the official wiki.
	OfficialText string `json:"official_text"`

	// CloneText is the article body from the clone wiki.
	CloneText string `json:"clone_text"`

	// OfficialTimestamp is the revision timestamp of the official article.
	// Empty if the corpus file has no such column.
	OfficialTimestamp string `json:"official_timestamp,omitempty"`

	// ClonePageTitle is the title of the clone article.
	// Empty if the corpus file has no such column.
	ClonePageTitle string `json:"clone_page_title,omitempty"`

	// CloneTimestamp is the revision timestamp of the clone article.
	// Empty if the corpus file has no such column.
	CloneTimestamp string `json:"clone_timestamp,omitempty"`
}

// OfficialTextLength returns the length of the official text in Unicode
// code points. A missing text is the literal NullDisplay, so it counts too.
func (a *Article) OfficialTextLength() int {
	return utf8.RuneCountInString(a.OfficialText)
}

// CloneTextLength returns the length of the clone text in Unicode code points.
func (a *Article) CloneTextLength() int {
	return utf8.RuneCountInString(a.CloneText)
}
