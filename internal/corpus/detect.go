package corpus

import "strings"

// Column names of the pair corpus layout. The collection step produces
// files with these seven columns, and parse renames the text columns to
// their paragraph forms in its output.
const (
	ColumnPageID            = "page_id"
	ColumnPageTitle         = "page_title"
	ColumnOfficialText      = "official_text"
	ColumnOfficialTimestamp = "official_timestamp"
	ColumnClonePageTitle    = "clone_page_title"
	ColumnCloneText         = "clone_text"
	ColumnCloneTimestamp    = "clone_timestamp"

	// ColumnOfficialParagraphs and ColumnCloneParagraphs are the parsed
	// text columns that parse writes and clean and export read.
	ColumnOfficialParagraphs = "official_text_paragraphs"
	ColumnCloneParagraphs    = "clone_text_paragraphs"
)

// ParsedSuffix is appended to the text column name in the output of a
// single-layout parse ("text" becomes "text_parsed").
const ParsedSuffix = "_parsed"

// ParagraphsSuffix marks the parsed text columns of a pair-layout file.
const ParagraphsSuffix = "_paragraphs"

// textColumnCandidates are checked in priority order by DetectTextColumn.
var textColumnCandidates = []string{"text", "content", ColumnOfficialText, ColumnCloneText}

// pageIDColumnCandidates are checked in priority order by DetectPageIDColumn.
var pageIDColumnCandidates = []string{ColumnPageID, "pageid"}

// titleColumnCandidates are checked in priority order by DetectTitleColumn.
var titleColumnCandidates = []string{ColumnPageTitle, "title"}

// IsPairLayout reports whether the table has both text columns of the
// pair layout. Pair files are parsed column pair-wise; everything else
// goes through single text column detection.
func IsPairLayout(t *Table) bool {
	return t.HasColumn(ColumnOfficialText) && t.HasColumn(ColumnCloneText)
}

// DetectTextColumn returns the name of the text column to parse.
// Known names are tried first; otherwise the first column whose name
// contains "text" wins. Returns ErrNoTextColumn wrapped by the caller
// when nothing matches.
func DetectTextColumn(t *Table) (string, bool) {
	for _, candidate := range textColumnCandidates {
		if t.HasColumn(candidate) {
			return candidate, true
		}
	}
	for _, name := range t.Columns() {
		if strings.Contains(strings.ToLower(name), "text") {
			return name, true
		}
	}
	return "", false
}

// DetectParsedColumns returns the parsed text columns of a table in
// schema order. A column counts as parsed when its name carries the
// pair-layout paragraphs suffix or the single-layout parsed suffix.
func DetectParsedColumns(t *Table) []string {
	var parsed []string
	for _, name := range t.Columns() {
		if strings.HasSuffix(name, ParagraphsSuffix) || strings.HasSuffix(name, ParsedSuffix) {
			parsed = append(parsed, name)
		}
	}
	return parsed
}

// DetectPageIDColumn returns the name of the page ID column, if any.
func DetectPageIDColumn(t *Table) (string, bool) {
	for _, candidate := range pageIDColumnCandidates {
		if t.HasColumn(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// DetectTitleColumn returns the name of the title column, if any.
func DetectTitleColumn(t *Table) (string, bool) {
	for _, candidate := range titleColumnCandidates {
		if t.HasColumn(candidate) {
			return candidate, true
		}
	}
	return "", false
}
