package corpus

import (
	"fmt"

	"github.com/segmentio/parquet-go"

	"github.com/nao1215/wikiextract/internal/model"
)

// Record is one corpus row with access to its columns by name.
// Records obtained from Table.Scan share the scan buffer and are only
// valid during the callback; Clone produces an independent copy.
type Record struct {
	row     parquet.Row
	columns map[string]int
	names   []string
}

// Clone returns a copy of the record that is independent of the read
// buffers of the table it came from.
func (r Record) Clone() Record {
	return Record{row: r.row.Clone(), columns: r.columns, names: r.names}
}

// Row returns the underlying parquet row.
func (r Record) Row() parquet.Row {
	return r.row
}

// Value returns the raw parquet value of the named column.
func (r Record) Value(name string) (parquet.Value, bool) {
	idx, ok := r.columns[name]
	if !ok {
		return parquet.Value{}, false
	}
	// Flat rows carry one value per leaf column in column order.
	if idx < len(r.row) && r.row[idx].Column() == idx {
		return r.row[idx], true
	}
	for _, v := range r.row {
		if v.Column() == idx {
			return v, true
		}
	}
	return parquet.Value{}, false
}

// Has reports whether the record's table has the named column.
func (r Record) Has(name string) bool {
	_, ok := r.columns[name]
	return ok
}

// Display returns the canonical display form of the named column's value.
// Returns ErrColumnNotFound if the table has no such column.
func (r Record) Display(name string) (string, error) {
	v, ok := r.Value(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return DisplayString(v), nil
}

// IsNull reports whether the named column's value is NULL.
// A missing column counts as NULL.
func (r Record) IsNull(name string) bool {
	v, ok := r.Value(name)
	return !ok || v.IsNull()
}

// ToArticle converts the record to an article in canonical display form.
// The pair layout columns page_id, page_title, official_text, and
// clone_text are required; the remaining pair columns are filled in when
// present.
func (r Record) ToArticle() (*model.Article, error) {
	article := &model.Article{}

	required := []struct {
		name string
		dst  *string
	}{
		{ColumnPageID, &article.PageID},
		{ColumnPageTitle, &article.Title},
		{ColumnOfficialText, &article.OfficialText},
		{ColumnCloneText, &article.CloneText},
	}
	for _, col := range required {
		s, err := r.Display(col.name)
		if err != nil {
			return nil, err
		}
		*col.dst = s
	}

	optional := []struct {
		name string
		dst  *string
	}{
		{ColumnOfficialTimestamp, &article.OfficialTimestamp},
		{ColumnClonePageTitle, &article.ClonePageTitle},
		{ColumnCloneTimestamp, &article.CloneTimestamp},
	}
	for _, col := range optional {
		if !r.Has(col.name) {
			continue
		}
		s, err := r.Display(col.name)
		if err != nil {
			return nil, err
		}
		*col.dst = s
	}

	return article, nil
}
