package corpus

import (
	"fmt"

	"github.com/segmentio/parquet-go"
)

// Rewriter builds the schema and rows of a transformed copy of a table.
// Declared text columns are forced to optional UTF8 in the output and
// their values are supplied by the caller on every row; all other columns
// pass through unchanged. Columns can be renamed in the output schema.
//
// Design decision: The rewriter works on raw parquet rows rather than a
// typed row struct so that parse and clean preserve whatever passthrough
// columns a corpus file happens to have (timestamps in particular keep
// their physical type). The output schema is rebuilt as a parquet group,
// which orders columns alphabetically; values are re-stamped with their
// destination column index, so the column order of the output file may
// differ from the input while every column keeps its name and content.
type Rewriter struct {
	src      *Table
	schema   *parquet.Schema
	newNames []string
	srcToDst []int
	text     map[string]bool
}

// NewRewriter creates a rewriter over src. textColumns are the source
// columns whose values the caller replaces (they become optional UTF8 in
// the output). renames maps source column names to output column names;
// columns not in the map keep their name.
func NewRewriter(src *Table, textColumns []string, renames map[string]string) (*Rewriter, error) {
	text := make(map[string]bool, len(textColumns))
	for _, name := range textColumns {
		if !src.HasColumn(name) {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		text[name] = true
	}
	for name := range renames {
		if !src.HasColumn(name) {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
	}

	group := parquet.Group{}
	newNames := make([]string, len(src.names))
	for _, field := range src.file.Schema().Fields() {
		name := field.Name()
		newName := name
		if renamed, ok := renames[name]; ok {
			newName = renamed
		}
		if text[name] {
			group[newName] = parquet.Optional(parquet.String())
		} else {
			group[newName] = field
		}
		newNames[src.columns[name]] = newName
	}

	schema := parquet.NewSchema(src.file.Schema().Name(), group)

	dstIndex := make(map[string]int, len(newNames))
	for i, p := range schema.Columns() {
		dstIndex[p[0]] = i
	}
	srcToDst := make([]int, len(newNames))
	for srcIdx, newName := range newNames {
		srcToDst[srcIdx] = dstIndex[newName]
	}

	return &Rewriter{
		src:      src,
		schema:   schema,
		newNames: newNames,
		srcToDst: srcToDst,
		text:     text,
	}, nil
}

// Schema returns the output schema.
func (rw *Rewriter) Schema() *parquet.Schema {
	return rw.schema
}

// OutputName returns the output column name for a source column.
func (rw *Rewriter) OutputName(srcName string) (string, bool) {
	idx, ok := rw.src.columns[srcName]
	if !ok {
		return "", false
	}
	return rw.newNames[idx], true
}

// Rewrite produces the output row for one source record. Replacements are
// keyed by source column name; a nil value writes NULL. Passthrough values
// reference the source record, so the returned row must be written before
// the record's backing buffer is reused.
func (rw *Rewriter) Rewrite(rec Record, replacements map[string]*string) (parquet.Row, error) {
	out := make(parquet.Row, len(rw.srcToDst))
	for _, v := range rec.row {
		srcIdx := v.Column()
		if srcIdx < 0 || srcIdx >= len(rw.srcToDst) {
			return nil, fmt.Errorf("row value has column index %d outside schema of %s", srcIdx, rw.src.path)
		}
		name := rw.src.names[srcIdx]
		dst := rw.srcToDst[srcIdx]

		if rw.text[name] {
			replacement, ok := replacements[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrMissingReplacement, name)
			}
			if replacement == nil {
				out[dst] = parquet.ValueOf(nil).Level(0, 0, dst)
			} else {
				out[dst] = parquet.ValueOf(*replacement).Level(0, 1, dst)
			}
			continue
		}

		out[dst] = v.Level(v.RepetitionLevel(), v.DefinitionLevel(), dst)
	}
	return out, nil
}
