package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/segmentio/parquet-go"
)

// scanBatchSize is the number of rows read from a row group at a time.
// Large enough to amortize the per-call overhead of the parquet reader,
// small enough to keep a batch of wiki articles comfortably in memory.
const scanBatchSize = 256

// Table is an open corpus file. It wraps the parquet file handle together
// with the resolved flat column layout.
type Table struct {
	path    string
	f       *os.File
	file    *parquet.File
	names   []string
	columns map[string]int
}

// OpenTable opens the parquet file at path and validates that it has a
// flat column layout. The caller must Close the table when done.
func OpenTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close() //nolint:errcheck,gosec // already returning an error
		return nil, fmt.Errorf("failed to stat corpus file: %w", err)
	}

	file, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		f.Close() //nolint:errcheck,gosec // already returning an error
		return nil, fmt.Errorf("failed to read parquet metadata of %s: %w", path, err)
	}

	paths := file.Schema().Columns()
	names := make([]string, 0, len(paths))
	columns := make(map[string]int, len(paths))
	for i, p := range paths {
		if len(p) != 1 {
			f.Close() //nolint:errcheck,gosec // already returning an error
			return nil, fmt.Errorf("%w: column %q", ErrNestedSchema, strings.Join(p, "."))
		}
		names = append(names, p[0])
		columns[p[0]] = i
	}

	return &Table{
		path:    path,
		f:       f,
		file:    file,
		names:   names,
		columns: columns,
	}, nil
}

// Close releases the underlying file handle.
func (t *Table) Close() error {
	if err := t.f.Close(); err != nil {
		return fmt.Errorf("failed to close corpus file: %w", err)
	}
	return nil
}

// Path returns the file path the table was opened from.
func (t *Table) Path() string {
	return t.path
}

// Columns returns the column names in file order.
func (t *Table) Columns() []string {
	return t.names
}

// Lookup returns the leaf column index for the given column name.
func (t *Table) Lookup(name string) (int, bool) {
	idx, ok := t.columns[name]
	return idx, ok
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// NumRows returns the total number of rows in the file.
func (t *Table) NumRows() int64 {
	return t.file.NumRows()
}

// Schema returns the parquet schema of the file.
func (t *Table) Schema() *parquet.Schema {
	return t.file.Schema()
}

// Scan calls fn for every row in file order. The record passed to fn is
// only valid for the duration of the call; use Record.Clone to retain it.
// Scanning stops early when fn returns stop=true or an error, or when the
// context is canceled between batches.
func (t *Table) Scan(ctx context.Context, fn func(row int64, rec Record) (stop bool, err error)) error {
	start := int64(0)
	for _, rg := range t.file.RowGroups() {
		stopped, err := t.scanRowGroup(ctx, rg, start, fn)
		if err != nil {
			return err
		}
		if stopped {
			return nil
		}
		start += rg.NumRows()
	}
	return nil
}

// ReadAllRows reads every row into memory, cloned off the read buffers.
// Parsing runs keep all rows around anyway (the output file preserves row
// order while documents are processed concurrently), so loading up front
// keeps the scan logic simple.
func (t *Table) ReadAllRows(ctx context.Context) ([]Record, error) {
	records := make([]Record, 0, t.NumRows())
	err := t.Scan(ctx, func(_ int64, rec Record) (bool, error) {
		records = append(records, rec.Clone())
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindFirst returns the first row whose column canonically matches want.
// Row groups whose bloom filter rules out the value are skipped without
// reading any rows. Returns ErrPageNotFound when no row matches.
func (t *Table) FindFirst(ctx context.Context, column, want string) (Record, error) {
	idx, ok := t.columns[column]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	var found Record
	var matched bool
	start := int64(0)
	for _, rg := range t.file.RowGroups() {
		if t.bloomRulesOut(rg, idx, want) {
			start += rg.NumRows()
			continue
		}

		stopped, err := t.scanRowGroup(ctx, rg, start, func(_ int64, rec Record) (bool, error) {
			v, ok := rec.Value(column)
			if !ok {
				return false, nil
			}
			if !v.IsNull() && DisplayString(v) == want {
				found = rec.Clone()
				matched = true
				return true, nil
			}
			return false, nil
		})
		if err != nil {
			return Record{}, err
		}
		if stopped {
			break
		}
		start += rg.NumRows()
	}

	if !matched {
		return Record{}, fmt.Errorf("%w: %q", ErrPageNotFound, want)
	}
	return found, nil
}

// bloomRulesOut reports whether the row group's bloom filter proves the
// wanted value is absent. Bloom filters answer exact physical-value
// membership, so only byte array (string) columns can be checked against
// the canonical form directly. Any bloom error falls back to scanning.
func (t *Table) bloomRulesOut(rg parquet.RowGroup, column int, want string) bool {
	chunks := rg.ColumnChunks()
	if column >= len(chunks) {
		return false
	}
	chunk := chunks[column]
	if chunk.Type().Kind() != parquet.ByteArray {
		return false
	}
	bloom := chunk.BloomFilter()
	if bloom == nil {
		return false
	}
	ok, err := bloom.Check(parquet.ValueOf(want))
	if err != nil {
		return false
	}
	return !ok
}

// scanRowGroup reads the row group in batches and applies fn to each row.
func (t *Table) scanRowGroup(ctx context.Context, rg parquet.RowGroup, start int64, fn func(row int64, rec Record) (bool, error)) (stopped bool, err error) {
	rows := rg.Rows()
	defer rows.Close() //nolint:errcheck // read-only close

	buf := make([]parquet.Row, scanBatchSize)
	rowIdx := start
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		n, readErr := rows.ReadRows(buf)
		for i := 0; i < n; i++ {
			stop, fnErr := fn(rowIdx, Record{row: buf[i], columns: t.columns, names: t.names})
			if fnErr != nil {
				return false, fnErr
			}
			rowIdx++
			if stop {
				return true, nil
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return false, nil
			}
			return false, fmt.Errorf("failed to read rows from %s: %w", t.path, readErr)
		}
	}
}
