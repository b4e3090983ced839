// Package corpus reads and rewrites the parquet files that hold the
// article corpus.
//
// A corpus file is a flat parquet table. The pair layout produced by the
// collection step has one row per article with both the official and the
// clone text (page_id, page_title, official_text, official_timestamp,
// clone_page_title, clone_text, clone_timestamp). Single-text layouts with
// one text column are also supported; see DetectTextColumn.
//
// This package contains the following main types:
//   - Table: An open corpus file with schema introspection and row scanning
//   - Record: One row with column access in canonical display form
//   - Rewriter: Builds the schema and rows of a transformed copy of a table
//
// Design decision: All typed values are converted to canonical display
// strings at the package boundary (see DisplayString). Lookups compare
// display strings, so a file that stores page IDs as int64 behaves exactly
// like one that stores them as strings. NULL values become the literal
// "None" and never match a lookup.
package corpus
