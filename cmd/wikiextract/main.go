// Package main provides the entry point for the wikiextract CLI.
//
// wikiextract works with parquet corpus files that pair official Wikipedia
// articles with their mirror-site clones. It extracts single articles,
// parses raw wikitext into plain paragraphs, cleans parsed text, and
// exports article text to per-page files.
//
// Usage:
//
//	wikiextract extract <parquet_file> <page_id>
//	wikiextract parse -i <parquet_file>
//
// See --help for all available options.
package main

// main is the entry point for wikiextract.
func main() {
	Execute()
}
