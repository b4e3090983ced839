package corpus

import "errors"

// Corpus access errors.
// These errors are returned by Table and Rewriter operations and provide
// specific information about what went wrong with the corpus file.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each call site. This allows callers to
// use errors.Is() for programmatic error handling; call sites wrap these
// with fmt.Errorf("%w: ...") to attach the column name or file path.
var (
	// ErrPageNotFound is returned by FindFirst when no row matches the
	// requested page ID. The extract command turns this into its
	// "Page ID ... not found" message.
	ErrPageNotFound = errors.New("page id not found")

	// ErrColumnNotFound is returned when a required column is missing
	// from the corpus file's schema.
	ErrColumnNotFound = errors.New("column not found")

	// ErrNestedSchema is returned when the parquet file has nested or
	// repeated columns. Corpus files must have a flat column layout.
	ErrNestedSchema = errors.New("nested schema not supported")

	// ErrMissingReplacement is returned by Rewriter.Rewrite when the
	// caller did not supply a value for a declared text column.
	ErrMissingReplacement = errors.New("missing replacement for text column")

	// ErrNoTextColumn is returned when no text column could be detected
	// in a corpus file and none was specified.
	ErrNoTextColumn = errors.New("could not detect text column")
)
