package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoInput is returned when no corpus file is specified.
	// This error occurs when the positional argument is missing and the
	// config file provides no input path either.
	ErrNoInput = errors.New("no input specified: provide a parquet corpus file")

	// ErrInvalidTimeout is returned when the parse timeout is negative.
	// A negative timeout is invalid; use 0 to disable the timeout.
	ErrInvalidTimeout = errors.New("invalid parse timeout: must be non-negative")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	// A concurrency of zero would mean no documents are processed.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidPreviewLimit is returned when the preview limit is negative.
	// A negative limit is invalid; use 0 to print whole texts.
	ErrInvalidPreviewLimit = errors.New("invalid preview limit: must be non-negative")
)
