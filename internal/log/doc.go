// Package log provides logging functionality with automatic truncation
// of oversized values, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of huge attribute values (article bodies)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Truncation
//
// Pipeline code logs documents for debugging, and a document carries the
// full wikitext of an article. A single Debug line could otherwise dump
// megabytes into the log. The TruncatingHandler caps every string
// attribute at a fixed number of characters and appends the total size,
// so logs stay readable while the real size stays visible.
//
// # Usage
//
//	// Create a logger with truncation
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("parsed document",
//	    "page_id", "3817",
//	    "text", doc.Text, // Long values are cut to 256 characters
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
