// Package model defines the core data structures used throughout wikiextract.
//
// This package contains the following main types:
//   - Article: A single corpus row in canonical display form
//   - Document: One text column of one row as it moves through the parse pipeline
//   - RunRecord: A persisted record of one pipeline run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (corpus, pipeline, report, database) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
