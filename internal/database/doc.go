// Package database provides SQLite-based storage for processing history.
//
// This package implements the RunDB, which stores one record per parse,
// clean, or export run so that a corpus directory carries its own
// processing history.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
