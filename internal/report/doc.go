// Package report persists the outcome of a batch run into a SQLite
// database: one row per run and one row per processed item. Reports from
// multiple runs accumulate in the same file, keyed by run ID.
package report
