// Package table defines the in-memory data model for tabular datasets: an
// ordered set of named columns holding tagged cells.
//
// Cells carry their own type tag (missing, bool, int, float, text, time)
// rather than inheriting one from the column, because loosely-typed source
// formats routinely produce mixed-type columns. Downstream canonicalization
// dispatches on the per-cell tag.
//
// A Table is rectangular by construction: New rejects ragged input with a
// typed RaggedError and duplicate column names with a DuplicateColumnError.
// Once built, tables are treated as read-only except for the single datetime
// standardization pass; fingerprint computations that need a reordered view
// work on a Clone.
package table
