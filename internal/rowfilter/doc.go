// Package rowfilter drops table rows that fail a boolean expression.
//
// Expressions use expr-lang syntax and see one row at a time as an
// environment of column name to native cell value (missing cells appear as
// nil). A filter is compiled once and applied to whole tables; filtering
// happens before datetime standardization so expressions match the values as
// loaded.
package rowfilter
