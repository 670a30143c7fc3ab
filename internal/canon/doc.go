// Package canon rewrites table values into the single canonical textual form
// both fingerprint algorithms hash.
//
// Two passes live here. StandardizeDatetimes walks a table column by column
// and rewrites every column whose non-missing cells are all interpretable as
// timestamps into the fixed "YYYY-MM-DD HH:MM:SS" form; one unparseable cell
// disqualifies the whole column (all-or-nothing, so canonical and raw
// representations never mix within a column). CellString maps a single cell
// to its canonical string: a reserved sentinel for missing values, True/False
// for booleans, a pinned decimal rendering for numbers, and exact bytes for
// text.
//
// Determinism is the whole contract: the same logical value must produce the
// same string no matter which carrier format or parser it arrived from.
package canon
