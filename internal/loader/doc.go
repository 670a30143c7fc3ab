// Package loader reads tabular files into the table data model.
//
// Load dispatches on file extension (CSV, TSV, JSON records, Parquet,
// Feather/Arrow IPC) and, when the extension is unknown or its decoder fails,
// falls back to trying every decoder in a fixed order, so the outcome is
// deterministic for a given file. CSV input gets delimiter
// sniffing over a small sample, decimal-separator detection from the first
// data rows, and BOM/UTF-16 charset handling.
//
// The loader decides each cell's type tag once: missing sentinels, booleans,
// integers, decimals (honoring the detected separator), then text. It never
// interprets datetimes; that is the canonicalization pass's job.
package loader
