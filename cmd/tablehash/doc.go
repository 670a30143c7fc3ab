// Command tablehash computes content fingerprints of tabular datasets.
//
// Two digests are available per file. The ordered digest changes when rows
// or columns move; the unordered digest is invariant under any row or column
// permutation. Both are invariant to the carrier format, so the same data
// saved as CSV, JSON, Parquet, or Feather hashes identically.
package main
