package fingerprint

import (
	"bytes"
	"crypto/sha256"
	"sort"

	"tablehash/internal/canon"
	"tablehash/internal/table"
)

// OrderIndependent fingerprints the table insensitively to row and column
// order. Columns are reordered by name (byte-wise ascending) on a clone, each
// row is hashed to its own fixed-width digest, the digests are sorted
// byte-wise with duplicates retained, and the concatenation is hashed once
// more. Duplicate rows contribute identical digests, so their relative order
// after sorting cannot affect the result.
func OrderIndependent(t *table.Table) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	view := t.Clone()
	view.SortColumnsByName()

	rows, cols := view.NumRows(), view.NumCols()
	digests := make([][DigestSize]byte, 0, rows)
	var row bytes.Buffer
	for r := 0; r < rows; r++ {
		row.Reset()
		for c := 0; c < cols; c++ {
			if c > 0 {
				row.WriteByte(cellSeparator)
			}
			s, err := canon.CellString(view.Column(c).Cells[r])
			if err != nil {
				return "", err
			}
			row.WriteString(s)
		}
		digests = append(digests, sha256.Sum256(row.Bytes()))
	}

	sort.Slice(digests, func(i, j int) bool {
		return bytes.Compare(digests[i][:], digests[j][:]) < 0
	})

	var all bytes.Buffer
	all.Grow(len(digests) * DigestSize)
	for i := range digests {
		all.Write(digests[i][:])
	}
	return Digest(all.Bytes()), nil
}
