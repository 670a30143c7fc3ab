package fingerprint

import (
	"bytes"

	"tablehash/internal/canon"
	"tablehash/internal/table"
)

// Serialization constants. These never vary with the source format.
const (
	cellSeparator   = '\x1f'
	recordSeparator = '\n'
)

// OrderDependent fingerprints the table in its existing row and column order.
// Rows are serialized as separator-joined canonical cell strings with no
// header and no row index, and the whole stream is hashed once.
func OrderDependent(t *table.Table) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	rows, cols := t.NumRows(), t.NumCols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				buf.WriteByte(cellSeparator)
			}
			s, err := canon.CellString(t.Column(c).Cells[r])
			if err != nil {
				return "", err
			}
			buf.WriteString(s)
		}
		buf.WriteByte(recordSeparator)
	}
	return Digest(buf.Bytes()), nil
}
