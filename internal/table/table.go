package table

import (
	"fmt"
	"sort"
)

// Column is a named, ordered sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// RaggedError reports a column whose length disagrees with the rest of the
// table. Ragged input is a construction error, never a runtime state.
type RaggedError struct {
	Column string
	Want   int
	Got    int
}

func (e *RaggedError) Error() string {
	return fmt.Sprintf("ragged table: column %q has %d rows, expected %d", e.Column, e.Got, e.Want)
}

// DuplicateColumnError reports a column name that appears more than once.
// Names are compared case-sensitively.
type DuplicateColumnError struct {
	Name string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column name %q", e.Name)
}

// Table is a rectangular dataset: ordered columns of equal length.
type Table struct {
	cols []Column
}

// New builds a table from the given columns, validating that every column has
// the same row count and that names are unique.
func New(cols ...Column) (*Table, error) {
	seen := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		if _, dup := seen[col.Name]; dup {
			return nil, &DuplicateColumnError{Name: col.Name}
		}
		seen[col.Name] = struct{}{}
	}
	if len(cols) > 0 {
		want := len(cols[0].Cells)
		for _, col := range cols[1:] {
			if len(col.Cells) != want {
				return nil, &RaggedError{Column: col.Name, Want: want, Got: len(col.Cells)}
			}
		}
	}
	return &Table{cols: cols}, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if t == nil || len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.cols)
}

// Column returns the column at index i.
func (t *Table) Column(i int) *Column {
	return &t.cols[i]
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name
	}
	return names
}

// Row copies row i into dst (grown as needed) aligned to column order and
// returns it. Passing a reused dst avoids per-row allocations in tight loops.
func (t *Table) Row(i int, dst []Cell) []Cell {
	dst = dst[:0]
	for c := range t.cols {
		dst = append(dst, t.cols[c].Cells[i])
	}
	return dst
}

// Validate re-checks the rectangularity invariant. Tables built through New
// always pass; the check exists so fingerprint computations fail fast on a
// hand-assembled table rather than producing a partial digest.
func (t *Table) Validate() error {
	if t == nil || len(t.cols) == 0 {
		return nil
	}
	want := len(t.cols[0].Cells)
	for _, col := range t.cols[1:] {
		if len(col.Cells) != want {
			return &RaggedError{Column: col.Name, Want: want, Got: len(col.Cells)}
		}
	}
	return nil
}

// Clone returns a deep copy whose columns and cells can be reordered without
// affecting the receiver.
func (t *Table) Clone() *Table {
	cols := make([]Column, len(t.cols))
	for i, col := range t.cols {
		cells := make([]Cell, len(col.Cells))
		copy(cells, col.Cells)
		cols[i] = Column{Name: col.Name, Cells: cells}
	}
	return &Table{cols: cols}
}

// SortColumnsByName reorders columns into byte-wise ascending name order.
func (t *Table) SortColumnsByName() {
	sort.Slice(t.cols, func(i, j int) bool {
		return t.cols[i].Name < t.cols[j].Name
	})
}

// SelectRows returns a new table containing only the rows whose indices are
// listed in keep, in the given order.
func (t *Table) SelectRows(keep []int) *Table {
	cols := make([]Column, len(t.cols))
	for i, col := range t.cols {
		cells := make([]Cell, 0, len(keep))
		for _, r := range keep {
			cells = append(cells, col.Cells[r])
		}
		cols[i] = Column{Name: col.Name, Cells: cells}
	}
	return &Table{cols: cols}
}
