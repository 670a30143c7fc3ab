package table

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New(
		Column{Name: "a", Cells: []Cell{Int(1), Int(2)}},
		Column{Name: "b", Cells: []Cell{Text("x")}},
	)
	var ragged *RaggedError
	if !errors.As(err, &ragged) {
		t.Fatalf("expected RaggedError, got %v", err)
	}
	if ragged.Column != "b" || ragged.Want != 2 || ragged.Got != 1 {
		t.Fatalf("unexpected error detail: %+v", ragged)
	}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New(
		Column{Name: "a", Cells: []Cell{Int(1)}},
		Column{Name: "a", Cells: []Cell{Int(2)}},
	)
	var dup *DuplicateColumnError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateColumnError, got %v", err)
	}
}

func TestNewAllowsCaseSensitiveNames(t *testing.T) {
	tbl, err := New(
		Column{Name: "id", Cells: []Cell{Int(1)}},
		Column{Name: "ID", Cells: []Cell{Int(2)}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tbl.NumCols() != 2 {
		t.Fatalf("expected 2 columns, got %d", tbl.NumCols())
	}
}

func TestRowAlignedToColumnOrder(t *testing.T) {
	tbl, err := New(
		Column{Name: "a", Cells: []Cell{Int(1), Int(2)}},
		Column{Name: "b", Cells: []Cell{Text("x"), Text("y")}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	row := tbl.Row(1, nil)
	if len(row) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(row))
	}
	if row[0].IntValue() != 2 || row[1].TextValue() != "y" {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tbl, err := New(
		Column{Name: "b", Cells: []Cell{Int(1)}},
		Column{Name: "a", Cells: []Cell{Int(2)}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	clone := tbl.Clone()
	clone.SortColumnsByName()
	clone.Column(0).Cells[0] = Text("mutated")

	if got := tbl.Column(0).Name; got != "b" {
		t.Fatalf("original column order changed: %q", got)
	}
	if tbl.Column(0).Cells[0].Kind() != KindInt {
		t.Fatal("original cells mutated through clone")
	}
	if clone.Column(0).Name != "a" {
		t.Fatalf("clone not sorted: %q", clone.Column(0).Name)
	}
}

func TestSelectRows(t *testing.T) {
	tbl, err := New(
		Column{Name: "a", Cells: []Cell{Int(1), Int(2), Int(3)}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	picked := tbl.SelectRows([]int{2, 0})
	if picked.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", picked.NumRows())
	}
	if picked.Column(0).Cells[0].IntValue() != 3 || picked.Column(0).Cells[1].IntValue() != 1 {
		t.Fatalf("unexpected selection: %+v", picked.Column(0).Cells)
	}
}

func TestCellTags(t *testing.T) {
	now := time.Date(2023, 1, 5, 12, 30, 0, 0, time.UTC)
	cases := []struct {
		cell Cell
		kind Kind
	}{
		{Missing(), KindMissing},
		{Bool(true), KindBool},
		{Int(42), KindInt},
		{Float(1.5), KindFloat},
		{Text("hello"), KindText},
		{Time(now), KindTime},
	}
	for _, tc := range cases {
		if tc.cell.Kind() != tc.kind {
			t.Fatalf("expected kind %v, got %v", tc.kind, tc.cell.Kind())
		}
	}
}

func TestFloatNaNIsMissing(t *testing.T) {
	nan := Float(math.NaN())
	if !nan.IsMissing() {
		t.Fatal("NaN float should construct a missing cell")
	}
}

func TestZeroValueCellIsMissing(t *testing.T) {
	var c Cell
	if !c.IsMissing() || c.Value() != nil {
		t.Fatal("zero value cell must be missing")
	}
}
