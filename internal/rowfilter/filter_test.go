package rowfilter

import (
	"testing"

	"tablehash/internal/table"
)

func sample(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.Column{Name: "id", Cells: []table.Cell{table.Int(1), table.Int(2), table.Int(3)}},
		table.Column{Name: "name", Cells: []table.Cell{table.Text("alpha"), table.Text("beta"), table.Text("gamma")}},
		table.Column{Name: "score", Cells: []table.Cell{table.Float(1.5), table.Float(2.5), table.Float(0.5)}},
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tbl
}

func TestApplyKeepsMatchingRows(t *testing.T) {
	f, err := Compile(`score > 1.0`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got, err := f.Apply(sample(t))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.NumRows())
	}
	if got.Column(0).Cells[0].IntValue() != 1 || got.Column(0).Cells[1].IntValue() != 2 {
		t.Fatalf("unexpected rows: %+v", got.Column(0).Cells)
	}
}

func TestApplyStringPredicate(t *testing.T) {
	f, err := Compile(`name == "beta"`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got, err := f.Apply(sample(t))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.NumRows() != 1 || got.Column(0).Cells[0].IntValue() != 2 {
		t.Fatalf("unexpected selection: %d rows", got.NumRows())
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tbl := sample(t)
	f, err := Compile(`id == 1`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := f.Apply(tbl); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tbl.NumRows() != 3 {
		t.Fatalf("input table mutated: %d rows", tbl.NumRows())
	}
}

func TestApplyMissingCellIsNil(t *testing.T) {
	tbl, err := table.New(
		table.Column{Name: "v", Cells: []table.Cell{table.Int(1), table.Missing()}},
	)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	f, err := Compile(`v == nil`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got, err := f.Apply(tbl)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.NumRows() != 1 {
		t.Fatalf("expected the missing-cell row only, got %d rows", got.NumRows())
	}
}

func TestCompileRejectsSyntaxErrors(t *testing.T) {
	if _, err := Compile(`score >`); err == nil {
		t.Fatal("expected compile error")
	}
}
