package loader

import (
	"testing"

	"tablehash/internal/table"
)

func TestReadJSONRecords(t *testing.T) {
	path := writeFile(t, "data.json", `[
		{"id": 1, "name": "alpha", "score": 1.5},
		{"id": 2, "name": "beta", "score": 2.25}
	]`)
	tbl, err := readJSON(path)
	if err != nil {
		t.Fatalf("readJSON: %v", err)
	}
	want := []string{"id", "name", "score"}
	names := tbl.ColumnNames()
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("column order: got %v, want %v", names, want)
		}
	}
	if got := tbl.Column(0).Cells[1]; got.Kind() != table.KindInt || got.IntValue() != 2 {
		t.Fatalf("id cell: %+v", got)
	}
	if got := tbl.Column(2).Cells[0]; got.Kind() != table.KindFloat || got.FloatValue() != 1.5 {
		t.Fatalf("score cell: %+v", got)
	}
}

func TestReadJSONAbsentKeysAreMissing(t *testing.T) {
	path := writeFile(t, "data.json", `[{"a": 1}, {"a": 2, "b": "x"}, {"b": null}]`)
	tbl, err := readJSON(path)
	if err != nil {
		t.Fatalf("readJSON: %v", err)
	}
	if tbl.NumCols() != 2 || tbl.NumRows() != 3 {
		t.Fatalf("shape: %dx%d", tbl.NumRows(), tbl.NumCols())
	}
	b := tbl.Column(1)
	if b.Name != "b" {
		t.Fatalf("second column: %q", b.Name)
	}
	if !b.Cells[0].IsMissing() {
		t.Fatal("absent key should be missing")
	}
	if !b.Cells[2].IsMissing() {
		t.Fatal("explicit null should be missing")
	}
	if !tbl.Column(0).Cells[2].IsMissing() {
		t.Fatal("absent key in later record should be missing")
	}
}

func TestReadJSONLargeIntegerExact(t *testing.T) {
	path := writeFile(t, "data.json", `[{"v": 9007199254740993}]`)
	tbl, err := readJSON(path)
	if err != nil {
		t.Fatalf("readJSON: %v", err)
	}
	got := tbl.Column(0).Cells[0]
	if got.Kind() != table.KindInt || got.IntValue() != 9007199254740993 {
		t.Fatalf("large integer lost precision: %+v", got)
	}
}

func TestReadJSONRejectsNestedValues(t *testing.T) {
	path := writeFile(t, "data.json", `[{"v": {"nested": true}}]`)
	if _, err := readJSON(path); err == nil {
		t.Fatal("nested object should fail")
	}
}

func TestReadJSONRejectsNonArray(t *testing.T) {
	path := writeFile(t, "data.json", `{"v": 1}`)
	if _, err := readJSON(path); err == nil {
		t.Fatal("top-level object should fail")
	}
}
