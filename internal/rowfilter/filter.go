package rowfilter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"tablehash/internal/table"
)

// Filter is a compiled row predicate.
type Filter struct {
	src     string
	program *vm.Program
}

// Compile parses and compiles the predicate source. Column references are
// resolved at evaluation time, so unknown names only fail when a row is
// actually tested.
func Compile(src string) (*Filter, error) {
	program, err := expr.Compile(src, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", src, err)
	}
	return &Filter{src: src, program: program}, nil
}

// Source returns the original predicate text.
func (f *Filter) Source() string { return f.src }

// Apply evaluates the predicate against every row and returns a new table
// holding only the rows where it was true. The input table is not modified.
func (f *Filter) Apply(t *table.Table) (*table.Table, error) {
	cols := t.NumCols()
	env := make(map[string]any, cols)
	var keep []int
	for r := 0; r < t.NumRows(); r++ {
		for c := 0; c < cols; c++ {
			col := t.Column(c)
			env[col.Name] = col.Cells[r].Value()
		}
		out, err := expr.Run(f.program, env)
		if err != nil {
			return nil, fmt.Errorf("filter %q: row %d: %w", f.src, r, err)
		}
		ok, isBool := out.(bool)
		if !isBool {
			return nil, fmt.Errorf("filter %q: row %d: result %T is not a bool", f.src, r, out)
		}
		if ok {
			keep = append(keep, r)
		}
	}
	return t.SelectRows(keep), nil
}
