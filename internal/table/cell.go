package table

import (
	"math"
	"strconv"
	"time"
)

// Kind identifies the type tag carried by a Cell.
type Kind uint8

const (
	KindMissing Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindTime:
		return "time"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Cell is a single tagged value at a (row, column) position. The zero value
// is a missing cell.
type Cell struct {
	kind  Kind
	boolV bool
	intV  int64
	flV   float64
	strV  string
	timeV time.Time
}

// Missing returns the missing-value cell.
func Missing() Cell { return Cell{} }

// Bool returns a boolean cell.
func Bool(v bool) Cell { return Cell{kind: KindBool, boolV: v} }

// Int returns an integer cell. Integers are kept apart from floats so values
// beyond float64's exact range canonicalize without precision loss.
func Int(v int64) Cell { return Cell{kind: KindInt, intV: v} }

// Float returns a floating-point cell. NaN maps to Missing, matching the
// missing-value semantics of every supported source format.
func Float(v float64) Cell {
	if math.IsNaN(v) {
		return Missing()
	}
	return Cell{kind: KindFloat, flV: v}
}

// Text returns a text cell holding the exact bytes of v.
func Text(v string) Cell { return Cell{kind: KindText, strV: v} }

// Time returns a temporal cell for the given instant.
func Time(v time.Time) Cell { return Cell{kind: KindTime, timeV: v} }

// Kind reports the cell's type tag.
func (c Cell) Kind() Kind { return c.kind }

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool { return c.kind == KindMissing }

// BoolValue returns the boolean payload; valid only for KindBool cells.
func (c Cell) BoolValue() bool { return c.boolV }

// IntValue returns the integer payload; valid only for KindInt cells.
func (c Cell) IntValue() int64 { return c.intV }

// FloatValue returns the float payload; valid only for KindFloat cells.
func (c Cell) FloatValue() float64 { return c.flV }

// TextValue returns the text payload; valid only for KindText cells.
func (c Cell) TextValue() string { return c.strV }

// TimeValue returns the temporal payload; valid only for KindTime cells.
func (c Cell) TimeValue() time.Time { return c.timeV }

// Value returns the cell payload as a native Go value, with nil for missing
// cells. Used for handing rows to expression environments.
func (c Cell) Value() any {
	switch c.kind {
	case KindBool:
		return c.boolV
	case KindInt:
		return c.intV
	case KindFloat:
		return c.flV
	case KindText:
		return c.strV
	case KindTime:
		return c.timeV
	default:
		return nil
	}
}
