package canon

import (
	"fmt"
	"math"
	"strconv"

	"tablehash/internal/table"
)

// MissingSentinel is the canonical rendering of a missing value. The NUL
// framing keeps it distinct from any value a tabular parser can produce, and
// it is the same sentinel regardless of the column the cell came from.
const MissingSentinel = "\x00∅\x00"

const (
	boolTrue  = "True"
	boolFalse = "False"
)

// Floats are rounded to six decimal places before rendering so text-based and
// binary sources that preserve different precisions agree on one string.
const roundScale = 1e6

// UnsupportedTypeError reports a cell whose tag has no canonical rendering.
type UnsupportedTypeError struct {
	Kind table.Kind
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cell kind %s cannot be canonicalized", e.Kind)
}

// CellString maps one cell to its canonical string:
//
//	Missing -> MissingSentinel
//	Bool    -> "True" / "False"
//	Int     -> base-10 digits
//	Float   -> round to 6 decimal places, shortest plain decimal form
//	Text    -> the exact bytes, untouched
//	Time    -> "YYYY-MM-DD HH:MM:SS" in UTC, sub-second truncated
//
// Integral floats render without a fractional part, so 1.0 from a binary
// columnar source and 1 from a CSV produce the same string.
func CellString(c table.Cell) (string, error) {
	switch c.Kind() {
	case table.KindMissing:
		return MissingSentinel, nil
	case table.KindBool:
		if c.BoolValue() {
			return boolTrue, nil
		}
		return boolFalse, nil
	case table.KindInt:
		return strconv.FormatInt(c.IntValue(), 10), nil
	case table.KindFloat:
		return formatFloat(c.FloatValue()), nil
	case table.KindText:
		return c.TextValue(), nil
	case table.KindTime:
		return FormatTime(c.TimeValue(), false), nil
	default:
		return "", &UnsupportedTypeError{Kind: c.Kind()}
	}
}

func formatFloat(v float64) string {
	if scaled := v * roundScale; !math.IsInf(scaled, 0) {
		v = math.Round(scaled) / roundScale
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
