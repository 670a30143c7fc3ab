package loader

import (
	"strconv"
	"strings"

	"tablehash/internal/table"
)

// missingTokens are the exact spellings a delimited text cell may use for a
// missing value. Matching is deliberately exact (no trimming, no folding
// beyond the listed variants) so data values are never swallowed.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

// inferCell assigns a type tag to one raw text value. The decision order is
// fixed: missing sentinel, boolean, integer, decimal (honoring the detected
// separator), then text.
func inferCell(raw string, decimal rune) table.Cell {
	if _, ok := missingTokens[raw]; ok {
		return table.Missing()
	}
	switch strings.ToLower(raw) {
	case "true":
		return table.Bool(true)
	case "false":
		return table.Bool(false)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return table.Int(i)
	}
	num := raw
	if decimal == ',' && strings.Count(raw, ",") == 1 && !strings.Contains(raw, ".") {
		num = strings.Replace(raw, ",", ".", 1)
	}
	if f, err := strconv.ParseFloat(num, 64); err == nil {
		return table.Float(f)
	}
	return table.Text(raw)
}
