package canon

import (
	"strings"
	"time"

	"tablehash/internal/table"
)

// Canonical temporal renderings.
const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

// timestampLayouts are tried per cell in this fixed order. The single-digit
// numeric fields make each layout accept both zero-padded and unpadded
// components, and time.Parse additionally accepts fractional seconds absent
// from the layout. Year-first forms sort before day-first so an unambiguous
// ISO-style date never falls through to the day-month reading.
var timestampLayouts = []string{
	"2006-1-2T15:4:5Z07:00",
	"2006-1-2 15:4:5Z07:00",
	"2006-1-2T15:4:5",
	"2006-1-2 15:4:5",
	"2-1-2006 15:4:5",
	"2006-1-2 15:4",
	"2-1-2006 15:4",
	"2006-1-2",
	"2-1-2006",
}

// nativeLayout marks columns that arrived from the parser already typed as
// timestamps, e.g. Parquet timestamp columns.
const nativeLayout = "native"

// Options controls datetime standardization.
type Options struct {
	// DateOnly renders standardized columns as "YYYY-MM-DD" without a time
	// component.
	DateOnly bool
}

// Event records one column rewritten by StandardizeDatetimes. The caller
// decides how (or whether) to surface these; the core never prints.
type Event struct {
	Column string
	Layout string
	Cells  int
}

// StandardizeDatetimes rewrites every column whose non-missing cells are all
// interpretable as timestamps to the canonical textual form and returns one
// event per rewritten column. A single unparseable cell leaves its column
// untouched. Columns are handled independently, so the pass is idempotent and
// the outcome does not depend on column processing order.
func StandardizeDatetimes(t *table.Table, opts Options) []Event {
	var events []Event
	for i := 0; i < t.NumCols(); i++ {
		if ev, ok := standardizeColumn(t.Column(i), opts); ok {
			events = append(events, ev)
		}
	}
	return events
}

func standardizeColumn(col *table.Column, opts Options) (Event, bool) {
	parsed := make([]time.Time, len(col.Cells))
	layout := ""
	count := 0
	for i, cell := range col.Cells {
		switch cell.Kind() {
		case table.KindMissing:
			continue
		case table.KindTime:
			parsed[i] = cell.TimeValue()
			count++
		case table.KindText:
			ts, l, ok := ParseTimestamp(cell.TextValue())
			if !ok {
				return Event{}, false
			}
			parsed[i] = ts
			if layout == "" {
				layout = l
			}
			count++
		default:
			// Numeric and boolean cells are never timestamps.
			return Event{}, false
		}
	}
	if count == 0 {
		return Event{}, false
	}
	for i := range col.Cells {
		if col.Cells[i].IsMissing() {
			continue
		}
		col.Cells[i] = table.Text(FormatTime(parsed[i], opts.DateOnly))
	}
	if layout == "" {
		layout = nativeLayout
	}
	return Event{Column: col.Name, Layout: layout, Cells: count}, true
}

// ParseTimestamp attempts to read s as a timestamp using the fixed layout
// list, returning the instant and the layout that matched.
func ParseTimestamp(s string) (time.Time, string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, "", false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, layout, true
		}
	}
	return time.Time{}, "", false
}

// FormatTime renders an instant in the canonical form. Offset-bearing inputs
// are normalized to UTC before the offset is dropped; sub-second precision is
// truncated by the layout, never rounded.
func FormatTime(t time.Time, dateOnly bool) string {
	u := t.UTC()
	if dateOnly {
		return u.Format(DateLayout)
	}
	return u.Format(TimeLayout)
}
