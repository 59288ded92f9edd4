package timeseries

import (
	"fmt"
	"time"
)

// dateLayouts are the accepted textual date forms, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDate normalizes a textual date to time.Time. It fails with
// ErrMalformedDate when none of the accepted layouts match.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: %w", s, ErrMalformedDate)
}

// FilterByRange slices the table to records with start <= date <= end, both
// bounds inclusive. An empty result is a valid empty table, never an error.
// Filtering is idempotent: applying the same bounds twice yields the same
// table.
func FilterByRange(t Table, start, end time.Time) Table {
	out := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		out = append(out, r.clone())
	}
	return Table{records: out}
}

// FilterByRangeStrings is FilterByRange with textual bounds. Both bounds are
// normalized through ParseDate before comparison so string and date-typed
// callers see identical behavior.
func FilterByRangeStrings(t Table, start, end string) (Table, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Table{}, fmt.Errorf("filter start: %w", err)
	}
	e, err := ParseDate(end)
	if err != nil {
		return Table{}, fmt.Errorf("filter end: %w", err)
	}
	return FilterByRange(t, s, e), nil
}
