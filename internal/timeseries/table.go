package timeseries

import (
	"encoding/json"
	"errors"
	"math"
	"sort"
	"time"
)

// ErrMalformedDate indicates a date value that could not be parsed or a
// record that entered the core without a usable date.
var ErrMalformedDate = errors.New("malformed date")

// Undefined is the marker value for calculations with no defined result,
// such as a growth rate against a zero denominator. Charts render it as a gap.
func Undefined() float64 {
	return math.NaN()
}

// IsUndefined reports whether v is the undefined marker.
func IsUndefined(v float64) bool {
	return math.IsNaN(v)
}

// Record is a single dated observation. Metrics holds the numeric fields
// (streams, followers, revenue) and Labels the categorical ones (song,
// platform, country, age_group) used for pivoting and percentage breakdowns.
type Record struct {
	Date    time.Time
	Metrics map[string]float64
	Labels  map[string]string
}

// Metric returns the named metric value, or the undefined marker when the
// record does not carry the field.
func (r Record) Metric(name string) float64 {
	v, ok := r.Metrics[name]
	if !ok {
		return Undefined()
	}
	return v
}

// Label returns the named label value, or the empty string.
func (r Record) Label(name string) string {
	return r.Labels[name]
}

// clone deep-copies the record so transformations never alias caller maps.
func (r Record) clone() Record {
	out := Record{Date: r.Date}
	if r.Metrics != nil {
		out.Metrics = make(map[string]float64, len(r.Metrics))
		for k, v := range r.Metrics {
			out.Metrics[k] = v
		}
	}
	if r.Labels != nil {
		out.Labels = make(map[string]string, len(r.Labels))
		for k, v := range r.Labels {
			out.Labels[k] = v
		}
	}
	return out
}

// Table is an ordered sequence of Records, ascending by date. Tables tolerate
// irregular spacing; no daily continuity is assumed. All transformations in
// this package return new tables and never mutate their input.
type Table struct {
	records []Record
}

// New builds a table from records, copying and sorting them ascending by
// date. The input slice is not retained.
func New(records []Record) Table {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return Table{records: out}
}

// Len returns the number of records in the table.
func (t Table) Len() int {
	return len(t.records)
}

// At returns the record at index i.
func (t Table) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of the table's records in date order.
func (t Table) Records() []Record {
	out := make([]Record, len(t.records))
	for i, r := range t.records {
		out[i] = r.clone()
	}
	return out
}

// Values returns the named metric across all records, in date order.
func (t Table) Values(field string) []float64 {
	out := make([]float64, len(t.records))
	for i, r := range t.records {
		out[i] = r.Metric(field)
	}
	return out
}

// Sum totals the named metric across the table. Undefined values are skipped.
func (t Table) Sum(field string) float64 {
	var total float64
	for _, r := range t.records {
		if v, ok := r.Metrics[field]; ok && !IsUndefined(v) {
			total += v
		}
	}
	return total
}

// Point is a single (x, y) pair for line and bar charts. An undefined Y
// serializes as null so charts render a gap.
type Point struct {
	X time.Time `json:"x"`
	Y float64   `json:"y"`
}

// MarshalJSON renders undefined values as null; encoding/json rejects NaN.
func (p Point) MarshalJSON() ([]byte, error) {
	type alias struct {
		X time.Time `json:"x"`
		Y *float64  `json:"y"`
	}
	out := alias{X: p.X}
	if !IsUndefined(p.Y) {
		y := p.Y
		out.Y = &y
	}
	return json.Marshal(out)
}

// LinePoints shapes the named metric as ordered (x, y) pairs for the chart
// layer. Records missing the field carry the undefined marker.
func (t Table) LinePoints(field string) []Point {
	out := make([]Point, len(t.records))
	for i, r := range t.records {
		out[i] = Point{X: r.Date, Y: r.Metric(field)}
	}
	return out
}

// CategoryValue is a (category, value) pair for pie and bar charts. An
// undefined value serializes as null.
type CategoryValue struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// MarshalJSON renders undefined values as null; encoding/json rejects NaN.
func (cv CategoryValue) MarshalJSON() ([]byte, error) {
	type alias struct {
		Category string   `json:"category"`
		Value    *float64 `json:"value"`
	}
	out := alias{Category: cv.Category}
	if !IsUndefined(cv.Value) {
		v := cv.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// CategoryValues pairs each record's label with the named metric, preserving
// table order. Records without the label are skipped.
func (t Table) CategoryValues(label, field string) []CategoryValue {
	out := make([]CategoryValue, 0, len(t.records))
	for _, r := range t.records {
		name, ok := r.Labels[label]
		if !ok {
			continue
		}
		out = append(out, CategoryValue{Category: name, Value: r.Metric(field)})
	}
	return out
}

// mapped applies fn to a copy of every record and returns the new table.
// The copy keeps date order, so no re-sort is needed.
func (t Table) mapped(fn func(i int, r *Record)) Table {
	out := make([]Record, len(t.records))
	for i, r := range t.records {
		out[i] = r.clone()
		if out[i].Metrics == nil {
			out[i].Metrics = make(map[string]float64)
		}
		fn(i, &out[i])
	}
	return Table{records: out}
}
