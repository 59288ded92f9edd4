package timeseries

import (
	"fmt"
	"sort"
)

// Granularity selects the time bucket for aggregation.
type Granularity int

const (
	// Weekly buckets records by ISO-8601 week (Monday start, week 1 holds
	// the year's first Thursday).
	Weekly Granularity = iota
	// Monthly buckets records by calendar year and month.
	Monthly
)

// String returns the granularity name.
func (g Granularity) String() string {
	switch g {
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// AggFunc selects how values inside one bucket collapse to a single number.
type AggFunc int

const (
	// AggSum totals the bucket. The default for metric fields.
	AggSum AggFunc = iota
	// AggMean averages the bucket.
	AggMean
	// AggFirst takes the first observed value in the bucket.
	AggFirst
	// AggCount counts observations carrying the field.
	AggCount
)

// String returns the aggregation function name.
func (f AggFunc) String() string {
	switch f {
	case AggSum:
		return "sum"
	case AggMean:
		return "mean"
	case AggFirst:
		return "first"
	case AggCount:
		return "count"
	default:
		return "unknown"
	}
}

// groupKey is the derived bucket identity: (ISO year, ISO week) for weekly
// aggregation, (year, month) for monthly. Every record maps to exactly one
// key under a chosen granularity.
type groupKey struct {
	year   int
	period int
}

func keyFor(r Record, g Granularity) groupKey {
	if g == Weekly {
		y, w := r.Date.ISOWeek()
		return groupKey{year: y, period: w}
	}
	return groupKey{year: r.Date.Year(), period: int(r.Date.Month())}
}

// Aggregate rolls the table up into weekly or monthly buckets. The fields map
// names the metric fields to keep and the function applied to each; a nil map
// aggregates every metric field present with AggSum. Each output record's
// date is the first observed date in its bucket, and output order is
// ascending by (year, week-or-month).
//
// A bucket containing a single record yields that record's value unchanged
// under AggSum and AggMean. An empty table aggregates to an empty table. A
// record with a zero date fails with ErrMalformedDate.
func Aggregate(t Table, g Granularity, fields map[string]AggFunc) (Table, error) {
	if t.Len() == 0 {
		return Table{}, nil
	}

	if fields == nil {
		fields = make(map[string]AggFunc)
		for _, r := range t.records {
			for name := range r.Metrics {
				fields[name] = AggSum
			}
		}
	}

	type bucket struct {
		key    groupKey
		first  Record
		sums   map[string]float64
		firsts map[string]float64
		counts map[string]int
	}

	buckets := make(map[groupKey]*bucket)
	order := make([]groupKey, 0)

	for _, r := range t.records {
		if r.Date.IsZero() {
			return Table{}, fmt.Errorf("aggregate %s: record has no date: %w", g, ErrMalformedDate)
		}
		key := keyFor(r, g)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				key:    key,
				first:  r,
				sums:   make(map[string]float64),
				firsts: make(map[string]float64),
				counts: make(map[string]int),
			}
			buckets[key] = b
			order = append(order, key)
		}
		for name := range fields {
			v, present := r.Metrics[name]
			if !present || IsUndefined(v) {
				continue
			}
			if b.counts[name] == 0 {
				b.firsts[name] = v
			}
			b.sums[name] += v
			b.counts[name]++
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].period < order[j].period
	})

	out := make([]Record, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		metrics := make(map[string]float64, len(fields))
		for name, fn := range fields {
			n := b.counts[name]
			if n == 0 {
				continue
			}
			switch fn {
			case AggMean:
				metrics[name] = b.sums[name] / float64(n)
			case AggFirst:
				metrics[name] = b.firsts[name]
			case AggCount:
				metrics[name] = float64(n)
			default:
				metrics[name] = b.sums[name]
			}
		}
		out = append(out, Record{Date: b.first.Date, Metrics: metrics})
	}

	return Table{records: out}, nil
}
