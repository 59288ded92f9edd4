package timeseries

// ToPercentage adds a derived "<field>_pct" metric holding each record's
// share of the table total, as a 0-100 percentage. When the total is zero
// every share is the undefined marker rather than an error, matching the
// division-by-zero policy of the growth calculations.
func ToPercentage(t Table, field string) Table {
	return ToPercentageOf(t, field, t.Sum(field))
}

// ToPercentageOf is ToPercentage against an explicit total, for callers
// normalizing a slice of a larger dataset.
func ToPercentageOf(t Table, field string, total float64) Table {
	pctField := field + "_pct"
	return t.mapped(func(_ int, r *Record) {
		v, ok := r.Metrics[field]
		if !ok || IsUndefined(v) || total == 0 {
			r.Metrics[pctField] = Undefined()
			return
		}
		r.Metrics[pctField] = v / total * 100
	})
}
