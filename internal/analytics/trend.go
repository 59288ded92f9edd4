package analytics

import (
	"fmt"

	"artistpulse/internal/timeseries"
)

// GrowthRate augments the table with "previous_value" and "growth_rate"
// fields. Row i carries (value[i] - value[i-1]) / value[i-1]; the first row
// has no prior value, and a row is undefined when value[i-1] is zero or
// either value is missing, per the core's division-by-zero and missing-value
// policy.
func GrowthRate(t timeseries.Table, field string) timeseries.Table {
	records := t.Records()
	prev := timeseries.Undefined()
	for i := range records {
		if records[i].Metrics == nil {
			records[i].Metrics = make(map[string]float64)
		}
		cur := records[i].Metric(field)
		records[i].Metrics["previous_value"] = prev
		if i == 0 || timeseries.IsUndefined(cur) || timeseries.IsUndefined(prev) || prev == 0 {
			records[i].Metrics["growth_rate"] = timeseries.Undefined()
		} else {
			records[i].Metrics["growth_rate"] = (cur - prev) / prev
		}
		prev = cur
	}
	return timeseries.New(records)
}

// MovingAverage augments the table with a "<field>_ma<window>" metric: the
// arithmetic mean of the trailing window values ending at each row,
// inclusive. Rows with fewer than window values available are undefined.
func MovingAverage(t timeseries.Table, field string, window int) timeseries.Table {
	maField := fmt.Sprintf("%s_ma%d", field, window)
	records := t.Records()
	values := t.Values(field)
	for i := range records {
		if records[i].Metrics == nil {
			records[i].Metrics = make(map[string]float64)
		}
		records[i].Metrics[maField] = trailingMean(values, i, window)
	}
	return timeseries.New(records)
}

// trailingMean averages values[i-window+1 .. i], or reports undefined when
// the window does not fit.
func trailingMean(values []float64, i, window int) float64 {
	if window <= 0 || i+1 < window {
		return timeseries.Undefined()
	}
	var sum float64
	for j := i - window + 1; j <= i; j++ {
		if timeseries.IsUndefined(values[j]) {
			return timeseries.Undefined()
		}
		sum += values[j]
	}
	return sum / float64(window)
}

// CumulativeSum augments the table with a "<field>_cum" metric holding the
// running total from the first row.
func CumulativeSum(t timeseries.Table, field string) timeseries.Table {
	cumField := field + "_cum"
	records := t.Records()
	var total float64
	for i := range records {
		if records[i].Metrics == nil {
			records[i].Metrics = make(map[string]float64)
		}
		if v := records[i].Metric(field); !timeseries.IsUndefined(v) {
			total += v
		}
		records[i].Metrics[cumField] = total
	}
	return timeseries.New(records)
}

// PercentileRank returns the percentage (0-100) of dataset values less than
// or equal to value. An empty dataset has no defined rank.
func PercentileRank(dataset []float64, value float64) float64 {
	if len(dataset) == 0 {
		return timeseries.Undefined()
	}
	count := 0
	for _, v := range dataset {
		if v <= value {
			count++
		}
	}
	return float64(count) / float64(len(dataset)) * 100
}
