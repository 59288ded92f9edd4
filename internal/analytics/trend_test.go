package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistpulse/internal/timeseries"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// linearTable builds n daily records whose metric increases by step per day
// starting at base.
func linearTable(field string, base, step float64, n int) timeseries.Table {
	records := make([]timeseries.Record, n)
	for i := 0; i < n; i++ {
		records[i] = timeseries.Record{
			Date:    day(2026, 3, 1).AddDate(0, 0, i),
			Metrics: map[string]float64{field: base + step*float64(i)},
		}
	}
	return timeseries.New(records)
}

func TestGrowthRate(t *testing.T) {
	table := timeseries.New([]timeseries.Record{
		{Date: day(2026, 1, 1), Metrics: map[string]float64{"streams": 100}},
		{Date: day(2026, 1, 2), Metrics: map[string]float64{"streams": 110}},
		{Date: day(2026, 1, 3), Metrics: map[string]float64{"streams": 99}},
	})

	out := GrowthRate(table, "streams")

	require.Equal(t, 3, out.Len())
	assert.True(t, timeseries.IsUndefined(out.At(0).Metric("growth_rate")),
		"first row has no prior value")
	assert.True(t, timeseries.IsUndefined(out.At(0).Metric("previous_value")))
	assert.InDelta(t, 0.10, out.At(1).Metric("growth_rate"), 1e-9)
	assert.Equal(t, 100.0, out.At(1).Metric("previous_value"))
	assert.InDelta(t, -0.10, out.At(2).Metric("growth_rate"), 1e-9)
}

func TestGrowthRate_ZeroPreviousIsUndefined(t *testing.T) {
	table := timeseries.New([]timeseries.Record{
		{Date: day(2026, 1, 1), Metrics: map[string]float64{"streams": 0}},
		{Date: day(2026, 1, 2), Metrics: map[string]float64{"streams": 50}},
	})

	out := GrowthRate(table, "streams")

	assert.True(t, timeseries.IsUndefined(out.At(1).Metric("growth_rate")))
	assert.Equal(t, 0.0, out.At(1).Metric("previous_value"))
}

func TestGrowthRate_LinearIncreaseIsMonotonicallyNonIncreasing(t *testing.T) {
	// A constant absolute step against a growing base shrinks the relative
	// rate: 10/100, 10/110, 10/120, ...
	table := linearTable("streams", 100, 10, 30)

	out := GrowthRate(table, "streams")

	assert.True(t, timeseries.IsUndefined(out.At(0).Metric("growth_rate")))
	prev := out.At(1).Metric("growth_rate")
	require.False(t, timeseries.IsUndefined(prev))
	assert.InDelta(t, 0.10, prev, 1e-9)
	for i := 2; i < out.Len(); i++ {
		rate := out.At(i).Metric("growth_rate")
		require.False(t, timeseries.IsUndefined(rate), "row %d", i)
		assert.Greater(t, rate, 0.0, "row %d", i)
		assert.LessOrEqual(t, rate, prev+1e-12, "row %d", i)
		prev = rate
	}
}

func TestGrowthRate_NonIncreasingSeriesNeverPositive(t *testing.T) {
	table := linearTable("streams", 100, -2, 10)

	out := GrowthRate(table, "streams")

	for i := 1; i < out.Len(); i++ {
		rate := out.At(i).Metric("growth_rate")
		if !timeseries.IsUndefined(rate) {
			assert.LessOrEqual(t, rate, 0.0, "row %d", i)
		}
	}
}

func TestGrowthRate_MissingValueIsUndefined(t *testing.T) {
	table := timeseries.New([]timeseries.Record{
		{Date: day(2026, 1, 1), Metrics: map[string]float64{"streams": 100}},
		{Date: day(2026, 1, 2)},
		{Date: day(2026, 1, 3), Metrics: map[string]float64{"streams": 50}},
	})

	out := GrowthRate(table, "streams")

	assert.True(t, timeseries.IsUndefined(out.At(1).Metric("growth_rate")),
		"a row without the field cannot have a rate")
	assert.True(t, timeseries.IsUndefined(out.At(2).Metric("growth_rate")),
		"a row following a gap cannot have a rate")
	assert.Equal(t, 100.0, out.At(1).Metric("previous_value"))
}

func TestMovingAverage_Window7OverLinearInput(t *testing.T) {
	// Over a linear series the trailing 7-value mean equals the value three
	// positions back.
	table := linearTable("streams", 100, 10, 14)

	out := MovingAverage(table, "streams", 7)

	for i := 0; i < out.Len(); i++ {
		ma := out.At(i).Metric("streams_ma7")
		if i < 6 {
			assert.True(t, timeseries.IsUndefined(ma), "row %d lacks a full window", i)
			continue
		}
		expected := out.At(i - 3).Metric("streams")
		assert.InDelta(t, expected, ma, 1e-9, "row %d", i)
	}
}

func TestMovingAverage_PreservesInput(t *testing.T) {
	table := linearTable("streams", 1, 1, 5)

	out := MovingAverage(table, "streams", 3)

	assert.Equal(t, table.Values("streams"), out.Values("streams"))
	assert.True(t, timeseries.IsUndefined(table.At(4).Metric("streams_ma3")),
		"input table is untouched")
}

func TestCumulativeSum(t *testing.T) {
	table := timeseries.New([]timeseries.Record{
		{Date: day(2026, 1, 1), Metrics: map[string]float64{"revenue_usd": 1.5}},
		{Date: day(2026, 1, 2), Metrics: map[string]float64{"revenue_usd": 2.5}},
		{Date: day(2026, 1, 3), Metrics: map[string]float64{"revenue_usd": 1.0}},
	})

	out := CumulativeSum(table, "revenue_usd")

	assert.InDelta(t, 1.5, out.At(0).Metric("revenue_usd_cum"), 1e-9)
	assert.InDelta(t, 4.0, out.At(1).Metric("revenue_usd_cum"), 1e-9)
	assert.InDelta(t, 5.0, out.At(2).Metric("revenue_usd_cum"), 1e-9)
}

func TestPercentileRank(t *testing.T) {
	dataset := []float64{10, 20, 30, 40, 50}

	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{name: "median", value: 30, expected: 60},
		{name: "below all", value: 5, expected: 0},
		{name: "above all", value: 100, expected: 100},
		{name: "exact max", value: 50, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PercentileRank(dataset, tt.value), 1e-9)
		})
	}

	assert.True(t, timeseries.IsUndefined(PercentileRank(nil, 10)),
		"empty dataset has no defined rank")
}
