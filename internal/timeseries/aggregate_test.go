package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailyTable builds n consecutive daily records starting at start, with the
// stream count equal to the day index plus one.
func dailyTable(start time.Time, n int) Table {
	records := make([]Record, n)
	for i := 0; i < n; i++ {
		records[i] = Record{
			Date:    start.AddDate(0, 0, i),
			Metrics: map[string]float64{"streams": float64(i + 1)},
		}
	}
	return New(records)
}

func TestAggregate_WeeklySumPreservesTotal(t *testing.T) {
	// 2026-03-02 is a Monday, so 21 days span exactly three ISO weeks.
	table := dailyTable(day(2026, 3, 2), 21)

	weekly, err := Aggregate(table, Weekly, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, weekly.Len())
	assert.Equal(t, table.Sum("streams"), weekly.Sum("streams"),
		"summing bucket totals must equal summing the raw records")
}

func TestAggregate_WeeklyBucketDatesAreFirstObserved(t *testing.T) {
	table := dailyTable(day(2026, 3, 2), 14)

	weekly, err := Aggregate(table, Weekly, nil)

	require.NoError(t, err)
	require.Equal(t, 2, weekly.Len())
	assert.Equal(t, day(2026, 3, 2), weekly.At(0).Date)
	assert.Equal(t, day(2026, 3, 9), weekly.At(1).Date)
}

func TestAggregate_WeeklyYearBoundary(t *testing.T) {
	// 2025-12-29 through 2026-01-04 is one ISO week (2026-W01); the split
	// must follow ISO week identity, not the calendar year.
	table := dailyTable(day(2025, 12, 29), 7)

	weekly, err := Aggregate(table, Weekly, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, weekly.Len())
}

func TestAggregate_Monthly(t *testing.T) {
	table := New([]Record{
		{Date: day(2026, 1, 10), Metrics: map[string]float64{"streams": 100}},
		{Date: day(2026, 1, 20), Metrics: map[string]float64{"streams": 200}},
		{Date: day(2026, 2, 5), Metrics: map[string]float64{"streams": 50}},
	})

	monthly, err := Aggregate(table, Monthly, nil)

	require.NoError(t, err)
	require.Equal(t, 2, monthly.Len())
	assert.Equal(t, 300.0, monthly.At(0).Metric("streams"))
	assert.Equal(t, 50.0, monthly.At(1).Metric("streams"))
}

func TestAggregate_Functions(t *testing.T) {
	table := New([]Record{
		{Date: day(2026, 1, 5), Metrics: map[string]float64{"followers": 100}},
		{Date: day(2026, 1, 6), Metrics: map[string]float64{"followers": 110}},
		{Date: day(2026, 1, 7), Metrics: map[string]float64{"followers": 130}},
	})

	tests := []struct {
		name     string
		fn       AggFunc
		expected float64
	}{
		{name: "sum", fn: AggSum, expected: 340},
		{name: "mean", fn: AggMean, expected: 340.0 / 3},
		{name: "first", fn: AggFirst, expected: 100},
		{name: "count", fn: AggCount, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Aggregate(table, Monthly, map[string]AggFunc{"followers": tt.fn})
			require.NoError(t, err)
			require.Equal(t, 1, out.Len())
			assert.InDelta(t, tt.expected, out.At(0).Metric("followers"), 1e-9)
		})
	}
}

func TestAggregate_SingleRecordBucketIsIdentityForSumAndMean(t *testing.T) {
	table := New([]Record{
		{Date: day(2026, 4, 1), Metrics: map[string]float64{"streams": 77}},
	})

	for _, fn := range []AggFunc{AggSum, AggMean} {
		out, err := Aggregate(table, Weekly, map[string]AggFunc{"streams": fn})
		require.NoError(t, err)
		require.Equal(t, 1, out.Len())
		assert.Equal(t, 77.0, out.At(0).Metric("streams"))
	}
}

func TestAggregate_EmptyTable(t *testing.T) {
	out, err := Aggregate(Table{}, Weekly, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestAggregate_ZeroDateFails(t *testing.T) {
	table := New([]Record{{Metrics: map[string]float64{"streams": 1}}})

	_, err := Aggregate(table, Weekly, nil)

	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	table := dailyTable(day(2026, 3, 2), 7)
	before := table.Values("streams")

	_, err := Aggregate(table, Weekly, nil)

	require.NoError(t, err)
	assert.Equal(t, before, table.Values("streams"))
}

func TestGranularityAndAggFuncStrings(t *testing.T) {
	assert.Equal(t, "weekly", Weekly.String())
	assert.Equal(t, "monthly", Monthly.String())
	assert.Equal(t, "sum", AggSum.String())
	assert.Equal(t, "mean", AggMean.String())
	assert.Equal(t, "first", AggFirst.String())
	assert.Equal(t, "count", AggCount.String())
}
