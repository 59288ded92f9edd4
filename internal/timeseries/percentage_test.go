package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPercentage_SharesSumToHundred(t *testing.T) {
	table := New([]Record{
		{Metrics: map[string]float64{"streams": 450}, Labels: map[string]string{"platform": "Spotify"}},
		{Metrics: map[string]float64{"streams": 250}, Labels: map[string]string{"platform": "Apple Music"}},
		{Metrics: map[string]float64{"streams": 300}, Labels: map[string]string{"platform": "YouTube Music"}},
	})

	out := ToPercentage(table, "streams")

	require.Equal(t, 3, out.Len())
	assert.InDelta(t, 45.0, out.At(0).Metric("streams_pct"), 1e-9)
	assert.InDelta(t, 100.0, out.Sum("streams_pct"), 1e-9)
}

func TestToPercentage_KeepsOriginalField(t *testing.T) {
	table := New([]Record{
		{Metrics: map[string]float64{"streams": 80}},
		{Metrics: map[string]float64{"streams": 20}},
	})

	out := ToPercentage(table, "streams")

	assert.Equal(t, 80.0, out.At(0).Metric("streams"))
	assert.Equal(t, 100.0, table.Sum("streams"), "input table is untouched")
	assert.True(t, IsUndefined(table.At(0).Metric("streams_pct")))
}

func TestToPercentage_ZeroTotalIsUndefined(t *testing.T) {
	table := New([]Record{
		{Metrics: map[string]float64{"streams": 0}},
		{Metrics: map[string]float64{"streams": 0}},
	})

	out := ToPercentage(table, "streams")

	for _, r := range out.Records() {
		assert.True(t, IsUndefined(r.Metric("streams_pct")))
	}
}

func TestToPercentageOf_ExplicitTotal(t *testing.T) {
	table := New([]Record{
		{Metrics: map[string]float64{"streams": 50}},
	})

	out := ToPercentageOf(table, "streams", 200)

	assert.InDelta(t, 25.0, out.At(0).Metric("streams_pct"), 1e-9)
}

func TestToPercentage_MissingFieldIsUndefined(t *testing.T) {
	table := New([]Record{
		{Metrics: map[string]float64{"streams": 50}},
		{Metrics: map[string]float64{"followers": 10}},
	})

	out := ToPercentage(table, "streams")

	assert.False(t, IsUndefined(out.At(0).Metric("streams_pct")))
	assert.True(t, IsUndefined(out.At(1).Metric("streams_pct")))
}
