package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistpulse/internal/timeseries"
)

func TestForecast_LinearExtendsExactLine(t *testing.T) {
	// y = 100 + 10x fits itself exactly, so the forecast continues the line.
	table := linearTable("streams", 100, 10, 10)

	out, err := Forecast(table, "streams", 3, MethodLinear)

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 200, out[0], 1e-6)
	assert.InDelta(t, 210, out[1], 1e-6)
	assert.InDelta(t, 220, out[2], 1e-6)
}

func TestForecast_LinearSingleObservationIsFlat(t *testing.T) {
	table := linearTable("streams", 500, 0, 1)

	out, err := Forecast(table, "streams", 2, MethodLinear)

	require.NoError(t, err)
	assert.Equal(t, []float64{500, 500}, out)
}

func TestForecast_MovingAverageRepeatsLastMean(t *testing.T) {
	table := linearTable("streams", 100, 10, 14)

	out, err := Forecast(table, "streams", 4, MethodMovingAverage)

	require.NoError(t, err)
	require.Len(t, out, 4)
	// Trailing 7-value mean of a linear series ending at 230 is 200.
	for _, v := range out {
		assert.InDelta(t, 200, v, 1e-9)
	}
}

func TestForecast_MovingAverageShortSeriesShrinksWindow(t *testing.T) {
	table := linearTable("streams", 10, 10, 3)

	out, err := Forecast(table, "streams", 2, MethodMovingAverage)

	require.NoError(t, err)
	for _, v := range out {
		assert.InDelta(t, 20, v, 1e-9, "window shrinks to the series length")
	}
}

func TestForecast_UnsupportedMethod(t *testing.T) {
	table := linearTable("streams", 1, 1, 5)

	_, err := Forecast(table, "streams", 3, "prophet")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
	assert.Contains(t, err.Error(), "prophet")
}

func TestForecast_EmptyTableYieldsUndefined(t *testing.T) {
	out, err := Forecast(timeseries.Table{}, "streams", 3, MethodLinear)

	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, v := range out {
		assert.True(t, timeseries.IsUndefined(v))
	}
}
