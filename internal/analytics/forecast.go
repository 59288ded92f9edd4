package analytics

import (
	"errors"
	"fmt"

	"artistpulse/internal/timeseries"
)

// ErrUnsupportedMethod indicates an unrecognized forecast method name.
var ErrUnsupportedMethod = errors.New("unsupported forecast method")

// Forecast method names.
const (
	MethodLinear        = "linear"
	MethodMovingAverage = "moving_average"
)

// Forecast predicts the named metric for periods future points.
//
// MethodLinear fits an ordinary least-squares line of value against the
// 0-based row index and extrapolates it. MethodMovingAverage repeats the
// last trailing mean, with window min(7, table length), for every future
// point. Any other method fails with ErrUnsupportedMethod carrying the
// offending name.
func Forecast(t timeseries.Table, field string, periods int, method string) ([]float64, error) {
	switch method {
	case MethodLinear:
		return forecastLinear(t.Values(field), periods), nil
	case MethodMovingAverage:
		return forecastMovingAverage(t.Values(field), periods), nil
	default:
		return nil, fmt.Errorf("forecast method %q: %w", method, ErrUnsupportedMethod)
	}
}

// forecastLinear extrapolates an OLS fit of y against row index.
func forecastLinear(values []float64, periods int) []float64 {
	n := float64(len(values))
	if n == 0 {
		return undefinedSeries(periods)
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		if timeseries.IsUndefined(y) {
			y = 0
		}
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	var slope, intercept float64
	if denom == 0 {
		// Single observation: flat extrapolation.
		intercept = sumY / n
	} else {
		slope = (n*sumXY - sumX*sumY) / denom
		intercept = (sumY - slope*sumX) / n
	}

	out := make([]float64, periods)
	for p := 0; p < periods; p++ {
		x := n + float64(p)
		out[p] = slope*x + intercept
	}
	return out
}

// forecastMovingAverage repeats the last trailing mean for every period.
func forecastMovingAverage(values []float64, periods int) []float64 {
	if len(values) == 0 {
		return undefinedSeries(periods)
	}
	window := 7
	if len(values) < window {
		window = len(values)
	}
	last := trailingMean(values, len(values)-1, window)
	out := make([]float64, periods)
	for p := range out {
		out[p] = last
	}
	return out
}

func undefinedSeries(periods int) []float64 {
	out := make([]float64, periods)
	for i := range out {
		out[i] = timeseries.Undefined()
	}
	return out
}
