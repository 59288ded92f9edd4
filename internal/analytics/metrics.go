package analytics

import (
	"fmt"
	"math"

	"artistpulse/internal/timeseries"
)

// Growth returns the fractional growth between two values. A zero previous
// value yields +Inf so callers can distinguish "new" from "unchanged"; the
// formatted form renders it as "+∞%".
func Growth(current, previous float64) float64 {
	if previous == 0 {
		return math.Inf(1)
	}
	return (current - previous) / previous
}

// GrowthPercent formats the growth between two values for summary cards,
// e.g. "+12.3%" or "-4.0%".
func GrowthPercent(current, previous float64) string {
	growth := Growth(current, previous)
	if math.IsInf(growth, 1) {
		return "+∞%"
	}
	sign := ""
	if growth >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, growth*100)
}

// ConversionRate returns numerator/denominator, or 0 when the denominator
// is zero.
func ConversionRate(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Retention returns the fraction of an initial value still present.
func Retention(initial, current float64) float64 {
	if initial == 0 {
		return 0
	}
	return current / initial
}

// Churn returns the fraction of an initial value lost.
func Churn(initial, current float64) float64 {
	if initial == 0 {
		return 0
	}
	return 1 - current/initial
}

// Engagement score normalization caps: 10k streams, a 30% save rate, and a
// 5% share rate each count as maximal engagement.
const (
	highStreams   = 10000.0
	highSaveRate  = 0.3
	highShareRate = 0.05
)

// engagementWeights weight streams, saves, shares, and completion rate in
// that order.
var engagementWeights = [4]float64{0.4, 0.2, 0.2, 0.2}

// EngagementScore blends streams, saves, shares, and completion rate into a
// 0-100 score for a song.
func EngagementScore(streams, saves, shares, completionRate float64) float64 {
	normStreams := math.Min(streams/highStreams, 1)
	normSaves := 0.0
	normShares := 0.0
	if streams > 0 {
		normSaves = math.Min(saves/(streams*highSaveRate), 1)
		normShares = math.Min(shares/(streams*highShareRate), 1)
	}

	score := normStreams*engagementWeights[0] +
		normSaves*engagementWeights[1] +
		normShares*engagementWeights[2] +
		completionRate*engagementWeights[3]

	return score * 100
}

// SongEngagement scores one record of a song summary table, reading the
// streams, saves, shares, and avg_completion_rate metrics.
func SongEngagement(r timeseries.Record) float64 {
	return EngagementScore(
		r.Metric("streams"),
		r.Metric("saves"),
		r.Metric("shares"),
		r.Metric("avg_completion_rate"),
	)
}
