// Package sampledata synthesizes the demo dataset the dashboard renders when
// no streaming platform is connected. Generation is deterministic for a
// given seed, so tests and repeated page loads see the same numbers.
package sampledata

import (
	"fmt"
	"math/rand"
	"time"

	"artistpulse/internal/dateutil"
	"artistpulse/internal/timeseries"
)

// Generator produces sample tables shaped like the transformation core's
// input: daily dates and integer metrics for time series, labeled records
// for categorical breakdowns. Categorical tables (platforms, demographics)
// carry no dates.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded for reproducible output.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Base levels for the synthetic artist.
const (
	baseStreams   = 1000
	baseFollowers = 5000
	weekendBoost  = 1.3
)

// StreamingData generates days of daily streams and cumulative followers
// ending at endDate: a 1% per-day upward trend, a weekend boost, and a
// ±15% daily fluctuation, with followers growing at roughly 2% of streams.
func (g *Generator) StreamingData(days int, endDate time.Time) timeseries.Table {
	dates := dateutil.LastNDays(days, endDate)
	records := make([]timeseries.Record, 0, len(dates))

	followers := float64(baseFollowers)
	for i, date := range dates {
		boost := 1.0
		if dateutil.IsWeekend(date) {
			boost = weekendBoost
		}
		fluctuation := g.uniform(0.85, 1.15)
		trend := 1 + float64(i)*0.01

		streams := float64(int(baseStreams * boost * fluctuation * trend))
		followers += float64(int(streams * 0.02 * g.uniform(0.8, 1.2)))

		records = append(records, timeseries.Record{
			Date: date,
			Metrics: map[string]float64{
				"streams":   streams,
				"followers": followers,
			},
		})
	}

	return timeseries.New(records)
}

// Platform share of total streams, mirroring typical distribution data.
var platformShares = []timeseries.CategoryValue{
	{Category: "Spotify", Value: 0.45},
	{Category: "Apple Music", Value: 0.25},
	{Category: "YouTube Music", Value: 0.15},
	{Category: "Amazon Music", Value: 0.10},
	{Category: "Other", Value: 0.05},
}

// PlatformData distributes totalStreams across platforms.
func (g *Generator) PlatformData(totalStreams float64) timeseries.Table {
	records := make([]timeseries.Record, 0, len(platformShares))
	for _, share := range platformShares {
		records = append(records, timeseries.Record{
			Labels: map[string]string{"platform": share.Category},
			Metrics: map[string]float64{
				"percentage": share.Value,
				"streams":    float64(int(totalStreams * share.Value)),
			},
		})
	}
	return timeseries.New(records)
}

var countryShares = []timeseries.CategoryValue{
	{Category: "United States", Value: 0.35},
	{Category: "United Kingdom", Value: 0.15},
	{Category: "Germany", Value: 0.10},
	{Category: "Canada", Value: 0.08},
	{Category: "Australia", Value: 0.07},
	{Category: "France", Value: 0.06},
	{Category: "Brazil", Value: 0.05},
	{Category: "Mexico", Value: 0.04},
	{Category: "Japan", Value: 0.03},
	{Category: "Other", Value: 0.07},
}

// GeographicData distributes listeners across countries.
func (g *Generator) GeographicData(totalStreams float64) timeseries.Table {
	records := make([]timeseries.Record, 0, len(countryShares))
	for _, share := range countryShares {
		records = append(records, timeseries.Record{
			Labels: map[string]string{"country": share.Category},
			Metrics: map[string]float64{
				"percentage": share.Value,
				"listeners":  float64(int(totalStreams * share.Value)),
			},
		})
	}
	return timeseries.New(records)
}

var ageShares = []timeseries.CategoryValue{
	{Category: "13-17", Value: 0.12},
	{Category: "18-24", Value: 0.35},
	{Category: "25-34", Value: 0.28},
	{Category: "35-44", Value: 0.15},
	{Category: "45-54", Value: 0.07},
	{Category: "55+", Value: 0.03},
}

var genderShares = []timeseries.CategoryValue{
	{Category: "Female", Value: 0.58},
	{Category: "Male", Value: 0.40},
	{Category: "Non-binary/Other", Value: 0.02},
}

// DemographicData returns the age-group and gender breakdown tables.
func (g *Generator) DemographicData() (age, gender timeseries.Table) {
	ageRecords := make([]timeseries.Record, 0, len(ageShares))
	for _, share := range ageShares {
		ageRecords = append(ageRecords, timeseries.Record{
			Labels:  map[string]string{"age_group": share.Category},
			Metrics: map[string]float64{"percentage": share.Value},
		})
	}
	genderRecords := make([]timeseries.Record, 0, len(genderShares))
	for _, share := range genderShares {
		genderRecords = append(genderRecords, timeseries.Record{
			Labels:  map[string]string{"gender": share.Category},
			Metrics: map[string]float64{"percentage": share.Value},
		})
	}
	return timeseries.New(ageRecords), timeseries.New(genderRecords)
}

var songShares = []timeseries.CategoryValue{
	{Category: "Eternal Echoes", Value: 0.30},
	{Category: "Midnight Dreams", Value: 0.25},
	{Category: "Solar Flare", Value: 0.20},
	{Category: "Ocean Waves", Value: 0.15},
	{Category: "Mountain Peak", Value: 0.10},
}

// SongData generates the top-song summary: streams, completion rate, saves,
// and shares per song.
func (g *Generator) SongData(totalStreams float64) timeseries.Table {
	records := make([]timeseries.Record, 0, len(songShares))
	for _, share := range songShares {
		streams := float64(int(totalStreams * share.Value))
		records = append(records, timeseries.Record{
			Labels: map[string]string{"song": share.Category},
			Metrics: map[string]float64{
				"streams":             streams,
				"avg_completion_rate": g.uniform(0.7, 0.95),
				"saves":               float64(int(streams * g.uniform(0.1, 0.3))),
				"shares":              float64(int(streams * g.uniform(0.01, 0.05))),
			},
		})
	}
	return timeseries.New(records)
}

// SongDailyData derives a song's daily stream counts from the overall
// streaming table, scaled by the song's share of total streams.
func (g *Generator) SongDailyData(song string, songRatio float64, streaming timeseries.Table) timeseries.Table {
	records := make([]timeseries.Record, 0, streaming.Len())
	for _, r := range streaming.Records() {
		boost := 1.0
		if dateutil.IsWeekend(r.Date) {
			boost = weekendBoost
		}
		streams := float64(int(r.Metric("streams") * songRatio * boost * g.uniform(0.8, 1.2)))
		records = append(records, timeseries.Record{
			Date:    r.Date,
			Labels:  map[string]string{"song": song},
			Metrics: map[string]float64{"streams": streams},
		})
	}
	return timeseries.New(records)
}

// Engagement metric names shown on the audience heatmap.
var engagementMetrics = []string{
	"Stream Completion", "Save Rate", "Share Rate", "Repeat Listens",
}

// EngagementByAge generates a long-format engagement table: one record per
// (metric, age group) pair with a 10-90% value, ready for pivoting into the
// audience heatmap.
func (g *Generator) EngagementByAge() timeseries.Table {
	records := make([]timeseries.Record, 0, len(engagementMetrics)*len(ageShares))
	for _, age := range ageShares {
		for _, metric := range engagementMetrics {
			records = append(records, timeseries.Record{
				Labels: map[string]string{
					"age_group": age.Category,
					"metric":    metric,
				},
				Metrics: map[string]float64{"value": g.uniform(0.1, 0.9)},
			})
		}
	}
	return timeseries.New(records)
}

// Per-stream payout rates by platform, in dollars.
var revenueRates = map[string]float64{
	"Spotify":       0.00437,
	"Apple Music":   0.00735,
	"YouTube Music": 0.00069,
	"Amazon Music":  0.00402,
	"Other":         0.00250,
}

// RevenueData extends the platform table with per-stream rates and total
// revenue per platform.
func (g *Generator) RevenueData(platforms timeseries.Table) timeseries.Table {
	records := platforms.Records()
	for i := range records {
		rate := revenueRates[records[i].Label("platform")]
		records[i].Metrics["revenue_per_stream"] = rate
		records[i].Metrics["total_revenue"] = records[i].Metric("streams") * rate
	}
	return timeseries.New(records)
}

// DailyRevenue derives a daily revenue table by splitting each day's streams
// across the platform distribution and applying each platform's rate.
func (g *Generator) DailyRevenue(streaming, revenue timeseries.Table) timeseries.Table {
	totalPlatformStreams := revenue.Sum("streams")
	records := make([]timeseries.Record, 0, streaming.Len())
	for _, day := range streaming.Records() {
		var dayRevenue float64
		if totalPlatformStreams > 0 {
			for _, p := range revenue.Records() {
				ratio := p.Metric("streams") / totalPlatformStreams
				dayRevenue += day.Metric("streams") * ratio * p.Metric("revenue_per_stream")
			}
		}
		records = append(records, timeseries.Record{
			Date:    day.Date,
			Metrics: map[string]float64{"revenue": dayRevenue},
		})
	}
	return timeseries.New(records)
}

// RevenueProjection projects monthlyRevenue forward with the original 7%
// compounding step per month: month n grows by 7%×n over the current month.
func (g *Generator) RevenueProjection(monthlyRevenue float64, months int) timeseries.Table {
	records := make([]timeseries.Record, 0, months)
	for i := 0; i < months; i++ {
		label := "Current Month"
		rate := 1.0
		if i > 0 {
			label = fmt.Sprintf("Month %d", i)
			rate = 1.0 + 0.07*float64(i)
		}
		records = append(records, timeseries.Record{
			Labels: map[string]string{"month": label},
			Metrics: map[string]float64{
				"projected_revenue": monthlyRevenue * rate,
				"growth_rate":       rate,
			},
		})
	}
	return timeseries.New(records)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}
