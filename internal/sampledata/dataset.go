package sampledata

import (
	"time"

	"artistpulse/internal/timeseries"
)

// Dataset bundles every sample table the dashboard pages draw from. All
// tables derive from one streaming table, so totals agree across pages.
type Dataset struct {
	Streaming         timeseries.Table
	Platforms         timeseries.Table
	Geography         timeseries.Table
	AgeGroups         timeseries.Table
	Genders           timeseries.Table
	Songs             timeseries.Table
	Revenue           timeseries.Table
	DailyRevenue      timeseries.Table
	RevenueProjection timeseries.Table
}

// Months of revenue projection shown on the revenue page.
const projectionMonths = 4

// All generates the full dataset for days of history ending at endDate.
func (g *Generator) All(days int, endDate time.Time) Dataset {
	streaming := g.StreamingData(days, endDate)
	totalStreams := streaming.Sum("streams")

	platforms := g.PlatformData(totalStreams)
	age, gender := g.DemographicData()
	revenue := g.RevenueData(platforms)
	dailyRevenue := g.DailyRevenue(streaming, revenue)

	return Dataset{
		Streaming:         streaming,
		Platforms:         platforms,
		Geography:         g.GeographicData(totalStreams),
		AgeGroups:         age,
		Genders:           gender,
		Songs:             g.SongData(totalStreams),
		Revenue:           revenue,
		DailyRevenue:      dailyRevenue,
		RevenueProjection: g.RevenueProjection(dailyRevenue.Sum("revenue"), projectionMonths),
	}
}

// SongDaily returns the daily table for one song from the dataset, or false
// when the song is not in the top-song table.
func (g *Generator) SongDaily(d Dataset, song string) (timeseries.Table, bool) {
	totalSongStreams := d.Songs.Sum("streams")
	if totalSongStreams == 0 {
		return timeseries.Table{}, false
	}
	for _, r := range d.Songs.Records() {
		if r.Label("song") == song {
			ratio := r.Metric("streams") / totalSongStreams
			return g.SongDailyData(song, ratio, d.Streaming), true
		}
	}
	return timeseries.Table{}, false
}
