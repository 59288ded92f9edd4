package platform

import (
	"fmt"

	"artistpulse/internal/timeseries"
)

// DailyStat is the generic wire shape a platform export or analytics feed
// delivers: a textual date and a day's stream count. Flattening validates
// and coerces it before it enters the core, so the core's homogeneous
// record invariant holds.
type DailyStat struct {
	Date    string  `json:"date"`
	Streams float64 `json:"streams"`
	Song    string  `json:"song,omitempty"`
}

// DailyStatsTable coerces raw daily stats into a core table. An unparseable
// date fails immediately with ErrMalformedDate; nothing malformed is
// silently dropped.
func DailyStatsTable(stats []DailyStat) (timeseries.Table, error) {
	records := make([]timeseries.Record, 0, len(stats))
	for i, s := range stats {
		date, err := timeseries.ParseDate(s.Date)
		if err != nil {
			return timeseries.Table{}, fmt.Errorf("daily stat %d: %w", i, err)
		}
		r := timeseries.Record{
			Date:    date,
			Metrics: map[string]float64{"streams": s.Streams},
		}
		if s.Song != "" {
			r.Labels = map[string]string{"song": s.Song}
		}
		records = append(records, r)
	}
	return timeseries.New(records), nil
}

// TracksTable flattens a track list into a categorical core table, one
// record per track labeled by song name.
func TracksTable(tracks []Track) timeseries.Table {
	records := make([]timeseries.Record, 0, len(tracks))
	for _, t := range tracks {
		records = append(records, timeseries.Record{
			Labels: map[string]string{"song": t.Name},
			Metrics: map[string]float64{
				"popularity":  float64(t.Popularity),
				"duration_ms": float64(t.DurationMS),
				"streams":     t.PlayCount,
			},
		})
	}
	return timeseries.New(records)
}
