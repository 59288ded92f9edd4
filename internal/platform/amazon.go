package platform

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"artistpulse/internal/config"
	"artistpulse/internal/dateutil"
	"artistpulse/internal/timeseries"
)

// AmazonMusicClient is a stub adapter. Amazon Music offers no public API
// for streaming data, so this client returns deterministic placeholder
// profiles until a real integration exists; the rest of the system treats
// it like any other platform.
type AmazonMusicClient struct {
	cfg    config.AmazonConfig
	logger *slog.Logger
}

// NewAmazonMusicClient creates the Amazon Music stub adapter.
func NewAmazonMusicClient(cfg config.AmazonConfig, logger *slog.Logger) *AmazonMusicClient {
	return &AmazonMusicClient{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "amazon_music_client")),
	}
}

// Name returns the platform's display name.
func (c *AmazonMusicClient) Name() string { return "Amazon Music" }

// FetchArtistProfile returns a deterministic placeholder profile derived
// from the artist id.
func (c *AmazonMusicClient) FetchArtistProfile(ctx context.Context, artistID string) (ArtistSummary, error) {
	h := fnv.New32a()
	h.Write([]byte(artistID))

	return ArtistSummary{
		Platform:   c.Name(),
		ID:         fmt.Sprintf("amzn1.artist.%04d", h.Sum32()%10000),
		Name:       artistID,
		Popularity: 85,
	}, nil
}

// FetchDailyStats returns deterministic placeholder daily stats. The stub
// emits the same textual wire shape a real export feed would deliver and
// flattens it through DailyStatsTable, so the coercion path is identical to
// a live integration's.
func (c *AmazonMusicClient) FetchDailyStats(ctx context.Context, artistID string, start, end time.Time) (timeseries.Table, error) {
	days := dateutil.DateRange(start, end)
	stats := make([]DailyStat, 0, len(days))
	for _, d := range days {
		h := fnv.New32a()
		h.Write([]byte(artistID))
		h.Write([]byte(d.Format("2006-01-02")))
		stats = append(stats, DailyStat{
			Date:    d.Format("2006-01-02"),
			Streams: 5000 + float64(h.Sum32()%5000),
		})
	}
	return DailyStatsTable(stats)
}

// FetchTopTracks returns deterministic placeholder tracks.
func (c *AmazonMusicClient) FetchTopTracks(ctx context.Context, artistID string) ([]Track, error) {
	return []Track{
		{ID: artistID + ".track1", Name: "Amazing Song", DurationMS: 214000, Popularity: 92},
		{ID: artistID + ".track2", Name: "Awesome Tune", DurationMS: 187000, Popularity: 88},
		{ID: artistID + ".track3", Name: "Incredible Music", DurationMS: 243000, Popularity: 85},
	}, nil
}
