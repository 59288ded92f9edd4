package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistpulse/internal/config"
	"artistpulse/internal/timeseries"
)

func testService(t *testing.T) *DashboardService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Data.SampleSeed = 42
	cfg.Data.DefaultDays = 30

	svc := NewDashboardService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time {
		return time.Date(2026, 3, 31, 14, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestOverview(t *testing.T) {
	svc := testService(t)

	payload, err := svc.Overview(context.Background(), "Last 30 Days")

	require.NoError(t, err)
	assert.Equal(t, "Last 30 Days", payload.Period)
	assert.Len(t, payload.DailyStreams, 30)
	assert.Len(t, payload.StreamsMA, 30)
	assert.Len(t, payload.FollowerTrend, 30)
	assert.Len(t, payload.PlatformShare, 5)
	assert.Len(t, payload.TopSongs, 5)

	require.NotEmpty(t, payload.Cards)
	assert.Equal(t, "Total Streams", payload.Cards[0].Label)
	assert.Greater(t, payload.Cards[0].Value, 0.0)

	// The first six moving-average points lack a full window.
	for i := 0; i < 6; i++ {
		assert.True(t, timeseries.IsUndefined(payload.StreamsMA[i].Y), "point %d", i)
	}
	assert.False(t, timeseries.IsUndefined(payload.StreamsMA[6].Y))

	var shareTotal float64
	for _, cv := range payload.PlatformShare {
		shareTotal += cv.Value
	}
	assert.InDelta(t, 100, shareTotal, 0.1, "platform shares are percentages")
}

func TestOverview_WeeklyRollupPreservesTotal(t *testing.T) {
	svc := testService(t)

	payload, err := svc.Overview(context.Background(), "Last 90 Days")
	require.NoError(t, err)

	var dailyTotal, weeklyTotal float64
	for _, p := range payload.DailyStreams {
		dailyTotal += p.Y
	}
	for _, p := range payload.WeeklyStreams {
		weeklyTotal += p.Y
	}
	assert.InDelta(t, dailyTotal, weeklyTotal, 1e-6)

	// First weekly growth rate is always undefined.
	require.NotEmpty(t, payload.GrowthRates)
	assert.True(t, timeseries.IsUndefined(payload.GrowthRates[0].Y))
}

func TestOverview_Deterministic(t *testing.T) {
	svc := testService(t)

	a, err := svc.Overview(context.Background(), "Last 7 Days")
	require.NoError(t, err)
	b, err := svc.Overview(context.Background(), "Last 7 Days")
	require.NoError(t, err)

	require.Len(t, a.DailyStreams, 7)
	for i := range a.DailyStreams {
		assert.Equal(t, a.DailyStreams[i], b.DailyStreams[i],
			"repeated calls see identical sample data")
	}
}

func TestAudience(t *testing.T) {
	svc := testService(t)

	payload, err := svc.Audience(context.Background(), "Last 30 Days")

	require.NoError(t, err)
	assert.Len(t, payload.Countries, 10)
	assert.Len(t, payload.AgeGroups, 6)
	assert.Len(t, payload.Genders, 3)

	var countryTotal float64
	for _, cv := range payload.Countries {
		countryTotal += cv.Value
	}
	assert.InDelta(t, 100, countryTotal, 0.1)

	hm := payload.Engagement
	assert.Len(t, hm.Rows, 4)
	assert.Len(t, hm.Cols, 6)
	require.Len(t, hm.Values, 4)
	for i, row := range hm.Values {
		require.Len(t, row, 6)
		for j, v := range row {
			assert.NotNil(t, v, "cell %d/%d", i, j)
		}
	}
}

func TestContent(t *testing.T) {
	svc := testService(t)

	payload, err := svc.Content(context.Background(), "Last 30 Days")

	require.NoError(t, err)
	require.Len(t, payload.Songs, 5)

	var pctTotal float64
	for _, song := range payload.Songs {
		assert.NotEmpty(t, song.Song)
		assert.Greater(t, song.Streams, 0.0)
		assert.GreaterOrEqual(t, song.EngagementScore, 0.0)
		assert.LessOrEqual(t, song.EngagementScore, 100.0)
		pctTotal += song.StreamsPct
	}
	assert.InDelta(t, 100, pctTotal, 0.1)
}

func TestSongDaily(t *testing.T) {
	svc := testService(t)

	points, ok := svc.SongDaily(context.Background(), "Last 7 Days", "Eternal Echoes")
	require.True(t, ok)
	assert.Len(t, points, 7)

	_, ok = svc.SongDaily(context.Background(), "Last 7 Days", "No Such Song")
	assert.False(t, ok)
}

func TestRevenue(t *testing.T) {
	svc := testService(t)

	payload, err := svc.Revenue(context.Background(), "Last 30 Days")

	require.NoError(t, err)
	assert.Len(t, payload.DailyRevenue, 30)
	assert.Len(t, payload.CumulativeRev, 30)
	assert.Len(t, payload.ByPlatform, 5)
	assert.Len(t, payload.Projection, 4)
	require.Len(t, payload.Forecast, 7)

	for _, v := range payload.Forecast {
		assert.NotNil(t, v)
	}

	// Cumulative revenue never decreases.
	prev := 0.0
	for _, p := range payload.CumulativeRev {
		assert.GreaterOrEqual(t, p.Y, prev)
		prev = p.Y
	}

	require.NotEmpty(t, payload.Cards)
	assert.Equal(t, "Total Revenue", payload.Cards[0].Label)
}

func TestAllPayloadsSerializeWithoutNaN(t *testing.T) {
	// encoding/json rejects NaN; every payload must marshal cleanly.
	svc := testService(t)
	ctx := context.Background()

	overview, err := svc.Overview(ctx, "Last 30 Days")
	require.NoError(t, err)
	audience, err := svc.Audience(ctx, "Last 30 Days")
	require.NoError(t, err)
	content, err := svc.Content(ctx, "Last 30 Days")
	require.NoError(t, err)
	revenue, err := svc.Revenue(ctx, "Last 30 Days")
	require.NoError(t, err)

	for name, payload := range map[string]interface{}{
		"overview": overview,
		"audience": audience,
		"content":  content,
		"revenue":  revenue,
	} {
		_, err := json.Marshal(payload)
		assert.NoError(t, err, name)
	}
}
