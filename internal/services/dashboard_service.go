// Package services orchestrates the transformation core for the dashboard
// pages: each page method runs records through range filtering, aggregation,
// trend calculation, pivoting, and percentage normalization, then shapes the
// result into chart-ready payloads for the HTTP transport.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"artistpulse/internal/analytics"
	"artistpulse/internal/config"
	"artistpulse/internal/dateutil"
	"artistpulse/internal/sampledata"
	"artistpulse/internal/timeseries"
)

// Moving-average window for the overview stream trend overlay.
const overviewMAWindow = 7

// DashboardService assembles the page payloads. The service holds no
// per-request state; each call generates or receives its input tables and
// transforms them functionally.
type DashboardService struct {
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(cfg *config.Config, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "dashboard_service")),
		now:    time.Now,
	}
}

// newGenerator seeds a fresh generator per call, so repeated page loads see
// identical numbers and concurrent requests never share generator state.
func (s *DashboardService) newGenerator() *sampledata.Generator {
	return sampledata.NewGenerator(s.cfg.Data.SampleSeed)
}

// SummaryCard is one headline metric with its formatted change.
type SummaryCard struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Delta string  `json:"delta,omitempty"`
}

// OverviewPayload carries everything the overview page charts.
type OverviewPayload struct {
	Period         string                     `json:"period"`
	Cards          []SummaryCard              `json:"cards"`
	DailyStreams   []timeseries.Point         `json:"daily_streams"`
	StreamsMA      []timeseries.Point         `json:"streams_moving_avg"`
	FollowerTrend  []timeseries.Point         `json:"follower_trend"`
	GrowthRates    []timeseries.Point         `json:"growth_rates"`
	WeeklyStreams  []timeseries.Point         `json:"weekly_streams"`
	MonthlyStreams []timeseries.Point         `json:"monthly_streams"`
	PlatformShare  []timeseries.CategoryValue `json:"platform_share"`
	TopSongs       []timeseries.CategoryValue `json:"top_songs"`
}

// Overview builds the overview page payload for a period selector label.
func (s *DashboardService) Overview(ctx context.Context, period string) (*OverviewPayload, error) {
	_, data, start, end := s.dataset(period)

	streaming := timeseries.FilterByRange(data.Streaming, start, end)

	weekly, err := timeseries.Aggregate(streaming, timeseries.Weekly, map[string]timeseries.AggFunc{
		"streams": timeseries.AggSum,
	})
	if err != nil {
		return nil, fmt.Errorf("weekly rollup: %w", err)
	}
	monthly, err := timeseries.Aggregate(streaming, timeseries.Monthly, map[string]timeseries.AggFunc{
		"streams": timeseries.AggSum,
	})
	if err != nil {
		return nil, fmt.Errorf("monthly rollup: %w", err)
	}

	withMA := analytics.MovingAverage(streaming, "streams", overviewMAWindow)
	withGrowth := analytics.GrowthRate(weekly, "streams")

	totalStreams := streaming.Sum("streams")
	cards := []SummaryCard{
		{Label: "Total Streams", Value: totalStreams},
	}
	if n := streaming.Len(); n > 0 {
		first := streaming.At(0).Metric("followers")
		last := streaming.At(n - 1).Metric("followers")
		cards = append(cards,
			SummaryCard{
				Label: "Current Followers",
				Value: last,
				Delta: analytics.GrowthPercent(last, first),
			},
			SummaryCard{Label: "Avg. Daily Streams", Value: totalStreams / float64(n)},
		)
	}

	platformShare := timeseries.ToPercentage(data.Platforms, "streams")

	s.logger.InfoContext(ctx, "overview payload built",
		slog.String("period", period),
		slog.Int("days", streaming.Len()),
		slog.Int("weeks", weekly.Len()))

	return &OverviewPayload{
		Period:         period,
		Cards:          cards,
		DailyStreams:   streaming.LinePoints("streams"),
		StreamsMA:      withMA.LinePoints(fmt.Sprintf("streams_ma%d", overviewMAWindow)),
		FollowerTrend:  streaming.LinePoints("followers"),
		GrowthRates:    withGrowth.LinePoints("growth_rate"),
		WeeklyStreams:  weekly.LinePoints("streams"),
		MonthlyStreams: monthly.LinePoints("streams"),
		PlatformShare:  platformShare.CategoryValues("platform", "streams_pct"),
		TopSongs:       data.Songs.CategoryValues("song", "streams"),
	}, nil
}

// Heatmap is the 2D payload for the audience engagement chart. Cells with no
// observation are NaN and serialize as null gaps.
type Heatmap struct {
	Rows   []string     `json:"rows"`
	Cols   []string     `json:"cols"`
	Values [][]*float64 `json:"values"`
}

// AudiencePayload carries the audience page breakdowns.
type AudiencePayload struct {
	Period     string                     `json:"period"`
	Countries  []timeseries.CategoryValue `json:"countries"`
	AgeGroups  []timeseries.CategoryValue `json:"age_groups"`
	Genders    []timeseries.CategoryValue `json:"genders"`
	Engagement Heatmap                    `json:"engagement"`
}

// Audience builds the audience page payload: geographic, age, and gender
// percentage breakdowns plus the metric-by-age-group engagement heatmap.
func (s *DashboardService) Audience(ctx context.Context, period string) (*AudiencePayload, error) {
	gen, data, _, _ := s.dataset(period)

	countries := timeseries.ToPercentage(data.Geography, "listeners")

	engagement, err := timeseries.Pivot(
		gen.EngagementByAge(), "metric", "age_group", "value", timeseries.AggMean)
	if err != nil {
		return nil, fmt.Errorf("engagement pivot: %w", err)
	}

	return &AudiencePayload{
		Period:    period,
		Countries: countries.CategoryValues("country", "listeners_pct"),
		AgeGroups: data.AgeGroups.CategoryValues("age_group", "percentage"),
		Genders:   data.Genders.CategoryValues("gender", "percentage"),
		Engagement: Heatmap{
			Rows:   engagement.Rows,
			Cols:   engagement.Cols,
			Values: nullable2D(engagement.Heatmap()),
		},
	}, nil
}

// SongSummary is one row of the content page song table.
type SongSummary struct {
	Song            string  `json:"song"`
	Streams         float64 `json:"streams"`
	StreamsPct      float64 `json:"streams_pct"`
	CompletionRate  float64 `json:"completion_rate"`
	Saves           float64 `json:"saves"`
	Shares          float64 `json:"shares"`
	EngagementScore float64 `json:"engagement_score"`
}

// ContentPayload carries the content page song table.
type ContentPayload struct {
	Period string        `json:"period"`
	Songs  []SongSummary `json:"songs"`
}

// Content builds the content page payload: per-song stream shares and
// engagement scores.
func (s *DashboardService) Content(ctx context.Context, period string) (*ContentPayload, error) {
	_, data, _, _ := s.dataset(period)

	songs := timeseries.ToPercentage(data.Songs, "streams")
	out := make([]SongSummary, 0, songs.Len())
	for _, r := range songs.Records() {
		out = append(out, SongSummary{
			Song:            r.Label("song"),
			Streams:         r.Metric("streams"),
			StreamsPct:      r.Metric("streams_pct"),
			CompletionRate:  r.Metric("avg_completion_rate"),
			Saves:           r.Metric("saves"),
			Shares:          r.Metric("shares"),
			EngagementScore: analytics.SongEngagement(r),
		})
	}

	return &ContentPayload{Period: period, Songs: out}, nil
}

// SongDaily returns the daily stream table for one song, or a not-found
// indicator when the song is not in the top-song table.
func (s *DashboardService) SongDaily(ctx context.Context, period, song string) ([]timeseries.Point, bool) {
	gen, data, start, end := s.dataset(period)
	daily, ok := gen.SongDaily(data, song)
	if !ok {
		return nil, false
	}
	return timeseries.FilterByRange(daily, start, end).LinePoints("streams"), true
}

// RevenuePayload carries the revenue page charts.
type RevenuePayload struct {
	Period        string                     `json:"period"`
	Cards         []SummaryCard              `json:"cards"`
	ByPlatform    []timeseries.CategoryValue `json:"by_platform"`
	DailyRevenue  []timeseries.Point         `json:"daily_revenue"`
	CumulativeRev []timeseries.Point         `json:"cumulative_revenue"`
	Projection    []timeseries.CategoryValue `json:"projection"`
	Forecast      []*float64                 `json:"forecast"`
}

// Days of linear forecast appended to the revenue trend.
const revenueForecastDays = 7

// Revenue builds the revenue page payload, including a linear forecast of
// the daily revenue trend.
func (s *DashboardService) Revenue(ctx context.Context, period string) (*RevenuePayload, error) {
	_, data, start, end := s.dataset(period)

	daily := timeseries.FilterByRange(data.DailyRevenue, start, end)
	cumulative := analytics.CumulativeSum(daily, "revenue")

	forecast, err := analytics.Forecast(daily, "revenue", revenueForecastDays, analytics.MethodLinear)
	if err != nil {
		return nil, fmt.Errorf("revenue forecast: %w", err)
	}

	totalRevenue := data.Revenue.Sum("total_revenue")
	totalStreams := data.Revenue.Sum("streams")
	cards := []SummaryCard{
		{Label: "Total Revenue", Value: totalRevenue},
	}
	if n := daily.Len(); n > 0 {
		cards = append(cards, SummaryCard{Label: "Avg. Daily Revenue", Value: totalRevenue / float64(n)})
	}
	if totalStreams > 0 {
		cards = append(cards, SummaryCard{Label: "Avg. Revenue per Stream", Value: totalRevenue / totalStreams})
	}

	return &RevenuePayload{
		Period:        period,
		Cards:         cards,
		ByPlatform:    data.Revenue.CategoryValues("platform", "total_revenue"),
		DailyRevenue:  daily.LinePoints("revenue"),
		CumulativeRev: cumulative.LinePoints("revenue_cum"),
		Projection:    data.RevenueProjection.CategoryValues("month", "projected_revenue"),
		Forecast:      nullable(forecast),
	}, nil
}

// dataset seeds a generator and builds the sample dataset covering the
// requested period, returning both with the period's inclusive bounds.
func (s *DashboardService) dataset(period string) (*sampledata.Generator, sampledata.Dataset, time.Time, time.Time) {
	gen := s.newGenerator()
	end := s.now().Truncate(24 * time.Hour)
	days := dateutil.DaysForPeriod(period)
	start := end.AddDate(0, 0, -(days - 1))
	return gen, gen.All(days, end), start, end
}

// nullable converts undefined values to nil so they serialize as JSON null.
func nullable(vs []float64) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		if !timeseries.IsUndefined(v) {
			v := v
			out[i] = &v
		}
	}
	return out
}

func nullable2D(rows [][]float64) [][]*float64 {
	out := make([][]*float64, len(rows))
	for i, row := range rows {
		out[i] = nullable(row)
	}
	return out
}
