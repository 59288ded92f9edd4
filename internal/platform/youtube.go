package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"artistpulse/internal/config"
	"artistpulse/internal/timeseries"
)

const youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeClient talks to the YouTube Data API with an API key. An artist
// maps to a channel; subscribers stand in for followers.
type YouTubeClient struct {
	cfg    config.YouTubeConfig
	http   *http.Client
	logger *slog.Logger
}

// NewYouTubeClient creates a YouTube adapter with the given API key.
func NewYouTubeClient(cfg config.YouTubeConfig, timeout time.Duration, logger *slog.Logger) *YouTubeClient {
	return &YouTubeClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger.With(slog.String("component", "youtube_client")),
	}
}

// Name returns the platform's display name.
func (c *YouTubeClient) Name() string { return "YouTube Music" }

func (c *YouTubeClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, youtubeBaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("youtube request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube request %s failed with status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchArtistProfile flattens GET /channels?part=snippet,statistics into an
// ArtistSummary. Statistics arrive as strings and are coerced here.
func (c *YouTubeClient) FetchArtistProfile(ctx context.Context, channelID string) (ArtistSummary, error) {
	var raw struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title      string `json:"title"`
				Thumbnails struct {
					Default struct {
						URL string `json:"url"`
					} `json:"default"`
				} `json:"thumbnails"`
			} `json:"snippet"`
			Statistics struct {
				SubscriberCount string `json:"subscriberCount"`
				ViewCount       string `json:"viewCount"`
			} `json:"statistics"`
		} `json:"items"`
	}

	params := url.Values{
		"part": {"snippet,statistics"},
		"id":   {channelID},
	}
	if err := c.get(ctx, "/channels", params, &raw); err != nil {
		return ArtistSummary{}, err
	}
	if len(raw.Items) == 0 {
		return ArtistSummary{}, fmt.Errorf("youtube channel %s not found", channelID)
	}

	item := raw.Items[0]
	subscribers, _ := strconv.ParseInt(item.Statistics.SubscriberCount, 10, 64)

	return ArtistSummary{
		Platform:  c.Name(),
		ID:        item.ID,
		Name:      item.Snippet.Title,
		Followers: subscribers,
		ImageURL:  item.Snippet.Thumbnails.Default.URL,
	}, nil
}

// FetchDailyStats is unsupported: per-day view counts require the YouTube
// Analytics API with channel-owner OAuth, which an API key cannot reach.
func (c *YouTubeClient) FetchDailyStats(ctx context.Context, channelID string, start, end time.Time) (timeseries.Table, error) {
	return timeseries.Table{}, fmt.Errorf("%s: %w", c.Name(), ErrStatsUnavailable)
}

// FetchTopTracks flattens the channel's most viewed music videos into
// []Track, with view counts standing in for play counts.
func (c *YouTubeClient) FetchTopTracks(ctx context.Context, channelID string) ([]Track, error) {
	var raw struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title string `json:"title"`
			} `json:"snippet"`
		} `json:"items"`
	}

	params := url.Values{
		"part":       {"snippet"},
		"channelId":  {channelID},
		"type":       {"video"},
		"order":      {"viewCount"},
		"maxResults": {"10"},
	}
	if err := c.get(ctx, "/search", params, &raw); err != nil {
		return nil, err
	}

	videoIDs := make([]string, 0, len(raw.Items))
	titles := make(map[string]string, len(raw.Items))
	for _, item := range raw.Items {
		videoIDs = append(videoIDs, item.ID.VideoID)
		titles[item.ID.VideoID] = item.Snippet.Title
	}
	if len(videoIDs) == 0 {
		return nil, nil
	}

	var details struct {
		Items []struct {
			ID         string `json:"id"`
			Statistics struct {
				ViewCount string `json:"viewCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	detailParams := url.Values{
		"part": {"statistics"},
		"id":   videoIDs,
	}
	if err := c.get(ctx, "/videos", detailParams, &details); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(details.Items))
	for _, item := range details.Items {
		views, _ := strconv.ParseFloat(item.Statistics.ViewCount, 64)
		tracks = append(tracks, Track{
			ID:        item.ID,
			Name:      titles[item.ID],
			PlayCount: views,
		})
	}
	return tracks, nil
}
