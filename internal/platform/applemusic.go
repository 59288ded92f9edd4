package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"artistpulse/internal/config"
	"artistpulse/internal/timeseries"
)

const appleMusicBaseURL = "https://api.music.apple.com/v1"

// AppleMusicClient talks to the Apple Music catalog API with a developer
// token. The catalog exposes artist metadata and tracks but no follower or
// play counts.
type AppleMusicClient struct {
	cfg    config.AppleMusicConfig
	http   *http.Client
	logger *slog.Logger
}

// NewAppleMusicClient creates an Apple Music adapter with the given
// developer token settings.
func NewAppleMusicClient(cfg config.AppleMusicConfig, timeout time.Duration, logger *slog.Logger) *AppleMusicClient {
	return &AppleMusicClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger.With(slog.String("component", "apple_music_client")),
	}
}

// Name returns the platform's display name.
func (c *AppleMusicClient) Name() string { return "Apple Music" }

func (c *AppleMusicClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, appleMusicBaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.PrivateKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apple music request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("apple music request %s failed with status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchArtistProfile flattens GET /catalog/us/artists/{id}.
func (c *AppleMusicClient) FetchArtistProfile(ctx context.Context, artistID string) (ArtistSummary, error) {
	var raw struct {
		Data []struct {
			ID         string `json:"id"`
			Attributes struct {
				Name       string   `json:"name"`
				GenreNames []string `json:"genreNames"`
				Artwork    struct {
					URL string `json:"url"`
				} `json:"artwork"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/catalog/us/artists/"+url.PathEscape(artistID), &raw); err != nil {
		return ArtistSummary{}, err
	}
	if len(raw.Data) == 0 {
		return ArtistSummary{}, fmt.Errorf("apple music artist %s not found", artistID)
	}

	artist := raw.Data[0]
	return ArtistSummary{
		Platform: c.Name(),
		ID:       artist.ID,
		Name:     artist.Attributes.Name,
		Genres:   artist.Attributes.GenreNames,
		ImageURL: artist.Attributes.Artwork.URL,
	}, nil
}

// FetchDailyStats is unsupported: the catalog API carries no play counts of
// any kind.
func (c *AppleMusicClient) FetchDailyStats(ctx context.Context, artistID string, start, end time.Time) (timeseries.Table, error) {
	return timeseries.Table{}, fmt.Errorf("%s: %w", c.Name(), ErrStatsUnavailable)
}

// FetchTopTracks flattens the artist's top songs view.
func (c *AppleMusicClient) FetchTopTracks(ctx context.Context, artistID string) ([]Track, error) {
	var raw struct {
		Data []struct {
			ID         string `json:"id"`
			Attributes struct {
				Name             string `json:"name"`
				AlbumName        string `json:"albumName"`
				DurationInMillis int64  `json:"durationInMillis"`
				ReleaseDate      string `json:"releaseDate"`
				ContentRating    string `json:"contentRating"`
			} `json:"attributes"`
		} `json:"data"`
	}
	path := "/catalog/us/artists/" + url.PathEscape(artistID) + "/view/top-songs"
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(raw.Data))
	for _, t := range raw.Data {
		tracks = append(tracks, Track{
			ID:          t.ID,
			Name:        t.Attributes.Name,
			Album:       t.Attributes.AlbumName,
			DurationMS:  t.Attributes.DurationInMillis,
			ReleaseDate: t.Attributes.ReleaseDate,
			Explicit:    t.Attributes.ContentRating == "explicit",
		})
	}
	return tracks, nil
}
