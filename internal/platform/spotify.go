package platform

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"artistpulse/internal/config"
	"artistpulse/internal/timeseries"
)

const (
	spotifyBaseURL = "https://api.spotify.com/v1"
	spotifyAuthURL = "https://accounts.spotify.com/api/token"
)

// SpotifyClient talks to the Spotify Web API using the client-credentials
// flow. The access token is cached until shortly before expiry.
type SpotifyClient struct {
	cfg    config.SpotifyConfig
	http   *http.Client
	logger *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewSpotifyClient creates a Spotify adapter with the given credentials.
func NewSpotifyClient(cfg config.SpotifyConfig, timeout time.Duration, logger *slog.Logger) *SpotifyClient {
	return &SpotifyClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger.With(slog.String("component", "spotify_client")),
	}
}

// Name returns the platform's display name.
func (c *SpotifyClient) Name() string { return "Spotify" }

// authenticate fetches or reuses a client-credentials access token.
func (c *SpotifyClient) authenticate(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	creds := base64.StdEncoding.EncodeToString([]byte(c.cfg.ClientID + ":" + c.cfg.ClientSecret))
	body := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, spotifyAuthURL, strings.NewReader(body.Encode()))
	if err != nil {
		return "", fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+creds)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("spotify auth: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify auth failed with status %d", resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode auth response: %w", err)
	}

	c.accessToken = token.AccessToken
	// Refresh one minute early to avoid using a token at the expiry edge.
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)

	c.logger.Debug("spotify token refreshed",
		slog.Time("expires_at", c.tokenExpiry))

	return c.accessToken, nil
}

func (c *SpotifyClient) get(ctx context.Context, path string, out interface{}) error {
	token, err := c.authenticate(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spotifyBaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("spotify request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify request %s failed with status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchArtistProfile flattens GET /artists/{id} into an ArtistSummary.
func (c *SpotifyClient) FetchArtistProfile(ctx context.Context, artistID string) (ArtistSummary, error) {
	var raw struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Followers struct {
			Total int64 `json:"total"`
		} `json:"followers"`
		Popularity int      `json:"popularity"`
		Genres     []string `json:"genres"`
		Images     []struct {
			URL string `json:"url"`
		} `json:"images"`
	}
	if err := c.get(ctx, "/artists/"+url.PathEscape(artistID), &raw); err != nil {
		return ArtistSummary{}, err
	}

	summary := ArtistSummary{
		Platform:   c.Name(),
		ID:         raw.ID,
		Name:       raw.Name,
		Followers:  raw.Followers.Total,
		Popularity: raw.Popularity,
		Genres:     raw.Genres,
	}
	if len(raw.Images) > 0 {
		summary.ImageURL = raw.Images[0].URL
	}
	return summary, nil
}

// FetchDailyStats is unsupported: the Web API exposes no per-day stream
// counts. Spotify for Artists data has no public endpoint.
func (c *SpotifyClient) FetchDailyStats(ctx context.Context, artistID string, start, end time.Time) (timeseries.Table, error) {
	return timeseries.Table{}, fmt.Errorf("%s: %w", c.Name(), ErrStatsUnavailable)
}

// FetchTopTracks flattens GET /artists/{id}/top-tracks into []Track.
func (c *SpotifyClient) FetchTopTracks(ctx context.Context, artistID string) ([]Track, error) {
	var raw struct {
		Tracks []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Album struct {
				Name        string `json:"name"`
				ReleaseDate string `json:"release_date"`
			} `json:"album"`
			Popularity int   `json:"popularity"`
			DurationMS int64 `json:"duration_ms"`
			Explicit   bool  `json:"explicit"`
		} `json:"tracks"`
	}
	if err := c.get(ctx, "/artists/"+url.PathEscape(artistID)+"/top-tracks?market=US", &raw); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(raw.Tracks))
	for _, t := range raw.Tracks {
		tracks = append(tracks, Track{
			ID:          t.ID,
			Name:        t.Name,
			Album:       t.Album.Name,
			Popularity:  t.Popularity,
			DurationMS:  t.DurationMS,
			Explicit:    t.Explicit,
			ReleaseDate: t.Album.ReleaseDate,
		})
	}
	return tracks, nil
}
