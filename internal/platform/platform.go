// Package platform wraps the streaming platform APIs behind one polymorphic
// client interface. Each platform returns its own nested structures; the
// adapters here flatten them into the homogeneous record shape the
// transformation core requires, doing all field renaming and type coercion
// before anything reaches the core.
package platform

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"artistpulse/internal/timeseries"
)

// ErrStatsUnavailable indicates a platform that does not expose per-day
// streaming statistics through its public API.
var ErrStatsUnavailable = errors.New("streaming statistics not available for platform")

// ArtistSummary is the flattened artist profile shared by all platforms.
type ArtistSummary struct {
	Platform   string   `json:"platform"`
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Followers  int64    `json:"followers"`
	Popularity int      `json:"popularity"`
	Genres     []string `json:"genres,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
}

// Track is the flattened track shape shared by all platforms.
type Track struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Album       string  `json:"album,omitempty"`
	Popularity  int     `json:"popularity"`
	DurationMS  int64   `json:"duration_ms"`
	Explicit    bool    `json:"explicit"`
	PlayCount   float64 `json:"play_count,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
}

// Client is the capability every platform adapter implements. No adapter
// holds cross-call state beyond cached auth tokens.
type Client interface {
	// Name returns the platform's display name.
	Name() string
	// FetchArtistProfile returns the flattened artist profile.
	FetchArtistProfile(ctx context.Context, artistID string) (ArtistSummary, error)
	// FetchTopTracks returns the artist's top tracks, flattened.
	FetchTopTracks(ctx context.Context, artistID string) ([]Track, error)
	// FetchDailyStats returns the artist's per-day stream counts over the
	// inclusive date range, flattened into a core table. Platforms whose
	// public API exposes no per-day statistics return ErrStatsUnavailable.
	FetchDailyStats(ctx context.Context, artistID string, start, end time.Time) (timeseries.Table, error)
}

// Registry holds the configured platform clients keyed by platform name.
type Registry struct {
	clients map[string]Client
}

// NewRegistry builds a registry from the given clients.
func NewRegistry(clients ...Client) *Registry {
	r := &Registry{clients: make(map[string]Client, len(clients))}
	for _, c := range clients {
		r.clients[c.Name()] = c
	}
	return r
}

// Client returns the client for a platform name.
func (r *Registry) Client(name string) (Client, bool) {
	c, ok := r.clients[name]
	return c, ok
}

// Names lists the registered platform names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.clients))
	for name := range r.clients {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FetchProfiles fetches the artist's profile from every registered platform
// in parallel. The transformation core itself stays synchronous; this fan-out
// lives entirely in the adapter layer.
func (r *Registry) FetchProfiles(ctx context.Context, artistID string) ([]ArtistSummary, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]ArtistSummary, len(r.clients))

	for i, name := range r.Names() {
		i, name := i, name
		g.Go(func() error {
			summary, err := r.clients[name].FetchArtistProfile(ctx, artistID)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
