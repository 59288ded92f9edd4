package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "artistpulse/internal/errors"
	"artistpulse/internal/platform"
	"artistpulse/internal/timeseries"
)

// PlatformHandler exposes live streaming-platform lookups
type PlatformHandler struct {
	registry     *platform.Registry
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPlatformHandler creates a new platform handler
func NewPlatformHandler(registry *platform.Registry, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PlatformHandler {
	return &PlatformHandler{
		registry:     registry,
		logger:       logger.With(slog.String("component", "platform_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the platform routes
func (h *PlatformHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.ListPlatforms)
	r.Route("/artists/{artistID}", func(r chi.Router) {
		r.Use(h.ArtistCtx)
		r.Get("/profiles", h.GetProfiles)
		r.Get("/top-tracks", h.GetTopTracks)
		r.Get("/daily-stats", h.GetDailyStats)
	})

	return r
}

// ArtistCtx middleware validates the artistID parameter
func (h *PlatformHandler) ArtistCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		artistID := chi.URLParam(r, "artistID")
		if artistID == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("artistID", "Artist ID is required"))
			return
		}
		if len(artistID) > 64 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("artistID", "Invalid artist ID format"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListPlatforms handles GET /api/platforms
func (h *PlatformHandler) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	names := h.registry.Names()
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   names,
		"count":  len(names),
	})
}

// GetProfiles handles GET /api/platforms/artists/{artistID}/profiles.
// It fans out to every registered platform concurrently and returns
// whatever profiles came back before the first hard failure.
func (h *PlatformHandler) GetProfiles(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	artistID := chi.URLParam(r, "artistID")

	h.logger.InfoContext(r.Context(), "fetching artist profiles",
		slog.String("request_id", reqID),
		slog.String("artist_id", artistID),
	)

	profiles, err := h.registry.FetchProfiles(r.Context(), artistID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch profiles",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   profiles,
		"count":  len(profiles),
	})
}

// GetTopTracks handles GET /api/platforms/artists/{artistID}/top-tracks?platform=
func (h *PlatformHandler) GetTopTracks(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	artistID := chi.URLParam(r, "artistID")

	name := r.URL.Query().Get("platform")
	if name == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("platform", "Platform name is required"))
		return
	}

	client, ok := h.registry.Client(name)
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrNotFound("platform"))
		return
	}

	h.logger.InfoContext(r.Context(), "fetching top tracks",
		slog.String("request_id", reqID),
		slog.String("artist_id", artistID),
		slog.String("platform", name),
	)

	tracks, err := client.FetchTopTracks(r.Context(), artistID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch top tracks",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("platform", name),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":   "success",
		"platform": name,
		"data":     tracks,
		"count":    len(tracks),
	})
}

// GetDailyStats handles GET /api/platforms/artists/{artistID}/daily-stats.
// Query params: platform (required), start and end as dates (optional,
// defaulting to the last 30 days). Platforms without a stats API answer 404.
func (h *PlatformHandler) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	artistID := chi.URLParam(r, "artistID")

	name := r.URL.Query().Get("platform")
	if name == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("platform", "Platform name is required"))
		return
	}

	client, ok := h.registry.Client(name)
	if !ok {
		h.errorHandler.HandleError(w, r, apierrors.ErrNotFound("platform"))
		return
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -29)
	if s := r.URL.Query().Get("start"); s != "" {
		parsed, err := timeseries.ParseDate(s)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		start = parsed
	}
	if s := r.URL.Query().Get("end"); s != "" {
		parsed, err := timeseries.ParseDate(s)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		end = parsed
	}

	h.logger.InfoContext(r.Context(), "fetching daily stats",
		slog.String("request_id", reqID),
		slog.String("artist_id", artistID),
		slog.String("platform", name),
	)

	stats, err := client.FetchDailyStats(r.Context(), artistID, start, end)
	if err != nil {
		if errors.Is(err, platform.ErrStatsUnavailable) {
			h.errorHandler.HandleError(w, r,
				apierrors.New(http.StatusNotFound, "STATS_UNAVAILABLE", err.Error()))
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to fetch daily stats",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("platform", name),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	points := stats.LinePoints("streams")
	render.JSON(w, r, map[string]interface{}{
		"status":   "success",
		"platform": name,
		"data":     points,
		"count":    len(points),
	})
}
