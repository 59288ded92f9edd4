package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "artistpulse/internal/errors"
	"artistpulse/internal/services"
)

// validate checks query parameters shared by all dashboard endpoints.
var validate = validator.New()

// periodQuery carries the validated period selector from the query string.
type periodQuery struct {
	Period string `validate:"required,oneof='Last 7 Days' 'Last 30 Days' 'Last 90 Days' 'Last 6 Months' 'Last Year'"`
}

// DefaultPeriod is used when a request omits the period query parameter.
const DefaultPeriod = "Last 30 Days"

// DashboardHandler handles dashboard HTTP requests with RFC 7807 compliance
type DashboardHandler struct {
	service      *services.DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler with RFC 7807 error handling
func NewDashboardHandler(service *services.DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes with proper Chi patterns
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Use render for consistent JSON responses
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// One route per dashboard tab
	r.Get("/overview", h.GetOverview)
	r.Get("/audience", h.GetAudience)
	r.Get("/content", h.GetContent)
	r.Get("/revenue", h.GetRevenue)

	// Sub-resource routes
	r.Route("/songs/{song}", func(r chi.Router) {
		r.Use(h.SongCtx) // Validate song parameter
		r.Get("/daily", h.GetSongDaily)
	})

	return r
}

// SongCtx middleware validates the song parameter
func (h *DashboardHandler) SongCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		song := chi.URLParam(r, "song")
		if song == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("song", "Song title is required"))
			return
		}

		if len(song) > 200 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("song", "Song title too long"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// period extracts and validates the period query parameter, falling back to
// the default when absent. The bool result reports whether the request may
// proceed; on false a problem response has already been written.
func (h *DashboardHandler) period(w http.ResponseWriter, r *http.Request) (string, bool) {
	period := r.URL.Query().Get("period")
	if period == "" {
		return DefaultPeriod, true
	}

	if err := validate.Struct(periodQuery{Period: period}); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("period", "Unknown period selector: "+period))
		return "", false
	}

	return period, true
}

// GetOverview handles GET /api/overview with RFC 7807 errors
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	period, ok := h.period(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "building overview",
		slog.String("request_id", reqID),
		slog.String("period", period),
	)

	payload, err := h.service.Overview(r.Context(), period)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build overview",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"period": period,
		"data":   payload,
	})
}

// GetAudience handles GET /api/audience with RFC 7807 errors
func (h *DashboardHandler) GetAudience(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	period, ok := h.period(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "building audience view",
		slog.String("request_id", reqID),
		slog.String("period", period),
	)

	payload, err := h.service.Audience(r.Context(), period)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build audience view",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"period": period,
		"data":   payload,
	})
}

// GetContent handles GET /api/content with RFC 7807 errors
func (h *DashboardHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	period, ok := h.period(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "building content view",
		slog.String("request_id", reqID),
		slog.String("period", period),
	)

	payload, err := h.service.Content(r.Context(), period)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build content view",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"period": period,
		"data":   payload,
	})
}

// GetRevenue handles GET /api/revenue with RFC 7807 errors
func (h *DashboardHandler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	period, ok := h.period(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "building revenue view",
		slog.String("request_id", reqID),
		slog.String("period", period),
	)

	payload, err := h.service.Revenue(r.Context(), period)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build revenue view",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"period": period,
		"data":   payload,
	})
}

// GetSongDaily handles GET /api/songs/{song}/daily with RFC 7807 errors
func (h *DashboardHandler) GetSongDaily(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	song := chi.URLParam(r, "song")

	period, ok := h.period(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "building song daily series",
		slog.String("request_id", reqID),
		slog.String("period", period),
		slog.String("song", song),
	)

	points, found := h.service.SongDaily(r.Context(), period, song)
	if !found {
		h.errorHandler.HandleError(w, r, apierrors.ErrNotFound("song"))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"period": period,
		"song":   song,
		"data":   points,
		"count":  len(points),
	})
}
