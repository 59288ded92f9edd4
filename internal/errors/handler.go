package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"artistpulse/internal/analytics"
	"artistpulse/internal/timeseries"
)

// ErrorHandler provides centralized error handling for the HTTP transport.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to RFC 7807 format and responds.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	switch {
	case errors.Is(err, timeseries.ErrMalformedDate):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeMalformedDate,
			"Malformed Date",
			err.Error(),
			r.URL.Path,
		)

	case errors.Is(err, analytics.ErrUnsupportedMethod):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeBadMethod,
			"Unsupported Forecast Method",
			err.Error(),
			r.URL.Path,
		)

	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred",
			r.URL.Path,
		)
	}
}

func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problemType := TypeInternal
	switch apiErr.StatusCode {
	case http.StatusBadRequest:
		problemType = TypeValidation
	case http.StatusNotFound:
		problemType = TypeNotFound
	case http.StatusTooManyRequests:
		problemType = TypeRateLimit
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		problemType = TypeUpstream
	}

	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType,
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	)
	problem.WithExtension("error_code", apiErr.ErrorCode)
	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}
	return problem
}
