// Package middleware provides the HTTP middleware chain for the dashboard
// server: request IDs, structured request logging, panic recovery, rate
// limiting, timeouts, CORS, and security headers.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"artistpulse/internal/infrastructure"
)

type requestIDKey struct{}

// RequestID assigns each request a UUID, echoed back in the X-Request-ID
// header. The same ID doubles as the trace_id in log records, and chi's
// request ID key is populated so middleware.GetReqID works in handlers.
// Must run before any middleware that logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		ctx = context.WithValue(ctx, middleware.RequestIDKey, id)
		ctx = infrastructure.WithTraceID(ctx, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID set by RequestID, or "" if absent.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return infrastructure.GetTraceID(ctx)
}

// writeProblem renders an RFC 7807 response. The body is assembled by hand
// so the error path cannot itself fail on encoding.
func writeProblem(w http.ResponseWriter, r *http.Request, status int, problemType, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	body := fmt.Sprintf(`{"type":%q,"title":%q,"status":%d,"detail":%q,"trace_id":%q}`,
		problemType, title, status, detail, infrastructure.GetTraceID(r.Context()))
	w.Write([]byte(body))
}

// StructuredLogger logs one line at the start and end of every request with
// method, path, status, bytes, and duration. Runs after RequestID so the
// trace ID is attached.
func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			reqLogger := logger
			if traceID := infrastructure.GetTraceID(ctx); traceID != "" {
				reqLogger = logger.With(slog.String("trace_id", traceID))
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLogger.InfoContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
			)

			next.ServeHTTP(ww, r)

			reqLogger.InfoContext(ctx, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.String("duration", time.Since(start).String()),
			)
		})
	}
}

// Recoverer converts panics into 500 problem responses and logs the stack.
func Recoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rvr),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)
					writeProblem(w, r, http.StatusInternalServerError,
						"/errors/internal-server-error", "Internal Server Error",
						"An unexpected error occurred")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter applies a process-wide token bucket to incoming requests.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimiter builds a limiter allowing rps requests per second with the
// given burst.
func NewRateLimiter(rps float64, burst int, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Handler rejects requests over the limit with 429 and a Retry-After hint.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter.Allow() {
			rl.logger.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
			)
			w.Header().Set("Retry-After", "60")
			writeProblem(w, r, http.StatusTooManyRequests,
				"/errors/rate-limit-exceeded", "Too Many Requests",
				"Rate limit exceeded. Please retry after 60 seconds")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Timeout cancels the request context after the given duration and answers
// 504 when the handler did not finish in time.
func Timeout(timeout time.Duration, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			go func() {
				next.ServeHTTP(w, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				logger.ErrorContext(r.Context(), "request timeout",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("timeout", timeout.String()),
				)
				writeProblem(w, r, http.StatusGatewayTimeout,
					"/errors/request-timeout", "Request Timeout",
					"The request took too long to process")
			}
		})
	}
}

// CORSConfig controls the CORS middleware. Zero-value fields fall back to
// GET/POST/OPTIONS, the standard request headers, and a 5 minute max age.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
	Logger           *slog.Logger
}

// CORS answers preflight requests and sets the access-control headers on
// every response.
func CORS(config CORSConfig) func(next http.Handler) http.Handler {
	if len(config.AllowedMethods) == 0 {
		config.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(config.AllowedHeaders) == 0 {
		config.AllowedHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}
	}
	if config.MaxAge == 0 {
		config.MaxAge = 300
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := len(config.AllowedOrigins) == 0
			for _, o := range config.AllowedOrigins {
				if o == "*" || strings.EqualFold(o, origin) {
					allowed = true
					break
				}
			}

			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			} else if len(config.AllowedOrigins) > 0 && config.AllowedOrigins[0] == "*" {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
			w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
			if config.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))

			if r.Method == http.MethodOptions {
				if config.Logger != nil {
					config.Logger.DebugContext(r.Context(), "CORS preflight",
						slog.String("origin", origin),
						slog.Bool("allowed", allowed),
					)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders sets the standard hardening headers. HSTS is only sent on
// TLS connections.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// Compress wraps chi's gzip compression middleware.
func Compress(level int) func(next http.Handler) http.Handler {
	return middleware.Compress(level)
}

// RealIP wraps chi's X-Forwarded-For / X-Real-IP resolution.
func RealIP(next http.Handler) http.Handler {
	return middleware.RealIP(next)
}
