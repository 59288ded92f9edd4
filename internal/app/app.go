package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"artistpulse/internal/config"
	apierrors "artistpulse/internal/errors"
	"artistpulse/internal/infrastructure"
	customMiddleware "artistpulse/internal/middleware"
	"artistpulse/internal/platform"
	"artistpulse/internal/services"
	handlers "artistpulse/internal/transport/http"
)

const (
	// Version is the application version, overridable at link time
	Version = "1.0.0"
	// AppName is the human-readable application name
	AppName = "ArtistPulse - Streaming Analytics Dashboard"
)

// BuildTime is set at compile time via -ldflags
var BuildTime = ""

// Application represents the main application container
type Application struct {
	Config           *config.Config
	Router           *chi.Mux
	Server           *http.Server
	Registry         *platform.Registry
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	Logger           *slog.Logger
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices wires the platform registry and domain services
func (a *Application) initializeServices() error {
	timeout := a.Config.Platforms.Timeout

	a.Registry = platform.NewRegistry(
		platform.NewSpotifyClient(a.Config.Platforms.Spotify, timeout, a.Logger),
		platform.NewAppleMusicClient(a.Config.Platforms.AppleMusic, timeout, a.Logger),
		platform.NewYouTubeClient(a.Config.Platforms.YouTube, timeout, a.Logger),
		platform.NewAmazonMusicClient(a.Config.Platforms.Amazon, a.Logger),
	)

	a.DashboardService = services.NewDashboardService(a.Config, a.Logger)
	a.HealthService = services.NewHealthService(Version, BuildTime, a.Registry, a.Logger)

	return nil
}

// setupRouter configures the middleware chain and mounts all routes.
// Ordering: RequestID -> RealIP -> Logger -> Recoverer -> headers/CORS ->
// rate limit -> routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.CORS(a.getCORSConfig()))
	r.Use(customMiddleware.Compress(5))

	if a.Config.Server.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Server.RateLimit.RPS,
			a.Config.Server.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		errorHandler := apierrors.NewErrorHandler(a.Logger)

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, errorHandler)
		r.Mount("/", dashboardHandler.Routes())

		platformHandler := handlers.NewPlatformHandler(a.Registry, a.Logger, errorHandler)
		r.Mount("/platforms", platformHandler.Routes())
	})

	a.Router = r
}

// getCORSConfig returns the CORS configuration for the API
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		Logger:         a.Logger,
	}
}

// createServer builds the HTTP server from configuration
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "Error closing log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
