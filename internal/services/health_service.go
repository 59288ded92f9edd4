package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"artistpulse/internal/platform"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	registry  *platform.Registry
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// VersionInfo describes the running build
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version, buildTime string, registry *platform.Registry, logger *slog.Logger) *HealthService {
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck performs a comprehensive health check
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	services := map[string]interface{}{
		"dashboard": "healthy",
	}
	if s.registry != nil {
		services["platforms"] = s.registry.Names()
	}

	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(s.startTime).Seconds(),
			"goroutines":     runtime.NumGoroutine(),
			"go_version":     runtime.Version(),
		},
		Services: services,
	}
}

// ReadinessCheck reports whether the service can accept traffic
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   s.version,
	}
}

// LivenessCheck reports whether the process is alive
func (s *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   s.version,
	}
}

// Version returns build metadata
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{
		Version:   s.version,
		BuildTime: s.buildTime,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
