package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistpulse/internal/services"
)

func testHealthHandler() *HealthHandler {
	logger := testLogger()
	service := services.NewHealthService("1.2.3", "2026-03-01T00:00:00Z", nil, logger)
	return NewHealthHandler(service, logger)
}

func TestHealthCheck(t *testing.T) {
	handler := testHealthHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "1.2.3", body.Version)
}

func TestReadinessAndLiveness(t *testing.T) {
	handler := testHealthHandler()

	tests := []struct {
		name     string
		handle   http.HandlerFunc
		expected string
	}{
		{name: "ready", handle: handler.ReadinessCheck, expected: "ready"},
		{name: "live", handle: handler.LivenessCheck, expected: "alive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			tt.handle(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Status string `json:"status"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body.Status)
		})
	}
}

func TestVersion(t *testing.T) {
	handler := testHealthHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.Version(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Version   string `json:"version"`
		BuildTime string `json:"build_time"`
		GoVersion string `json:"go_version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1.2.3", body.Version)
	assert.Equal(t, "2026-03-01T00:00:00Z", body.BuildTime)
	assert.NotEmpty(t, body.GoVersion)
}
