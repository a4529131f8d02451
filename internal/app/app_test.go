package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundingpulse/internal/config"
	apierrors "fundingpulse/internal/errors"
	"fundingpulse/internal/shared/testutil"
)

// testConfig returns a configuration serving the sample dataset from a temp dir
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Dataset.Path = testutil.WriteSampleDataset(t)
	cfg.Security.RateLimit.Enabled = false
	return cfg
}

func newTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	a, err := NewApplicationWithLogger(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { a.OTelProviders.Shutdown(context.Background()) })
	return a
}

func serve(a *Application, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewApplication_Wiring(t *testing.T) {
	a := newTestApplication(t, testConfig(t))

	require.NotNil(t, a.Services)
	assert.Equal(t, testutil.SampleRecordCount, a.Services.Dashboard.Records())
	assert.Equal(t, a.Config.Server.Address(), a.Server.Addr)
	assert.DirExists(t, a.Paths.ReportsDir)
}

func TestNewApplication_DatasetFailureIsFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dataset.Path = "missing/startup_funding.csv"

	logger, _ := testutil.NewTestLogger(t)
	_, err := NewApplicationWithLogger(cfg, logger)

	require.Error(t, err)
	var appErr *apierrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeDataset, appErr.Type)
}

func TestRouter_Routes(t *testing.T) {
	a := newTestApplication(t, testConfig(t))

	tests := []struct {
		name        string
		method      string
		target      string
		wantStatus  int
		contentType string
	}{
		{"dashboard page", http.MethodGet, "/", http.StatusOK, "text/html; charset=utf-8"},
		{"health", http.MethodGet, "/api/health", http.StatusOK, "application/json"},
		{"ready", http.MethodGet, "/api/health/ready", http.StatusOK, "application/json"},
		{"live", http.MethodGet, "/api/health/live", http.StatusOK, "application/json"},
		{"version", http.MethodGet, "/api/version", http.StatusOK, "application/json"},
		{"overall", http.MethodGet, "/api/analysis/overall?trend=amount", http.StatusOK, "application/json"},
		{"startup menu", http.MethodGet, "/api/analysis/startups", http.StatusOK, "application/json"},
		{"investor", http.MethodGet, "/api/analysis/investors/Alibaba", http.StatusOK, "application/json"},
		{"chart", http.MethodGet, "/api/charts/overall/cities.png", http.StatusOK, "image/png"},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, ""},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound, "application/json"},
		{"wrong method", http.MethodPost, "/api/analysis/overall", http.StatusMethodNotAllowed, "application/json"},
		{"bad trend", http.MethodGet, "/api/analysis/overall?trend=yearly", http.StatusBadRequest, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(a, tt.method, tt.target)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.contentType != "" {
				assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			}
		})
	}
}

func TestRouter_Middleware(t *testing.T) {
	a := newTestApplication(t, testConfig(t))

	w := serve(a, http.MethodGet, "/api/health")

	assert.NotEmpty(t, w.Header().Get(chimw.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}
	a := newTestApplication(t, cfg)

	assert.Equal(t, http.StatusOK, serve(a, http.MethodGet, "/api/health").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(a, http.MethodGet, "/api/health").Code)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.MetricExporter = "none"
	a := newTestApplication(t, cfg)

	assert.Equal(t, http.StatusNotFound, serve(a, http.MethodGet, "/metrics").Code)
}

func TestStop_WithoutStart(t *testing.T) {
	a := newTestApplication(t, testConfig(t))
	assert.NoError(t, a.Stop(context.Background()))
}
