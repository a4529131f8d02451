package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fundingpulse/internal/config"
	apierrors "fundingpulse/internal/errors"
	"fundingpulse/internal/exporter"
	fpmiddleware "fundingpulse/internal/middleware"
	"fundingpulse/internal/services"
	"fundingpulse/internal/shared/testutil"
	"fundingpulse/pkg/contracts/domain"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Overall(ctx context.Context, trend domain.TrendMode) (domain.OverallReport, error) {
	args := m.Called(trend)
	return args.Get(0).(domain.OverallReport), args.Error(1)
}

func (m *MockDashboardService) Startup(ctx context.Context, name string) (domain.StartupReport, error) {
	args := m.Called(name)
	return args.Get(0).(domain.StartupReport), args.Error(1)
}

func (m *MockDashboardService) Investor(ctx context.Context, key string) (domain.InvestorReport, error) {
	args := m.Called(key)
	return args.Get(0).(domain.InvestorReport), args.Error(1)
}

func (m *MockDashboardService) StartupNames(ctx context.Context) ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDashboardService) InvestorKeys(ctx context.Context) ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDashboardService) Summary(ctx context.Context) (services.DatasetInfo, error) {
	args := m.Called()
	return args.Get(0).(services.DatasetInfo), args.Error(1)
}

// sampleService serves testutil.SampleFundingCSV
func sampleService(t *testing.T) *services.DashboardService {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	ds, elapsed, err := services.LoadDataset(context.Background(),
		config.DatasetConfig{DatePolicy: "fail"},
		testutil.WriteSampleDataset(t), nil, logger)
	require.NoError(t, err)

	return services.NewDashboardService(ds, elapsed, nil, nil, logger)
}

// newTestRouter mounts the handlers the way the application does
func newTestRouter(t *testing.T, service DashboardServiceInterface) http.Handler {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	errorHandler := apierrors.NewErrorHandler(logger, false)
	validator := fpmiddleware.NewRequestValidator(logger)

	page, err := NewPageHandler(service, validator, logger, errorHandler)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/", page.Dashboard)
	r.Mount("/api/analysis", NewAnalysisHandler(service, validator, logger, errorHandler).Routes())
	r.Mount("/api/charts", NewChartHandler(service, exporter.NewChartRenderer(logger), validator, nil, logger, errorHandler).Routes())
	return r
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
