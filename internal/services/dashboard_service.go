package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fundingpulse/internal/analytics"
	"fundingpulse/internal/dataprocessing"
	"fundingpulse/internal/infrastructure"
	"fundingpulse/pkg/contracts/domain"
)

// DatasetInfo is the dataset summary plus how long loading took
type DatasetInfo struct {
	domain.DatasetSummary
	LoadTimeMS int64 `json:"load_time_ms"`
}

// DashboardService answers the three dashboard views over one loaded dataset.
// It is safe for concurrent use; the dataset is never modified.
type DashboardService struct {
	reporter *analytics.Reporter
	loadTime time.Duration
	tracer   trace.Tracer
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger
}

// NewDashboardService creates a dashboard service. A nil tracer falls back to
// the global provider; nil metrics disable recording.
func NewDashboardService(ds *dataprocessing.Dataset, loadTime time.Duration, tracer trace.Tracer, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.MeterName)
	}

	var reporter *analytics.Reporter
	if ds != nil {
		reporter = analytics.NewReporter(ds)
	}

	logger.Info("DashboardService initialized",
		slog.Bool("dataset_loaded", ds != nil),
		slog.Duration("load_time", loadTime))

	return &DashboardService{
		reporter: reporter,
		loadTime: loadTime,
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Overall returns the aggregate view. An empty trend selects count.
func (s *DashboardService) Overall(ctx context.Context, trend domain.TrendMode) (report domain.OverallReport, err error) {
	if trend == "" {
		trend = domain.TrendCount
	}

	ctx, done := s.observe(ctx, "overall", attribute.String("trend", string(trend)))
	defer func() { done(report.StartupCount, err) }()

	if !trend.Valid() {
		return domain.OverallReport{}, fmt.Errorf("%w: %q", ErrInvalidTrendMode, trend)
	}
	if s.reporter == nil {
		return domain.OverallReport{}, ErrDatasetNotLoaded
	}

	report = s.reporter.Overall(trend)

	s.logger.DebugContext(ctx, "overall report built",
		slog.String("trend", string(trend)),
		slog.Int("startups", report.StartupCount),
		slog.Int("trend_points", len(report.Trend)))

	return report, nil
}

// Startup returns the drill-down for an exact cleaned startup name
func (s *DashboardService) Startup(ctx context.Context, name string) (report domain.StartupReport, err error) {
	ctx, done := s.observe(ctx, "startup", attribute.String("startup", name))
	defer func() { done(len(report.Recent), err) }()

	if strings.TrimSpace(name) == "" {
		return domain.StartupReport{}, fmt.Errorf("%w: startup name is required", ErrInvalidInput)
	}
	if s.reporter == nil {
		return domain.StartupReport{}, ErrDatasetNotLoaded
	}

	report = s.reporter.Startup(name)

	s.logger.DebugContext(ctx, "startup report built",
		slog.String("startup", name),
		slog.String("total", report.TotalAmount.String()))

	return report, nil
}

// Investor returns the drill-down for an investor key. The key is matched as
// a case-sensitive substring of each record's investor text.
func (s *DashboardService) Investor(ctx context.Context, key string) (report domain.InvestorReport, err error) {
	ctx, done := s.observe(ctx, "investor", attribute.String("investor", key))
	defer func() { done(report.Matches, err) }()

	if key == "" {
		return domain.InvestorReport{}, fmt.Errorf("%w: investor key is required", ErrInvalidInput)
	}
	if s.reporter == nil {
		return domain.InvestorReport{}, ErrDatasetNotLoaded
	}

	report = s.reporter.Investor(key)

	s.logger.DebugContext(ctx, "investor report built",
		slog.String("investor", key),
		slog.Int("matches", report.Matches))

	return report, nil
}

// StartupNames returns the startup selection menu
func (s *DashboardService) StartupNames(ctx context.Context) ([]string, error) {
	if s.reporter == nil {
		return nil, ErrDatasetNotLoaded
	}
	return s.reporter.Dataset().StartupNames(), nil
}

// InvestorKeys returns the investor selection menu
func (s *DashboardService) InvestorKeys(ctx context.Context) ([]string, error) {
	if s.reporter == nil {
		return nil, ErrDatasetNotLoaded
	}
	return s.reporter.Dataset().InvestorKeys(), nil
}

// Summary describes the loaded dataset
func (s *DashboardService) Summary(ctx context.Context) (DatasetInfo, error) {
	if s.reporter == nil {
		return DatasetInfo{}, ErrDatasetNotLoaded
	}
	return DatasetInfo{
		DatasetSummary: s.reporter.Dataset().Summary(),
		LoadTimeMS:     s.loadTime.Milliseconds(),
	}, nil
}

// Records returns the number of loaded records, zero when nothing is loaded
func (s *DashboardService) Records() int {
	if s.reporter == nil {
		return 0
	}
	return s.reporter.Dataset().Len()
}

// observe opens a span for a query and returns a func that closes it and
// records the query metrics.
func (s *DashboardService) observe(ctx context.Context, view string, attrs ...attribute.KeyValue) (context.Context, func(matches int, err error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "dashboard."+view,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)

	return ctx, func(matches int, err error) {
		if err != nil {
			infrastructure.RecordError(ctx, err)
			s.logger.WarnContext(ctx, "dashboard query failed",
				slog.String("view", view),
				slog.String("error", err.Error()))
		}
		infrastructure.RecordQueryMetrics(ctx, s.metrics, view, time.Since(start), matches, err)
		span.End()
	}
}
