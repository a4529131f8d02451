package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "fundingpulse/internal/errors"
	"fundingpulse/internal/exporter"
	"fundingpulse/internal/infrastructure"
	fpmiddleware "fundingpulse/internal/middleware"
	api "fundingpulse/pkg/contracts/api/v1"
	"fundingpulse/pkg/contracts/domain"
)

// ChartHandler serves the dashboard charts as PNG images
type ChartHandler struct {
	service      DashboardServiceInterface
	renderer     *exporter.ChartRenderer
	validator    *fpmiddleware.RequestValidator
	metrics      *infrastructure.BusinessMetrics
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service DashboardServiceInterface, renderer *exporter.ChartRenderer, validator *fpmiddleware.RequestValidator, metrics *infrastructure.BusinessMetrics, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	return &ChartHandler{
		service:      service,
		renderer:     renderer,
		validator:    validator,
		metrics:      metrics,
		logger:       logger.With(slog.String("component", "chart_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/overall/{chart}.png", h.GetOverallChart)
	r.Get("/startups/{name}/{chart}.png", h.GetStartupChart)
	r.Get("/investors/{key}/{chart}.png", h.GetInvestorChart)

	return r
}

// GetOverallChart handles GET /api/charts/overall/{chart}.png?trend=count|amount
func (h *ChartHandler) GetOverallChart(w http.ResponseWriter, r *http.Request) {
	chart := api.URLParam(r, "chart")
	if !slices.Contains(exporter.OverallCharts, chart) {
		h.errorHandler.HandleError(w, r, apierrors.ChartNotFoundError("overall", chart, exporter.OverallCharts))
		return
	}

	req := api.NewOverallRequest(r)
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Overall(r.Context(), domain.TrendMode(req.Trend))
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err, "trend"))
		return
	}

	var buf bytes.Buffer
	h.writePNG(w, r, "overall/"+chart, &buf, h.renderer.RenderOverall(&buf, chart, report))
}

// GetStartupChart handles GET /api/charts/startups/{name}/{chart}.png
func (h *ChartHandler) GetStartupChart(w http.ResponseWriter, r *http.Request) {
	chart := api.URLParam(r, "chart")
	if !slices.Contains(exporter.StartupCharts, chart) {
		h.errorHandler.HandleError(w, r, apierrors.ChartNotFoundError("startup", chart, exporter.StartupCharts))
		return
	}

	req := api.NewStartupRequest(r)
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Startup(r.Context(), req.Name)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err, "name"))
		return
	}

	var buf bytes.Buffer
	h.writePNG(w, r, "startup/"+chart, &buf, h.renderer.RenderStartup(&buf, chart, report))
}

// GetInvestorChart handles GET /api/charts/investors/{key}/{chart}.png
func (h *ChartHandler) GetInvestorChart(w http.ResponseWriter, r *http.Request) {
	chart := api.URLParam(r, "chart")
	if !slices.Contains(exporter.InvestorCharts, chart) {
		h.errorHandler.HandleError(w, r, apierrors.ChartNotFoundError("investor", chart, exporter.InvestorCharts))
		return
	}

	req := api.NewInvestorRequest(r)
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Investor(r.Context(), req.Key)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err, "key"))
		return
	}

	var buf bytes.Buffer
	h.writePNG(w, r, "investor/"+chart, &buf, h.renderer.RenderInvestor(&buf, chart, report))
}

// writePNG sends a rendered chart, or the render error. Charts are drawn into
// a buffer first so a failure can still produce a problem response.
func (h *ChartHandler) writePNG(w http.ResponseWriter, r *http.Request, chart string, buf *bytes.Buffer, renderErr error) {
	if renderErr != nil {
		if errors.Is(renderErr, exporter.ErrUnknownChart) {
			h.errorHandler.HandleError(w, r, apierrors.NotFoundError(chart))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.RenderError("chart "+chart, renderErr))
		return
	}

	infrastructure.RecordChartRendered(r.Context(), h.metrics, chart)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write chart",
			slog.String("chart", chart),
			slog.String("error", err.Error()))
	}
}
