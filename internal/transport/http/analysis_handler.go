package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "fundingpulse/internal/errors"
	"fundingpulse/internal/exporter"
	fpmiddleware "fundingpulse/internal/middleware"
	api "fundingpulse/pkg/contracts/api/v1"
	"fundingpulse/pkg/contracts/domain"
)

// AnalysisHandler serves the three dashboard views as JSON
type AnalysisHandler struct {
	service      DashboardServiceInterface
	validator    *fpmiddleware.RequestValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service DashboardServiceInterface, validator *fpmiddleware.RequestValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "analysis_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/overall", h.GetOverall)

	r.Get("/startups", h.ListStartups)
	r.Get("/startups/{name}", h.GetStartup)

	r.Get("/investors", h.ListInvestors)
	r.Get("/investors/{key}", h.GetInvestor)

	return r
}

// GetSummary handles GET /api/analysis/summary
func (h *AnalysisHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err, ""))
		return
	}
	render.JSON(w, r, info)
}

// GetOverall handles GET /api/analysis/overall?trend=count|amount
func (h *AnalysisHandler) GetOverall(w http.ResponseWriter, r *http.Request) {
	req := api.NewOverallRequest(r)
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "building overall view",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("trend", req.Trend),
	)

	report, err := h.service.Overall(r.Context(), domain.TrendMode(req.Trend))
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err, "trend"))
		return
	}

	render.JSON(w, r, api.OverallResponse{OverallReport: report, Charts: exporter.OverallCharts})
}

// ListStartups handles GET /api/analysis/startups
func (h *AnalysisHandler) ListStartups(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.StartupNames(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err, ""))
		return
	}
	render.JSON(w, r, api.NewMenuResponse(names))
}

// GetStartup handles GET /api/analysis/startups/{name}
func (h *AnalysisHandler) GetStartup(w http.ResponseWriter, r *http.Request) {
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

	render.JSON(w, r, api.StartupResponse{StartupReport: report, Charts: exporter.StartupCharts})
}

// ListInvestors handles GET /api/analysis/investors
func (h *AnalysisHandler) ListInvestors(w http.ResponseWriter, r *http.Request) {
	keys, err := h.service.InvestorKeys(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err, ""))
		return
	}
	render.JSON(w, r, api.NewMenuResponse(keys))
}

// GetInvestor handles GET /api/analysis/investors/{key}
func (h *AnalysisHandler) GetInvestor(w http.ResponseWriter, r *http.Request) {
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

	render.JSON(w, r, api.InvestorResponse{InvestorReport: report, Charts: exporter.InvestorCharts})
}
