package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apierrors "fundingpulse/internal/errors"
	"fundingpulse/internal/exporter"
	fpmiddleware "fundingpulse/internal/middleware"
	api "fundingpulse/pkg/contracts/api/v1"
	"fundingpulse/pkg/contracts/domain"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

// Dashboard modes
const (
	ModeOverall  = "overall"
	ModeStartup  = "startup"
	ModeInvestor = "investor"
)

// metricCard is a headline number on the page
type metricCard struct {
	Label string
	Value string
}

// chartLink points at a chart endpoint
type chartLink struct {
	Title string
	URL   string
}

// dashboardPage is the template data of the dashboard
type dashboardPage struct {
	Mode     string
	Trend    string
	Startups []string
	Startup  string
	Keys     []string
	Investor string
	Records  int
	Source   string

	// Rendered is false while Startup or Investor mode waits for a submit
	Rendered bool
	Heading  string
	Cards    []metricCard
	Tables   []exporter.Table
	Charts   []chartLink
}

// PageHandler renders the server-side dashboard
type PageHandler struct {
	service      DashboardServiceInterface
	validator    *fpmiddleware.RequestValidator
	tmpl         *template.Template
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPageHandler parses the embedded dashboard template
func NewPageHandler(service DashboardServiceInterface, validator *fpmiddleware.RequestValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) (*PageHandler, error) {
	tmpl, err := template.New("dashboard.html").Funcs(template.FuncMap{
		// Casers are not safe for concurrent use; one per call.
		"title": func(s string) string {
			return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
		},
	}).ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	return &PageHandler{
		service:      service,
		validator:    validator,
		tmpl:         tmpl,
		logger:       logger.With(slog.String("component", "page_handler")),
		errorHandler: errorHandler,
	}, nil
}

// Dashboard handles GET /. Overall renders as soon as it is selected; the
// Startup and Investor modes render only after an explicit submit (show=1).
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	req := api.NewDashboardRequest(r)
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	page := dashboardPage{Mode: req.Mode, Trend: req.Trend}
	if page.Mode == "" {
		page.Mode = ModeOverall
	}
	if page.Trend == "" {
		page.Trend = string(domain.TrendCount)
	}

	info, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err, ""))
		return
	}
	page.Records = info.Records
	page.Source = info.Source

	switch page.Mode {
	case ModeOverall:
		err = h.overall(r, &page)
	case ModeStartup:
		err = h.startup(r, &page, req)
	case ModeInvestor:
		err = h.investor(r, &page, req)
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, page); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.RenderError("dashboard page", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write dashboard page", slog.String("error", err.Error()))
	}
}

func (h *PageHandler) overall(r *http.Request, page *dashboardPage) error {
	report, err := h.service.Overall(r.Context(), domain.TrendMode(page.Trend))
	if err != nil {
		return mapServiceError(err, "trend")
	}

	page.Rendered = true
	page.Heading = "Overall Analysis"
	page.Cards = []metricCard{
		{Label: "Total", Value: exporter.FormatCurrency(report.TotalAmount)},
		{Label: "Max", Value: fmt.Sprintf("%s (%s)", exporter.FormatCurrency(report.LargestInvestment.Amount), report.LargestInvestment.Startup)},
		{Label: "Avg", Value: exporter.FormatCurrency(report.AverageFunding)},
		{Label: "Funded Startups", Value: fmt.Sprintf("%d", report.StartupCount)},
	}
	page.Tables = exporter.OverallTables(report)[1:]
	for _, chart := range exporter.OverallCharts {
		page.Charts = append(page.Charts, chartLink{
			Title: chart,
			URL:   fmt.Sprintf("/api/charts/overall/%s.png?trend=%s", chart, url.QueryEscape(page.Trend)),
		})
	}
	return nil
}

func (h *PageHandler) startup(r *http.Request, page *dashboardPage, req api.DashboardRequest) error {
	names, err := h.service.StartupNames(r.Context())
	if err != nil {
		return mapServiceError(err, "")
	}
	page.Startups = names
	page.Startup = req.Startup

	if !req.Show || req.Startup == "" {
		return nil
	}

	report, err := h.service.Startup(r.Context(), req.Startup)
	if err != nil {
		return mapServiceError(err, "startup")
	}

	page.Rendered = true
	page.Heading = report.Name
	page.Cards = []metricCard{
		{Label: "Vertical", Value: report.Vertical},
		{Label: "City", Value: report.City},
		{Label: "Total Funding", Value: exporter.FormatCurrency(report.TotalAmount)},
	}
	page.Tables = exporter.StartupTables(report)[1:]
	for _, chart := range exporter.StartupCharts {
		page.Charts = append(page.Charts, chartLink{
			Title: chart,
			URL:   fmt.Sprintf("/api/charts/startups/%s/%s.png", url.PathEscape(req.Startup), chart),
		})
	}
	return nil
}

func (h *PageHandler) investor(r *http.Request, page *dashboardPage, req api.DashboardRequest) error {
	keys, err := h.service.InvestorKeys(r.Context())
	if err != nil {
		return mapServiceError(err, "")
	}
	page.Keys = keys
	page.Investor = req.Investor

	if !req.Show || req.Investor == "" {
		return nil
	}

	report, err := h.service.Investor(r.Context(), req.Investor)
	if err != nil {
		return mapServiceError(err, "investor")
	}

	page.Rendered = true
	page.Heading = report.Investor
	page.Cards = []metricCard{
		{Label: "Investments", Value: fmt.Sprintf("%d", report.Matches)},
		{Label: "Total Invested", Value: exporter.FormatCurrency(report.TotalAmount)},
	}
	page.Tables = exporter.InvestorTables(report)[1:]
	for _, chart := range exporter.InvestorCharts {
		page.Charts = append(page.Charts, chartLink{
			Title: chart,
			URL:   fmt.Sprintf("/api/charts/investors/%s/%s.png", url.PathEscape(req.Investor), chart),
		})
	}
	return nil
}
