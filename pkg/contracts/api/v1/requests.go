// Package api contains API contract definitions for Funding Pulse.
// Version v1 represents the current stable API version.
package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Analysis API Requests

// OverallRequest selects the trend measure of the overall view
type OverallRequest struct {
	Trend string `json:"trend" query:"trend" validate:"omitempty,trendmode"`
}

// StartupRequest selects a startup by its cleaned name
type StartupRequest struct {
	Name string `json:"name" param:"name" validate:"required,max=200,printable"`
}

// InvestorRequest selects an investor key, matched as a substring of the
// investor text of each record
type InvestorRequest struct {
	Key string `json:"key" param:"key" validate:"required,max=200,printable"`
}

// ChartRequest names a chart of a view
type ChartRequest struct {
	Chart string `json:"chart" param:"chart" validate:"required,max=64"`
}

// DashboardRequest carries the selections of the dashboard page
type DashboardRequest struct {
	Mode     string `json:"mode" query:"mode" validate:"omitempty,oneof=overall startup investor"`
	Trend    string `json:"trend" query:"trend" validate:"omitempty,trendmode"`
	Startup  string `json:"startup" query:"startup" validate:"max=200,printable"`
	Investor string `json:"investor" query:"investor" validate:"max=200,printable"`
	Show     bool   `json:"show" query:"show"`
}

// NewOverallRequest reads the overall view parameters from the query string
func NewOverallRequest(r *http.Request) OverallRequest {
	return OverallRequest{Trend: strings.TrimSpace(r.URL.Query().Get("trend"))}
}

// NewStartupRequest reads the startup name from the route
func NewStartupRequest(r *http.Request) StartupRequest {
	return StartupRequest{Name: URLParam(r, "name")}
}

// NewInvestorRequest reads the investor key from the route
func NewInvestorRequest(r *http.Request) InvestorRequest {
	return InvestorRequest{Key: URLParam(r, "key")}
}

// NewDashboardRequest reads the dashboard selections from the query string
func NewDashboardRequest(r *http.Request) DashboardRequest {
	q := r.URL.Query()
	show := q.Get("show")
	return DashboardRequest{
		Mode:     strings.TrimSpace(q.Get("mode")),
		Trend:    strings.TrimSpace(q.Get("trend")),
		Startup:  q.Get("startup"),
		Investor: q.Get("investor"),
		Show:     show == "1" || show == "true",
	}
}

// URLParam returns a decoded chi route parameter. Startup names and investor
// keys may contain spaces and punctuation, so they arrive escaped.
func URLParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
