package api

import (
	"fundingpulse/pkg/contracts/domain"
)

// MenuResponse lists the values offered by a selection menu
type MenuResponse struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

// NewMenuResponse wraps a menu, never returning a nil item list
func NewMenuResponse(items []string) MenuResponse {
	if items == nil {
		items = []string{}
	}
	return MenuResponse{Items: items, Count: len(items)}
}

// OverallResponse is the overall view plus the names of its charts
type OverallResponse struct {
	domain.OverallReport
	Charts []string `json:"charts"`
}

// StartupResponse is the startup view plus the names of its charts
type StartupResponse struct {
	domain.StartupReport
	Charts []string `json:"charts"`
}

// InvestorResponse is the investor view plus the names of its charts
type InvestorResponse struct {
	domain.InvestorReport
	Charts []string `json:"charts"`
}
