package exporter

import (
	"errors"
	"fmt"
	"io"

	"fundingpulse/pkg/contracts/domain"
)

// ErrUnknownChart is returned for a chart name a view does not offer
var ErrUnknownChart = errors.New("unknown chart")

// Chart names offered by each view
var (
	OverallCharts  = []string{"top-startups", "verticals", "cities", "trend"}
	StartupCharts  = []string{"yearly"}
	InvestorCharts = []string{"biggest", "verticals", "yearly"}
)

// RenderOverall draws one of OverallCharts
func (c *ChartRenderer) RenderOverall(w io.Writer, name string, r domain.OverallReport) error {
	switch name {
	case "top-startups":
		return c.BarChart(w, "Top Startups by Largest Investment", "Startup", r.TopByMaxInvestment)
	case "verticals":
		return c.ShareChart(w, "Top Verticals", "Vertical", r.TopVerticals)
	case "cities":
		return c.ShareChart(w, "Top Cities", "City", r.TopCities)
	case "trend":
		return c.TrendChart(w, "Month on Month Investment", r.TrendMode, r.Trend)
	}
	return fmt.Errorf("%w: overall/%s", ErrUnknownChart, name)
}

// RenderStartup draws one of StartupCharts
func (c *ChartRenderer) RenderStartup(w io.Writer, name string, r domain.StartupReport) error {
	if name == "yearly" {
		return c.YearChart(w, fmt.Sprintf("%s: Year on Year Funding", r.Name), r.YearWise)
	}
	return fmt.Errorf("%w: startup/%s", ErrUnknownChart, name)
}

// RenderInvestor draws one of InvestorCharts
func (c *ChartRenderer) RenderInvestor(w io.Writer, name string, r domain.InvestorReport) error {
	switch name {
	case "biggest":
		return c.BarChart(w, fmt.Sprintf("%s: Biggest Investments", r.Investor), "Startup", r.BiggestInvestments)
	case "verticals":
		return c.ShareChart(w, fmt.Sprintf("%s: Sectors Invested In", r.Investor), "Vertical", r.Verticals)
	case "yearly":
		return c.YearChart(w, fmt.Sprintf("%s: Year on Year Investment", r.Investor), r.YearWise)
	}
	return fmt.Errorf("%w: investor/%s", ErrUnknownChart, name)
}
