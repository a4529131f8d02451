package exporter

import (
	"strconv"

	"fundingpulse/pkg/contracts/domain"
)

// Table is a titled grid of already formatted cells
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// OverallTables flattens the overall view into its tables
func OverallTables(r domain.OverallReport) []Table {
	trendHeader := "Investments"
	if r.TrendMode == domain.TrendAmount {
		trendHeader = "Amount"
	}

	trend := Table{Name: "trend", Headers: []string{"Period", trendHeader}}
	for _, p := range r.Trend {
		trend.Rows = append(trend.Rows, []string{p.Label(), p.Value.String()})
	}

	return []Table{
		{
			Name:    "summary",
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Total Funding", formatAmount(r.TotalAmount)},
				{"Largest Investment", formatAmount(r.LargestInvestment.Amount)},
				{"Largest Investment Startup", r.LargestInvestment.Startup},
				{"Average Funding", formatAmount(r.AverageFunding)},
				{"Funded Startups", formatInt(r.StartupCount)},
			},
		},
		amountTable("top_startups", "Startup", "Max Investment", r.TopByMaxInvestment, false),
		amountTable("top_verticals", "Vertical", "Amount", r.TopVerticals, true),
		amountTable("top_cities", "City", "Amount", r.TopCities, true),
		trend,
	}
}

// StartupTables flattens a startup drill-down into its tables
func StartupTables(r domain.StartupReport) []Table {
	recent := Table{Name: "recent", Headers: []string{"Date", "Investors", "Amount"}}
	for _, inv := range r.Recent {
		recent.Rows = append(recent.Rows, []string{formatDate(inv.Date), inv.Investors, formatAmount(inv.Amount)})
	}

	investors := Table{Name: "investors", Headers: []string{"Investor"}}
	for _, name := range r.Investors {
		investors.Rows = append(investors.Rows, []string{name})
	}

	return []Table{
		{
			Name:    "profile",
			Headers: []string{"Field", "Value"},
			Rows: [][]string{
				{"Startup", r.Name},
				{"Vertical", r.Vertical},
				{"City", r.City},
				{"Total Funding", formatAmount(r.TotalAmount)},
			},
		},
		recent,
		investors,
		yearTable(r.YearWise),
	}
}

// InvestorTables flattens an investor drill-down into its tables
func InvestorTables(r domain.InvestorReport) []Table {
	recent := Table{Name: "recent", Headers: []string{"Date", "Startup", "Vertical", "City", "Amount"}}
	for _, inv := range r.Recent {
		recent.Rows = append(recent.Rows, []string{
			formatDate(inv.Date), inv.Startup, inv.Vertical, inv.City, formatAmount(inv.Amount),
		})
	}

	return []Table{
		{
			Name:    "summary",
			Headers: []string{"Field", "Value"},
			Rows: [][]string{
				{"Investor", r.Investor},
				{"Investments", formatInt(r.Matches)},
				{"Total Invested", formatAmount(r.TotalAmount)},
			},
		},
		recent,
		amountTable("biggest", "Startup", "Amount", r.BiggestInvestments, false),
		amountTable("verticals", "Vertical", "Amount", r.Verticals, true),
		yearTable(r.YearWise),
	}
}

func amountTable(name, keyHeader, amountHeader string, items []domain.AmountByKey, withShare bool) Table {
	t := Table{Name: name, Headers: []string{keyHeader, amountHeader}}
	if withShare {
		t.Headers = append(t.Headers, "Share")
	}
	for _, it := range items {
		row := []string{it.Key, formatAmount(it.Amount)}
		if withShare {
			row = append(row, FormatPercent(it.Share))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func yearTable(points []domain.YearPoint) Table {
	t := Table{Name: "yearly", Headers: []string{"Year", "Amount"}}
	for _, p := range points {
		t.Rows = append(t.Rows, []string{strconv.Itoa(p.Year), formatAmount(p.Amount)})
	}
	return t
}
