// Package exporter renders dashboard reports into files and images.
//
// Tables flatten a report into named grids of formatted cells. From them,
// CSVWriter writes one UTF-8 BOM prefixed CSV per table under the reports
// directory and WorkbookWriter writes a single .xlsx with Overall, Startups
// and Investors sheets. ChartRenderer draws PNG bar, share and line charts
// with gonum/plot; RenderOverall, RenderStartup and RenderInvestor select a
// chart by the names listed in OverallCharts, StartupCharts and InvestorCharts.
//
// Example usage:
//
//	renderer := exporter.NewChartRenderer(logger)
//	var buf bytes.Buffer
//	if err := renderer.RenderOverall(&buf, "verticals", report); err != nil {
//	    return err
//	}
package exporter
