package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fundingpulse/pkg/contracts/domain"
)

// Workbook sheet names
const (
	SheetOverall   = "Overall"
	SheetStartups  = "Startups"
	SheetInvestors = "Investors"
)

// WorkbookWriter writes the dashboard views into a single .xlsx file
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger.With(slog.String("component", "workbook_writer"))}
}

// Write creates path with an Overall sheet holding every overall table
// stacked vertically, a Startups sheet with one summary row per startup and
// an Investors sheet with one summary row per investor.
func (w *WorkbookWriter) Write(path string, overall domain.OverallReport, startups []domain.StartupReport, investors []domain.InvestorReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOverall); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	row := 1
	for _, t := range OverallTables(overall) {
		if err := setRow(f, SheetOverall, row, []string{t.Name}); err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellStyle(SheetOverall, cell, cell, bold)
		row++

		if err := setRow(f, SheetOverall, row, t.Headers); err != nil {
			return err
		}
		row++

		for _, r := range t.Rows {
			if err := setRow(f, SheetOverall, row, r); err != nil {
				return err
			}
			row++
		}
		row++
	}

	if _, err := f.NewSheet(SheetStartups); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetStartups, err)
	}
	if err := setRow(f, SheetStartups, 1, []string{"Startup", "Vertical", "City", "Total Funding", "Investors", "Rounds Shown"}); err != nil {
		return err
	}
	for i, s := range startups {
		err := f.SetSheetRow(SheetStartups, fmt.Sprintf("A%d", i+2), &[]interface{}{
			s.Name, s.Vertical, s.City, s.TotalAmount.InexactFloat64(), len(s.Investors), len(s.Recent),
		})
		if err != nil {
			return fmt.Errorf("failed to write startup %s: %w", s.Name, err)
		}
	}

	if _, err := f.NewSheet(SheetInvestors); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetInvestors, err)
	}
	if err := setRow(f, SheetInvestors, 1, []string{"Investor", "Investments", "Total Invested", "Top Startup", "Top Vertical"}); err != nil {
		return err
	}
	for i, inv := range investors {
		topStartup, topVertical := "", ""
		if len(inv.BiggestInvestments) > 0 {
			topStartup = inv.BiggestInvestments[0].Key
		}
		if len(inv.Verticals) > 0 {
			topVertical = inv.Verticals[0].Key
		}
		err := f.SetSheetRow(SheetInvestors, fmt.Sprintf("A%d", i+2), &[]interface{}{
			inv.Investor, inv.Matches, inv.TotalAmount.InexactFloat64(), topStartup, topVertical,
		})
		if err != nil {
			return fmt.Errorf("failed to write investor %s: %w", inv.Investor, err)
		}
	}

	for _, sheet := range []string{SheetStartups, SheetInvestors} {
		f.SetCellStyle(sheet, "A1", "F1", bold)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Workbook written",
		slog.String("path", path),
		slog.Int("startups", len(startups)),
		slog.Int("investors", len(investors)))

	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
