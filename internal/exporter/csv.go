package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fundingpulse/internal/config"
	"fundingpulse/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		paths:  paths,
		logger: logger.With(slog.String("component", "csv_writer")),
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file. Relative paths land in the reports directory.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return "", fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return fullPath, file.Close()
}

// WriteTables writes one BOM-prefixed CSV per table, named <prefix>_<table>.csv
func (w *CSVWriter) WriteTables(prefix string, tables []Table) ([]string, error) {
	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path, err := w.WriteCSV(fmt.Sprintf("%s_%s.csv", prefix, t.Name), WriteOptions{
			Headers:   t.Headers,
			Records:   t.Rows,
			BOMPrefix: true,
		})
		if err != nil {
			return paths, fmt.Errorf("table %s: %w", t.Name, err)
		}
		paths = append(paths, path)
	}

	w.logger.Info("Exported tables",
		slog.String("prefix", prefix),
		slog.Int("files", len(paths)))

	return paths, nil
}

// WriteOverall exports the overall view
func (w *CSVWriter) WriteOverall(r domain.OverallReport) ([]string, error) {
	return w.WriteTables("overall", OverallTables(r))
}

// WriteStartup exports a startup drill-down
func (w *CSVWriter) WriteStartup(r domain.StartupReport) ([]string, error) {
	return w.WriteTables("startup_"+Slug(r.Name), StartupTables(r))
}

// WriteInvestor exports an investor drill-down
func (w *CSVWriter) WriteInvestor(r domain.InvestorReport) ([]string, error) {
	return w.WriteTables("investor_"+Slug(r.Investor), InvestorTables(r))
}

// resolvePath resolves a relative path against the reports directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetReportPath(filePath)
}
