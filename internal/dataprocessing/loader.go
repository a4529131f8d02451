package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fundingpulse/pkg/contracts/domain"
)

// Column names required in the source table
const (
	ColumnStartup   = "startup"
	ColumnVertical  = "vertical"
	ColumnCity      = "city"
	ColumnInvestors = "investors name"
	ColumnAmount    = "amount"
	ColumnDate      = "date"
)

var requiredColumns = []string{
	ColumnStartup, ColumnVertical, ColumnCity, ColumnInvestors, ColumnAmount, ColumnDate,
}

// DatePolicy decides what happens to a row whose date cannot be parsed
type DatePolicy string

const (
	// DatePolicyFail aborts the load on the first unparseable date
	DatePolicyFail DatePolicy = "fail"
	// DatePolicySkip drops the row and logs a warning
	DatePolicySkip DatePolicy = "skip"
)

// Loader errors
var (
	ErrSourceNotFound = errors.New("dataset source not found")
	ErrSchemaMismatch = errors.New("dataset schema mismatch")
	ErrEmptySource    = errors.New("dataset has no header row")
)

// RowError describes a value in the source table that could not be loaded
type RowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: column %q value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Loader reads a funding table and normalizes it into a Dataset
type Loader struct {
	policy DatePolicy
	logger *slog.Logger
}

// NewLoader creates a loader. An empty policy means DatePolicyFail.
func NewLoader(policy DatePolicy, logger *slog.Logger) *Loader {
	if policy == "" {
		policy = DatePolicyFail
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		policy: policy,
		logger: logger.With(slog.String("component", "loader")),
	}
}

// Load reads the dataset at path. Files ending in .xlsx are read as
// workbooks; anything else is read as CSV.
func (l *Loader) Load(ctx context.Context, path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat dataset: %w", err)
	}

	l.logger.InfoContext(ctx, "loading dataset",
		slog.String("path", path),
		slog.String("date_policy", string(l.policy)))

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return l.LoadWorkbook(ctx, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return l.loadCSV(ctx, path, f)
}

// LoadCSV reads a CSV funding table from r
func (l *Loader) LoadCSV(ctx context.Context, r io.Reader) (*Dataset, error) {
	return l.loadCSV(ctx, "reader", r)
}

func (l *Loader) loadCSV(ctx context.Context, source string, r io.Reader) (*Dataset, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset CSV: %w", err)
	}
	return l.build(ctx, source, rows)
}

// LoadWorkbook reads the first sheet of an Excel workbook
func (l *Loader) LoadWorkbook(ctx context.Context, path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrEmptySource)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	l.logger.DebugContext(ctx, "read workbook sheet",
		slog.String("sheet", sheets[0]),
		slog.Int("rows", len(rows)))

	return l.build(ctx, path, rows)
}

func (l *Loader) build(ctx context.Context, source string, rows [][]string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}

	cols, err := findColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.FundingRecord, 0, len(rows)-1)
	skipped := 0

	for i, row := range rows[1:] {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlankRow(row) {
			continue
		}

		rowNum := i + 1
		rec, err := normalizeRow(rowNum, cols, row)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) && rowErr.Column == ColumnDate && l.policy == DatePolicySkip {
				l.logger.WarnContext(ctx, "skipping row with unparseable date",
					slog.Int("row", rowNum),
					slog.String("value", rowErr.Value))
				skipped++
				continue
			}
			return nil, err
		}
		records = append(records, rec)
	}

	ds := NewDataset(source, records, skipped)

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("source", source),
		slog.Int("records", ds.Len()),
		slog.Int("skipped", skipped),
		slog.Int("startups", len(ds.startupNames)),
		slog.Int("investors", len(ds.investorNames)))

	return ds, nil
}

// columnIndex maps required column names to their position in the header
type columnIndex map[string]int

func (c columnIndex) value(row []string, column string) string {
	idx := c[column]
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func findColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(requiredColumns))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %v in header %v", ErrSchemaMismatch, missing, header)
	}
	return cols, nil
}

func normalizeRow(rowNum int, cols columnIndex, row []string) (domain.FundingRecord, error) {
	rawDate := cols.value(row, ColumnDate)
	date, err := ParseDate(rawDate)
	if err != nil {
		return domain.FundingRecord{}, &RowError{Row: rowNum, Column: ColumnDate, Value: rawDate, Err: err}
	}

	rawAmount := cols.value(row, ColumnAmount)
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return domain.FundingRecord{}, &RowError{Row: rowNum, Column: ColumnAmount, Value: rawAmount, Err: err}
	}

	startup := strings.TrimSpace(cols.value(row, ColumnStartup))

	text := NormalizeInvestorText(cols.value(row, ColumnInvestors))
	investors := SplitInvestors(text)

	return domain.FundingRecord{
		Row:           rowNum,
		Startup:       startup,
		StartupName:   StartupKey(startup),
		Vertical:      strings.TrimSpace(cols.value(row, ColumnVertical)),
		City:          strings.TrimSpace(cols.value(row, ColumnCity)),
		InvestorsText: text,
		Investors:     investors,
		InvestorNames: CleanNames(investors),
		Amount:        amount,
		Date:          date,
	}, nil
}

// ParseAmount parses a non-negative currency amount. Thousands separators and
// a leading currency sign are ignored; an empty value is zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	value = strings.TrimLeft(value, "$₹")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount")
	}
	return amount, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
