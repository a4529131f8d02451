package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TrendMode selects the measure plotted by the month-on-month trend
type TrendMode string

const (
	TrendCount  TrendMode = "count"
	TrendAmount TrendMode = "amount"
)

// Valid reports whether the mode is a known trend mode
func (m TrendMode) Valid() bool {
	return m == TrendCount || m == TrendAmount
}

// AmountByKey is one group of a grouped aggregate
type AmountByKey struct {
	Key    string          `json:"key"`
	Amount decimal.Decimal `json:"amount"`
	// Share is the percentage of the grouped total, 0-100. Zero when not computed.
	Share float64 `json:"share,omitempty"`
}

// PeriodPoint is one (year, month) bucket of the trend series
type PeriodPoint struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Value decimal.Decimal `json:"value"`
}

// Label returns the bucket label in MM-YYYY form
func (p PeriodPoint) Label() string {
	return fmt.Sprintf("%02d-%d", p.Month, p.Year)
}

// YearPoint is one year of a year-indexed series
type YearPoint struct {
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

// LargestInvestment identifies the single biggest funding event
type LargestInvestment struct {
	Startup string          `json:"startup"`
	Amount  decimal.Decimal `json:"amount"`
}

// OverallReport represents aggregate statistics across all records
type OverallReport struct {
	TotalAmount        decimal.Decimal   `json:"total_amount"`
	LargestInvestment  LargestInvestment `json:"largest_investment"`
	AverageFunding     decimal.Decimal   `json:"average_funding"`
	StartupCount       int               `json:"startup_count"`
	TopByMaxInvestment []AmountByKey     `json:"top_by_max_investment"`
	TopVerticals       []AmountByKey     `json:"top_verticals"`
	TopCities          []AmountByKey     `json:"top_cities"`
	TrendMode          TrendMode         `json:"trend_mode"`
	Trend              []PeriodPoint     `json:"trend"`
}

// StartupInvestment is a row of the startup drill-down table
type StartupInvestment struct {
	Date      time.Time       `json:"date"`
	Investors string          `json:"investors"`
	Amount    decimal.Decimal `json:"amount"`
}

// StartupReport represents the drill-down for a single startup
type StartupReport struct {
	Name        string              `json:"name"`
	Vertical    string              `json:"vertical"`
	City        string              `json:"city"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Recent      []StartupInvestment `json:"recent"`
	Investors   []string            `json:"investors"`
	YearWise    []YearPoint         `json:"year_wise"`
}

// InvestorInvestment is a row of the investor drill-down table
type InvestorInvestment struct {
	Date     time.Time       `json:"date"`
	Startup  string          `json:"startup"`
	Vertical string          `json:"vertical"`
	City     string          `json:"city"`
	Amount   decimal.Decimal `json:"amount"`
}

// InvestorReport represents the drill-down for a single investor key
type InvestorReport struct {
	Investor           string               `json:"investor"`
	Matches            int                  `json:"matches"`
	TotalAmount        decimal.Decimal      `json:"total_amount"`
	Recent             []InvestorInvestment `json:"recent"`
	BiggestInvestments []AmountByKey        `json:"biggest_investments"`
	Verticals          []AmountByKey        `json:"verticals"`
	YearWise           []YearPoint          `json:"year_wise"`
}

// DatasetSummary describes the loaded dataset
type DatasetSummary struct {
	Source      string    `json:"source"`
	Records     int       `json:"records"`
	SkippedRows int       `json:"skipped_rows"`
	Startups    int       `json:"startups"`
	Investors   int       `json:"investors"`
	FirstDate   time.Time `json:"first_date"`
	LastDate    time.Time `json:"last_date"`
	LoadedAt    time.Time `json:"loaded_at"`
}
