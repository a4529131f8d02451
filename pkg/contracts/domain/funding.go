package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel values substituted for missing data
const (
	UndisclosedInvestor = "Undisclosed"
	NotAvailable        = "Not Available"
)

// FundingRecord represents a single funding event loaded from the dataset
type FundingRecord struct {
	Row           int             `json:"row"`
	Startup       string          `json:"startup"`
	StartupName   string          `json:"startup_name"`
	Vertical      string          `json:"vertical,omitempty"`
	City          string          `json:"city,omitempty"`
	InvestorsText string          `json:"investors_text"`
	Investors     []string        `json:"investors"`
	InvestorNames []string        `json:"investor_names"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

// Year returns the calendar year of the funding date
func (r FundingRecord) Year() int {
	return r.Date.Year()
}

// Month returns the calendar month of the funding date
func (r FundingRecord) Month() time.Month {
	return r.Date.Month()
}

// HasInvestor reports whether key occurs anywhere in the raw investor text.
// Matching is case-sensitive and unanchored.
func (r FundingRecord) HasInvestor(key string) bool {
	return strings.Contains(r.InvestorsText, key)
}
