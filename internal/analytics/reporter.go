package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"fundingpulse/internal/dataprocessing"
	"fundingpulse/pkg/contracts/domain"
)

// List sizes of the report views
const (
	TopStartupsLimit       = 3
	TopVerticalsLimit      = 5
	TopCitiesLimit         = 5
	RecentLimit            = 5
	InvestorBiggestLimit   = 7
	InvestorVerticalsLimit = 7
)

// Reporter answers the dashboard queries over a loaded Dataset.
// It holds no mutable state and is safe for concurrent use.
type Reporter struct {
	ds *dataprocessing.Dataset
}

// NewReporter creates a reporter over ds
func NewReporter(ds *dataprocessing.Dataset) *Reporter {
	return &Reporter{ds: ds}
}

// Dataset returns the dataset the reporter queries
func (r *Reporter) Dataset() *dataprocessing.Dataset {
	return r.ds
}

// Overall computes the aggregate view. An unknown trend mode is treated as
// TrendCount; callers validate user input before getting here.
func (r *Reporter) Overall(trend domain.TrendMode) domain.OverallReport {
	if !trend.Valid() {
		trend = domain.TrendCount
	}
	records := r.ds.Records()

	totals := sumBy(records, byStartup)
	maxima := maxBy(records, byStartup)

	report := domain.OverallReport{
		TotalAmount:        sum(records),
		AverageFunding:     decimal.Zero,
		StartupCount:       len(totals),
		TopByMaxInvestment: topN(maxima, TopStartupsLimit),
		TopVerticals:       topNWithShare(sumBy(records, byVertical), TopVerticalsLimit),
		TopCities:          topNWithShare(sumBy(records, byCity), TopCitiesLimit),
		TrendMode:          trend,
		Trend:              monthly(records, trend),
	}

	if best := topN(maxima, 1); len(best) == 1 {
		report.LargestInvestment = domain.LargestInvestment{Startup: best[0].Key, Amount: best[0].Amount}
	}

	if len(totals) > 0 {
		grand := decimal.Zero
		for _, v := range totals {
			grand = grand.Add(v)
		}
		report.AverageFunding = grand.Div(decimal.NewFromInt(int64(len(totals))))
	}

	return report
}

// Startup computes the drill-down for one cleaned startup name
func (r *Reporter) Startup(name string) domain.StartupReport {
	matches := r.ds.Filter(func(rec domain.FundingRecord) bool {
		return rec.StartupName == name
	})

	report := domain.StartupReport{
		Name:        name,
		Vertical:    domain.NotAvailable,
		City:        domain.NotAvailable,
		TotalAmount: sum(matches),
		Recent:      make([]domain.StartupInvestment, 0, RecentLimit),
		Investors:   []string{},
		YearWise:    yearWise(matches),
	}

	if len(matches) > 0 {
		if v := matches[0].Vertical; v != "" {
			report.Vertical = v
		}
		if c := matches[0].City; c != "" {
			report.City = c
		}
	}

	seen := make(map[string]struct{})
	for i, rec := range matches {
		if i < RecentLimit {
			report.Recent = append(report.Recent, domain.StartupInvestment{
				Date:      rec.Date,
				Investors: rec.InvestorsText,
				Amount:    rec.Amount,
			})
		}
		for _, inv := range rec.InvestorNames {
			if inv == "" {
				continue
			}
			if _, dup := seen[inv]; !dup {
				seen[inv] = struct{}{}
				report.Investors = append(report.Investors, inv)
			}
		}
	}
	sort.Strings(report.Investors)

	return report
}

// Investor computes the drill-down for an investor key. The key matches any
// record whose raw investor text contains it.
func (r *Reporter) Investor(key string) domain.InvestorReport {
	matches := r.ds.Filter(func(rec domain.FundingRecord) bool {
		return rec.HasInvestor(key)
	})

	report := domain.InvestorReport{
		Investor:           key,
		Matches:            len(matches),
		TotalAmount:        sum(matches),
		Recent:             make([]domain.InvestorInvestment, 0, RecentLimit),
		BiggestInvestments: topN(sumBy(matches, byStartup), InvestorBiggestLimit),
		Verticals:          topNWithShare(sumBy(matches, byVertical), InvestorVerticalsLimit),
		YearWise:           yearWise(matches),
	}

	for i, rec := range matches {
		if i >= RecentLimit {
			break
		}
		report.Recent = append(report.Recent, domain.InvestorInvestment{
			Date:     rec.Date,
			Startup:  rec.StartupName,
			Vertical: rec.Vertical,
			City:     rec.City,
			Amount:   rec.Amount,
		})
	}

	return report
}
