package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"fundingpulse/pkg/contracts/domain"
)

type period struct {
	year  int
	month int
}

// monthly buckets records by (year, month) and returns the series in
// chronological order. TrendCount counts rows; TrendAmount sums amounts.
func monthly(records []domain.FundingRecord, mode domain.TrendMode) []domain.PeriodPoint {
	buckets := make(map[period]decimal.Decimal)
	one := decimal.NewFromInt(1)

	for _, r := range records {
		p := period{year: r.Year(), month: int(r.Month())}
		if mode == domain.TrendAmount {
			buckets[p] = buckets[p].Add(r.Amount)
		} else {
			buckets[p] = buckets[p].Add(one)
		}
	}

	out := make([]domain.PeriodPoint, 0, len(buckets))
	for p, v := range buckets {
		out = append(out, domain.PeriodPoint{Year: p.year, Month: p.month, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
