package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"fundingpulse/pkg/contracts/domain"
)

// keyFunc extracts the grouping key of a record. Records with an empty key
// are not a category and are left out of the grouping.
type keyFunc func(domain.FundingRecord) string

func byStartup(r domain.FundingRecord) string  { return r.StartupName }
func byVertical(r domain.FundingRecord) string { return r.Vertical }
func byCity(r domain.FundingRecord) string     { return r.City }

// sumBy totals the amount per key
func sumBy(records []domain.FundingRecord, key keyFunc) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		out[k] = out[k].Add(r.Amount)
	}
	return out
}

// maxBy keeps the largest single amount per key
func maxBy(records []domain.FundingRecord, key keyFunc) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		if cur, ok := out[k]; !ok || r.Amount.GreaterThan(cur) {
			out[k] = r.Amount
		}
	}
	return out
}

// ranked orders groups by amount descending with ties broken by key ascending
func ranked(groups map[string]decimal.Decimal) []domain.AmountByKey {
	out := make([]domain.AmountByKey, 0, len(groups))
	for k, v := range groups {
		out = append(out, domain.AmountByKey{Key: k, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// topN returns at most n ranked groups
func topN(groups map[string]decimal.Decimal, n int) []domain.AmountByKey {
	out := ranked(groups)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// topNWithShare returns at most n ranked groups, each carrying its
// percentage of the total over every group, including the truncated ones.
func topNWithShare(groups map[string]decimal.Decimal, n int) []domain.AmountByKey {
	total := decimal.Zero
	for _, v := range groups {
		total = total.Add(v)
	}

	out := topN(groups, n)
	if total.IsZero() {
		return out
	}
	for i := range out {
		out[i].Share = out[i].Amount.Div(total).InexactFloat64() * 100
	}
	return out
}

// yearWise totals the amount per calendar year, oldest first
func yearWise(records []domain.FundingRecord) []domain.YearPoint {
	totals := make(map[int]decimal.Decimal)
	for _, r := range records {
		totals[r.Year()] = totals[r.Year()].Add(r.Amount)
	}

	out := make([]domain.YearPoint, 0, len(totals))
	for y, v := range totals {
		out = append(out, domain.YearPoint{Year: y, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func sum(records []domain.FundingRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
