package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundingpulse/internal/dataprocessing"
	"fundingpulse/pkg/contracts/domain"
)

func record(row int, startup, vertical, city, investors string, amount int64, date string) domain.FundingRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	raw := dataprocessing.SplitInvestors(investors)
	return domain.FundingRecord{
		Row:           row,
		Startup:       startup,
		StartupName:   startup,
		Vertical:      vertical,
		City:          city,
		InvestorsText: investors,
		Investors:     raw,
		InvestorNames: dataprocessing.CleanNames(raw),
		Amount:        decimal.NewFromInt(amount),
		Date:          d,
	}
}

func fixture() *Reporter {
	return NewReporter(dataprocessing.NewDataset("fixture", []domain.FundingRecord{
		record(1, "Flipkart", "E-Commerce", "Bengaluru", "Tiger Global, Accel Partners", 100, "2017-01-10"),
		record(2, "Ola", "Transport", "Mumbai", "Sequoia Capital India", 50, "2017-01-20"),
		record(3, "Flipkart", "E-Commerce", "", "Tiger Global", 300, "2017-03-05"),
		record(4, "Zomato", "Food", "Gurgaon", "Sequoia Capital, Info Edge", 200, "2018-02-01"),
		record(5, "Paytm", "FinTech", "Noida", "Alibaba", 300, "2018-02-15"),
		record(6, "Swiggy", "", "Bengaluru", "Accel Partners", 0, "2018-05-01"),
	}, 0))
}

func keys(items []domain.AmountByKey) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key
	}
	return out
}

func shareSum(items []domain.AmountByKey) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Share
	}
	return total
}

func TestReporter_Overall(t *testing.T) {
	report := fixture().Overall(domain.TrendCount)

	assert.Equal(t, "950", report.TotalAmount.String())
	assert.Equal(t, "190", report.AverageFunding.String())
	assert.Equal(t, 5, report.StartupCount)
	assert.Equal(t, "Flipkart", report.LargestInvestment.Startup)
	assert.Equal(t, "300", report.LargestInvestment.Amount.String())

	assert.Equal(t, []string{"Flipkart", "Paytm", "Zomato"}, keys(report.TopByMaxInvestment), "ties broken by name")

	assert.Equal(t, []string{"E-Commerce", "FinTech", "Food", "Transport"}, keys(report.TopVerticals))
	assert.InDelta(t, 400.0/950*100, report.TopVerticals[0].Share, 1e-9)
	assert.InDelta(t, 100, shareSum(report.TopVerticals), 1e-9)

	assert.Equal(t, []string{"Noida", "Gurgaon", "Bengaluru", "Mumbai"}, keys(report.TopCities))
	assert.InDelta(t, 100, shareSum(report.TopCities), 1e-9)
}

func TestReporter_OverallTrend(t *testing.T) {
	tests := []struct {
		name     string
		mode     domain.TrendMode
		expected []string
	}{
		{name: "count", mode: domain.TrendCount, expected: []string{"01-2017=2", "03-2017=1", "02-2018=2", "05-2018=1"}},
		{name: "amount", mode: domain.TrendAmount, expected: []string{"01-2017=150", "03-2017=300", "02-2018=500", "05-2018=0"}},
		{name: "unknown falls back to count", mode: "weekly", expected: []string{"01-2017=2", "03-2017=1", "02-2018=2", "05-2018=1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := fixture().Overall(tt.mode)
			got := make([]string, len(report.Trend))
			for i, p := range report.Trend {
				got[i] = fmt.Sprintf("%s=%s", p.Label(), p.Value.String())
			}
			assert.Equal(t, tt.expected, got)
			assert.True(t, report.TrendMode.Valid())
		})
	}
}

func TestReporter_OverallEmpty(t *testing.T) {
	report := NewReporter(dataprocessing.NewDataset("empty", nil, 0)).Overall(domain.TrendAmount)

	assert.True(t, report.TotalAmount.IsZero())
	assert.True(t, report.AverageFunding.IsZero())
	assert.Zero(t, report.StartupCount)
	assert.Empty(t, report.LargestInvestment.Startup)
	assert.Empty(t, report.TopByMaxInvestment)
	assert.Empty(t, report.TopVerticals)
	assert.Empty(t, report.Trend)
}

func TestReporter_Startup(t *testing.T) {
	tests := []struct {
		name      string
		startup   string
		vertical  string
		city      string
		total     string
		recent    int
		investors []string
		years     []int
	}{
		{
			name: "several rounds", startup: "Flipkart",
			vertical: "E-Commerce", city: "Bengaluru", total: "400", recent: 2,
			investors: []string{"Accel Partners", "Tiger Global"}, years: []int{2017},
		},
		{
			name: "missing vertical", startup: "Swiggy",
			vertical: domain.NotAvailable, city: "Bengaluru", total: "0", recent: 1,
			investors: []string{"Accel Partners"}, years: []int{2018},
		},
		{
			name: "no match", startup: "Unknown Startup",
			vertical: domain.NotAvailable, city: domain.NotAvailable, total: "0", recent: 0,
			investors: []string{}, years: []int{},
		},
		{
			name: "match is exact", startup: "flipkart",
			vertical: domain.NotAvailable, city: domain.NotAvailable, total: "0", recent: 0,
			investors: []string{}, years: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := fixture().Startup(tt.startup)

			assert.Equal(t, tt.startup, report.Name)
			assert.Equal(t, tt.vertical, report.Vertical)
			assert.Equal(t, tt.city, report.City)
			assert.Equal(t, tt.total, report.TotalAmount.String())
			assert.Len(t, report.Recent, tt.recent)
			assert.Equal(t, tt.investors, report.Investors)

			years := []int{}
			for _, y := range report.YearWise {
				years = append(years, y.Year)
			}
			assert.Equal(t, tt.years, years)
		})
	}
}

func TestReporter_StartupRecentKeepsLoadOrder(t *testing.T) {
	var records []domain.FundingRecord
	for i := 1; i <= 8; i++ {
		records = append(records, record(i, "Byju", "EdTech", "Bengaluru", "Investor", int64(i), fmt.Sprintf("2019-%02d-01", 9-i)))
	}
	report := NewReporter(dataprocessing.NewDataset("rounds", records, 0)).Startup("Byju")

	require.Len(t, report.Recent, RecentLimit)
	for i, inv := range report.Recent {
		assert.Equal(t, fmt.Sprint(i+1), inv.Amount.String())
	}
	assert.Equal(t, "36", report.TotalAmount.String())
}

func TestReporter_Investor(t *testing.T) {
	report := fixture().Investor("Sequoia")

	assert.Equal(t, "Sequoia", report.Investor)
	assert.Equal(t, 2, report.Matches)
	assert.Equal(t, "250", report.TotalAmount.String())

	require.Len(t, report.Recent, 2)
	assert.Equal(t, "Ola", report.Recent[0].Startup)
	assert.Equal(t, "Mumbai", report.Recent[0].City)
	assert.Equal(t, "Zomato", report.Recent[1].Startup)

	assert.Equal(t, []string{"Zomato", "Ola"}, keys(report.BiggestInvestments))
	assert.Equal(t, []string{"Food", "Transport"}, keys(report.Verticals))
	assert.InDelta(t, 80, report.Verticals[0].Share, 1e-9)
	assert.InDelta(t, 20, report.Verticals[1].Share, 1e-9)

	require.Len(t, report.YearWise, 2)
	assert.Equal(t, 2017, report.YearWise[0].Year)
	assert.Equal(t, "50", report.YearWise[0].Amount.String())
	assert.Equal(t, "200", report.YearWise[1].Amount.String())
}

func TestReporter_InvestorMatching(t *testing.T) {
	tests := []struct {
		key     string
		matches int
	}{
		{key: "Sequoia Capital", matches: 2},
		{key: "Sequoia Capital India", matches: 1},
		{key: "sequoia", matches: 0},
		{key: "Accel Partners", matches: 2},
		{key: "Edge", matches: 1},
		{key: "Nobody", matches: 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			report := fixture().Investor(tt.key)
			assert.Equal(t, tt.matches, report.Matches)
			assert.Len(t, report.Recent, tt.matches)
			if tt.matches == 0 {
				assert.True(t, report.TotalAmount.IsZero())
				assert.Empty(t, report.BiggestInvestments)
				assert.Empty(t, report.Verticals)
				assert.Empty(t, report.YearWise)
			}
		})
	}
}

func TestReporter_StartupsWithoutCleanName(t *testing.T) {
	ds := dataprocessing.NewDataset("uncleanable", []domain.FundingRecord{
		record(1, "Ola", "Transport", "Mumbai", "X", 100, "2020-01-01"),
		record(2, "", "Food", "Pune", "Y", 50, "2020-01-02"),
		record(3, "!!!", "Food", "Pune", "Z", 25, "2020-01-03"),
	}, 0)
	r := NewReporter(ds)

	overall := r.Overall(domain.TrendAmount)
	assert.Equal(t, "175", overall.TotalAmount.String())
	assert.Equal(t, 2, overall.StartupCount)
	assert.Equal(t, "87.5", overall.AverageFunding.String())

	menu := ds.StartupNames()
	assert.Equal(t, []string{domain.NotAvailable, "Ola"}, menu)
	assert.Len(t, menu, overall.StartupCount)

	total := decimal.Zero
	for _, name := range menu {
		total = total.Add(r.Startup(name).TotalAmount)
	}
	assert.True(t, total.Equal(overall.TotalAmount), "per-startup sum %s", total)

	unnamed := r.Startup(domain.NotAvailable)
	assert.Equal(t, "75", unnamed.TotalAmount.String())
	assert.Equal(t, "Food", unnamed.Vertical)
}

func TestTopNWithShare_Truncated(t *testing.T) {
	groups := make(map[string]decimal.Decimal)
	for i := 1; i <= 10; i++ {
		groups[fmt.Sprintf("V%02d", i)] = decimal.NewFromInt(int64(i * 10))
	}

	top := topNWithShare(groups, 5)
	require.Len(t, top, 5)
	assert.Equal(t, []string{"V10", "V09", "V08", "V07", "V06"}, keys(top))
	assert.Less(t, shareSum(top), 100.0)

	all := topNWithShare(groups, 10)
	assert.InDelta(t, 100, shareSum(all), 1e-9)
}

func TestTopNWithShare_ZeroTotal(t *testing.T) {
	top := topNWithShare(map[string]decimal.Decimal{"A": decimal.Zero, "B": decimal.Zero}, 5)
	assert.Equal(t, []string{"A", "B"}, keys(top))
	assert.Zero(t, shareSum(top))
}

func TestReporter_Properties(t *testing.T) {
	names := []string{"Alpha", "beta", "BETA", "Gamma", "", "!!!", "Delta", "  ", "Epsilon", "http://zeta.io"}
	verticals := []string{"Food", "FinTech", "EdTech", "Health", "Logistics", "Retail", "Media", "Travel"}

	build := func(amounts []int64) *Reporter {
		records := make([]domain.FundingRecord, len(amounts))
		for i, a := range amounts {
			records[i] = record(i+1, names[i%len(names)], verticals[(i*3)%len(verticals)], "City", "Fund", a,
				fmt.Sprintf("%d-%02d-01", 2015+i%4, 1+i%12))
		}
		return NewReporter(dataprocessing.NewDataset("generated", records, 0))
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	amounts := gen.SliceOf(gen.Int64Range(0, 1_000_000))

	properties.Property("per-startup totals add up to the grand total", prop.ForAll(
		func(a []int64) bool {
			r := build(a)
			overall := r.Overall(domain.TrendAmount)
			menu := r.Dataset().StartupNames()
			if len(menu) != overall.StartupCount {
				return false
			}
			total := decimal.Zero
			for _, name := range menu {
				total = total.Add(r.Startup(name).TotalAmount)
			}
			return total.Equal(overall.TotalAmount)
		},
		amounts,
	))

	properties.Property("ranked lists are sorted and capped", prop.ForAll(
		func(a []int64) bool {
			overall := build(a).Overall(domain.TrendCount)
			lists := []struct {
				items []domain.AmountByKey
				limit int
			}{
				{overall.TopByMaxInvestment, TopStartupsLimit},
				{overall.TopVerticals, TopVerticalsLimit},
				{overall.TopCities, TopCitiesLimit},
			}
			for _, l := range lists {
				if len(l.items) > l.limit {
					return false
				}
				for i := 1; i < len(l.items); i++ {
					if l.items[i].Amount.GreaterThan(l.items[i-1].Amount) {
						return false
					}
				}
			}
			return true
		},
		amounts,
	))

	properties.Property("vertical shares never exceed 100", prop.ForAll(
		func(a []int64) bool {
			return shareSum(build(a).Overall(domain.TrendCount).TopVerticals) <= 100+1e-9
		},
		amounts,
	))

	properties.Property("trend count equals the record count", prop.ForAll(
		func(a []int64) bool {
			count := decimal.Zero
			for _, p := range build(a).Overall(domain.TrendCount).Trend {
				count = count.Add(p.Value)
			}
			return count.Equal(decimal.NewFromInt(int64(len(a))))
		},
		amounts,
	))

	properties.TestingRun(t)
}
