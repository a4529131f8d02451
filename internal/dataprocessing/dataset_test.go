package dataprocessing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fundingpulse/pkg/contracts/domain"
)

func TestDataset_Copies(t *testing.T) {
	records := []domain.FundingRecord{
		{Row: 1, Startup: "alpha", StartupName: "Alpha", Investors: []string{"X"}, InvestorNames: []string{"X"}, Amount: decimal.NewFromInt(5), Date: date(2019, time.March, 1)},
		{Row: 2, Startup: "!!!", StartupName: "!!!", Investors: []string{"Y"}, InvestorNames: []string{"Y"}, Amount: decimal.NewFromInt(7), Date: date(2018, time.May, 2)},
	}
	ds := NewDataset("memory", records, 0)

	records[0].StartupName = "Mutated"
	assert.Equal(t, "Alpha", ds.Records()[0].StartupName)

	names := ds.StartupNames()
	names[0] = "Changed"
	assert.Equal(t, []string{"Alpha", domain.NotAvailable}, ds.StartupNames())
}

func TestDataset_EveryRecordHasStartupKey(t *testing.T) {
	tests := []struct {
		name        string
		startup     string
		startupName string
		expected    string
	}{
		{name: "clean name kept", startup: "ola cabs", startupName: "Ola Cabs", expected: "Ola Cabs"},
		{name: "name cleaned", startup: "OLA cabs", startupName: "OLA cabs", expected: "Ola Cabs"},
		{name: "falls back to raw startup", startup: "ola CABS", startupName: "", expected: "Ola Cabs"},
		{name: "empty", startup: "", startupName: "", expected: domain.NotAvailable},
		{name: "punctuation only", startup: "!!!", startupName: "!!!", expected: domain.NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := NewDataset("memory", []domain.FundingRecord{
				{Row: 1, Startup: tt.startup, StartupName: tt.startupName, Amount: decimal.NewFromInt(1)},
			}, 0)
			assert.Equal(t, tt.expected, ds.Records()[0].StartupName)
			assert.Equal(t, []string{tt.expected}, ds.StartupNames())
		})
	}
}

func TestDataset_FilterAndEach(t *testing.T) {
	ds := NewDataset("memory", []domain.FundingRecord{
		{Row: 1, StartupName: "A", InvestorsText: "Accel Partners, Sequoia", Amount: decimal.NewFromInt(1)},
		{Row: 2, StartupName: "B", InvestorsText: "Sequoia Capital", Amount: decimal.NewFromInt(2)},
		{Row: 3, StartupName: "C", InvestorsText: "Tiger Global", Amount: decimal.NewFromInt(3)},
	}, 0)

	matched := ds.Filter(func(r domain.FundingRecord) bool { return r.HasInvestor("Sequoia") })
	assert.Len(t, matched, 2)
	assert.Equal(t, 1, matched[0].Row)
	assert.Equal(t, 2, matched[1].Row)

	total := decimal.Zero
	ds.Each(func(r domain.FundingRecord) { total = total.Add(r.Amount) })
	assert.True(t, total.Equal(decimal.NewFromInt(6)))

	assert.Empty(t, ds.Filter(func(r domain.FundingRecord) bool { return r.HasInvestor("sequoia") }),
		"investor matching is case sensitive")
}

func TestDataset_EmptySummary(t *testing.T) {
	ds := NewDataset("memory", nil, 3)
	s := ds.Summary()
	assert.Equal(t, 0, s.Records)
	assert.Equal(t, 3, s.SkippedRows)
	assert.True(t, s.FirstDate.IsZero())
	assert.Empty(t, ds.InvestorKeys())
}
