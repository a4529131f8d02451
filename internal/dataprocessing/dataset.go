package dataprocessing

import (
	"sort"
	"time"

	"fundingpulse/pkg/contracts/domain"
)

// Dataset is the normalized, immutable funding table. It is built once by a
// Loader and shared read-only by every query.
type Dataset struct {
	source        string
	records       []domain.FundingRecord
	skipped       int
	loadedAt      time.Time
	startupNames  []string
	investorNames []string
	investorKeys  []string
}

// NewDataset builds a Dataset from already normalized records. The slice is
// copied; callers may reuse theirs. A StartupName that is empty or not a
// cleaned name is replaced by its StartupKey.
func NewDataset(source string, records []domain.FundingRecord, skipped int) *Dataset {
	ds := &Dataset{
		source:   source,
		records:  append([]domain.FundingRecord(nil), records...),
		skipped:  skipped,
		loadedAt: time.Now().UTC(),
	}
	for i := range ds.records {
		name := ds.records[i].StartupName
		if name == "" {
			name = ds.records[i].Startup
		}
		ds.records[i].StartupName = StartupKey(name)
	}
	ds.buildMenus()
	return ds
}

func (d *Dataset) buildMenus() {
	startups := make(map[string]struct{})
	investors := make(map[string]struct{})
	keys := make(map[string]struct{})

	for _, r := range d.records {
		startups[r.StartupName] = struct{}{}
		for _, n := range r.InvestorNames {
			investors[n] = struct{}{}
		}
		for _, k := range r.Investors {
			keys[k] = struct{}{}
		}
	}

	d.startupNames = sortedKeys(startups)
	d.investorNames = sortedKeys(investors)
	d.investorKeys = sortedKeys(keys)
	sort.Sort(sort.Reverse(sort.StringSlice(d.investorKeys)))
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the records in load order. The returned slice must not be modified.
func (d *Dataset) Records() []domain.FundingRecord {
	return d.records
}

// Each calls fn for every record in load order
func (d *Dataset) Each(fn func(domain.FundingRecord)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Filter returns the records, in load order, for which keep returns true
func (d *Dataset) Filter(keep func(domain.FundingRecord) bool) []domain.FundingRecord {
	var out []domain.FundingRecord
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// StartupNames returns the sorted distinct cleaned startup names
func (d *Dataset) StartupNames() []string {
	return append([]string(nil), d.startupNames...)
}

// InvestorNames returns the sorted distinct cleaned investor names
func (d *Dataset) InvestorNames() []string {
	return append([]string(nil), d.investorNames...)
}

// InvestorKeys returns the distinct raw investor entries in descending order.
// Each key is a substring of the investor text it came from.
func (d *Dataset) InvestorKeys() []string {
	return append([]string(nil), d.investorKeys...)
}

// Summary describes the dataset
func (d *Dataset) Summary() domain.DatasetSummary {
	s := domain.DatasetSummary{
		Source:      d.source,
		Records:     len(d.records),
		SkippedRows: d.skipped,
		Startups:    len(d.startupNames),
		Investors:   len(d.investorNames),
		LoadedAt:    d.loadedAt,
	}
	for i, r := range d.records {
		if i == 0 || r.Date.Before(s.FirstDate) {
			s.FirstDate = r.Date
		}
		if i == 0 || r.Date.After(s.LastDate) {
			s.LastDate = r.Date
		}
	}
	return s
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
