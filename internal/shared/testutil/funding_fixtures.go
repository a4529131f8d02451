package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleFundingCSV is a small, fully valid funding table.
// Totals: 950 across 5 startups, Flipkart leads with 400.
const SampleFundingCSV = "Startup,Vertical,City,Investors Name,Amount,Date\n" +
	"Flipkart,E-Commerce,Bengaluru,\"Tiger Global, Accel Partners\",100,10/01/2017\n" +
	"Ola,Transport,Mumbai,Sequoia Capital India,50,20/01/2017\n" +
	"Flipkart,E-Commerce,,Tiger Global,300,05/03/2017\n" +
	"Zomato,Food,Gurgaon,\"Sequoia Capital, Info Edge\",200,01/02/2018\n" +
	"Paytm,FinTech,Noida,Alibaba,300,15/02/2018\n" +
	"Swiggy,,Bengaluru,Accel Partners,0,01/05/2018\n"

// Expected aggregates of SampleFundingCSV
const (
	SampleTotal        = 950
	SampleStartupCount = 5
	SampleRecordCount  = 6
)

// WriteSampleDataset writes SampleFundingCSV into a temp dir and returns its path
func WriteSampleDataset(t *testing.T) string {
	t.Helper()
	return WriteDataset(t, "startup_funding.csv", SampleFundingCSV)
}

// WriteDataset writes content to name inside a fresh temp dir
func WriteDataset(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}
