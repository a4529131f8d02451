package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundingpulse/internal/shared/testutil"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, opts options)
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, opts options) {
				assert.Equal(t, "count", opts.trend)
				assert.Equal(t, 4, opts.workers)
			},
		},
		{
			name: "all flags",
			args: []string{"-out", "x", "-startup", "Ola", "-investor", "Accel", "-trend", "amount", "-workers", "0"},
			check: func(t *testing.T, opts options) {
				assert.Equal(t, "x", opts.outDir)
				assert.Equal(t, "Ola", opts.startup)
				assert.Equal(t, "Accel", opts.investor)
				assert.Equal(t, "amount", opts.trend)
				assert.Equal(t, 1, opts.workers)
			},
		},
		{
			name: "skip date policy",
			args: []string{"-date-policy", "skip"},
			check: func(t *testing.T, opts options) {
				assert.Equal(t, "skip", opts.datePolicy)
			},
		},
		{name: "bad trend", args: []string{"-trend", "weekly"}, wantErr: true},
		{name: "bad date policy", args: []string{"-date-policy", "ignore"}, wantErr: true},
		{name: "unknown flag", args: []string{"-format", "pdf"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestRun_WritesAllOutputs(t *testing.T) {
	out := t.TempDir()
	data := testutil.WriteSampleDataset(t)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-data", data,
		"-out", out,
		"-startup", "Flipkart",
		"-investor", "Sequoia Capital",
		"-trend", "amount",
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	expected := []string{
		"overall_summary.csv",
		"overall_trend.csv",
		"startup_flipkart_recent.csv",
		"investor_sequoia_capital_biggest.csv",
		"funding_dashboard.xlsx",
		filepath.Join("charts", "overall_trend.png"),
		filepath.Join("charts", "overall_top-startups.png"),
		filepath.Join("charts", "startup_flipkart_yearly.png"),
		filepath.Join("charts", "investor_sequoia_capital_verticals.png"),
	}
	for _, name := range expected {
		assert.FileExists(t, filepath.Join(out, name))
	}

	listed := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Contains(t, listed, filepath.Join(out, "funding_dashboard.xlsx"))

	summary, err := os.ReadFile(filepath.Join(out, "overall_summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "950.00")
}

func TestRun_OverallOnly(t *testing.T) {
	out := t.TempDir()

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-data", testutil.WriteSampleDataset(t), "-out", out}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(out, "startup_*.csv"))
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.FileExists(t, filepath.Join(out, "charts", "overall_cities.png"))
}

func TestRun_DatasetErrors(t *testing.T) {
	bad := testutil.WriteDataset(t, "bad.csv", "Startup,City\nOla,Mumbai\n")

	err := run(context.Background(), []string{"-data", bad, "-out", t.TempDir()}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)

	err = run(context.Background(), []string{"-data", filepath.Join(t.TempDir(), "none.csv")}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-version", "-data", "does-not-exist.csv"}, &stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout.String(), "Funding Pulse v"))
}
