package exporter

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fundingpulse/internal/analytics"
	"fundingpulse/internal/dataprocessing"
	"fundingpulse/internal/shared/testutil"
)

func sampleReporter(t *testing.T) *analytics.Reporter {
	t.Helper()

	loader := dataprocessing.NewLoader(dataprocessing.DatePolicyFail, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ds, err := loader.LoadCSV(context.Background(), strings.NewReader(testutil.SampleFundingCSV))
	require.NoError(t, err)
	return analytics.NewReporter(ds)
}
