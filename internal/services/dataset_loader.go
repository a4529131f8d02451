package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fundingpulse/internal/config"
	"fundingpulse/internal/dataprocessing"
	apperrors "fundingpulse/internal/errors"
	"fundingpulse/internal/infrastructure"
)

// LoadDataset loads and normalizes the configured dataset once at startup.
// Every failure is fatal to the caller and is returned as a dataset AppError.
func LoadDataset(ctx context.Context, cfg config.DatasetConfig, path string, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) (*dataprocessing.Dataset, time.Duration, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	loader := dataprocessing.NewLoader(dataprocessing.DatePolicy(cfg.DatePolicy), logger)

	ds, err := loader.Load(ctx, path)
	elapsed := time.Since(start)
	if err != nil {
		appErr := apperrors.NewDatasetError("failed to load dataset", err).
			WithContext("path", path).
			WithContext("date_policy", cfg.DatePolicy)

		var rowErr *dataprocessing.RowError
		if errors.As(err, &rowErr) {
			appErr.WithContext("row", rowErr.Row).WithContext("column", rowErr.Column)
		}

		logger.ErrorContext(ctx, "dataset load failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, elapsed, appErr
	}

	infrastructure.RecordDatasetMetrics(ctx, metrics, ds.Len(), ds.Summary().SkippedRows, elapsed)

	logger.InfoContext(ctx, "dataset ready",
		slog.String("path", path),
		slog.Int("records", ds.Len()),
		slog.Duration("load_time", elapsed))

	return ds, elapsed, nil
}
