package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apierrors "fundingpulse/internal/errors"
	"fundingpulse/internal/services"
	"fundingpulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard queries served over HTTP
type DashboardServiceInterface interface {
	Overall(ctx context.Context, trend domain.TrendMode) (domain.OverallReport, error)
	Startup(ctx context.Context, name string) (domain.StartupReport, error)
	Investor(ctx context.Context, key string) (domain.InvestorReport, error)
	StartupNames(ctx context.Context) ([]string, error)
	InvestorKeys(ctx context.Context) ([]string, error)
	Summary(ctx context.Context) (services.DatasetInfo, error)
}

// mapServiceError translates service sentinel errors into API errors.
// field names the request parameter blamed for invalid input.
func mapServiceError(err error, field string) error {
	switch {
	case errors.Is(err, services.ErrInvalidTrendMode):
		return apierrors.ErrValidation("trend", fmt.Sprintf("trend must be one of: %s, %s", domain.TrendCount, domain.TrendAmount))
	case errors.Is(err, services.ErrInvalidInput):
		return apierrors.ErrValidation(field, fmt.Sprintf("%s is required", field))
	case errors.Is(err, services.ErrDatasetNotLoaded):
		return apierrors.New(http.StatusServiceUnavailable, apierrors.CodeServiceUnavailable, "No funding dataset is loaded")
	}
	return err
}
