// Package services implements the business logic layer of the dashboard.
// Services sit between the HTTP handlers and the analytics Reporter: they
// validate selectors, open spans, record query metrics and translate missing
// data into sentinel errors that handlers map to problem responses.
//
// # Available Services
//
//	- DashboardService: Overall, Startup and Investor views plus selection menus
//	- HealthService: health, readiness, liveness and version reporting
//
// LoadDataset loads the configured funding table once at startup.
//
// # Error Handling
//
// Services return sentinel errors that handlers can transform:
//
//	if errors.Is(err, services.ErrInvalidTrendMode) {
//	    // respond 400
//	}
package services
