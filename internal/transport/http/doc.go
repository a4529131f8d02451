// Package http implements the HTTP handlers of the funding dashboard.
// Handlers stay thin: they read and validate request parameters, call the
// dashboard service and render the result.
//
// # Endpoints
//
//	GET /                                        dashboard page
//	GET /api/analysis/summary                    dataset summary
//	GET /api/analysis/overall?trend=count|amount overall view
//	GET /api/analysis/startups[/{name}]          startup menu or drill-down
//	GET /api/analysis/investors[/{key}]          investor menu or drill-down
//	GET /api/charts/overall/{chart}.png          overall charts
//	GET /api/charts/startups/{name}/{chart}.png  startup charts
//	GET /api/charts/investors/{key}/{chart}.png  investor charts
//	GET /api/health[/ready|/live], /api/version  health
//
// Errors are rendered as RFC 7807 problem documents by errors.ErrorHandler.
// Service sentinel errors are translated by mapServiceError.
package http
