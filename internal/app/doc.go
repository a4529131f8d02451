// Package app wires the funding dashboard server together: configuration,
// logging, telemetry, the dataset, services, router and HTTP server.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, the YAML file and FUNDING_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Load and normalize the dataset; any failure aborts startup
//	4. Build the dashboard and health services
//	5. Set up middleware, handlers and the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Run handles SIGINT and SIGTERM: in-flight requests are completed within the
// configured shutdown timeout and telemetry is flushed. The package never
// calls os.Exit.
package app
