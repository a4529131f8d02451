// Package config provides centralized configuration management for the
// funding dashboard and the report CLI.
//
// # Configuration Sources
//
// Configuration is layered, later sources overriding earlier ones:
//
//	1. Default values
//	2. A YAML file (FUNDING_CONFIG_FILE, config.yaml or configs/config.yaml)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern FUNDING_<SECTION>_<FIELD>:
//
//	FUNDING_SERVER_PORT=8080
//	FUNDING_DATASET_FILE=data/startup_funding.csv
//	FUNDING_DATASET_DATE_POLICY=skip
//	FUNDING_LOGGING_LEVEL=debug
//	FUNDING_PATHS_BASE_DIR=.
//	FUNDING_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Path Management
//
// Paths anchors every relative path at a single base directory, which
// defaults to the directory of the running executable:
//
//	paths := cfg.GetPaths()
//	reportPath := paths.GetReportPath("overall_top_verticals.csv")
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
