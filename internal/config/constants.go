package config

// Application constants
const (
	// Application Info
	AppName    = "fundingpulse"
	AppTitle   = "Funding Pulse"

	// Server
	DefaultPort = 8080

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// File Paths (relative to the base directory)
	DefaultDataDir     = "data"
	DefaultReportsDir  = "data/reports"
	DefaultLogsDir     = "logs"
	DefaultLogFile     = "logs/app.log"
	DefaultDatasetPath = "data/startup_funding.csv"

	// Log Settings
	DefaultLogLevel = "info"
)

// Dataset date policies
const (
	DatePolicyFail = "fail"
	DatePolicySkip = "skip"
)

// API paths
const (
	APIBasePath     = "/api"
	MetricsEndpoint = "/metrics"
)
