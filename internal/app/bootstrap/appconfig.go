// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (CLEMSONQUEST_*),
// configuration files, or command-line flags (loaded in LoadConfig).
// WAFFLE's CoreConfig covers the framework-level settings such as ports,
// TLS, logging, CORS and body limits.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in the driver pool
	MongoMinPoolSize uint64 // Connections kept open when idle

	// Admin bearer tokens (minted by cmd/cqadmin)
	AdminTokenSecret string // HS256 signing secret, at least 32 bytes
	AdminTokenIssuer string // Expected iss claim

	// Registration throttling, per client IP
	RegisterRateLimit  int
	RegisterRateWindow time.Duration

	// Handler timeouts; zero keeps the timeouts package defaults
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
