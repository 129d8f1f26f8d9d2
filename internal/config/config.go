package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultJWTSecret is the development fallback signing key. Override it
	// in any real deployment.
	DefaultJWTSecret = "development-insecure-secret-change-me"

	// TokenTTL is how long issued auth tokens stay valid.
	TokenTTL = 24 * time.Hour
)
