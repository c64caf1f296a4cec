// Package config holds the runtime settings of the CLI client.
//
// Values are resolved in three layers, later ones winning:
// built-in defaults, environment (optionally loaded from a .env file),
// then command-line flags.
package config

import "time"

type Config struct {
	// ServerBaseURL is the backend root, without the API prefix,
	// e.g. "http://localhost:8000".
	ServerBaseURL string

	// RequestTimeout bounds every single gateway request.
	RequestTimeout time.Duration

	// RateLimit caps outgoing requests per second.
	RateLimit int

	// DatabasePath is the local SQLite file holding durable client state.
	DatabasePath string

	// PageLimit is the default transaction page size.
	PageLimit int

	// Debug enables debug-level logging.
	Debug bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.RateLimit = 10
	c.DatabasePath = "ledger.db"
	c.PageLimit = 200
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
