package config

import "time"

// Config holds runtime settings for the Daybook CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API (no trailing slash).
//   - RequestTimeout: per-request timeout for ordinary API calls. Analysis
//     calls use a longer internal timeout since the AI backend is slow.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
