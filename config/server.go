package config

import "fmt"

// DefaultAddr is the listen address of the HTTP API.
const DefaultAddr = ":8888"

// ServerConfig defines the HTTP API settings.
type ServerConfig struct {
	Addr string `json:"addr"`
	// LogsToken protects GET /api/plans/logs. Empty disables the check.
	LogsToken          string `json:"logs_token"`
	ReadTimeoutSeconds int    `json:"read_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ReadTimeoutSeconds == 0 {
		c.ReadTimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.ReadTimeoutSeconds < 0 {
		return fmt.Errorf("read_timeout_seconds must be positive")
	}
	return nil
}
