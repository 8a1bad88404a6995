// Package config provides configuration loading functionality.
package config

import "time"

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// Config holds the full application configuration.
type Config struct {
	API   APIConfig   `toml:"api"`
	Auth  AuthConfig  `toml:"auth"`
	Retry RetryConfig `toml:"retry"`
	Log   LogConfig   `toml:"log"`
}

// APIConfig configures the REST backend connection.
type APIConfig struct {
	BaseURL     string `toml:"base_url"`
	TimeoutSecs int    `toml:"timeout_secs"`
}

// AuthConfig configures session handling.
type AuthConfig struct {
	// RefreshThresholdSecs is how close to expiry a token may get before a
	// proactive refresh is due.
	RefreshThresholdSecs int `toml:"refresh_threshold_secs"`
}

// RetryConfig configures transient-failure retries for read requests.
type RetryConfig struct {
	Attempts int `toml:"attempts"`
	DelayMS  int `toml:"delay_ms"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns the built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:3000/api",
			TimeoutSecs: 30,
		},
		Auth: AuthConfig{
			RefreshThresholdSecs: 300,
		},
		Retry: RetryConfig{
			Attempts: 2,
			DelayMS:  500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// RefreshThreshold returns the proactive refresh window as a duration.
func (c *Config) RefreshThreshold() time.Duration {
	return time.Duration(c.Auth.RefreshThresholdSecs) * time.Second
}

// RetryDelay returns the delay between retries as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Retry.DelayMS) * time.Millisecond
}
