package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	confDir string // Path to the config directory (e.g., ~/.config/taskdeck)
}

// NewLoader creates a new Loader using the default config directory.
func NewLoader() *Loader {
	return &Loader{confDir: defaultConfigDir()}
}

// NewLoaderWithDir creates a new Loader with a custom config directory.
// This is useful for testing.
func NewLoaderWithDir(confDir string) *Loader {
	return &Loader{confDir: confDir}
}

// defaultConfigDir returns the default config directory.
func defaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskdeck")
}

// Load returns the merged configuration: defaults, then the config file,
// then environment variables. Later sources take precedence. A .env file in
// the working directory is folded into the environment first.
func (l *Loader) Load() (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	base := NewDefaultConfig()

	file, err := l.loadFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if file != nil {
		mergeConfigs(base, file)
	}

	applyEnv(base)
	return base, nil
}

// ConfigPath returns the path of the config file the loader reads.
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.confDir, ConfigFileName)
}

func (l *Loader) loadFile() (*Config, error) {
	if l.confDir == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(l.ConfigPath())
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays override onto base. Zero values do not override.
func mergeConfigs(base, override *Config) {
	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.TimeoutSecs > 0 {
		base.API.TimeoutSecs = override.API.TimeoutSecs
	}
	if override.Auth.RefreshThresholdSecs > 0 {
		base.Auth.RefreshThresholdSecs = override.Auth.RefreshThresholdSecs
	}
	if override.Retry.Attempts > 0 {
		base.Retry.Attempts = override.Retry.Attempts
	}
	if override.Retry.DelayMS > 0 {
		base.Retry.DelayMS = override.Retry.DelayMS
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
}

// applyEnv overlays TASKDECK_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("TASKDECK_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := envInt("TASKDECK_API_TIMEOUT_SECS"); v > 0 {
		cfg.API.TimeoutSecs = v
	}
	if v := envInt("TASKDECK_AUTH_REFRESH_THRESHOLD_SECS"); v > 0 {
		cfg.Auth.RefreshThresholdSecs = v
	}
	if v := envInt("TASKDECK_RETRY_ATTEMPTS"); v > 0 {
		cfg.Retry.Attempts = v
	}
	if v := envInt("TASKDECK_RETRY_DELAY_MS"); v > 0 {
		cfg.Retry.DelayMS = v
	}
	if v := os.Getenv("TASKDECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
