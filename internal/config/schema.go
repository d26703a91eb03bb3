package config

import (
	"time"

	"github.com/blackwell-systems/paperctl/internal/templates"
)

// Config is the top-level paperctl configuration.
type Config struct {
	Latency   LatencyConfig                 `mapstructure:"latency"`
	Notify    NotifyConfig                  `mapstructure:"notify"`
	Share     ShareConfig                   `mapstructure:"share"`
	Catalog   CatalogConfig                 `mapstructure:"catalog"`
	Serve     ServeConfig                   `mapstructure:"serve"`
	Log       LogConfig                     `mapstructure:"log"`
	Templates map[string]templates.Override `mapstructure:"templates"`
}

// LatencyConfig holds the simulated delay of each asynchronous command.
// Set every value to 0s for an instant session.
type LatencyConfig struct {
	Upload   time.Duration `mapstructure:"upload"`
	Edit     time.Duration `mapstructure:"edit"`
	Delete   time.Duration `mapstructure:"delete"`
	Generate time.Duration `mapstructure:"generate"`
	Download time.Duration `mapstructure:"download"`
	Share    time.Duration `mapstructure:"share"`
}

// NotifyConfig controls toasts.
type NotifyConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// ShareConfig controls generated share links.
type ShareConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// CatalogConfig points at an optional YAML seed. With no seed file the
// session starts with the built-in sample paper.
type CatalogConfig struct {
	SeedFile string `mapstructure:"seed_file"`
}

// ServeConfig is the listen address for the web UI.
type ServeConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// LogConfig controls the zap logger. An empty File logs to stderr.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}
