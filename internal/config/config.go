package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/blackwell-systems/paperctl/internal/command"
	"github.com/blackwell-systems/paperctl/internal/templates"
)

// EnvPrefix prefixes every environment override, e.g. PAPERCTL_SERVE_PORT.
const EnvPrefix = "PAPERCTL"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "paperctl", "config.yml")
}

// Path returns the config file in use: $PAPERCTL_CONFIG or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads .env, then the config file at path (Path when empty), then
// environment overrides. A missing file is fine; defaults cover every key.
func Load(path string) (*Config, error) {
	// Variables already set in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	if path == "" {
		path = Path()
	}
	return LoadFile(ExpandHome(path))
}

// LoadFile reads the config at path with defaults and environment overrides.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Catalog.SeedFile = ExpandHome(cfg.Catalog.SeedFile)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	lat := command.DefaultLatency()
	v.SetDefault("latency.upload", lat.Upload.String())
	v.SetDefault("latency.edit", lat.Edit.String())
	v.SetDefault("latency.delete", lat.Delete.String())
	v.SetDefault("latency.generate", lat.Generate.String())
	v.SetDefault("latency.download", lat.Download.String())
	v.SetDefault("latency.share", lat.Share.String())
	v.SetDefault("notify.duration", "3s")
	v.SetDefault("share.base_url", command.DefaultShareBaseURL)
	v.SetDefault("catalog.seed_file", "")
	v.SetDefault("serve.host", "127.0.0.1")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Validate rejects values no command could run with.
func (c *Config) Validate() error {
	for name, d := range map[string]int64{
		"upload":   int64(c.Latency.Upload),
		"edit":     int64(c.Latency.Edit),
		"delete":   int64(c.Latency.Delete),
		"generate": int64(c.Latency.Generate),
		"download": int64(c.Latency.Download),
		"share":    int64(c.Latency.Share),
	} {
		if d < 0 {
			return fmt.Errorf("latency.%s must not be negative", name)
		}
	}
	if c.Notify.Duration <= 0 {
		return fmt.Errorf("notify.duration must be positive, got %s", c.Notify.Duration)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", c.Serve.Port)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := templates.Default().WithOverrides(c.Templates); err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	return nil
}

// CommandLatency converts the latency block for the command layer.
func (c *Config) CommandLatency() command.Latency {
	return command.Latency{
		Upload:   c.Latency.Upload,
		Edit:     c.Latency.Edit,
		Delete:   c.Latency.Delete,
		Generate: c.Latency.Generate,
		Download: c.Latency.Download,
		Share:    c.Latency.Share,
	}
}

// TemplateCatalog returns the built-in templates with overrides applied.
func (c *Config) TemplateCatalog() (*templates.Catalog, error) {
	return templates.Default().WithOverrides(c.Templates)
}

// Addr is the host:port the web UI listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Serve.Host, strconv.Itoa(c.Serve.Port))
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
