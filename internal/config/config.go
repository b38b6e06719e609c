// Package config loads server settings from a config file, the environment
// and built-in defaults, in increasing order of precedence: defaults, file,
// environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddress         = "127.0.0.1"
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Address   string `toml:"address"    yaml:"address"    env:"CALENDAR_ADDRESS"`
	Port      int    `toml:"port"       yaml:"port"       env:"CALENDAR_PORT"`
	LogLevel  string `toml:"log_level"  yaml:"log_level"  env:"CALENDAR_LOG_LEVEL"`
	LogFormat string `toml:"log_format" yaml:"log_format" env:"CALENDAR_LOG_FORMAT"`
	// LegacyStatusCodes reports missing and duplicate events as 503.
	// When false they map to 404 and 409.
	LegacyStatusCodes bool     `toml:"legacy_status_codes" yaml:"legacy_status_codes" env:"CALENDAR_LEGACY_STATUS_CODES"`
	CORSOrigins       []string `toml:"cors_origins"        yaml:"cors_origins"        env:"CALENDAR_CORS_ORIGINS" envSeparator:","`
	// ShutdownTimeout is written as a duration string, e.g. "15s".
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout" env:"CALENDAR_SHUTDOWN_TIMEOUT"`

	// Source is the config file that was read, empty when none was found.
	Source string `toml:"-" yaml:"-"`
}

func Default() Config {
	return Config{
		Address:           DefaultAddress,
		Port:              DefaultPort,
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
		LegacyStatusCodes: true,
		ShutdownTimeout:   DefaultShutdownTimeout,
	}
}

// Load reads path on top of the defaults and then applies environment
// overrides. A path without extension is probed as .toml, .yaml and .yml.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolve(path)
	if err != nil {
		return Config{}, err
	}
	if resolved != "" {
		if err := decodeFile(resolved, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", resolved, err)
		}
		cfg.Source = resolved
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ListenAddr is the host:port the server binds to.
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}

func (c Config) Validate() error {
	if net.ParseIP(c.Address) == nil {
		return fmt.Errorf("invalid address %q", c.Address)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %s", c.ShutdownTimeout)
	}
	return nil
}

func resolve(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	candidates := []string{path}
	if filepath.Ext(path) == "" {
		candidates = []string{path + ".toml", path + ".yaml", path + ".yml"}
	}
	for _, candidate := range candidates {
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err := toml.DecodeFile(path, cfg)
		return err
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}
