// Package config resolves the service configuration from defaults, an
// optional YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"ruleofthree/internal/history"
	"ruleofthree/internal/i18n"
	"ruleofthree/internal/storage"
)

// Environment variables read by Load.
const (
	EnvAddr          = "RULEOFTHREE_ADDR"
	EnvStorageDriver = "RULEOFTHREE_STORAGE_DRIVER"
	EnvStoragePath   = "RULEOFTHREE_STORAGE_PATH"
	EnvHistoryKey    = "RULEOFTHREE_HISTORY_KEY"
	EnvLocale        = "RULEOFTHREE_LOCALE"
	EnvLogLevel      = "RULEOFTHREE_LOG_LEVEL"
	EnvTelemetry     = "RULEOFTHREE_TELEMETRY"
	EnvConfigFile    = "RULEOFTHREE_CONFIG"
)

type Config struct {
	HTTPAddr  string          `yaml:"http_addr"`
	Storage   StorageConfig   `yaml:"storage"`
	Locale    string          `yaml:"locale"`
	LogLevel  string          `yaml:"log_level"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type StorageConfig struct {
	// Driver is one of memory, file or sqlite.
	Driver string `yaml:"driver"`
	// Path is a directory for file and a database file for sqlite.
	Path string `yaml:"path"`
	Key  string `yaml:"key"`
}

type TelemetryConfig struct {
	// Enabled turns on OTLP export of traces, metrics and logs.
	Enabled bool `yaml:"enabled"`
}

func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		Storage: StorageConfig{
			Driver: storage.DriverFile,
			Path:   "data",
			Key:    history.DefaultKey,
		},
		Locale:   "pt-BR",
		LogLevel: "info",
	}
}

// Load builds the configuration. path names a YAML file; when empty the
// RULEOFTHREE_CONFIG variable is consulted, and no file is read if both
// are empty.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.HTTPAddr, EnvAddr)
	setString(&c.Storage.Driver, EnvStorageDriver)
	setString(&c.Storage.Path, EnvStoragePath)
	setString(&c.Storage.Key, EnvHistoryKey)
	setString(&c.Locale, EnvLocale)
	setString(&c.LogLevel, EnvLogLevel)

	if v, ok := os.LookupEnv(EnvTelemetry); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTelemetry, err)
		}
		c.Telemetry.Enabled = enabled
	}
	return nil
}

func setString(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*dst = v
	}
}

// Validate checks the values that would otherwise fail late at startup.
func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case storage.DriverMemory:
	case storage.DriverFile, storage.DriverSQLite:
		if c.Storage.Path == "" {
			errs = append(errs, fmt.Errorf("storage.path is required for driver %q", c.Storage.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, c.Storage.Driver))
	}

	if c.Storage.Key == "" {
		errs = append(errs, errors.New("storage.key must not be empty"))
	}

	if _, err := i18n.ParseLocale(c.Locale); err != nil {
		errs = append(errs, err)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}

	return errors.Join(errs...)
}
