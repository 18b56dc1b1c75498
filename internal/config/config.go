// Package config loads CLI configuration from a YAML file, READINESS_* environment
// variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-readiness/internal/fetch"
	"github.com/jonathan/career-readiness/internal/storage"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. READINESS_STORAGE_DRIVER.
	EnvPrefix = "readiness"
	// FileName is the config file name searched for without an explicit --config.
	FileName = "readiness"
	// SQLiteFile is the database file created inside storage.path for the sqlite driver.
	SQLiteFile = "readiness.db"
)

// Config is the CLI configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory file sqlite postgres"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
	JSON  bool `mapstructure:"json"`
}

// FetchConfig controls job posting downloads.
type FetchConfig struct {
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent   string        `mapstructure:"user-agent"`
	UseBrowser  bool          `mapstructure:"use-browser"`
	Concurrency int           `mapstructure:"concurrency" validate:"gte=0"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			Driver: storage.DriverFile,
			Path:   defaultDataDir(),
		},
		Fetch: FetchConfig{
			Timeout:     fetch.DefaultTimeout,
			UserAgent:   fetch.DefaultUserAgent,
			Concurrency: 4,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".readiness"
	}
	return filepath.Join(home, ".local", "share", "readiness")
}

// Load reads configuration into v. An explicit path must exist; without one the file is
// optional and searched for in the working directory and $HOME/.config/readiness.
// A nil v uses a fresh viper instance.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	defaults := Defaults()
	v.SetDefault("storage.driver", defaults.Storage.Driver)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.json", false)
	v.SetDefault("fetch.timeout", defaults.Fetch.Timeout)
	v.SetDefault("fetch.user-agent", defaults.Fetch.UserAgent)
	v.SetDefault("fetch.use-browser", false)
	v.SetDefault("fetch.concurrency", defaults.Fetch.Concurrency)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("storage.dsn", "READINESS_STORAGE_DSN", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "readiness"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg = cfg.MergeWithDefaults(defaults)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("config error: invalid value %q for '%s'", fmt.Sprint(fieldErrs[0].Value()), fieldErrs[0].Namespace())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Storage.Driver == storage.DriverPostgres && c.Storage.DSN == "" {
		return fmt.Errorf("config error: 'storage.dsn' (or DATABASE_URL) is required for the postgres driver")
	}
	if (c.Storage.Driver == storage.DriverFile || c.Storage.Driver == storage.DriverSQLite) && c.Storage.Path == "" {
		return fmt.Errorf("config error: 'storage.path' is required for the %s driver", c.Storage.Driver)
	}
	return nil
}

// MergeWithDefaults returns a copy with empty string and zero numeric fields filled from defaults.
// Bools are never merged since unset and false cannot be told apart.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Storage.Driver == "" {
		result.Storage.Driver = defaults.Storage.Driver
	}
	if result.Storage.Path == "" {
		result.Storage.Path = defaults.Storage.Path
	}
	if result.Storage.DSN == "" {
		result.Storage.DSN = defaults.Storage.DSN
	}
	if result.Fetch.Timeout == 0 {
		result.Fetch.Timeout = defaults.Fetch.Timeout
	}
	if result.Fetch.UserAgent == "" {
		result.Fetch.UserAgent = defaults.Fetch.UserAgent
	}
	if result.Fetch.Concurrency == 0 {
		result.Fetch.Concurrency = defaults.Fetch.Concurrency
	}

	return result
}

// StorageConfig converts the storage section into backend options. For sqlite a
// directory path gets SQLiteFile appended; paths ending in .db and file: DSNs are kept.
func (c *Config) StorageConfig() storage.Config {
	path := c.Storage.Path
	if c.Storage.Driver == storage.DriverSQLite && !strings.HasPrefix(path, "file:") && filepath.Ext(path) != ".db" {
		path = filepath.Join(path, SQLiteFile)
	}
	return storage.Config{
		Driver: c.Storage.Driver,
		Path:   path,
		DSN:    c.Storage.DSN,
	}
}

// EnsureDataDir creates the directory that will hold the sqlite database.
// The file driver creates its own directory.
func (c *Config) EnsureDataDir() error {
	if c.Storage.Driver != storage.DriverSQLite || strings.HasPrefix(c.Storage.Path, "file:") {
		return nil
	}
	dir := filepath.Dir(c.StorageConfig().Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return nil
}

// FetchOptions converts the fetch section into fetcher options.
func (c *Config) FetchOptions() fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Timeout = c.Fetch.Timeout
	opts.UserAgent = c.Fetch.UserAgent
	opts.UseBrowser = c.Fetch.UseBrowser
	opts.Concurrency = c.Fetch.Concurrency
	return opts
}
