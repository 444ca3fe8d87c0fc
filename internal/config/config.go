// Package config loads cinewave's settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "cinewave"

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Network NetworkConfig `mapstructure:"network"`
	Player  PlayerConfig  `mapstructure:"player"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds TMDB access settings
type CatalogConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	ImageBaseURL      string        `mapstructure:"image_base_url"`
	Language          string        `mapstructure:"language"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerWindow int           `mapstructure:"requests_per_window"`
	RateWindow        time.Duration `mapstructure:"rate_window"`
}

// CacheConfig sizes the HTTP response caches
type CacheConfig struct {
	APIEntries     int           `mapstructure:"api_entries"`
	APITTL         time.Duration `mapstructure:"api_ttl"`
	ImageEntries   int           `mapstructure:"image_entries"`
	ImageTTL       time.Duration `mapstructure:"image_ttl"`
	NetworkTimeout time.Duration `mapstructure:"network_timeout"`
}

// StorageConfig locates the favorites database
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// UIConfig holds presentation settings
type UIConfig struct {
	DefaultSection    string        `mapstructure:"default_section"`
	SlideshowInterval time.Duration `mapstructure:"slideshow_interval"`
	ToastDuration     time.Duration `mapstructure:"toast_duration"`
}

// NetworkConfig controls the connectivity probe
type NetworkConfig struct {
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
	ProbeHost     string        `mapstructure:"probe_host"` // host:port
}

// PlayerConfig selects the program that opens trailers
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // json or text
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p",
			Language:          "es-MX",
			Timeout:           15 * time.Second,
			RequestsPerWindow: 40,
			RateWindow:        10 * time.Second,
		},
		Cache: CacheConfig{
			APIEntries:     100,
			APITTL:         6 * time.Hour,
			ImageEntries:   200,
			ImageTTL:       7 * 24 * time.Hour,
			NetworkTimeout: 8 * time.Second,
		},
		Storage: StorageConfig{
			DataDir: defaultDataPath(),
		},
		UI: UIConfig{
			DefaultSection:    "trending",
			SlideshowInterval: 5 * time.Second,
			ToastDuration:     3200 * time.Millisecond,
		},
		Network: NetworkConfig{
			ProbeInterval: 15 * time.Second,
			ProbeHost:     "api.themoviedb.org:443",
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), appName+".log"),
			Level:      "INFO",
			Format:     "json",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// newViper builds a viper instance seeded with every default so environment
// overrides apply even for keys missing from the file.
func newViper(dirs ...string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	v.SetEnvPrefix("CINEWAVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return v
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.api_key", cfg.Catalog.APIKey)
	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	v.SetDefault("catalog.language", cfg.Catalog.Language)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("catalog.requests_per_window", cfg.Catalog.RequestsPerWindow)
	v.SetDefault("catalog.rate_window", cfg.Catalog.RateWindow)

	v.SetDefault("cache.api_entries", cfg.Cache.APIEntries)
	v.SetDefault("cache.api_ttl", cfg.Cache.APITTL)
	v.SetDefault("cache.image_entries", cfg.Cache.ImageEntries)
	v.SetDefault("cache.image_ttl", cfg.Cache.ImageTTL)
	v.SetDefault("cache.network_timeout", cfg.Cache.NetworkTimeout)

	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)

	v.SetDefault("ui.default_section", cfg.UI.DefaultSection)
	v.SetDefault("ui.slideshow_interval", cfg.UI.SlideshowInterval)
	v.SetDefault("ui.toast_duration", cfg.UI.ToastDuration)

	v.SetDefault("network.probe_interval", cfg.Network.ProbeInterval)
	v.SetDefault("network.probe_host", cfg.Network.ProbeHost)

	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", cfg.Logging.MaxAgeDays)
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return LoadFrom(DefaultConfigPath(), ".")
}

// LoadFrom loads config.yaml from the first of dirs that has one. A missing
// file is not an error.
func LoadFrom(dirs ...string) (*Config, error) {
	v := newViper(dirs...)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to config.yaml in the default config directory
func SaveConfig(cfg *Config) error {
	return SaveTo(DefaultConfigPath(), cfg)
}

// SaveTo writes cfg to config.yaml in dir
func SaveTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, cfg)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Catalog.APIKey) != ""
}

// Validate checks values the rest of the app cannot recover from
func (c *Config) Validate() error {
	var errs []error
	if c.Catalog.RequestsPerWindow <= 0 {
		errs = append(errs, fmt.Errorf("catalog.requests_per_window must be positive"))
	}
	if c.Catalog.RateWindow <= 0 {
		errs = append(errs, fmt.Errorf("catalog.rate_window must be positive"))
	}
	if c.UI.SlideshowInterval <= 0 {
		errs = append(errs, fmt.Errorf("ui.slideshow_interval must be positive"))
	}
	if c.UI.ToastDuration <= 0 {
		errs = append(errs, fmt.Errorf("ui.toast_duration must be positive"))
	}
	if c.Network.ProbeInterval <= 0 {
		errs = append(errs, fmt.Errorf("network.probe_interval must be positive"))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
