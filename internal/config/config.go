// Package config loads nps-explorer settings from defaults, an optional TOML
// file and the environment.
//
// The MapQuest API key is only ever read from the environment, optionally
// populated from a .env file, and is never written to logs.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/PuerkitoBio/purell"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/pfrederiksen/nps-explorer/internal/logger"
)

const (
	DefaultPath    = "nps-explorer.toml"
	DefaultEnvFile = ".env"

	EnvAPIKey    = "MAPQUEST_API_KEY"
	EnvCacheFile = "NPS_CACHE_FILE"
	EnvLogLevel  = "NPS_LOG_LEVEL"
)

type Config struct {
	CacheFile string        `toml:"cache_file"`
	EnvFile   string        `toml:"env_file"`
	Site      SiteConfig    `toml:"site"`
	Places    PlacesConfig  `toml:"places"`
	HTTP      HTTPConfig    `toml:"http"`
	Logging   LoggingConfig `toml:"logging"`

	// APIKey comes from the environment only.
	APIKey string `toml:"-"`
}

type SiteConfig struct {
	Host      string `toml:"host"`
	IndexPath string `toml:"index_path"`
}

type PlacesConfig struct {
	URL        string `toml:"url"`
	Radius     int    `toml:"radius"`
	Units      string `toml:"units"`
	MaxMatches int    `toml:"max_matches"`
}

type HTTPConfig struct {
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		CacheFile: "proj2_cache.json",
		EnvFile:   DefaultEnvFile,
		Site: SiteConfig{
			Host:      "https://www.nps.gov",
			IndexPath: "/index.htm",
		},
		Places: PlacesConfig{
			URL:        "http://www.mapquestapi.com/search/v2/radius",
			Radius:     10,
			Units:      "m",
			MaxMatches: 10,
		},
		HTTP: HTTPConfig{
			Timeout:   "30s",
			UserAgent: "nps-explorer/1.0 (github.com/pfrederiksen/nps-explorer)",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load builds the configuration. An empty path reads DefaultPath when it exists;
// an explicit path must exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// no config file, defaults apply
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrFileDoesNotExist, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	host, err := NormalizeHost(cfg.Site.Host)
	if err != nil {
		return nil, fmt.Errorf("%w: site.host: %s", ErrInvalidConfig, err.Error())
	}
	cfg.Site.Host = host

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnv reads the optional env file and applies environment overrides.
// Variables already set in the process environment win over the file.
func (c *Config) loadEnv() error {
	if c.EnvFile != "" {
		if err := godotenv.Load(c.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", c.EnvFile, err)
		}
	}

	c.APIKey = os.Getenv(EnvAPIKey)
	c.CacheFile = getEnv(EnvCacheFile, c.CacheFile)
	c.Logging.Level = getEnv(EnvLogLevel, c.Logging.Level)
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// NormalizeHost lowercases the scheme and host of a site host and strips any
// trailing slash, so links can be appended to it directly.
func NormalizeHost(host string) (string, error) {
	u, err := url.Parse(host)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", host)
	}
	return purell.NormalizeURL(u, purell.FlagsSafe|purell.FlagRemoveTrailingSlash), nil
}

// Validate checks value formats. A missing API key is reported separately by
// RequireAPIKey since only the places search needs it.
func (c *Config) Validate() error {
	if c.CacheFile == "" {
		return fmt.Errorf("%w: cache_file is empty", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(c.Places.URL); err != nil {
		return fmt.Errorf("%w: places.url: %s", ErrInvalidConfig, err.Error())
	}
	if c.Places.Radius <= 0 {
		return fmt.Errorf("%w: places.radius must be positive, got %d", ErrInvalidConfig, c.Places.Radius)
	}
	if c.Places.Units != "m" && c.Places.Units != "km" {
		return fmt.Errorf("%w: places.units must be \"m\" or \"km\", got %q", ErrInvalidConfig, c.Places.Units)
	}
	if c.Places.MaxMatches <= 0 {
		return fmt.Errorf("%w: places.max_matches must be positive, got %d", ErrInvalidConfig, c.Places.MaxMatches)
	}
	if _, err := c.HTTP.GetTimeout(); err != nil {
		return fmt.Errorf("%w: http.timeout: %s", ErrInvalidConfig, err.Error())
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %s", ErrInvalidConfig, err.Error())
	}
	return nil
}

// RequireAPIKey reports ErrMissingAPIKey when no key was configured.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// GetTimeout parses the HTTP timeout. Zero disables the timeout.
func (h HTTPConfig) GetTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(h.Timeout)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", h.Timeout)
	}
	return d, nil
}
