// Package config loads the YAML run configuration. API keys come from the
// environment and override anything in the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reelstats/reelstats/internal/ratelimit"
	"github.com/reelstats/reelstats/internal/repositories"
	"github.com/reelstats/reelstats/internal/sources/tmdb"
	"github.com/reelstats/reelstats/internal/sources/youtube"
)

// Environment variables holding API keys.
const (
	EnvTMDBKey    = "TMDB_API_KEY"
	EnvOMDbKey    = "OMDB_API_KEY"
	EnvYouTubeKey = "YOUTUBE_API_KEY"
)

// Config is the full run configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Staging  StagingConfig  `yaml:"staging"`
	Report   ReportConfig   `yaml:"report"`
	Store    StoreConfig    `yaml:"store"`
	Fetch    FetchConfig    `yaml:"fetch"`
	APIKeys  APIKeys        `yaml:"api_keys"`

	RateLimits ratelimit.SourceConfigs `yaml:"-"`
}

type DatabaseConfig struct {
	Path  string `yaml:"path"`
	Debug bool   `yaml:"debug"`
}

type LogConfig struct {
	Mode  string `yaml:"mode"` // development or production
	Level string `yaml:"level"`
}

type StagingConfig struct {
	Dir string `yaml:"dir"`
}

type ReportConfig struct {
	CSVPath       string `yaml:"csv_path"`
	ChartsDir     string `yaml:"charts_dir"`
	ChartsEnabled *bool  `yaml:"charts_enabled"`
}

// Charts reports whether PNG charts are rendered. Defaults to true.
func (r ReportConfig) Charts() bool {
	return r.ChartsEnabled == nil || *r.ChartsEnabled
}

type StoreConfig struct {
	BatchCap int `yaml:"batch_cap"`
}

type FetchConfig struct {
	CatalogTarget int    `yaml:"catalog_target"`
	TrailerPages  int    `yaml:"trailer_pages"`
	TrailerQuery  string `yaml:"trailer_query"`
	Region        string `yaml:"region"`
	Language      string `yaml:"language"`
}

// SearchOptions returns the trailer search parameters.
func (f FetchConfig) SearchOptions() youtube.SearchOptions {
	return youtube.SearchOptions{Query: f.TrailerQuery, Region: f.Region, Language: f.Language}
}

type APIKeys struct {
	TMDB    string `yaml:"tmdb"`
	OMDb    string `yaml:"omdb"`
	YouTube string `yaml:"youtube"`
}

// Missing lists the sources with no key configured.
func (k APIKeys) Missing() []string {
	var missing []string
	if k.TMDB == "" {
		missing = append(missing, EnvTMDBKey)
	}
	if k.OMDb == "" {
		missing = append(missing, EnvOMDbKey)
	}
	if k.YouTube == "" {
		missing = append(missing, EnvYouTubeKey)
	}
	return missing
}

// ErrMissingKeys is returned by RequireKeys when any API key is unset.
var ErrMissingKeys = errors.New("missing API keys")

// RequireKeys fails when a fetch would run without credentials.
func (c *Config) RequireKeys() error {
	if missing := c.APIKeys.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingKeys, strings.Join(missing, ", "))
	}
	return nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, applies defaults and environment overrides. An empty path
// yields Default with environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		limits, err := ratelimit.LoadSourceConfigs(data)
		if err != nil {
			return nil, err
		}
		cfg.RateLimits = limits
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "reelstats.db"
	}
	if c.Log.Mode == "" {
		c.Log.Mode = "development"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Staging.Dir == "" {
		c.Staging.Dir = "data"
	}
	if c.Report.CSVPath == "" {
		c.Report.CSVPath = "movie_data_analysis_report.csv"
	}
	if c.Report.ChartsDir == "" {
		c.Report.ChartsDir = "charts"
	}
	if c.Store.BatchCap <= 0 {
		c.Store.BatchCap = repositories.BatchCap
	}
	if c.Fetch.CatalogTarget <= 0 {
		c.Fetch.CatalogTarget = tmdb.DefaultTarget
	}
	if c.Fetch.TrailerPages <= 0 {
		c.Fetch.TrailerPages = youtube.DefaultPages
	}
	def := youtube.DefaultSearch()
	if c.Fetch.TrailerQuery == "" {
		c.Fetch.TrailerQuery = def.Query
	}
	if c.Fetch.Region == "" {
		c.Fetch.Region = def.Region
	}
	if c.Fetch.Language == "" {
		c.Fetch.Language = def.Language
	}
	if c.RateLimits == nil {
		c.RateLimits = ratelimit.SourceConfigs{}
	}
}

func (c *Config) applyEnv() {
	c.APIKeys.TMDB = getEnv(EnvTMDBKey, c.APIKeys.TMDB)
	c.APIKeys.OMDb = getEnv(EnvOMDbKey, c.APIKeys.OMDb)
	c.APIKeys.YouTube = getEnv(EnvYouTubeKey, c.APIKeys.YouTube)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
