package ratelimit

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes how requests to one upstream API are paced and retried.
type Config struct {
	Strategy          Strategy      `yaml:"strategy"`
	RequestsPerSec    float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	FixedDelay        time.Duration `yaml:"fixed_delay"`
	MaxRetries        int           `yaml:"max_retries"`
	InitialBackoff    time.Duration `yaml:"initial_backoff"`
	MaxBackoff        time.Duration `yaml:"max_backoff"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
}

// DefaultConfig is a conservative token bucket suitable for any of the APIs.
func DefaultConfig() Config {
	return Config{
		Strategy:          StrategyTokenBucket,
		RequestsPerSec:    4,
		Burst:             4,
		FixedDelay:        250 * time.Millisecond,
		MaxRetries:        3,
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2,
	}
}

// withDefaults fills every zero field from DefaultConfig.
func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Strategy == "" {
		cfg.Strategy = def.Strategy
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = def.RequestsPerSec
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.FixedDelay <= 0 {
		cfg.FixedDelay = def.FixedDelay
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	if cfg.BackoffMultiplier <= 1 {
		cfg.BackoffMultiplier = def.BackoffMultiplier
	}
	return cfg
}

// SourceConfigs maps an upstream name ("tmdb", "omdb", "youtube") to its config.
type SourceConfigs map[string]Config

// For returns the config for source, falling back to DefaultConfig.
func (s SourceConfigs) For(source string) Config {
	cfg, ok := s[source]
	if !ok {
		return DefaultConfig()
	}
	return withDefaults(cfg)
}

// LoadSourceConfigs reads the rate_limits section of a YAML document. Other
// top-level keys are ignored.
func LoadSourceConfigs(data []byte) (SourceConfigs, error) {
	var doc struct {
		RateLimits SourceConfigs `yaml:"rate_limits"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rate_limits: %w", err)
	}
	cfgs := make(SourceConfigs, len(doc.RateLimits))
	for name, cfg := range doc.RateLimits {
		cfgs[name] = withDefaults(cfg)
	}
	return cfgs, nil
}
