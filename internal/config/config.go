// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type StoreConfig struct {
	Backend string `yaml:"backend"` // memory | redis
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// EngineConfig carries the simulated-generation timings and probabilities.
// Zero values are replaced by the canonical defaults in LoadConfig; tests
// shrink the durations to keep runs fast.
type EngineConfig struct {
	ResponseTimeout    time.Duration `yaml:"response_timeout"`
	MinProcessingDelay time.Duration `yaml:"min_processing_delay"`
	MaxProcessingDelay time.Duration `yaml:"max_processing_delay"`
	ImageDelay         time.Duration `yaml:"image_delay"`
	RetryBackoff       time.Duration `yaml:"retry_backoff"` // multiplied by the attempt number
	MaxRetries         int           `yaml:"max_retries"`
	FailureChance      float64       `yaml:"failure_chance"`
	VoiceChance        float64       `yaml:"voice_chance"`
	ConcurrentLimit    int           `yaml:"concurrent_limit"` // max in-flight generations
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Store  StoreConfig  `yaml:"store"`
	Redis  RedisConfig  `yaml:"redis"`
	Engine EngineConfig `yaml:"engine"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.SessionTTL <= 0 {
		cfg.Server.SessionTTL = 30 * time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	cfg.Engine = NormalizeEngine(cfg.Engine)

	// Minimal validation
	if cfg.Store.Backend != "memory" && cfg.Store.Backend != "redis" {
		return nil, fmt.Errorf("store.backend must be memory or redis, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Backend == "redis" && cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required when store.backend is redis")
	}
	if cfg.Server.SessionSecret == "" && !dev {
		return nil, errors.New("server.session_secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// NormalizeEngine fills unset engine knobs with the canonical defaults.
func NormalizeEngine(e EngineConfig) EngineConfig {
	if e.ResponseTimeout <= 0 {
		e.ResponseTimeout = 15 * time.Second
	}
	if e.MinProcessingDelay <= 0 {
		e.MinProcessingDelay = time.Second
	}
	if e.MaxProcessingDelay <= 0 {
		e.MaxProcessingDelay = 3 * time.Second
	}
	if e.MaxProcessingDelay < e.MinProcessingDelay {
		e.MaxProcessingDelay = e.MinProcessingDelay
	}
	if e.ImageDelay <= 0 {
		e.ImageDelay = 3 * time.Second
	}
	if e.RetryBackoff <= 0 {
		e.RetryBackoff = time.Second
	}
	if e.MaxRetries <= 0 {
		e.MaxRetries = 2
	}
	if e.FailureChance <= 0 {
		e.FailureChance = 0.1
	}
	if e.VoiceChance <= 0 {
		e.VoiceChance = 0.3
	}
	if e.ConcurrentLimit <= 0 {
		e.ConcurrentLimit = 16
	}
	return e
}
