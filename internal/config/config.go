// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package config loads and validates application configuration.
//
// Configuration is layered with koanf: built-in defaults, then an optional
// YAML file, then environment variables, with later layers overriding
// earlier ones. Config is immutable after Load and safe for concurrent
// reads; the matching section additionally supports a hot-swap path
// through the matching service's UpdateConfig.
package config

import (
	"time"
)

// Config is the root configuration object.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Cache     CacheConfig     `koanf:"cache"`
	Database  DatabaseConfig  `koanf:"database"`
	Directory DirectoryConfig `koanf:"directory"`
	Matching  MatchingConfig  `koanf:"matching"`
	Recommend RecommendConfig `koanf:"recommend"`
	Events    EventsConfig    `koanf:"events"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port. Default: 8787
	Port int `koanf:"port"`

	// ReadTimeout bounds request read time. Default: 30s
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds response write time. Default: 60s
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown. Default: 15s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed CORS origins. Default: * (any)
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitPerMinute caps requests per client IP per minute.
	// Zero disables rate limiting. Default: 300
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error. Default: info
	Level string `koanf:"level"`

	// Format is "json" or "console". Default: json
	Format string `koanf:"format"`

	// Caller adds file:line to log events. Default: false
	Caller bool `koanf:"caller"`
}

// CacheConfig holds result cache settings shared by the matching and
// recommendation services.
type CacheConfig struct {
	// Backend is "memory" or "badger". Default: memory
	Backend string `koanf:"backend"`

	// MaxEntries bounds the memory backend. Default: 10000
	MaxEntries int `koanf:"max_entries"`

	// BadgerPath is the BadgerDB directory for the badger backend.
	// Default: /data/cache
	BadgerPath string `koanf:"badger_path"`
}

// DatabaseConfig holds match persistence settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file. The special value ":memory:"
	// keeps everything in process memory. Default: /data/conexus.db
	Path string `koanf:"path"`
}

// DirectoryConfig holds settings for the external profile directory
// service that owns candidate and job data.
type DirectoryConfig struct {
	// BaseURL is the directory service base URL (scheme://host[:port]).
	BaseURL string `koanf:"base_url"`

	// APIKey authenticates directory requests. Optional.
	APIKey string `koanf:"api_key"`

	// Timeout bounds a single directory call. Default: 10s
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit caps outbound directory requests per second.
	// Default: 50
	RateLimit float64 `koanf:"rate_limit"`

	// Burst is the rate limiter burst size. Default: 25
	Burst int `koanf:"burst"`
}

// MatchingConfig holds scoring weights and matching service settings.
//
// The five weights must sum to 1.0 (within a 0.001 tolerance). They feed
// the scoring engine directly; changing them at runtime through
// UpdateConfig clears the match cache, since cached results reflect the
// prior weights.
type MatchingConfig struct {
	// SkillsWeight is the skills factor weight. Default: 0.40
	SkillsWeight float64 `koanf:"skills_weight"`

	// ExperienceWeight is the experience factor weight. Default: 0.30
	ExperienceWeight float64 `koanf:"experience_weight"`

	// EducationWeight is the education factor weight. Default: 0.15
	EducationWeight float64 `koanf:"education_weight"`

	// LocationWeight is the location factor weight. Default: 0.10
	LocationWeight float64 `koanf:"location_weight"`

	// SalaryWeight is the salary factor weight. Default: 0.05
	SalaryWeight float64 `koanf:"salary_weight"`

	// MinScore is the default search score floor on the 0-100 scale.
	// Default: 50
	MinScore float64 `koanf:"min_score"`

	// MaxMatchesPerRequest caps the page size of search results.
	// Default: 100
	MaxMatchesPerRequest int `koanf:"max_matches_per_request"`

	// MaxBatchPairings caps candidate×job pairings in one batch call.
	// Default: 1000
	MaxBatchPairings int `koanf:"max_batch_pairings"`

	// CacheTTL is the match result cache lifetime. Default: 5m
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// CollaborativeWeight is the hybrid-combine weight for the
	// collaborative strategy. Default: 0.5
	CollaborativeWeight float64 `koanf:"collaborative_weight"`

	// SimilarityWeight is the hybrid-combine weight for the
	// content-similarity strategy. Default: 0.3
	SimilarityWeight float64 `koanf:"similarity_weight"`

	// TrendingWeight is the hybrid-combine weight for the trending
	// strategy. Default: 0.2
	TrendingWeight float64 `koanf:"trending_weight"`

	// Algorithms is the allow-list of enabled strategies.
	// Available: collaborative, similarity, trending
	// Default: all three
	Algorithms []string `koanf:"algorithms"`

	// MinScore drops recommendations below this score. Default: 0.1
	MinScore float64 `koanf:"min_score"`

	// MinConfidence drops recommendations below this confidence.
	// Default: 0 (no filter)
	MinConfidence float64 `koanf:"min_confidence"`

	// DiversityThreshold is the max fraction of a recommendation list
	// one category may occupy. Default: 0.3
	DiversityThreshold float64 `koanf:"diversity_threshold"`

	// EnableDiversity toggles the diversity pass. Default: true
	EnableDiversity bool `koanf:"enable_diversity"`

	// EnablePersonalization toggles the personalization pass.
	// Default: true
	EnablePersonalization bool `koanf:"enable_personalization"`

	// CacheTTL is the recommendation cache lifetime. Default: 30m
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RefreshInterval is how often models and trending data are
	// refreshed in the background. Default: 1h
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// EventsConfig holds event publishing settings.
type EventsConfig struct {
	// Backend is "channel" (in-process) or "nats". Default: channel
	Backend string `koanf:"backend"`

	// NATS configures the NATS backend.
	NATS NATSConfig `koanf:"nats"`
}

// NATSConfig holds NATS JetStream settings for the nats events backend.
type NATSConfig struct {
	// URL is the NATS server URL. Default: nats://127.0.0.1:4222
	URL string `koanf:"url"`

	// StreamName is the JetStream stream for match events.
	// Default: CONEXUS
	StreamName string `koanf:"stream_name"`

	// Embedded runs an in-process NATS server instead of connecting
	// to an external one. Default: false
	Embedded bool `koanf:"embedded"`

	// StoreDir is the JetStream storage directory for the embedded
	// server. Default: /data/nats
	StoreDir string `koanf:"store_dir"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes /metrics. Default: true
	Enabled bool `koanf:"enabled"`
}

// defaultConfig returns a Config with all default values. Defaults are
// loaded first and then overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8787,
			ReadTimeout:        30 * time.Second,
			WriteTimeout:       60 * time.Second,
			ShutdownTimeout:    15 * time.Second,
			CORSOrigins:        []string{"*"},
			RateLimitPerMinute: 300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Cache: CacheConfig{
			Backend:    "memory",
			MaxEntries: 10000,
			BadgerPath: "/data/cache",
		},
		Database: DatabaseConfig{
			Path: "/data/conexus.db",
		},
		Directory: DirectoryConfig{
			BaseURL:   "",
			APIKey:    "",
			Timeout:   10 * time.Second,
			RateLimit: 50,
			Burst:     25,
		},
		Matching: MatchingConfig{
			SkillsWeight:         0.40,
			ExperienceWeight:     0.30,
			EducationWeight:      0.15,
			LocationWeight:       0.10,
			SalaryWeight:         0.05,
			MinScore:             50,
			MaxMatchesPerRequest: 100,
			MaxBatchPairings:     1000,
			CacheTTL:             5 * time.Minute,
		},
		Recommend: RecommendConfig{
			CollaborativeWeight:   0.5,
			SimilarityWeight:      0.3,
			TrendingWeight:        0.2,
			Algorithms:            []string{"collaborative", "similarity", "trending"},
			MinScore:              0.1,
			MinConfidence:         0,
			DiversityThreshold:    0.3,
			EnableDiversity:       true,
			EnablePersonalization: true,
			CacheTTL:              30 * time.Minute,
			RefreshInterval:       time.Hour,
		},
		Events: EventsConfig{
			Backend: "channel",
			NATS: NATSConfig{
				URL:        "nats://127.0.0.1:4222",
				StreamName: "CONEXUS",
				Embedded:   false,
				StoreDir:   "/data/nats",
			},
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
