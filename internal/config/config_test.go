// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a fully valid configuration for mutation in tests.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Directory.BaseURL = "http://directory.local:9000"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Server defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 8787 {
		t.Errorf("Server.Port = %d, want 8787", cfg.Server.Port)
	}
	if cfg.Server.RateLimitPerMinute != 300 {
		t.Errorf("Server.RateLimitPerMinute = %d, want 300", cfg.Server.RateLimitPerMinute)
	}

	// Matching weights must be the documented defaults and sum to 1
	m := cfg.Matching
	if m.SkillsWeight != 0.40 || m.ExperienceWeight != 0.30 || m.EducationWeight != 0.15 ||
		m.LocationWeight != 0.10 || m.SalaryWeight != 0.05 {
		t.Errorf("unexpected default matching weights: %+v", m)
	}
	if m.MinScore != 50 {
		t.Errorf("Matching.MinScore = %f, want 50", m.MinScore)
	}
	if m.CacheTTL != 5*time.Minute {
		t.Errorf("Matching.CacheTTL = %v, want 5m", m.CacheTTL)
	}
	if m.MaxBatchPairings != 1000 {
		t.Errorf("Matching.MaxBatchPairings = %d, want 1000", m.MaxBatchPairings)
	}

	// Recommendation defaults
	r := cfg.Recommend
	if r.CollaborativeWeight != 0.5 || r.SimilarityWeight != 0.3 || r.TrendingWeight != 0.2 {
		t.Errorf("unexpected default strategy weights: %+v", r)
	}
	if r.DiversityThreshold != 0.3 {
		t.Errorf("Recommend.DiversityThreshold = %f, want 0.3", r.DiversityThreshold)
	}
	if r.CacheTTL != 30*time.Minute {
		t.Errorf("Recommend.CacheTTL = %v, want 30m", r.CacheTTL)
	}
	if r.RefreshInterval != time.Hour {
		t.Errorf("Recommend.RefreshInterval = %v, want 1h", r.RefreshInterval)
	}
	if len(r.Algorithms) != 3 {
		t.Errorf("Recommend.Algorithms = %v, want all three strategies", r.Algorithms)
	}
	if !r.EnableDiversity || !r.EnablePersonalization {
		t.Error("diversity and personalization should be enabled by default")
	}

	// Events default to the in-process channel backend
	if cfg.Events.Backend != "channel" {
		t.Errorf("Events.Backend = %q, want channel", cfg.Events.Backend)
	}
	if cfg.Events.NATS.URL != "nats://127.0.0.1:4222" {
		t.Errorf("Events.NATS.URL = %q, want nats://127.0.0.1:4222", cfg.Events.NATS.URL)
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"port too small",
			func(c *Config) { c.Server.Port = 0 },
			"CONEXUS_PORT",
		},
		{
			"port too large",
			func(c *Config) { c.Server.Port = 70000 },
			"CONEXUS_PORT",
		},
		{
			"bad log level",
			func(c *Config) { c.Logging.Level = "verbose" },
			"CONEXUS_LOG_LEVEL",
		},
		{
			"bad log format",
			func(c *Config) { c.Logging.Format = "xml" },
			"CONEXUS_LOG_FORMAT",
		},
		{
			"bad cache backend",
			func(c *Config) { c.Cache.Backend = "redis" },
			"CONEXUS_CACHE_BACKEND",
		},
		{
			"badger without path",
			func(c *Config) { c.Cache.Backend = "badger"; c.Cache.BadgerPath = "" },
			"CONEXUS_CACHE_BADGER_PATH",
		},
		{
			"missing database path",
			func(c *Config) { c.Database.Path = "" },
			"CONEXUS_DUCKDB_PATH",
		},
		{
			"missing directory url",
			func(c *Config) { c.Directory.BaseURL = "" },
			"CONEXUS_DIRECTORY_URL",
		},
		{
			"directory url with path",
			func(c *Config) { c.Directory.BaseURL = "http://directory.local/api/v2" },
			"CONEXUS_DIRECTORY_URL",
		},
		{
			"matching weights do not sum to 1",
			func(c *Config) { c.Matching.SkillsWeight = 0.8 },
			"must sum to 1.0",
		},
		{
			"negative matching weight",
			func(c *Config) { c.Matching.SalaryWeight = -0.05; c.Matching.SkillsWeight = 0.50 },
			"must not be negative",
		},
		{
			"min score out of range",
			func(c *Config) { c.Matching.MinScore = 120 },
			"CONEXUS_MIN_SCORE",
		},
		{
			"strategy weights do not sum to 1",
			func(c *Config) { c.Recommend.TrendingWeight = 0.4 },
			"must sum to 1.0",
		},
		{
			"unknown strategy",
			func(c *Config) { c.Recommend.Algorithms = []string{"collaborative", "astrology"} },
			"unknown strategy",
		},
		{
			"diversity threshold zero",
			func(c *Config) { c.Recommend.DiversityThreshold = 0 },
			"CONEXUS_DIVERSITY_THRESHOLD",
		},
		{
			"diversity threshold above one",
			func(c *Config) { c.Recommend.DiversityThreshold = 1.5 },
			"CONEXUS_DIVERSITY_THRESHOLD",
		},
		{
			"bad events backend",
			func(c *Config) { c.Events.Backend = "kafka" },
			"CONEXUS_EVENTS_BACKEND",
		},
		{
			"nats backend without url",
			func(c *Config) { c.Events.Backend = "nats"; c.Events.NATS.URL = "" },
			"CONEXUS_NATS_URL",
		},
		{
			"nats backend with http url",
			func(c *Config) { c.Events.Backend = "nats"; c.Events.NATS.URL = "http://127.0.0.1:4222" },
			"CONEXUS_NATS_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateNATSEmbeddedNeedsNoURL(t *testing.T) {
	cfg := validConfig()
	cfg.Events.Backend = "nats"
	cfg.Events.NATS.URL = ""
	cfg.Events.NATS.Embedded = true

	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded NATS should not require a URL, got %v", err)
	}
}

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid http", "http://directory.local:9000", false},
		{"valid https", "https://directory.example.com", false},
		{"trailing slash ok", "http://directory.local/", false},
		{"bad scheme", "ftp://directory.local", true},
		{"no host", "http://", true},
		{"path present", "http://directory.local/api", true},
		{"query present", "http://directory.local?x=1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHTTPURL(tt.url, "TEST_URL")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNATSURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"plain nats", "nats://127.0.0.1:4222", false},
		{"tls", "tls://nats.example.com:4222", false},
		{"websocket", "ws://nats.local:8080", false},
		{"secure websocket", "wss://nats.example.com", false},
		{"http rejected", "http://127.0.0.1:4222", true},
		{"no host", "nats://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateNATSURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateNATSURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
