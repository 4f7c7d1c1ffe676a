// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/conexus/config.yaml",
	"/etc/conexus/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces every recognized environment variable.
const envPrefix = "CONEXUS_"

// Load reads configuration in three layers, later layers overriding
// earlier ones:
//
//  1. Built-in defaults
//  2. Optional YAML config file (first of DefaultConfigPaths, or the
//     path in CONFIG_PATH)
//  3. CONEXUS_* environment variables
//
// The merged configuration is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := FindConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Env vars arrive as strings; known slice fields are comma-split
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// FindConfigFile returns the first existing config file path, or empty
// when no file is present. Exported so the composition root can watch
// the same file Load read.
func FindConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when they arrive from the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"recommend.algorithms",
}

// processSliceFields converts comma-separated strings into slices for
// the known slice fields. YAML-sourced values are already slices and are
// left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps CONEXUS_* environment variable names to koanf
// config paths. Unrecognized variables are skipped so random environment
// content cannot pollute the configuration.
//
// Examples:
//   - CONEXUS_PORT -> server.port
//   - CONEXUS_LOG_LEVEL -> logging.level
//   - CONEXUS_SKILLS_WEIGHT -> matching.skills_weight
//   - CONEXUS_NATS_URL -> events.nats.url
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		// Server
		"host":                  "server.host",
		"port":                  "server.port",
		"read_timeout":          "server.read_timeout",
		"write_timeout":         "server.write_timeout",
		"shutdown_timeout":      "server.shutdown_timeout",
		"cors_origins":          "server.cors_origins",
		"rate_limit_per_minute": "server.rate_limit_per_minute",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Cache
		"cache_backend":     "cache.backend",
		"cache_max_entries": "cache.max_entries",
		"cache_badger_path": "cache.badger_path",

		// Database
		"duckdb_path": "database.path",

		// Directory service
		"directory_url":        "directory.base_url",
		"directory_api_key":    "directory.api_key",
		"directory_timeout":    "directory.timeout",
		"directory_rate_limit": "directory.rate_limit",
		"directory_burst":      "directory.burst",

		// Matching
		"skills_weight":           "matching.skills_weight",
		"experience_weight":       "matching.experience_weight",
		"education_weight":        "matching.education_weight",
		"location_weight":         "matching.location_weight",
		"salary_weight":           "matching.salary_weight",
		"min_score":               "matching.min_score",
		"max_matches_per_request": "matching.max_matches_per_request",
		"max_batch_pairings":      "matching.max_batch_pairings",
		"match_cache_ttl":         "matching.cache_ttl",

		// Recommendations
		"collaborative_weight":     "recommend.collaborative_weight",
		"similarity_weight":        "recommend.similarity_weight",
		"trending_weight":          "recommend.trending_weight",
		"recommend_algorithms":     "recommend.algorithms",
		"recommend_min_score":      "recommend.min_score",
		"recommend_min_confidence": "recommend.min_confidence",
		"diversity_threshold":      "recommend.diversity_threshold",
		"enable_diversity":         "recommend.enable_diversity",
		"enable_personalization":   "recommend.enable_personalization",
		"recommend_cache_ttl":      "recommend.cache_ttl",
		"refresh_interval":         "recommend.refresh_interval",

		// Events
		"events_backend": "events.backend",
		"nats_url":       "events.nats.url",
		"nats_stream":    "events.nats.stream_name",
		"nats_embedded":  "events.nats.embedded",
		"nats_store_dir": "events.nats.store_dir",

		// Metrics
		"metrics_enabled": "metrics.enabled",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload. The callback
// runs on every change event; the caller reloads and applies the new
// configuration (typically via the matching service's UpdateConfig,
// which clears the match cache).
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
