// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

// Package logging provides the zerolog-based logging facade for Conexus.
//
// Every package logs through this facade so level, format, and output
// are decided in one place. The zero value works: a JSON logger at info
// level is installed before main runs, and Init reconfigures it from
// the application configuration.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("candidate_id", id).Msg("Match scored")
//	logging.Error().Err(err).Msg("Directory lookup failed")
//
//	// Request-scoped logging with request/correlation IDs from context
//	logging.Ctx(ctx).Info().Str("job_id", jobID).Msg("Search served")
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Prefer structured fields over formatted messages:
//
//	logging.Info().Str("candidate", id).Int("count", n).Msg("scored")  // Correct
//	logging.Info().Msgf("scored %d for %s", n, id)                     // Avoid
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level emitted: trace, debug, info, warn,
	// error, fatal, panic, or disabled. Default: info.
	Level string

	// Format selects json or console output. Default: json.
	Format string

	// Caller adds the file:line of the call site to every event.
	// Default: false.
	Caller bool

	// Timestamp stamps every event. Default: true.
	Timestamp bool

	// Output is the destination writer. Default: os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the production defaults: JSON at info level on
// stderr, timestamps on, caller off.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	log zerolog.Logger

	// mu guards reconfiguration against concurrent logging.
	mu sync.RWMutex
)

//nolint:gochecknoinits // logging must work before main calls Init
func init() {
	initLogger(DefaultConfig())
}

// Init reconfigures the global logger. Call it once from main after
// configuration is loaded; calling again is safe and replaces the
// previous setup.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

func initLogger(cfg Config) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	out := cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(out)
	if cfg.Timestamp {
		logger = logger.With().Timestamp().Logger()
	}
	if cfg.Caller {
		logger = logger.With().Caller().Logger()
	}
	log = logger
}

// parseLevel maps a config string to a zerolog level. "warning" is
// accepted as an alias for "warn"; anything unrecognized (or empty)
// falls back to info rather than failing startup.
func parseLevel(level string) zerolog.Level {
	s := strings.ToLower(strings.TrimSpace(level))
	if s == "warning" {
		s = "warn"
	}
	if lvl, err := zerolog.ParseLevel(s); err == nil && s != "" {
		return lvl
	}
	return zerolog.InfoLevel
}

// Logger returns the current global logger. Services that want a
// stable component-scoped logger should derive one once at
// construction rather than calling this per event.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger, primarily so tests can capture
// output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// With opens a child logger context on the global logger.
//
//	matchLogger := logging.With().Str("component", "matching").Logger()
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return log.With()
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Error()
}

// Fatal starts a fatal-level event; os.Exit(1) runs after the message
// is written.
func Fatal() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Fatal()
}

// NewTestLogger returns a timestamped logger writing to w, for tests
// that assert on log output.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
