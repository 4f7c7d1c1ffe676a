// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler adapts zerolog to the slog.Handler interface so
// slog-only libraries (sutureslog in particular) write through the
// same backend as everything else.
//
//	slogger := slog.New(logging.NewSlogHandler())
type SlogHandler struct {
	logger zerolog.Logger

	// attrs hold WithAttrs fields with their group path already baked
	// into the key, so Handle emits them as-is.
	attrs []slog.Attr

	// prefix is the dotted path of open groups, trailing dot included.
	prefix string
}

// NewSlogHandler returns a handler writing through the global logger.
func NewSlogHandler() *SlogHandler {
	return NewSlogHandlerWithLogger(Logger())
}

// NewSlogHandlerWithLogger returns a handler writing through the given
// logger, mainly so tests can capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSlogHandlerWithLogger(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// NewSlogLogger returns an slog.Logger backed by the global zerolog
// logger, ready to hand to sutureslog:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
func NewSlogLogger() *slog.Logger {
	return slog.New(NewSlogHandler())
}

// Enabled reports whether records at the given level would be emitted.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return mapLevel(level) >= h.logger.GetLevel()
}

// Handle writes one record through zerolog.
//
//nolint:gocritic // slog.Record is passed by value per slog.Handler interface
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	event := h.logger.WithLevel(mapLevel(record.Level))

	for _, attr := range h.attrs {
		event = addAttr(event, attr, "")
	}
	record.Attrs(func(attr slog.Attr) bool {
		event = addAttr(event, attr, h.prefix)
		return true
	})

	event.Msg(record.Message)
	return nil
}

// WithAttrs returns a handler that adds the given attributes to every
// record. The current group path is baked into the keys now, because
// groups opened later must not requalify them.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &SlogHandler{
		logger: h.logger,
		attrs:  make([]slog.Attr, 0, len(h.attrs)+len(attrs)),
		prefix: h.prefix,
	}
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return next
}

// WithGroup returns a handler qualifying subsequent keys with name.
// Zerolog has no native nesting, so groups flatten to dotted keys.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SlogHandler{
		logger: h.logger,
		attrs:  h.attrs,
		prefix: h.prefix + name + ".",
	}
}

// addAttr emits one attribute under the given key prefix, flattening
// group values to dotted keys.
func addAttr(event *zerolog.Event, attr slog.Attr, prefix string) *zerolog.Event {
	key := prefix + attr.Key
	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		return event.Str(key, attr.Value.String())
	case slog.KindInt64:
		return event.Int64(key, attr.Value.Int64())
	case slog.KindUint64:
		return event.Uint64(key, attr.Value.Uint64())
	case slog.KindFloat64:
		return event.Float64(key, attr.Value.Float64())
	case slog.KindBool:
		return event.Bool(key, attr.Value.Bool())
	case slog.KindDuration:
		return event.Dur(key, attr.Value.Duration())
	case slog.KindTime:
		return event.Time(key, attr.Value.Time())
	case slog.KindGroup:
		for _, ga := range attr.Value.Group() {
			event = addAttr(event, ga, key+".")
		}
		return event
	default:
		return event.Interface(key, attr.Value.Any())
	}
}

// mapLevel converts slog levels to zerolog levels. Levels between the
// named slog constants map to the nearest level below, matching how
// slog itself treats them for filtering.
func mapLevel(level slog.Level) zerolog.Level {
	switch {
	case level < slog.LevelDebug:
		return zerolog.TraceLevel
	case level < slog.LevelInfo:
		return zerolog.DebugLevel
	case level < slog.LevelWarn:
		return zerolog.InfoLevel
	case level < slog.LevelError:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
