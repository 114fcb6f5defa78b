// Avocet - Birdwatching Hotspot Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/avocet

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler adapts zerolog to the slog.Handler interface so libraries that
// speak slog (sutureslog in particular) emit through the same configured
// logger as everything else.
//
// Group names join attribute keys with dots: WithGroup("suture") turns a
// "service" attribute into "suture.service". Attributes set before a group
// is opened keep their plain keys, per the slog.Handler contract.
type SlogHandler struct {
	logger zerolog.Logger
	attrs  []slog.Attr // keys already carry their group prefix
	prefix string      // open group path, "" or "a.b."
}

// NewSlogHandler wraps the global zerolog logger.
func NewSlogHandler() *SlogHandler {
	return &SlogHandler{logger: Logger()}
}

// NewSlogHandlerWithLogger wraps a specific zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSlogHandlerWithLogger(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// NewSlogLogger returns an slog.Logger backed by the global zerolog logger.
//
//	slogger := logging.NewSlogLogger()
//	sutureHandler := &sutureslog.Handler{Logger: slogger}
func NewSlogLogger() *slog.Logger {
	return slog.New(NewSlogHandler())
}

// Enabled reports whether records at the given level would be emitted.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.GetLevel() <= toZerologLevel(level)
}

// Handle emits one slog record through zerolog.
//
//nolint:gocritic // slog.Record is passed by value per the slog.Handler interface
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	event := h.logger.WithLevel(toZerologLevel(record.Level))

	for _, attr := range h.attrs {
		event = appendAttr(event, attr, "")
	}
	record.Attrs(func(attr slog.Attr) bool {
		event = appendAttr(event, attr, h.prefix)
		return true
	})

	event.Msg(record.Message)
	return nil
}

// WithAttrs returns a handler whose records carry the given attributes.
// The open group prefix is baked into the keys here, once, instead of being
// re-applied on every Handle call.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(merged, h.attrs)
	for _, attr := range attrs {
		attr.Key = h.prefix + attr.Key
		merged = append(merged, attr)
	}
	return &SlogHandler{logger: h.logger, attrs: merged, prefix: h.prefix}
}

// WithGroup returns a handler that prefixes subsequent attribute keys with
// the group name.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SlogHandler{logger: h.logger, attrs: h.attrs, prefix: h.prefix + name + "."}
}

// appendAttr writes one attribute onto a zerolog event, flattening groups
// into dotted keys.
func appendAttr(event *zerolog.Event, attr slog.Attr, prefix string) *zerolog.Event {
	attr.Value = attr.Value.Resolve()
	if attr.Key == "" && attr.Value.Any() == nil {
		return event
	}
	key := prefix + attr.Key

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
		// An empty-keyed group inlines its members at the current level.
		memberPrefix := prefix
		if attr.Key != "" {
			memberPrefix = key + "."
		}
		for _, member := range attr.Value.Group() {
			event = appendAttr(event, member, memberPrefix)
		}
		return event
	default:
		return event.Interface(key, attr.Value.Any())
	}
}

// toZerologLevel maps slog levels onto zerolog's scale. Levels between the
// four standard slog constants round down, so LevelInfo+1 still logs at info.
func toZerologLevel(level slog.Level) zerolog.Level {
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
