// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures structured logging with zerolog.
//
// Level guidelines:
//
//	debug: per-identifier cache decisions (skipped because cached)
//	info:  the outgoing batch request and each cache file written
//	warn:  unreadable secrets, partial cache writes
//	error: a failed batch
//
// Common fields: component, eid, scopus_id, date, path, status_code.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level: debug, info, warn, or error.
	Level string

	// Pretty enables human-readable console output instead of JSON.
	Pretty bool

	// Output is where logs go. Nil means os.Stderr.
	Output io.Writer
}

// Setup builds a logger from cfg and installs it as the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	logger := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// ParseLevel converts a level name to a zerolog.Level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger returns a child of the global logger tagged with component.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
