package logging

import (
	"io"
	"log/slog"
)

// Common structured log field keys.
const (
	FieldTeams    = "teams"
	FieldGames    = "games"
	FieldRounds   = "rounds"
	FieldSeries   = "series"
	FieldPath     = "path"
	FieldStrategy = "strategy"
)

// NewLogger returns a structured logger writing to w. format is "json" or
// anything else for text.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
