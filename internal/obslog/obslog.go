// Package obslog configures the structured logger that cmd/snram builds
// and uses for progress and solver-status warnings (spec.md 4.7, 7).
//
// Grounded on dd0wney-graphdb's cmd/server/main.go and
// pkg/plugins/loader.go, the only production (non-test) use of
// log/slog in the example pack: both construct a *slog.Logger
// explicitly and pass it down rather than relying on slog's global
// default logger.
package obslog

import (
	"log/slog"
	"os"
)

// Format selects the slog.Handler backing a Logger.
type Format int

const (
	// FormatText renders human-readable key=value lines (the default,
	// for interactive CLI use).
	FormatText Format = iota
	// FormatJSON renders structured JSON lines (for log aggregation
	// when snram runs as part of a larger pipeline).
	FormatJSON
)

// New builds a *slog.Logger writing to os.Stderr at the given level.
// verbose raises the level to slog.LevelDebug, matching the CLI's
// --verbose flag (spec.md 6) forwarding solver log output.
func New(verbose bool, format Format) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
