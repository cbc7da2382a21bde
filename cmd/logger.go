package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger returns a slog.Logger rendered by charmbracelet/log.
// Verbose lowers the level from info to debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix:          "onepux",
		ReportTimestamp: true,
		Level:           level,
	})
	return slog.New(handler)
}
