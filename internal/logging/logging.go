// Package logging builds the application logger on charmbracelet/log.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json, logfmt
	File   string // append here instead of the fallback writer
}

// New returns a logger and a close func. Without a file the logger writes
// to fallback; a nil fallback discards output.
func New(opts Options, fallback io.Writer) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(orDefault(opts.Level, "warn"))
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	formatter, err := parseFormatter(opts.Format)
	if err != nil {
		return nil, nil, err
	}

	w := fallback
	closeFn := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.File != "",
		Prefix:          "tada",
	})
	return logger, closeFn, nil
}

func parseFormatter(s string) (log.Formatter, error) {
	switch strings.ToLower(orDefault(s, "text")) {
	case "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return log.TextFormatter, fmt.Errorf("unknown log format %q", s)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
