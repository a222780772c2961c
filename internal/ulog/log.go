// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package ulog is the CLI's logging wrapper. It is never imported by
// engine, parser, interp, or any format/* package: the core stays silent
// and returns errors, while cmd/utlx logs diagnostics about the run
// itself (the seed and pinned clock when given, the script path and input
// count, and a failed run).
package ulog

import (
	"errors"
	"io"
	"strings"

	charmlog "charm.land/log/v2"
)

// Format is the log output format a CLI user selects with --log-format.
type Format string

const (
	// FormatText renders logs as human-readable key=value lines with color
	// when the writer is a terminal.
	FormatText Format = "text"
	// FormatJSON renders logs as JSON objects, one per line.
	FormatJSON Format = "json"
	// FormatLogfmt renders logs as logfmt lines without color.
	FormatLogfmt Format = "logfmt"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewWithStrings creates a *charmlog.Logger from level and format strings,
// the form --log-level and --log-format flags hand it.
func NewWithStrings(w io.Writer, level, format string) (*charmlog.Logger, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, errors.Join(ErrInvalidArgument, err)
	}

	fmt_, err := GetFormat(format)
	if err != nil {
		return nil, errors.Join(ErrInvalidArgument, err)
	}

	return New(w, lvl, fmt_), nil
}

// New creates a *charmlog.Logger with the given level and format.
func New(w io.Writer, lvl charmlog.Level, format Format) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           lvl,
		Formatter:       formatterFor(format),
		ReportTimestamp: true,
	})
}

func formatterFor(format Format) charmlog.Formatter {
	switch format {
	case FormatJSON:
		return charmlog.JSONFormatter
	case FormatLogfmt:
		return charmlog.LogfmtFormatter
	default:
		return charmlog.TextFormatter
	}
}

// GetLevel parses a log level string into a charmlog.Level.
func GetLevel(level string) (charmlog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return charmlog.DebugLevel, nil
	case "info":
		return charmlog.InfoLevel, nil
	case "warn", "warning":
		return charmlog.WarnLevel, nil
	case "error":
		return charmlog.ErrorLevel, nil
	case "fatal":
		return charmlog.FatalLevel, nil
	}

	return 0, ErrUnknownLogLevel
}

// GetFormat parses a log format string into a Format.
func GetFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	switch f {
	case FormatText, FormatJSON, FormatLogfmt:
		return f, nil
	}

	return "", ErrUnknownLogFormat
}
