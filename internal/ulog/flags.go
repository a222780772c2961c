// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package ulog

import (
	"io"

	charmlog "charm.land/log/v2"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for logging configuration, letting callers
// rename flags while keeping sensible defaults.
type Flags struct {
	Level  string
	Format string
}

// Config holds CLI flag values for logging configuration.
//
// Create instances with NewConfig and register flags with
// Config.RegisterFlags. Call Config.NewLogger once flags are parsed.
type Config struct {
	Flags  Flags
	Level  string
	Format string
}

// NewConfig returns a Config with default flag names and values.
func NewConfig() *Config {
	return &Config{
		Flags:  Flags{Level: "log-level", Format: "log-format"},
		Level:  "info",
		Format: "text",
	}
}

// RegisterFlags adds logging flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level,
		"log level (debug, info, warn, error)")
	flags.StringVar(&c.Format, c.Flags.Format, c.Format,
		"log format (text, json, logfmt)")
}

// NewLogger builds a *charmlog.Logger writing to w from the parsed flag
// values.
func (c *Config) NewLogger(w io.Writer) (*charmlog.Logger, error) {
	return NewWithStrings(w, c.Level, c.Format)
}
