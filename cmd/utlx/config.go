// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/utlxlang/utlx/internal/ulog"
)

// Flags holds CLI flag names for the run subcommand, letting callers
// rename flags while keeping sensible defaults.
type Flags struct {
	Input  string
	Output string
	Seed   string
	Clock  string
}

// Config holds CLI flag values for the run subcommand.
//
// Create instances with NewConfig and register flags with
// Config.RegisterFlags.
type Config struct {
	Flags  Flags
	Log    *ulog.Config
	Inputs []string // repeated --input values, each "name=path" or bare "path"
	Output string   // "" or "-" means stdout
	Seed   string   // "" means unseeded
	Clock  string   // "" means time.Now(), else RFC3339
}

// NewConfig returns a Config with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{Input: "input", Output: "output", Seed: "seed", Clock: "clock"},
		Log:   ulog.NewConfig(),
	}
}

// RegisterFlags adds run-subcommand flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringArrayVarP(&c.Inputs, c.Flags.Input, "i", nil,
		"input as name=path, or a bare path for the program's single unnamed input (repeatable)")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.StringVar(&c.Seed, c.Flags.Seed, "",
		"seed random()/randomInt() for a reproducible run")
	flags.StringVar(&c.Clock, c.Flags.Clock, "",
		"pin now()/today() to this RFC 3339 instant instead of the wall clock")
	c.Log.RegisterFlags(flags)
}

// parseInputs splits each --input value into its name and source path. A
// value with no "=" names the program's single unnamed input ("").
func parseInputs(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		name, path, ok := strings.Cut(v, "=")
		if !ok {
			name, path = "", v
		}
		if _, dup := out[name]; dup {
			label := name
			if label == "" {
				label = "$input"
			}
			return nil, fmt.Errorf("input %q given more than once", label)
		}
		out[name] = path
	}
	return out, nil
}

// parseClock parses c.Clock as RFC 3339, returning the zero time (meaning
// "use time.Now()") when unset.
func (c *Config) parseClock() (time.Time, error) {
	if c.Clock == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, c.Clock)
}

// parseSeed parses c.Seed as a base-10 int64, returning ok=false when unset.
func (c *Config) parseSeed() (seed int64, ok bool, err error) {
	if c.Seed == "" {
		return 0, false, nil
	}
	_, err = fmt.Sscanf(c.Seed, "%d", &seed)
	if err != nil {
		return 0, false, fmt.Errorf("--%s: %w", c.Flags.Seed, err)
	}
	return seed, true, nil
}
