// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputsSplitsNameAndPath(t *testing.T) {
	got, err := parseInputs([]string{"orders=order.xml", "rates=rates.json"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"orders": "order.xml", "rates": "rates.json"}, got)
}

func TestParseInputsTreatsBareValueAsUnnamed(t *testing.T) {
	got, err := parseInputs([]string{"order.xml"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"": "order.xml"}, got)
}

func TestParseInputsRejectsDuplicateName(t *testing.T) {
	_, err := parseInputs([]string{"orders=a.xml", "orders=b.xml"})
	assert.Error(t, err)
}

func TestConfigParseClockDefaultsToZeroTime(t *testing.T) {
	cfg := NewConfig()
	got, err := cfg.parseClock()
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestConfigParseClockParsesRFC3339(t *testing.T) {
	cfg := NewConfig()
	cfg.Clock = "2026-01-01T00:00:00Z"
	got, err := cfg.parseClock()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestConfigParseSeedReportsUnset(t *testing.T) {
	cfg := NewConfig()
	_, ok, err := cfg.parseSeed()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfigParseSeedParsesInteger(t *testing.T) {
	cfg := NewConfig()
	cfg.Seed = "42"
	seed, ok, err := cfg.parseSeed()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), seed)
}
