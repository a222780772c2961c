// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package ulog_test

import (
	"bytes"
	"testing"

	charmlog "charm.land/log/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utlxlang/utlx/internal/ulog"
)

func TestGetLevelParsesKnownNames(t *testing.T) {
	lvl, err := ulog.GetLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, charmlog.WarnLevel, lvl)
}

func TestGetLevelRejectsUnknownName(t *testing.T) {
	_, err := ulog.GetLevel("verbose")
	assert.ErrorIs(t, err, ulog.ErrUnknownLogLevel)
}

func TestGetFormatRejectsUnknownName(t *testing.T) {
	_, err := ulog.GetFormat("xml")
	assert.ErrorIs(t, err, ulog.ErrUnknownLogFormat)
}

func TestNewWithStringsWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger, err := ulog.NewWithStrings(&buf, "info", "json")
	require.NoError(t, err)

	logger.Info("running pipeline", "input", "order.xml")

	assert.Contains(t, buf.String(), `"msg":"running pipeline"`)
	assert.Contains(t, buf.String(), `"input":"order.xml"`)
}

func TestNewWithStringsRejectsInvalidLevel(t *testing.T) {
	_, err := ulog.NewWithStrings(&bytes.Buffer{}, "loud", "text")
	assert.ErrorIs(t, err, ulog.ErrInvalidArgument)
}

func TestConfigRegisterFlagsAndNewLogger(t *testing.T) {
	cfg := ulog.NewConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "text", cfg.Format)

	cfg.Level = "debug"
	cfg.Format = "logfmt"

	var buf bytes.Buffer
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Debug("sniffed format", "format", "yaml")
	assert.Contains(t, buf.String(), "sniffed format")
}
