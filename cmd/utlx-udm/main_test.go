// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConvertsJSONToUDMAndBack(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "order.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"id":"A","qty":2}`), 0o644))

	udmPath := filepath.Join(dir, "order.udm")
	require.NoError(t, run(jsonPath, "json", "udm", udmPath, 2))

	backPath := filepath.Join(dir, "order_back.json")
	require.NoError(t, run(udmPath, "udm", "json", backPath, 2))

	got, err := os.ReadFile(backPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"A","qty":2}`, string(got))
}

func TestSniffExtensionMapsYmlToYaml(t *testing.T) {
	assert.Equal(t, "yaml", sniffExtension("rates.yml"))
	assert.Equal(t, "json", sniffExtension("noext"))
	assert.Equal(t, "xml", sniffExtension("order.xml"))
}
