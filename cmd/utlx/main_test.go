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

const testScript = `
%utlx 1.0
input json
output json
---
{ total: sum($input.items |> map(x => x.p)) }
`

func writeTempScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.utlx")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunValidateAcceptsWellFormedScript(t *testing.T) {
	path := writeTempScript(t, testScript)
	assert.NoError(t, runValidate(path))
}

func TestRunValidateRejectsMalformedScript(t *testing.T) {
	path := writeTempScript(t, "%utlx 1.0\ninput json\noutput json\n---\nlet x = \n[1]")
	assert.Error(t, runValidate(path))
}

func TestRunFingerprintWritesHexDigest(t *testing.T) {
	path := writeTempScript(t, testScript)
	assert.NoError(t, runFingerprint(path))
}

func TestRunRunProducesOutputFile(t *testing.T) {
	scriptPath := writeTempScript(t, testScript)
	inputPath := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(inputPath, []byte(`{"items":[{"p":1},{"p":2}]}`), 0o644))
	outPath := filepath.Join(t.TempDir(), "out.json")

	cfg := NewConfig()
	cfg.Inputs = []string{inputPath}
	cfg.Output = outPath

	require.NoError(t, runRun(cfg, scriptPath))

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":3}`, string(out))
}
