// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utlxlang/utlx/engine"
)

const pipelineSource = `
%utlx 1.0
input json
output json
---
{ total: sum($input.items |> map(x => x.p)) }
`

func TestCompileAndRunPipelineAggregate(t *testing.T) {
	prog, diags := engine.Compile(pipelineSource)
	require.False(t, diags.HasErrors(), "%v", diags.Errors())

	out, err := engine.Run(prog, map[string][]byte{
		"": []byte(`{"items":[{"p":10},{"p":20},{"p":30}]}`),
	})
	require.Nil(t, err)
	assert.JSONEq(t, `{"total":60}`, string(out))
}

func TestRunIsDeterministicWithPinnedClock(t *testing.T) {
	prog, diags := engine.Compile("%utlx 1.0\ninput json\noutput json\n---\nnow()")
	require.False(t, diags.HasErrors())

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out1, err1 := engine.Run(prog, map[string][]byte{"": []byte(`{}`)}, engine.WithClock(clock))
	out2, err2 := engine.Run(prog, map[string][]byte{"": []byte(`{}`)}, engine.WithClock(clock))
	require.Nil(t, err1)
	require.Nil(t, err2)
	assert.Equal(t, string(out1), string(out2))
}

func TestRunWithSeedIsReproducible(t *testing.T) {
	prog, diags := engine.Compile("%utlx 1.0\ninput json\noutput json\n---\nrandomInt(0, 1000000)")
	require.False(t, diags.HasErrors())

	out1, err1 := engine.Run(prog, map[string][]byte{"": []byte(`{}`)}, engine.WithSeed(42))
	out2, err2 := engine.Run(prog, map[string][]byte{"": []byte(`{}`)}, engine.WithSeed(42))
	require.Nil(t, err1)
	require.Nil(t, err2)
	assert.Equal(t, string(out1), string(out2))
}

func TestValidateCollectsParseDiagnosticsWithoutRunning(t *testing.T) {
	diags := engine.Validate("%utlx 1.0\ninput json\noutput json\n---\nlet x = \n[1]")
	assert.True(t, diags.HasErrors())
}

func TestCanonicalFingerprintIgnoresWhitespace(t *testing.T) {
	a, diagsA := engine.Compile("%utlx 1.0\ninput json\noutput json\n---\n1+2")
	require.False(t, diagsA.HasErrors())
	b, diagsB := engine.Compile("%utlx 1.0\ninput json\noutput json\n---\n1 + 2")
	require.False(t, diagsB.HasErrors())

	assert.Equal(t, engine.CanonicalFingerprint(a), engine.CanonicalFingerprint(b))
}

func TestCanonicalFingerprintDiffersOnSemanticChange(t *testing.T) {
	a, _ := engine.Compile("%utlx 1.0\ninput json\noutput json\n---\n1+2")
	b, _ := engine.Compile("%utlx 1.0\ninput json\noutput json\n---\n1+3")

	assert.NotEqual(t, engine.CanonicalFingerprint(a), engine.CanonicalFingerprint(b))
}

func TestRunAutoSniffsXMLInputFormat(t *testing.T) {
	prog, diags := engine.Compile("%utlx 1.0\ninput auto\noutput json\n---\n{id: $input.Order.@id}")
	require.False(t, diags.HasErrors())

	out, err := engine.Run(prog, map[string][]byte{"": []byte(`<Order id="A"><Qty>2</Qty></Order>`)})
	require.Nil(t, err)
	assert.JSONEq(t, `{"id":"A"}`, string(out))
}
