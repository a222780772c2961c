// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utlxlang/utlx/env"
	"github.com/utlxlang/utlx/udm"
)

func TestLookupResolvesInnermostFirst(t *testing.T) {
	t.Parallel()

	root := env.New()
	root.DefineValue("x", udm.Int(1))

	child := root.Push()
	child.DefineValue("x", udm.Int(2))

	v, ok := child.LookupValue("x")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.AsInt())

	v, ok = root.LookupValue("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.AsInt())
}

func TestPushDoesNotMutateParent(t *testing.T) {
	t.Parallel()

	root := env.New()
	root.DefineValue("x", udm.Int(1))

	child := root.Push()
	child.DefineValue("y", udm.Int(2))

	_, ok := root.LookupValue("y")
	assert.False(t, ok, "a binding introduced in a pushed frame must not leak into the parent")
}

func TestLookupUnbound(t *testing.T) {
	t.Parallel()

	e := env.New()
	_, ok := e.LookupValue("nope")
	assert.False(t, ok)
}
