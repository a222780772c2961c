// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package json_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ujson "github.com/utlxlang/utlx/format/json"
	"github.com/utlxlang/utlx/udm"
)

func TestParsePreservesKeyOrderAndIntFloatDistinction(t *testing.T) {
	v, err := ujson.Parse([]byte(`{"b": 1, "a": 2.5}`))
	require.Nil(t, err)
	require.Equal(t, udm.KindObject, v.Kind())
	assert.Equal(t, []string{"b", "a"}, v.Object().Keys())
	bv, _ := v.Object().Get("b")
	assert.Equal(t, udm.KindInt, bv.Kind())
	av, _ := v.Object().Get("a")
	assert.Equal(t, udm.KindFloat, av.Kind())
}

func TestEmptyInputIsParseError(t *testing.T) {
	_, err := ujson.Parse([]byte("   "))
	require.NotNil(t, err)
	assert.Equal(t, "FormatParseError", string(err.Kind))
}

func TestRoundTrip(t *testing.T) {
	src := []byte(`{"name":"A","qty":2,"tags":["x","y"],"active":true,"note":null}`)
	v, err := ujson.Parse(src)
	require.Nil(t, err)
	out, err := ujson.Render(v)
	require.Nil(t, err)
	v2, err := ujson.Parse(out)
	require.Nil(t, err)
	assert.True(t, udm.Equal(v, v2))
}

func TestCanonicalizeSortsKeysRegardlessOfInputOrder(t *testing.T) {
	a, _ := ujson.Parse([]byte(`{"b":1,"a":2}`))
	b, _ := ujson.Parse([]byte(`{"a":2,"b":1}`))
	ca, err := ujson.CanonicalizeJSON(a)
	require.Nil(t, err)
	cb, err := ujson.CanonicalizeJSON(b)
	require.Nil(t, err)
	assert.Equal(t, string(ca), string(cb))
	assert.Equal(t, `{"a":2,"b":1}`, string(ca))
}

func TestIntegerNeverGetsTrailingDotZero(t *testing.T) {
	v := udm.ObjectValue(udm.NewObject().With("q", udm.Int(42)))
	out, err := ujson.Render(v)
	require.Nil(t, err)
	assert.Contains(t, string(out), `"q":42`)
	assert.NotContains(t, string(out), `42.0`)
}
