// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utlxlang/utlx/udm"
	uyaml "github.com/utlxlang/utlx/format/yaml"
)

func TestParseEmptyInputIsNull(t *testing.T) {
	v, err := uyaml.Parse([]byte("  \n"), uyaml.ParseOptions{})
	require.Nil(t, err)
	assert.Equal(t, udm.KindNull, v.Kind())
}

func TestParseMappingPreservesKeyOrder(t *testing.T) {
	v, err := uyaml.Parse([]byte("b: 2\na: 1\nc: 3\n"), uyaml.ParseOptions{})
	require.Nil(t, err)
	require.Equal(t, udm.KindObject, v.Kind())
	assert.Equal(t, []string{"b", "a", "c"}, v.Object().Keys())
}

func TestParseDistinguishesIntFromFloat(t *testing.T) {
	v, err := uyaml.Parse([]byte("whole: 3\nfraction: 3.5\n"), uyaml.ParseOptions{})
	require.Nil(t, err)
	whole, _ := v.Object().Get("whole")
	fraction, _ := v.Object().Get("fraction")
	assert.Equal(t, udm.KindInt, whole.Kind())
	assert.Equal(t, udm.KindFloat, fraction.Kind())
}

func TestParseSequenceOfMappings(t *testing.T) {
	v, err := uyaml.Parse([]byte("- name: a\n  age: 1\n- name: b\n  age: 2\n"), uyaml.ParseOptions{})
	require.Nil(t, err)
	require.Equal(t, udm.KindArray, v.Kind())
	require.Len(t, v.Elements(), 2)
	name, _ := v.Elements()[0].Object().Get("name")
	assert.Equal(t, "a", name.AsString())
}

func TestParseMultiDocumentStreamYieldsArray(t *testing.T) {
	v, err := uyaml.Parse([]byte("a: 1\n---\na: 2\n"), uyaml.ParseOptions{})
	require.Nil(t, err)
	require.Equal(t, udm.KindArray, v.Kind())
	require.Len(t, v.Elements(), 2)
	first, _ := v.Elements()[0].Object().Get("a")
	second, _ := v.Elements()[1].Object().Get("a")
	assert.Equal(t, int64(1), first.AsInt())
	assert.Equal(t, int64(2), second.AsInt())
}

func TestSerializeBlockMappingAndSequence(t *testing.T) {
	obj := udm.NewObject().
		With("name", udm.String("widget")).
		With("tags", udm.Array(udm.String("a"), udm.String("b")))
	out, err := uyaml.Serialize(udm.ObjectValue(obj), uyaml.SerializeOptions{})
	require.Nil(t, err)
	assert.Contains(t, string(out), "name: widget\n")
	assert.Contains(t, string(out), "tags:\n  - a\n  - b\n")
}

func TestSerializeFlowStyle(t *testing.T) {
	obj := udm.NewObject().With("a", udm.Int(1)).With("b", udm.Int(2))
	out, err := uyaml.Serialize(udm.ObjectValue(obj), uyaml.SerializeOptions{Flow: true})
	require.Nil(t, err)
	assert.Equal(t, "{a: 1, b: 2}\n", string(out))
}

func TestSerializeQuotesStringsThatLookLikeOtherTypes(t *testing.T) {
	obj := udm.NewObject().
		With("flag", udm.String("true")).
		With("id", udm.String("007"))
	out, err := uyaml.Serialize(udm.ObjectValue(obj), uyaml.SerializeOptions{})
	require.Nil(t, err)
	assert.Contains(t, string(out), `flag: "true"`)
	assert.Contains(t, string(out), `id: "007"`)
}

func TestSerializeDoesNotQuotePlainStrings(t *testing.T) {
	obj := udm.NewObject().With("name", udm.String("widget"))
	out, err := uyaml.Serialize(udm.ObjectValue(obj), uyaml.SerializeOptions{})
	require.Nil(t, err)
	assert.Equal(t, "name: widget\n", string(out))
}

func TestSerializeMultilineStringUsesLiteralBlock(t *testing.T) {
	obj := udm.NewObject().With("body", udm.String("line one\nline two"))
	out, err := uyaml.Serialize(udm.ObjectValue(obj), uyaml.SerializeOptions{})
	require.Nil(t, err)
	assert.Contains(t, string(out), "body: |\n  line one\n  line two\n")
}

func TestSerializeMultiDocumentJoinsWithMarker(t *testing.T) {
	docs := udm.Array(
		udm.ObjectValue(udm.NewObject().With("a", udm.Int(1))),
		udm.ObjectValue(udm.NewObject().With("a", udm.Int(2))),
	)
	out, err := uyaml.Serialize(docs, uyaml.SerializeOptions{MultiDocument: true})
	require.Nil(t, err)
	assert.Equal(t, "a: 1\n---\na: 2\n", string(out))
}

func TestRoundTripPreservesStructureAndOrder(t *testing.T) {
	src := "b: 2\na:\n  - 1\n  - 2\nc: hello\n"
	v, err := uyaml.Parse([]byte(src), uyaml.ParseOptions{})
	require.Nil(t, err)
	out, serr := uyaml.Serialize(v, uyaml.SerializeOptions{})
	require.Nil(t, serr)

	v2, err2 := uyaml.Parse(out, uyaml.ParseOptions{})
	require.Nil(t, err2)
	assert.True(t, udm.Equal(v, v2))
}
