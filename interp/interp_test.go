// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package interp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/parser"
	"github.com/utlxlang/utlx/udm"
)

func run(t *testing.T, src string, inputs map[string]*udm.Value) *udm.Value {
	t.Helper()
	prog, diag := parser.Parse(src)
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	it := interp.New(prog, inputs, nil, time.Unix(0, 0).UTC())
	v, err := it.Run(context.Background())
	require.Nil(t, err, "%v", err)
	return v
}

func TestArithmeticAndPrecedence(t *testing.T) {
	t.Parallel()
	v := run(t, "1 + 2 * 3", nil)
	assert.Equal(t, int64(7), v.AsInt())
}

func TestStringConcatenationWithPlus(t *testing.T) {
	t.Parallel()
	v := run(t, `"n=" + 5`, nil)
	assert.Equal(t, "n=5", v.AsString())
}

func TestLetBindingChainResult(t *testing.T) {
	t.Parallel()
	v := run(t, "let x = 10; let y = x * 2; y + 1", nil)
	assert.Equal(t, int64(21), v.AsInt())
}

func TestIfRequiresBoolean(t *testing.T) {
	t.Parallel()
	prog, diag := parser.Parse("if (1) 2 else 3")
	require.False(t, diag.HasErrors())
	it := interp.New(prog, nil, nil, time.Time{})
	_, err := it.Run(context.Background())
	require.NotNil(t, err)
	assert.Equal(t, "TypeMismatch", string(err.Kind))
}

func TestSelectorAutoMapOverArray(t *testing.T) {
	t.Parallel()
	items := udm.Array(
		udm.ObjectValue(udm.NewObject().With("name", udm.String("a"))),
		udm.ObjectValue(udm.NewObject().With("name", udm.String("b"))),
	)
	root := udm.ObjectValue(udm.NewObject().With("items", items))
	v := run(t, "$input.items.name", map[string]*udm.Value{"": root})
	require.Equal(t, udm.KindArray, v.Kind())
	require.Len(t, v.Elements(), 2)
	assert.Equal(t, "a", v.Elements()[0].AsString())
	assert.Equal(t, "b", v.Elements()[1].AsString())
}

func TestPredicateFiltersByElementContext(t *testing.T) {
	t.Parallel()
	items := udm.Array(
		udm.ObjectValue(udm.NewObject().With("price", udm.Int(5))),
		udm.ObjectValue(udm.NewObject().With("price", udm.Int(15))),
	)
	root := udm.ObjectValue(udm.NewObject().With("items", items))
	v := run(t, "$input.items[.price > 10]", map[string]*udm.Value{"": root})
	require.Equal(t, udm.KindArray, v.Kind())
	require.Len(t, v.Elements(), 1)
	price, _ := v.Elements()[0].Object().Get("price")
	assert.Equal(t, int64(15), price.AsInt())
}

func TestPipelineRewrite(t *testing.T) {
	t.Parallel()
	v := run(t, "function double(x) = x * 2\n5 |> double()", nil)
	assert.Equal(t, int64(10), v.AsInt())
}

func TestFunctionArityMismatch(t *testing.T) {
	t.Parallel()
	prog, diag := parser.Parse("function add(a, b) = a + b\nadd(1)")
	require.False(t, diag.HasErrors())
	it := interp.New(prog, nil, nil, time.Time{})
	_, err := it.Run(context.Background())
	require.NotNil(t, err)
	assert.Equal(t, "ArityMismatch", string(err.Kind))
}

func TestMatchDispatchesFirstMatchingArm(t *testing.T) {
	t.Parallel()
	v := run(t, `match (2) { 1 => "one", 2 => "two", _ => "other" }`, nil)
	assert.Equal(t, "two", v.AsString())
}

func TestLambdaClosureCapturesEnvironment(t *testing.T) {
	t.Parallel()
	v := run(t, "let n = 10; let addN = x => x + n; addN(5)", nil)
	assert.Equal(t, int64(15), v.AsInt())
}

func TestObjectLiteralWithLetAndAttribute(t *testing.T) {
	t.Parallel()
	v := run(t, `{ let total = 1 + 1; @id: "x", sum: total }`, nil)
	require.Equal(t, udm.KindObject, v.Kind())
	id, ok := v.Object().Attr("id")
	require.True(t, ok)
	assert.Equal(t, "x", id)
	sum, ok := v.Object().Get("sum")
	require.True(t, ok)
	assert.Equal(t, int64(2), sum.AsInt())
}
