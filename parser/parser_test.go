// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utlxlang/utlx/ast"
	"github.com/utlxlang/utlx/parser"
)

func TestParsePrecedenceLadder(t *testing.T) {
	t.Parallel()

	prog, diag := parser.Parse("1 + 2 * 3 == 7 && true || false")
	require.False(t, diag.HasErrors(), "%v", diag.Errors())

	top, ok := prog.Body.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "||", top.Op)

	left, ok := top.Left.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "&&", left.Op)

	eq, ok := left.Left.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "==", eq.Op)

	add, ok := eq.Left.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", add.Op)

	mul, ok := add.Right.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op)
}

func TestParsePipelineIsLeftAssociative(t *testing.T) {
	t.Parallel()

	prog, diag := parser.Parse("$input |> upper() |> trim()")
	require.False(t, diag.HasErrors(), "%v", diag.Errors())

	outer, ok := prog.Body.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "|>", outer.Op)

	inner, ok := outer.Left.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "|>", inner.Op)
	_, ok = inner.Left.(*ast.InputRef)
	assert.True(t, ok)
}

func TestParseSelectorChain(t *testing.T) {
	t.Parallel()

	prog, diag := parser.Parse("$input.order.items[0].@id")
	require.False(t, diag.HasErrors(), "%v", diag.Errors())

	attr, ok := prog.Body.(*ast.AttrAccess)
	require.True(t, ok)
	assert.Equal(t, "id", attr.Name)

	idx, ok := attr.Target.(*ast.IndexAccess)
	require.True(t, ok)

	items, ok := idx.Target.(*ast.PathAccess)
	require.True(t, ok)
	assert.Equal(t, "items", items.Name)
}

func TestParseRecursiveDescentAndWildcard(t *testing.T) {
	t.Parallel()

	prog, diag := parser.Parse("$input..total")
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	rd, ok := prog.Body.(*ast.RecursiveDescent)
	require.True(t, ok)
	assert.Equal(t, "total", rd.Name)

	prog, diag = parser.Parse("$input.*")
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	_, ok = prog.Body.(*ast.Wildcard)
	assert.True(t, ok)
}

func TestParseLambdaForms(t *testing.T) {
	t.Parallel()

	prog, diag := parser.Parse("x => x + 1")
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	lam, ok := prog.Body.(*ast.Lambda)
	require.True(t, ok)
	require.Len(t, lam.Params, 1)
	assert.Equal(t, "x", lam.Params[0].Name)

	prog, diag = parser.Parse("(a, b) => a + b")
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	lam, ok = prog.Body.(*ast.Lambda)
	require.True(t, ok)
	require.Len(t, lam.Params, 2)
	assert.Equal(t, "b", lam.Params[1].Name)

	prog, diag = parser.Parse("(1 + 2) * 3")
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	_, ok = prog.Body.(*ast.BinaryOp)
	assert.True(t, ok, "grouped expression must not be mistaken for a lambda")
}

func TestParseLetBindingRequiresSemicolon(t *testing.T) {
	t.Parallel()

	_, diag := parser.Parse("let x = 1\nx")
	assert.True(t, diag.HasErrors())
}

func TestParseLetBindingChain(t *testing.T) {
	t.Parallel()

	prog, diag := parser.Parse("let x = 1; let y = x + 1; y")
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	block, ok := prog.Body.(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Lets, 1)
	inner, ok := block.Result.(*ast.Block)
	require.True(t, ok)
	require.Len(t, inner.Lets, 1)
}

func TestParseMatchWithPatterns(t *testing.T) {
	t.Parallel()

	src := `match ($input.status) {
		"ok" => 1,
		n => n,
		_ => 0
	}`
	prog, diag := parser.Parse(src)
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	m, ok := prog.Body.(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 3)

	_, ok = m.Cases[0].Pattern.(ast.LiteralPattern)
	assert.True(t, ok)
	_, ok = m.Cases[2].Pattern.(ast.WildcardPattern)
	assert.True(t, ok)
}

func TestParseObjectLiteralWithAttributesAndLet(t *testing.T) {
	t.Parallel()

	prog, diag := parser.Parse(`{ let total = 1; @id: "x", name: "y" }`)
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	obj, ok := prog.Body.(*ast.ObjectLit)
	require.True(t, ok)
	require.Len(t, obj.Entries, 3)
	assert.Equal(t, ast.LetEntry, obj.Entries[0].Kind)
	assert.Equal(t, ast.AttributeEntry, obj.Entries[1].Kind)
	assert.Equal(t, ast.PropertyEntry, obj.Entries[2].Kind)
}

func TestParseFunctionAndTemplateDefs(t *testing.T) {
	t.Parallel()

	src := `
function double(x) = x * 2
template $input.item { { value: double($input.item.n) } }
double(21)`
	prog, diag := parser.Parse(src)
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	require.Len(t, prog.Functions, 1)
	assert.Equal(t, "double", prog.Functions[0].Name)
	require.Len(t, prog.Templates, 1)
	require.NotNil(t, prog.Body)
}

func TestParseInputOutputDirectives(t *testing.T) {
	t.Parallel()

	src := "%utlx 1.0\ninput json\noutput xml\n---\n$input"
	prog, diag := parser.Parse(src)
	require.False(t, diag.HasErrors(), "%v", diag.Errors())
	assert.Equal(t, "1.0", prog.Version)
	require.Len(t, prog.Inputs, 1)
	assert.Equal(t, "json", prog.Inputs[0].Format)
	assert.Equal(t, "xml", prog.Output.Format)
}
