// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package csv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ucsv "github.com/utlxlang/utlx/format/csv"
	"github.com/utlxlang/utlx/udm"
)

func TestParseWithHeadersProducesArrayOfObjects(t *testing.T) {
	v, err := ucsv.Parse([]byte("name,age\nA,1\nB,2\n"), ucsv.DefaultOptions())
	require.Nil(t, err)
	require.Equal(t, udm.KindArray, v.Kind())
	require.Len(t, v.Elements(), 2)

	first := v.Elements()[0].Object()
	name, _ := first.Get("name")
	assert.Equal(t, "A", udm.Stringify(name))
	age, _ := first.Get("age")
	assert.Equal(t, "1", udm.Stringify(age))
}

func TestParseWithoutHeadersProducesArrayOfArrays(t *testing.T) {
	opts := ucsv.DefaultOptions()
	opts.Headers = false
	v, err := ucsv.Parse([]byte("A,1\nB,2\n"), opts)
	require.Nil(t, err)
	require.Len(t, v.Elements(), 2)
	assert.Equal(t, udm.KindArray, v.Elements()[0].Kind())
	assert.Equal(t, "A", udm.Stringify(v.Elements()[0].Elements()[0]))
}

func TestParseSkipsEmptyLinesWhenRequested(t *testing.T) {
	opts := ucsv.DefaultOptions()
	opts.SkipEmptyLines = true
	v, err := ucsv.Parse([]byte("name\nA\n\nB\n"), opts)
	require.Nil(t, err)
	require.Len(t, v.Elements(), 2)
}

func TestSerializeDerivesHeaderUnionInFirstAppearanceOrder(t *testing.T) {
	rows := udm.Array(
		udm.ObjectValue(udm.NewObject().With("a", udm.Int(1)).With("b", udm.Int(2))),
		udm.ObjectValue(udm.NewObject().With("b", udm.Int(3)).With("c", udm.Int(4))),
	)
	out, err := ucsv.Serialize(rows, ucsv.DefaultOptions())
	require.Nil(t, err)
	lines := string(out)
	assert.Contains(t, lines, "a,b,c")
}

func TestSerializeQuotesFieldsContainingDelimiter(t *testing.T) {
	rows := udm.Array(udm.ObjectValue(udm.NewObject().With("note", udm.String("a,b"))))
	out, err := ucsv.Serialize(rows, ucsv.DefaultOptions())
	require.Nil(t, err)
	assert.Contains(t, string(out), `"a,b"`)
}

func TestRoundTripWithCustomDelimiter(t *testing.T) {
	opts := ucsv.DefaultOptions()
	opts.Delimiter = ';'
	rows := udm.Array(udm.ObjectValue(udm.NewObject().With("x", udm.Int(7))))
	out, err := ucsv.Serialize(rows, opts)
	require.Nil(t, err)

	reparsed, perr := ucsv.Parse(out, opts)
	require.Nil(t, perr)
	x, _ := reparsed.Elements()[0].Object().Get("x")
	assert.Equal(t, "7", udm.Stringify(x))
}

func TestSerializeRejectsNonObjectElements(t *testing.T) {
	_, err := ucsv.Serialize(udm.Array(udm.Int(1), udm.Int(2)), ucsv.DefaultOptions())
	require.NotNil(t, err)
}
