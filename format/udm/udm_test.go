// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package udmtext_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	udmtext "github.com/utlxlang/utlx/format/udm"
	"github.com/utlxlang/utlx/udm"
)

func roundTrip(t *testing.T, v *udm.Value, opts udmtext.Options) *udm.Value {
	t.Helper()
	data, err := udmtext.Serialize(v, opts)
	require.Nil(t, err, "%v", err)
	got, perr := udmtext.Parse(data)
	require.Nil(t, perr, "%v", perr)
	return got
}

func TestRoundTripScalars(t *testing.T) {
	vals := []*udm.Value{
		udm.Null,
		udm.Bool(true),
		udm.Bool(false),
		udm.Int(-42),
		udm.Float(3.5),
		udm.String("hello \"world\"\n"),
	}
	for _, v := range vals {
		got := roundTrip(t, v, udmtext.Options{})
		assert.True(t, udm.Equal(v, got), "got %v want %v", got, v)
	}
}

func TestRoundTripPreservesIntFloatDistinction(t *testing.T) {
	i := roundTrip(t, udm.Int(7), udmtext.Options{})
	assert.Equal(t, udm.KindInt, i.Kind())

	f := roundTrip(t, udm.Float(7), udmtext.Options{})
	assert.Equal(t, udm.KindFloat, f.Kind())
}

func TestRoundTripArray(t *testing.T) {
	v := udm.Array(udm.Int(1), udm.String("two"), udm.Bool(true), udm.Null)
	got := roundTrip(t, v, udmtext.Options{Indent: 2})
	assert.True(t, udm.Equal(v, got))
}

func TestRoundTripObjectPreservesAttrsAndPropsAndName(t *testing.T) {
	o := udm.NewObject().
		WithName("Order").
		WithAttr("id", "A").
		WithAttr("status", "open").
		With("item", udm.String("Widget")).
		With("qty", udm.Int(2))
	v := udm.ObjectValue(o)

	got := roundTrip(t, v, udmtext.Options{Indent: 2})
	require.Equal(t, udm.KindObject, got.Kind())

	name, ok := got.Object().Name()
	assert.True(t, ok)
	assert.Equal(t, "Order", name)
	assert.Equal(t, []string{"id", "status"}, got.Object().AttrKeys())
	assert.Equal(t, []string{"item", "qty"}, got.Object().Keys())
	assert.True(t, udm.Equal(v, got))
}

func TestRoundTripNestedObjectsAndArrays(t *testing.T) {
	inner := udm.ObjectValue(udm.NewObject().With("x", udm.Int(1)))
	v := udm.ObjectValue(udm.NewObject().
		With("items", udm.Array(inner, inner)).
		With("count", udm.Int(2)))

	got := roundTrip(t, v, udmtext.Options{Indent: 2})
	assert.True(t, udm.Equal(v, got))
}

func TestRoundTripTemporalKinds(t *testing.T) {
	dt := udm.DateTime(time.Date(2026, 3, 5, 9, 30, 0, 0, time.FixedZone("", -5*3600)))
	d := udm.Date(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	ldt := udm.LocalDateTime(time.Date(2026, 3, 5, 9, 30, 15, 250000000, time.UTC))
	tm := udm.Time(13*time.Hour + 45*time.Minute + 30*time.Second + 500*time.Millisecond)

	for _, v := range []*udm.Value{dt, d, ldt, tm} {
		got := roundTrip(t, v, udmtext.Options{})
		assert.True(t, udm.Equal(v, got), "kind %s: got %v want %v", v.Kind(), got, v)
	}
}

func TestRoundTripBinaryPreservesTagAndBytes(t *testing.T) {
	v := udm.Binary([]byte{0, 1, 2, 255, 254}, "base64")
	got := roundTrip(t, v, udmtext.Options{})
	require.Equal(t, udm.KindBinary, got.Kind())
	assert.Equal(t, "base64", got.BinaryTag())
	assert.Equal(t, v.Bytes(), got.Bytes())
}

func TestParseRejectsEmptyInput(t *testing.T) {
	_, err := udmtext.Parse([]byte("   "))
	assert.NotNil(t, err)
}

func TestParseRejectsTrailingContent(t *testing.T) {
	_, err := udmtext.Parse([]byte(`int(1) int(2)`))
	assert.NotNil(t, err)
}

func TestSerializePrettyAndPackedParseIdentically(t *testing.T) {
	v := udm.ObjectValue(udm.NewObject().With("a", udm.Int(1)).With("b", udm.Array(udm.Int(1), udm.Int(2))))

	packed, err := udmtext.Serialize(v, udmtext.Options{})
	require.Nil(t, err)
	pretty, err := udmtext.Serialize(v, udmtext.Options{Indent: 2})
	require.Nil(t, err)

	gotPacked, perr := udmtext.Parse(packed)
	require.Nil(t, perr)
	gotPretty, perr := udmtext.Parse(pretty)
	require.Nil(t, perr)

	assert.True(t, udm.Equal(gotPacked, gotPretty))
}
