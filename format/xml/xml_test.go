// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package xml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uxml "github.com/utlxlang/utlx/format/xml"
	"github.com/utlxlang/utlx/udm"
)

func TestParseSimpleElementWithAttributesAndText(t *testing.T) {
	doc := `<person id="42"><name>Ada</name><age>36</age></person>`
	v, err := uxml.Parse([]byte(doc), uxml.ParseOptions{})
	require.Nil(t, err)
	require.Equal(t, udm.KindObject, v.Kind())

	obj := v.Object()
	id, ok := obj.Attr("id")
	require.True(t, ok)
	assert.Equal(t, "42", id)

	name, ok := obj.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Ada", udm.Stringify(name))

	age, ok := obj.Get("age")
	require.True(t, ok)
	assert.Equal(t, "36", udm.Stringify(age))
}

func TestParseRepeatedSiblingsBecomeArray(t *testing.T) {
	doc := `<catalog><item>a</item><item>b</item><item>c</item></catalog>`
	v, err := uxml.Parse([]byte(doc), uxml.ParseOptions{})
	require.Nil(t, err)

	items, ok := v.Object().Get("item")
	require.True(t, ok)
	require.Equal(t, udm.KindArray, items.Kind())
	require.Len(t, items.Elements(), 3)
	assert.Equal(t, "a", udm.Stringify(items.Elements()[0]))
	assert.Equal(t, "c", udm.Stringify(items.Elements()[2]))
}

func TestParseEmptyInputIsParseError(t *testing.T) {
	_, err := uxml.Parse([]byte("   "), uxml.ParseOptions{})
	require.NotNil(t, err)
}

func TestSerializeRoundTripsNameAttrsAndText(t *testing.T) {
	obj := udm.NewObject().WithName("person").WithAttr("id", "42").
		With("name", udm.String("Ada"))
	out, err := uxml.Serialize(udm.ObjectValue(obj), uxml.SerializeOptions{})
	require.Nil(t, err)

	reparsed, perr := uxml.Parse(out, uxml.ParseOptions{})
	require.Nil(t, perr)
	id, _ := reparsed.Object().Attr("id")
	assert.Equal(t, "42", id)
	name, _ := reparsed.Object().Get("name")
	assert.Equal(t, "Ada", udm.Stringify(name))
}

func TestSerializeIntegerElementValueNeverGetsTrailingDotZero(t *testing.T) {
	obj := udm.NewObject().WithName("row").With("count", udm.Int(5))
	out, err := uxml.Serialize(udm.ObjectValue(obj), uxml.SerializeOptions{})
	require.Nil(t, err)
	assert.Contains(t, string(out), "<count>5</count>")
	assert.NotContains(t, string(out), "5.0")
}

func TestSerializeEmptyElementStyles(t *testing.T) {
	obj := udm.ObjectValue(udm.NewObject().WithName("e"))

	selfClosing, err := uxml.Serialize(obj, uxml.SerializeOptions{EmptyElementStyle: uxml.SelfClosing})
	require.Nil(t, err)
	assert.Contains(t, string(selfClosing), "<e/>")

	explicit, err := uxml.Serialize(obj, uxml.SerializeOptions{EmptyElementStyle: uxml.Explicit})
	require.Nil(t, err)
	assert.Contains(t, string(explicit), "<e></e>")

	asNil, err := uxml.Serialize(obj, uxml.SerializeOptions{EmptyElementStyle: uxml.XSINil})
	require.Nil(t, err)
	assert.Contains(t, string(asNil), `xsi:nil="true"`)
}

func TestSerializeEscapesReservedCharacters(t *testing.T) {
	obj := udm.NewObject().WithName("msg").With(udm.TextProperty, udm.String(`<a & "b">'c'`))
	out, err := uxml.Serialize(udm.ObjectValue(obj), uxml.SerializeOptions{})
	require.Nil(t, err)
	assert.NotContains(t, string(out), "<a &")
}

func TestSOAPEnvelopeWrapsBody(t *testing.T) {
	obj := udm.ObjectValue(udm.NewObject().WithName("request").With("id", udm.Int(1)))
	out, err := uxml.Serialize(obj, uxml.SerializeOptions{SOAPEnvelope: true})
	require.Nil(t, err)
	assert.Contains(t, string(out), "soap:Envelope")
	assert.Contains(t, string(out), "soap:Body")
	assert.Contains(t, string(out), "<request>")
}
