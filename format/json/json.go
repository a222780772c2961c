// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package json implements the JSON format bridge (spec §4.2): parse(bytes,
// options) -> UDM and serialize(UDM, options) -> bytes, lossless in both
// directions for JSON's own type system (integers and floats stay
// distinguishable, object key order is preserved).
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// Options configures serialize; Pretty enables multi-line output indented
// by Indent spaces (defaulting to two).
type Options struct {
	Pretty bool
	Indent int
}

// Parse lifts JSON bytes into UDM by walking json.Decoder's token stream
// directly rather than decoding into map[string]any, which would lose both
// object key order and the integer/float distinction (encoding/json's
// default float64 decoding is exactly the numeric-fidelity bug spec §4.2
// calls out; its map decoding loses source key order).
func Parse(data []byte) (*udm.Value, *uerr.Error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "empty input is not valid JSON")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "invalid JSON: %v", err)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*udm.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (*udm.Value, error) {
	switch t := tok.(type) {
	case nil:
		return udm.Null, nil
	case bool:
		return udm.Bool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return udm.Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return udm.Float(f), nil
	case string:
		return udm.String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeArray(dec *json.Decoder) (*udm.Value, error) {
	var elems []*udm.Value
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return udm.Array(elems...), nil
}

func decodeObject(dec *json.Decoder) (*udm.Value, error) {
	obj := udm.NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj = obj.With(key, v)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return udm.ObjectValue(obj), nil
}

// Render serializes v to compact JSON bytes.
func Render(v *udm.Value) ([]byte, *uerr.Error) {
	return Serialize(v, Options{})
}

// Serialize renders v to JSON bytes per opts.
func Serialize(v *udm.Value, opts Options) ([]byte, *uerr.Error) {
	var b strings.Builder
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	if err := write(&b, v, opts.Pretty, indent, 0); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func write(b *strings.Builder, v *udm.Value, pretty bool, indent, depth int) *uerr.Error {
	v = udm.Unwrap(v)
	switch v.Kind() {
	case udm.KindNull:
		b.WriteString("null")
	case udm.KindBool:
		b.WriteString(strconv.FormatBool(v.AsBool()))
	case udm.KindInt, udm.KindFloat:
		b.WriteString(udm.FormatNumber(v))
	case udm.KindString:
		writeJSONString(b, v.AsString())
	case udm.KindArray:
		return writeArray(b, v.Elements(), pretty, indent, depth)
	case udm.KindObject:
		return writeObject(b, v.Object(), pretty, indent, depth)
	case udm.KindDateTime, udm.KindDate, udm.KindLocalDateTime, udm.KindTime:
		writeJSONString(b, udm.Stringify(v))
	case udm.KindBinary:
		writeJSONString(b, udm.Stringify(v))
	default:
		return uerr.New(uerr.FormatSerializeError, udm.Span{}, "cannot serialize a %s to JSON", udm.TypeOf(v))
	}
	return nil
}

func writeArray(b *strings.Builder, elems []*udm.Value, pretty bool, indent, depth int) *uerr.Error {
	if len(elems) == 0 {
		b.WriteString("[]")
		return nil
	}
	b.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(',')
		}
		newline(b, pretty, indent, depth+1)
		if err := write(b, e, pretty, indent, depth+1); err != nil {
			return err
		}
	}
	newline(b, pretty, indent, depth)
	b.WriteByte(']')
	return nil
}

func writeObject(b *strings.Builder, o *udm.Object, pretty bool, indent, depth int) *uerr.Error {
	if o.Len() == 0 {
		b.WriteString("{}")
		return nil
	}
	b.WriteByte('{')
	for i, k := range o.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		newline(b, pretty, indent, depth+1)
		writeJSONString(b, k)
		b.WriteByte(':')
		if pretty {
			b.WriteByte(' ')
		}
		fv, _ := o.Get(k)
		if err := write(b, fv, pretty, indent, depth+1); err != nil {
			return err
		}
	}
	newline(b, pretty, indent, depth)
	b.WriteByte('}')
	return nil
}

func newline(b *strings.Builder, pretty bool, indent, depth int) {
	if !pretty {
		return
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", indent*depth))
}

func writeJSONString(b *strings.Builder, s string) {
	raw, _ := json.Marshal(s)
	b.Write(raw)
}

// CanonicalizeJSON implements RFC 8785 (JSON Canonicalization Scheme):
// object keys sorted by Unicode code point (byte-wise UTF-8 order), no
// insignificant whitespace,
// numbers rendered per the ECMAScript ToString algorithm.
func CanonicalizeJSON(v *udm.Value) ([]byte, *uerr.Error) {
	var b strings.Builder
	if err := writeCanonical(&b, v); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func writeCanonical(b *strings.Builder, v *udm.Value) *uerr.Error {
	v = udm.Unwrap(v)
	switch v.Kind() {
	case udm.KindNull:
		b.WriteString("null")
	case udm.KindBool:
		b.WriteString(strconv.FormatBool(v.AsBool()))
	case udm.KindInt:
		b.WriteString(strconv.FormatInt(v.AsInt(), 10))
	case udm.KindFloat:
		s, err := ecmaNumber(v.AsFloat())
		if err != nil {
			return err
		}
		b.WriteString(s)
	case udm.KindString:
		writeJSONString(b, v.AsString())
	case udm.KindArray:
		b.WriteByte('[')
		for i, e := range v.Elements() {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeCanonical(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case udm.KindObject:
		keys := append([]string(nil), v.Object().Keys()...)
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, k)
			b.WriteByte(':')
			fv, _ := v.Object().Get(k)
			if err := writeCanonical(b, fv); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return uerr.New(uerr.FormatSerializeError, udm.Span{}, "cannot canonicalize a %s", udm.TypeOf(v))
	}
	return nil
}

// ecmaNumber renders f per the ECMAScript Number::toString contract RFC
// 8785 mandates: the shortest decimal that round-trips, no trailing zeros,
// exponent notation only outside [1e-6, 1e21). NaN and Infinity are
// rejected, matching JSON's own number grammar.
func ecmaNumber(f float64) (string, *uerr.Error) {
	if f != f || f > 1.7976931348623157e+308 || f < -1.7976931348623157e+308 {
		return "", uerr.New(uerr.FormatSerializeError, udm.Span{}, "NaN and Infinity have no JSON representation")
	}
	if f == 0 {
		if strconv.FormatFloat(f, 'g', -1, 64) == "-0" {
			return "0", nil
		}
		return "0", nil
	}
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		return normalizeExponent(s), nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func normalizeExponent(s string) string {
	// Go renders 1.5e+07; ECMAScript renders 1.5e+7 (no zero-padded exponent).
	i := strings.IndexAny(s, "eE")
	if i < 0 {
		return s
	}
	mantissa, exp := s[:i], s[i+1:]
	sign := "+"
	if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
		sign = string(exp[0])
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return fmt.Sprintf("%se%s%s", mantissa, sign, exp)
}
