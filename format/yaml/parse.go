// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package yaml implements the YAML format bridge (spec §4.2): parse(bytes,
// options) -> UDM and serialize(UDM, options) -> bytes. Parsing delegates
// to github.com/goccy/go-yaml's order-preserving decode mode; serializing
// is hand-written, the same way format/json's RFC 8785 canonicalizer is
// hand-written on top of encoding/json — the library's generic
// encoder doesn't expose the scalar-quoting and block/flow control this
// bridge's option surface requires.
package yaml

import (
	"bytes"
	"io"

	goyaml "github.com/goccy/go-yaml"

	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// ParseOptions configures Parse. Reserved for forward compatibility with
// future YAML-specific parse knobs (tag resolution, anchors); none are
// declared yet.
type ParseOptions struct{}

// Parse lifts a YAML byte stream into UDM. A stream containing more than
// one document ("---"-separated) yields an Array of documents per spec
// §4.2; a single-document stream yields that document directly.
func Parse(data []byte, _ ParseOptions) (*udm.Value, *uerr.Error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return udm.Null, nil
	}

	dec := goyaml.NewDecoder(bytes.NewReader(data), goyaml.UseOrderedMap())
	var docs []*udm.Value
	for {
		var raw any
		err := dec.Decode(&raw)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "invalid YAML: %v", err)
		}
		docs = append(docs, fromGo(raw))
	}

	if len(docs) == 0 {
		return udm.Null, nil
	}
	if len(docs) == 1 {
		return docs[0], nil
	}
	return udm.Array(docs...), nil
}

// fromGo converts the generic value goccy/go-yaml decodes interface{}
// targets into (nil, bool, int64/uint64, float64, string, []interface{},
// and — thanks to the UseOrderedMap decode option — yaml.MapSlice instead
// of the order-losing map[string]interface{}) into UDM.
func fromGo(v any) *udm.Value {
	switch t := v.(type) {
	case nil:
		return udm.Null
	case bool:
		return udm.Bool(t)
	case int:
		return udm.Int(int64(t))
	case int64:
		return udm.Int(t)
	case uint64:
		return udm.Int(int64(t))
	case float64:
		return udm.Float(t)
	case string:
		return udm.String(t)
	case []any:
		elems := make([]*udm.Value, len(t))
		for i, e := range t {
			elems[i] = fromGo(e)
		}
		return udm.Array(elems...)
	case goyaml.MapSlice:
		obj := udm.NewObject()
		for _, item := range t {
			key, _ := item.Key.(string)
			obj = obj.With(key, fromGo(item.Value))
		}
		return udm.ObjectValue(obj)
	default:
		return udm.Null
	}
}
