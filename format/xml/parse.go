// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package xml implements the XML format bridge (spec §4.2): parse(bytes,
// options) -> UDM and serialize(UDM, options) -> bytes. It builds its own
// element-to-Object mapping on top of encoding/xml's Decoder/Encoder rather
// than pulling in a third-party XML library, following the same layering
// arturoeanton-go-xml uses for its dynamic map model.
package xml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// ParseOptions configures Parse. Namespaces maps a namespace URI to the
// short prefix it should be preserved as on element and attribute names;
// a namespace with no entry here is dropped, leaving only the local name,
// matching encoding/xml's own default namespace-stripping behavior.
type ParseOptions struct {
	Namespaces map[string]string
}

// frame tracks one open element while its children are being read. text
// accumulates CharData verbatim (trimmed per fragment); mixed additionally
// records the interleaving of text and child values once a child element
// has actually been seen, since only then does the element qualify as
// mixed content rather than plain text.
type frame struct {
	obj      *udm.Object
	text     []string
	mixed    []*udm.Value
	sawChild bool
}

// Parse lifts an XML document into UDM. Each element becomes an Object:
// attributes go into the Object's attribute side-table, the element's own
// text goes under udm.TextProperty, and the element name becomes the
// Object's name hint. Sibling elements sharing a tag name are collapsed
// into an array on second occurrence, matching the teacher's own
// "scalar, then array on repeat" convention. Mixed content (text
// interleaved with child elements) is captured as an array of fragments
// under udm.TextProperty, alongside the normal per-name child properties.
func Parse(data []byte, opts ParseOptions) (*udm.Value, *uerr.Error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "empty input is not valid XML")
	}
	dec := xml.NewDecoder(bytes.NewReader(data))

	var stack []*frame
	var root *udm.Value

	resolve := func(name xml.Name) string {
		if name.Space == "" {
			return name.Local
		}
		if prefix, ok := opts.Namespaces[name.Space]; ok && prefix != "" {
			return prefix + ":" + name.Local
		}
		return name.Local
	}

	for {
		tok, terr := dec.Token()
		if terr != nil {
			if terr == io.EOF {
				break
			}
			return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "invalid XML: %v", terr)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			obj := udm.NewObject().WithName(resolve(t.Name))
			for _, a := range t.Attr {
				obj = obj.WithAttr(resolve(a.Name), a.Value)
			}
			stack = append(stack, &frame{obj: obj})

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			top := stack[len(stack)-1]
			top.text = append(top.text, text)
			if top.sawChild {
				top.mixed = append(top.mixed, udm.String(text))
			}

		case xml.EndElement:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			value := finishElement(top)

			if len(stack) == 0 {
				root = value
				continue
			}
			parent := stack[len(stack)-1]
			name, _ := top.obj.Name()
			if !parent.sawChild {
				// the text seen so far on the parent precedes this child;
				// the first child starts the fragment list now.
				for _, frag := range parent.text {
					parent.mixed = append(parent.mixed, udm.String(frag))
				}
			}
			parent.mixed = append(parent.mixed, value)
			parent.sawChild = true
			parent.obj = appendChild(parent.obj, name, value)
		}
	}

	if root == nil {
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "no root element found")
	}
	return root, nil
}

// finishElement decides an element's final Value once its end tag is seen:
// plain text-only elements unwrap to a text property (or an empty object
// for genuinely empty elements); mixed-content elements carry their
// fragment array under the same text property instead.
func finishElement(f *frame) *udm.Value {
	switch {
	case f.sawChild && len(f.text) > 0:
		return udm.ObjectValue(f.obj.With(udm.TextProperty, udm.Array(f.mixed...)))
	case f.sawChild:
		return udm.ObjectValue(f.obj)
	case len(f.text) > 0:
		return udm.ObjectValue(f.obj.With(udm.TextProperty, udm.String(strings.Join(f.text, ""))))
	default:
		return udm.ObjectValue(f.obj)
	}
}

// appendChild assigns value under name on obj, collapsing repeated sibling
// tags into an array on second occurrence.
func appendChild(obj *udm.Object, name string, value *udm.Value) *udm.Object {
	existing, ok := obj.Get(name)
	if !ok {
		return obj.With(name, value)
	}
	if existing.Kind() == udm.KindArray {
		return obj.With(name, udm.Array(append(append([]*udm.Value{}, existing.Elements()...), value)...))
	}
	return obj.With(name, udm.Array(existing, value))
}
