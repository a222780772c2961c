// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// EmptyElementStyle controls how an element with no text and no children is
// rendered.
type EmptyElementStyle string

const (
	SelfClosing EmptyElementStyle = "self-closing" // <tag/>
	Explicit    EmptyElementStyle = "explicit"      // <tag></tag>
	XSINil      EmptyElementStyle = "nil"           // <tag xsi:nil="true"/>
	Omit        EmptyElementStyle = "omit"          // element is skipped entirely
)

// SerializeOptions configures Serialize.
type SerializeOptions struct {
	EmptyElementStyle EmptyElementStyle
	// Namespaces declares prefix->URI bindings injected as xmlns:prefix
	// attributes on the root element.
	Namespaces map[string]string
	// SOAPEnvelope wraps the serialized body in a <soap:Envelope><soap:Body>
	// wrapper using the standard SOAP 1.1 namespace.
	SOAPEnvelope bool
	// RootName names the synthetic wrapper element used when v has no name
	// hint of its own (e.g. a bare array or scalar at the top level).
	RootName string
	Pretty   bool
	Indent   string
}

func (o SerializeOptions) style() EmptyElementStyle {
	if o.EmptyElementStyle == "" {
		return SelfClosing
	}
	return o.EmptyElementStyle
}

func (o SerializeOptions) rootName() string {
	if o.RootName == "" {
		return "root"
	}
	return o.RootName
}

// Serialize renders v as an XML document. An Object with a name hint emits
// <name>...</name> directly as the document element; any other shape (a
// bare array, scalar, or nameless object) is wrapped under RootName.
func Serialize(v *udm.Value, opts SerializeOptions) ([]byte, *uerr.Error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	if opts.Pretty {
		buf.WriteByte('\n')
	}

	body := func(w *bytes.Buffer, depth int) *uerr.Error {
		return writeDocumentElement(w, v, opts, depth)
	}

	if opts.SOAPEnvelope {
		if err := writeSOAPEnvelope(&buf, body, opts); err != nil {
			return nil, err
		}
	} else if err := body(&buf, 0); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeSOAPEnvelope(buf *bytes.Buffer, body func(*bytes.Buffer, int) *uerr.Error, opts SerializeOptions) *uerr.Error {
	const ns = "http://schemas.xmlsoap.org/soap/envelope/"
	writeOpenTag(buf, "soap:Envelope", [][2]string{{"xmlns:soap", ns}}, opts)
	writeOpenTag(buf, "soap:Body", nil, opts)
	if err := body(buf, indentDepth(opts, 2)); err != nil {
		return err
	}
	writeCloseTag(buf, "soap:Body", opts, 1)
	writeCloseTag(buf, "soap:Envelope", opts, 0)
	return nil
}

func writeDocumentElement(buf *bytes.Buffer, v *udm.Value, opts SerializeOptions, depth int) *uerr.Error {
	unwrapped := v
	name := opts.rootName()
	attrExtra := namespaceAttrs(opts)
	if unwrapped.Kind() == udm.KindObject {
		if n, ok := unwrapped.Object().Name(); ok {
			name = n
		}
		return writeElement(buf, name, unwrapped, attrExtra, opts, depth)
	}
	if unwrapped.Kind() == udm.KindArray {
		// Non-object array at the top level: wrap it under RootName with
		// each element as a repeated "item" child, rather than under
		// TextProperty (which would be misread as mixed content).
		wrapper := udm.NewObject().WithName(name).With("item", unwrapped)
		return writeElement(buf, name, udm.ObjectValue(wrapper), attrExtra, opts, depth)
	}
	// Non-object, non-array scalar top level: wrap it under RootName as the
	// wrapper's own text.
	wrapper := udm.ObjectValue(udm.NewObject().WithName(name).With(udm.TextProperty, unwrapped))
	return writeElement(buf, name, wrapper, attrExtra, opts, depth)
}

func namespaceAttrs(opts SerializeOptions) [][2]string {
	if len(opts.Namespaces) == 0 {
		return nil
	}
	keys := make([]string, 0, len(opts.Namespaces))
	for k := range opts.Namespaces {
		keys = append(keys, k)
	}
	// deterministic order: insertion order is not preserved in a map, so
	// sort for reproducible output.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	out := make([][2]string, 0, len(keys))
	for _, prefix := range keys {
		out = append(out, [2]string{"xmlns:" + prefix, opts.Namespaces[prefix]})
	}
	return out
}

// writeElement renders value (expected to be an Object, or a wrapped scalar
// per writeDocumentElement) as <name attrs>content</name>, honoring name
// as the element tag regardless of the Object's own name hint — the caller
// (a property key, an array element position, or the document root) is
// authoritative over the tag name.
func writeElement(buf *bytes.Buffer, name string, v *udm.Value, extraAttrs [][2]string, opts SerializeOptions, depth int) *uerr.Error {
	if v.Kind() != udm.KindObject {
		// A bare scalar reached here (e.g. as an array element); render it
		// as text content with no attributes.
		writeOpenTag(buf, name, extraAttrs, opts)
		buf.WriteString(escapeText(udm.Stringify(v)))
		writeCloseTagInline(buf, name)
		return nil
	}

	obj := v.Object()
	attrs := extraAttrs
	for _, k := range obj.AttrKeys() {
		val, _ := obj.Attr(k)
		attrs = append(attrs, [2]string{k, val})
	}

	text, mixed, children, err := elementContent(obj)
	if err != nil {
		return err
	}

	isEmpty := text == "" && !mixed && len(children) == 0
	if isEmpty {
		switch opts.style() {
		case Omit:
			return nil
		case Explicit:
			writeOpenTag(buf, name, attrs, opts)
			writeCloseTagInline(buf, name)
			return nil
		case XSINil:
			attrs = append(attrs, [2]string{"xsi:nil", "true"})
			writeSelfClosing(buf, name, attrs, opts)
			return nil
		default:
			writeSelfClosing(buf, name, attrs, opts)
			return nil
		}
	}

	writeOpenTag(buf, name, attrs, opts)
	if opts.Pretty && len(children) > 0 {
		buf.WriteByte('\n')
	}

	switch {
	case mixed:
		textProp, _ := obj.Get(udm.TextProperty)
		for _, frag := range textProp.Elements() {
			if frag.Kind() == udm.KindString {
				buf.WriteString(escapeText(frag.AsString()))
				continue
			}
			fname := name
			if fo := frag; fo.Kind() == udm.KindObject {
				if n, ok := fo.Object().Name(); ok {
					fname = n
				}
			}
			if err := writeElement(buf, fname, frag, nil, opts, depth+1); err != nil {
				return err
			}
		}
	case text != "":
		buf.WriteString(escapeText(text))
	default:
		for _, key := range children {
			child, _ := obj.Get(key)
			if err := writeChildProperty(buf, key, child, opts, depth+1); err != nil {
				return err
			}
		}
	}

	if opts.Pretty && len(children) > 0 {
		writeIndent(buf, opts, depth)
	}
	writeCloseTagInline(buf, name)
	return nil
}

// elementContent classifies an Object's own content for rendering: plain
// text (scalar or number under TextProperty), mixed-content fragments
// (array under TextProperty, per the parser's convention), or a plain list
// of child property keys to render as sub-elements.
func elementContent(obj *udm.Object) (text string, mixed bool, children []string, err *uerr.Error) {
	keys := obj.Keys()
	if v, ok := obj.Get(udm.TextProperty); ok {
		if v.Kind() == udm.KindArray {
			return "", true, nil, nil
		}
		return udm.Stringify(v), false, nil, nil
	}
	for _, k := range keys {
		children = append(children, k)
	}
	return "", false, children, nil
}

func writeChildProperty(buf *bytes.Buffer, key string, v *udm.Value, opts SerializeOptions, depth int) *uerr.Error {
	if v.Kind() == udm.KindArray {
		for _, elem := range v.Elements() {
			if opts.Pretty {
				writeIndent(buf, opts, depth)
			}
			if err := writeElement(buf, key, elem, nil, opts, depth); err != nil {
				return err
			}
			if opts.Pretty {
				buf.WriteByte('\n')
			}
		}
		return nil
	}
	if opts.Pretty {
		writeIndent(buf, opts, depth)
	}
	if err := writeElement(buf, key, v, nil, opts, depth); err != nil {
		return err
	}
	if opts.Pretty {
		buf.WriteByte('\n')
	}
	return nil
}

func writeOpenTag(buf *bytes.Buffer, name string, attrs [][2]string, opts SerializeOptions) {
	buf.WriteByte('<')
	buf.WriteString(name)
	for _, a := range attrs {
		fmt.Fprintf(buf, ` %s="%s"`, a[0], escapeAttr(a[1]))
	}
	buf.WriteByte('>')
}

func writeSelfClosing(buf *bytes.Buffer, name string, attrs [][2]string, opts SerializeOptions) {
	buf.WriteByte('<')
	buf.WriteString(name)
	for _, a := range attrs {
		fmt.Fprintf(buf, ` %s="%s"`, a[0], escapeAttr(a[1]))
	}
	buf.WriteString("/>")
}

func writeCloseTagInline(buf *bytes.Buffer, name string) {
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteByte('>')
}

func writeCloseTag(buf *bytes.Buffer, name string, opts SerializeOptions, depth int) {
	if opts.Pretty {
		writeIndent(buf, opts, depth)
	}
	writeCloseTagInline(buf, name)
	if opts.Pretty {
		buf.WriteByte('\n')
	}
}

func writeIndent(buf *bytes.Buffer, opts SerializeOptions, depth int) {
	unit := opts.Indent
	if unit == "" {
		unit = "  "
	}
	buf.WriteString(strings.Repeat(unit, depth))
}

func indentDepth(opts SerializeOptions, n int) int {
	if !opts.Pretty {
		return 0
	}
	return n
}

func escapeText(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func escapeAttr(s string) string {
	return escapeText(s)
}
