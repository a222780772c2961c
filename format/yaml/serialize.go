// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// SerializeOptions configures Serialize per spec §4.2's declared option
// set: Flow selects flow style (`{a: 1}`/`[1, 2]`) over block style; Indent
// sets the per-level indent width in spaces (default 2); MultiDocument
// treats a top-level Array as a sequence of documents joined by `---`
// rather than as a single YAML sequence value.
type SerializeOptions struct {
	Flow          bool
	Indent        int
	MultiDocument bool
}

func (o SerializeOptions) indent() int {
	if o.Indent <= 0 {
		return 2
	}
	return o.Indent
}

// Serialize renders v as a YAML document (or, with MultiDocument set and v
// an Array, as a multi-document stream).
func Serialize(v *udm.Value, opts SerializeOptions) ([]byte, *uerr.Error) {
	var buf bytes.Buffer
	if opts.MultiDocument {
		v = udm.Unwrap(v)
		if v.Kind() != udm.KindArray {
			return nil, uerr.New(uerr.FormatSerializeError, udm.Span{}, "multi-document renderYaml expects an array of documents, got %s", udm.TypeOf(v))
		}
		for i, doc := range v.Elements() {
			if i > 0 {
				buf.WriteString("---\n")
			}
			writeDoc(&buf, doc, opts)
		}
		return buf.Bytes(), nil
	}
	writeDoc(&buf, v, opts)
	return buf.Bytes(), nil
}

func writeDoc(buf *bytes.Buffer, v *udm.Value, opts SerializeOptions) {
	v = udm.Unwrap(v)
	if opts.Flow {
		writeFlow(buf, v)
		buf.WriteByte('\n')
		return
	}
	if isContainer(v) && !udm.IsEmpty(v) {
		writeBlock(buf, v, 0, opts)
		return
	}
	buf.WriteString(scalarText(v))
	buf.WriteByte('\n')
}

func isContainer(v *udm.Value) bool {
	return v.Kind() == udm.KindArray || v.Kind() == udm.KindObject
}

// writeBlock renders a container in block style at the given indent depth
// (0-based, in units of opts.indent() spaces).
func writeBlock(buf *bytes.Buffer, v *udm.Value, depth int, opts SerializeOptions) {
	switch v.Kind() {
	case udm.KindArray:
		for _, elem := range v.Elements() {
			elem = udm.Unwrap(elem)
			pad(buf, depth, opts)
			buf.WriteString("- ")
			writeBlockInline(buf, elem, depth, opts)
		}
	case udm.KindObject:
		obj := v.Object()
		for _, k := range obj.Keys() {
			val, _ := obj.Get(k)
			val = udm.Unwrap(val)
			pad(buf, depth, opts)
			buf.WriteString(scalarKey(k))
			buf.WriteByte(':')
			writeBlockValue(buf, val, depth, opts)
		}
	}
}

// writeBlockInline continues a "- " sequence marker: scalars stay on the
// same line, containers recurse with the marker treated as the first
// column of indentation.
func writeBlockInline(buf *bytes.Buffer, v *udm.Value, depth int, opts SerializeOptions) {
	if isContainer(v) && !udm.IsEmpty(v) {
		// The child container's own entries indent one level past the "- ".
		var inner bytes.Buffer
		writeBlock(&inner, v, depth+1, opts)
		trimmed := strings.TrimPrefix(inner.String(), strings.Repeat(" ", (depth+1)*opts.indent()))
		buf.WriteString(trimmed)
		return
	}
	buf.WriteString(scalarText(v))
	buf.WriteByte('\n')
}

func writeBlockValue(buf *bytes.Buffer, v *udm.Value, depth int, opts SerializeOptions) {
	if isContainer(v) && !udm.IsEmpty(v) {
		buf.WriteByte('\n')
		writeBlock(buf, v, depth+1, opts)
		return
	}
	if v.Kind() == udm.KindString && strings.Contains(v.AsString(), "\n") {
		buf.WriteString(" |\n")
		writeLiteralBlock(buf, v.AsString(), depth+1, opts)
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(scalarText(v))
	buf.WriteByte('\n')
}

func writeLiteralBlock(buf *bytes.Buffer, s string, depth int, opts SerializeOptions) {
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		pad(buf, depth, opts)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

func pad(buf *bytes.Buffer, depth int, opts SerializeOptions) {
	buf.WriteString(strings.Repeat(" ", depth*opts.indent()))
}

func writeFlow(buf *bytes.Buffer, v *udm.Value) {
	v = udm.Unwrap(v)
	switch v.Kind() {
	case udm.KindArray:
		buf.WriteByte('[')
		for i, elem := range v.Elements() {
			if i > 0 {
				buf.WriteString(", ")
			}
			writeFlow(buf, elem)
		}
		buf.WriteByte(']')
	case udm.KindObject:
		obj := v.Object()
		buf.WriteByte('{')
		for i, k := range obj.Keys() {
			if i > 0 {
				buf.WriteString(", ")
			}
			val, _ := obj.Get(k)
			buf.WriteString(scalarKey(k))
			buf.WriteString(": ")
			writeFlow(buf, val)
		}
		buf.WriteByte('}')
	default:
		buf.WriteString(scalarText(v))
	}
}

// scalarKey renders a mapping key, quoting it under the same rules as any
// other scalar.
func scalarKey(k string) string {
	return scalarText(udm.String(k))
}

// scalarText renders v's scalar text, quoting a string when its plain form
// would be ambiguous with another YAML type or a structural indicator,
// per the same class of analysis the teacher's own Emitter.analyzeScalar
// performs (flow/block indicator characters, core-schema-resolvable
// literals, leading/trailing whitespace) — simplified to the common cases.
func scalarText(v *udm.Value) string {
	v = udm.Unwrap(v)
	switch v.Kind() {
	case udm.KindNull:
		return "null"
	case udm.KindBool:
		return strconv.FormatBool(v.AsBool())
	case udm.KindInt, udm.KindFloat:
		return udm.FormatNumber(v)
	case udm.KindString:
		return quoteIfNeeded(v.AsString())
	default:
		return quoteIfNeeded(udm.Stringify(v))
	}
}

func quoteIfNeeded(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if looksLikeCoreSchemaLiteral(s) {
		return true
	}
	if s[0] >= 0x80 { // non-ASCII leading byte: leave as-is
		return false
	}
	switch s[0] {
	case '-', '?', ':', ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return true
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return true
	}
	if strings.Contains(s, ": ") || strings.HasSuffix(s, ":") {
		return true
	}
	if strings.Contains(s, " #") {
		return true
	}
	if strings.ContainsAny(s, "\n\t") {
		return true
	}
	return false
}

// looksLikeCoreSchemaLiteral reports whether s would resolve to a non-string
// scalar (bool, null, int, float) under YAML's core schema if left
// unquoted, per spec §4.2's "booleans and null preserved" requirement —
// the string "true" must round-trip as a string, not collapse into the
// boolean true on re-parse.
func looksLikeCoreSchemaLiteral(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "yes", "no", "on", "off", "null", "~":
		return true
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}
