// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"strconv"
	"strings"

	ucsv "github.com/utlxlang/utlx/format/csv"
	ujson "github.com/utlxlang/utlx/format/json"
	uxml "github.com/utlxlang/utlx/format/xml"
	uyaml "github.com/utlxlang/utlx/format/yaml"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// resolveFormat normalizes a declared input/output format, sniffing the
// byte content when the program declared "auto" or left the format blank.
func resolveFormat(declared string, data []byte) string {
	switch strings.ToLower(declared) {
	case "", "auto":
		return sniffFormat(data)
	case "yml":
		return "yaml"
	default:
		return strings.ToLower(declared)
	}
}

// sniffFormat guesses a format from its leading bytes: XML documents start
// with '<', JSON documents start with '{' or '[', CSV's first line contains
// a comma outside any of that, and everything else is treated as YAML,
// which (unlike the other three) has no distinguishing leading character.
func sniffFormat(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "yaml"
	}
	switch trimmed[0] {
	case '<':
		return "xml"
	case '{', '[':
		return "json"
	}
	if idx := strings.IndexByte(trimmed, '\n'); idx > 0 && strings.Contains(trimmed[:idx], ",") {
		return "csv"
	}
	return "yaml"
}

func parseBytes(format string, data []byte, opts map[string]string) (*udm.Value, *uerr.Error) {
	switch resolveFormat(format, data) {
	case "json":
		return ujson.Parse(data)
	case "xml":
		return uxml.Parse(data, uxml.ParseOptions{})
	case "yaml":
		return uyaml.Parse(data, uyaml.ParseOptions{})
	case "csv":
		return ucsv.Parse(data, csvOptionsFrom(opts))
	default:
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "unknown input format %q", format)
	}
}

func serializeValue(format string, v *udm.Value, opts map[string]string) ([]byte, *uerr.Error) {
	switch strings.ToLower(format) {
	case "", "auto":
		return nil, uerr.New(uerr.FormatSerializeError, udm.Span{}, "output format must be explicit, got %q", format)
	case "json":
		return ujson.Serialize(v, jsonOptionsFrom(opts))
	case "xml":
		return uxml.Serialize(v, xmlOptionsFrom(opts))
	case "yaml", "yml":
		return uyaml.Serialize(v, yamlOptionsFrom(opts))
	case "csv":
		return ucsv.Serialize(v, csvOptionsFrom(opts))
	default:
		return nil, uerr.New(uerr.FormatSerializeError, udm.Span{}, "unknown output format %q", format)
	}
}

func boolOpt(opts map[string]string, key string, def bool) bool {
	s, ok := opts[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func intOpt(opts map[string]string, key string, def int) int {
	s, ok := opts[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func runeOpt(opts map[string]string, key string, def rune) rune {
	s, ok := opts[key]
	if !ok || s == "" {
		return def
	}
	r := []rune(s)
	return r[0]
}

func jsonOptionsFrom(opts map[string]string) ujson.Options {
	return ujson.Options{
		Pretty: boolOpt(opts, "pretty", false),
		Indent: intOpt(opts, "indent", 2),
	}
}

func csvOptionsFrom(opts map[string]string) ucsv.Options {
	o := ucsv.DefaultOptions()
	o.Headers = boolOpt(opts, "headers", o.Headers)
	o.Delimiter = runeOpt(opts, "delimiter", o.Delimiter)
	o.Quote = runeOpt(opts, "quote", o.Quote)
	o.Escape = runeOpt(opts, "escape", o.Escape)
	o.SkipEmptyLines = boolOpt(opts, "skipEmptyLines", o.SkipEmptyLines)
	return o
}

func yamlOptionsFrom(opts map[string]string) uyaml.SerializeOptions {
	return uyaml.SerializeOptions{
		Flow:          boolOpt(opts, "flow", false),
		Indent:        intOpt(opts, "indent", 2),
		MultiDocument: boolOpt(opts, "multiDocument", false),
	}
}

func xmlOptionsFrom(opts map[string]string) uxml.SerializeOptions {
	o := uxml.SerializeOptions{
		RootName:     opts["rootName"],
		SOAPEnvelope: boolOpt(opts, "soapEnvelope", false),
	}
	switch strings.ToLower(opts["emptyElementStyle"]) {
	case "explicit":
		o.EmptyElementStyle = uxml.Explicit
	case "xsinil", "xsi-nil":
		o.EmptyElementStyle = uxml.XSINil
	case "omit":
		o.EmptyElementStyle = uxml.Omit
	default:
		o.EmptyElementStyle = uxml.SelfClosing
	}
	return o
}
