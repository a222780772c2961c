// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package csv implements the CSV format bridge (spec §4.2): parse(bytes,
// options) -> UDM and serialize(UDM, options) -> bytes, layered on
// encoding/csv for the common RFC 4180 case (double-quote quoting,
// comma-or-other single-rune delimiter) with a manual tokenizer fallback
// when a non-default quote character is configured, since encoding/csv
// hardcodes '"' as its quote character. Escape is honored only on that
// manual path; with the default '"' quote, quotes are always escaped by
// doubling.
package csv

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// Options configures Parse and Serialize per spec §4.2's declared option
// set for the CSV bridge.
type Options struct {
	Headers        bool // default true; zero value must be set explicitly via DefaultOptions
	Delimiter      rune // default ','
	Quote          rune // default '"'
	Escape         rune // default equal to Quote (RFC 4180 doubling)
	SkipEmptyLines bool
}

// DefaultOptions returns the RFC 4180 defaults spec §4.2 specifies.
func DefaultOptions() Options {
	return Options{Headers: true, Delimiter: ',', Quote: '"', Escape: '"'}
}

func (o Options) normalize() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Quote == 0 {
		o.Quote = '"'
	}
	if o.Escape == 0 {
		o.Escape = o.Quote
	}
	return o
}

// Parse lifts CSV bytes into UDM. With Headers on, the first row supplies
// object keys and the result is an Array of Objects, one per subsequent
// row; with Headers off, the result is an Array of Arrays.
func Parse(data []byte, opts Options) (*udm.Value, *uerr.Error) {
	opts = opts.normalize()
	rows, err := readRows(data, opts)
	if err != nil {
		return nil, err
	}
	if opts.SkipEmptyLines {
		rows = filterEmptyRows(rows)
	}
	if len(rows) == 0 {
		return udm.Array(), nil
	}

	if !opts.Headers {
		out := make([]*udm.Value, len(rows))
		for i, row := range rows {
			out[i] = rowToArray(row)
		}
		return udm.Array(out...), nil
	}

	header := rows[0]
	out := make([]*udm.Value, 0, len(rows)-1)
	for _, row := range rows[1:] {
		obj := udm.NewObject()
		for i, key := range header {
			var val string
			if i < len(row) {
				val = row[i]
			}
			obj = obj.With(key, udm.String(val))
		}
		out = append(out, udm.ObjectValue(obj))
	}
	return udm.Array(out...), nil
}

func filterEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		if len(row) == 1 && row[0] == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

func rowToArray(row []string) *udm.Value {
	out := make([]*udm.Value, len(row))
	for i, f := range row {
		out[i] = udm.String(f)
	}
	return udm.Array(out...)
}

func readRows(data []byte, opts Options) ([][]string, *uerr.Error) {
	if opts.Quote == '"' {
		r := csv.NewReader(bytes.NewReader(data))
		r.Comma = opts.Delimiter
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		rows, err := r.ReadAll()
		if err != nil {
			return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "invalid CSV: %v", err)
		}
		return rows, nil
	}
	return parseManual(string(data), opts)
}

// parseManual tokenizes CSV by hand for a non-default quote character,
// honoring Escape as the character that, doubled or prefixed, embeds a
// literal quote character inside a quoted field.
func parseManual(s string, opts Options) ([][]string, *uerr.Error) {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false
	runes := []rune(s)
	n := len(runes)

	for i := 0; i < n; i++ {
		c := runes[i]
		switch {
		case inQuotes:
			if c == opts.Escape && i+1 < n && runes[i+1] == opts.Quote {
				field.WriteRune(opts.Quote)
				i++
			} else if c == opts.Quote {
				inQuotes = false
			} else {
				field.WriteRune(c)
			}
		case c == opts.Quote:
			inQuotes = true
		case c == opts.Delimiter:
			row = append(row, field.String())
			field.Reset()
		case c == '\n':
			row = append(row, field.String())
			field.Reset()
			rows = append(rows, row)
			row = nil
		case c == '\r':
			// swallow; \r\n line endings collapse to the \n case
		default:
			field.WriteRune(c)
		}
	}
	if field.Len() > 0 || len(row) > 0 {
		row = append(row, field.String())
		rows = append(rows, row)
	}
	if inQuotes {
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "invalid CSV: unterminated quoted field")
	}
	return rows, nil
}

// Serialize renders an Array of Objects as CSV. The header row is the
// union of keys across all elements, ordered by first appearance; a field
// containing the delimiter, the quote character, or a newline is quoted.
func Serialize(v *udm.Value, opts Options) ([]byte, *uerr.Error) {
	opts = opts.normalize()
	v = udm.Unwrap(v)
	if v.Kind() != udm.KindArray {
		return nil, uerr.New(uerr.FormatSerializeError, udm.Span{}, "renderCsv expects an array of objects, got %s", udm.TypeOf(v))
	}

	var headers []string
	seen := map[string]bool{}
	rows := make([][]string, 0, len(v.Elements()))
	for _, elem := range v.Elements() {
		ev := udm.Unwrap(elem)
		if ev.Kind() != udm.KindObject {
			return nil, uerr.New(uerr.FormatSerializeError, udm.Span{}, "renderCsv expects an array of objects, found %s", udm.TypeOf(ev))
		}
		for _, k := range ev.Object().Keys() {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	for _, elem := range v.Elements() {
		obj := udm.Unwrap(elem).Object()
		row := make([]string, len(headers))
		for i, h := range headers {
			if val, ok := obj.Get(h); ok {
				row[i] = udm.Stringify(val)
			}
		}
		rows = append(rows, row)
	}

	if opts.Quote == '"' {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		w.Comma = opts.Delimiter
		if err := w.Write(headers); err != nil {
			return nil, uerr.New(uerr.FormatSerializeError, udm.Span{}, "cannot write CSV header: %v", err)
		}
		if err := w.WriteAll(rows); err != nil {
			return nil, uerr.New(uerr.FormatSerializeError, udm.Span{}, "cannot write CSV rows: %v", err)
		}
		w.Flush()
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	writeManualRow(&buf, headers, opts)
	for _, row := range rows {
		writeManualRow(&buf, row, opts)
	}
	return buf.Bytes(), nil
}

func writeManualRow(buf *bytes.Buffer, fields []string, opts Options) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteRune(opts.Delimiter)
		}
		buf.WriteString(quoteManualField(f, opts))
	}
	buf.WriteString("\r\n")
}

func quoteManualField(f string, opts Options) string {
	needsQuote := strings.ContainsRune(f, opts.Delimiter) ||
		strings.ContainsRune(f, opts.Quote) ||
		strings.ContainsAny(f, "\r\n")
	if !needsQuote {
		return f
	}
	var buf strings.Builder
	buf.WriteRune(opts.Quote)
	for _, r := range f {
		if r == opts.Quote {
			buf.WriteRune(opts.Escape)
		}
		buf.WriteRune(r)
	}
	buf.WriteRune(opts.Quote)
	return buf.String()
}
