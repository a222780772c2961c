// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package udmtext

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return b, nil
}

// Options configures Serialize. Indent is the number of spaces each nesting
// level is indented by; zero disables pretty-printing and emits a single
// packed line, which parses identically since whitespace is insignificant.
type Options struct {
	Indent int
}

func (o Options) pretty() bool { return o.Indent > 0 }

// Serialize renders v as .udm source text. The result always parses back
// to a Value equal to v per udm.Equal, including attribute/property order,
// the element-name hint, and the int/float and date/time-kind distinctions
// JSON and XML cannot carry.
func Serialize(v *udm.Value, opts Options) ([]byte, *uerr.Error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v, 0, opts); err != nil {
		return nil, uerr.New(uerr.FormatSerializeError, udm.Span{}, "%v", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v *udm.Value, depth int, opts Options) error {
	switch v.Kind() {
	case udm.KindNull:
		buf.WriteString("null")
	case udm.KindBool:
		if v.AsBool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case udm.KindInt:
		fmt.Fprintf(buf, "int(%d)", v.AsInt())
	case udm.KindFloat:
		fmt.Fprintf(buf, "float(%s)", strconv.FormatFloat(v.AsFloat(), 'g', -1, 64))
	case udm.KindString:
		fmt.Fprintf(buf, "str(%s)", strconv.Quote(v.AsString()))
	case udm.KindDate:
		fmt.Fprintf(buf, "date(%s)", strconv.Quote(v.AsTime().Format("2006-01-02")))
	case udm.KindDateTime:
		fmt.Fprintf(buf, "datetime(%s)", strconv.Quote(v.AsTime().Format(time.RFC3339Nano)))
	case udm.KindLocalDateTime:
		fmt.Fprintf(buf, "localdatetime(%s)", strconv.Quote(v.AsTime().Format("2006-01-02T15:04:05.999999999")))
	case udm.KindTime:
		fmt.Fprintf(buf, "time(%s)", strconv.Quote(formatTimeOfDay(v.AsDuration())))
	case udm.KindBinary:
		fmt.Fprintf(buf, "binary(%s %s)", strconv.Quote(v.BinaryTag()), strconv.Quote(base64.StdEncoding.EncodeToString(v.Bytes())))
	case udm.KindArray:
		return writeArray(buf, v, depth, opts)
	case udm.KindObject:
		return writeObject(buf, v.Object(), depth, opts)
	default:
		return fmt.Errorf("%s values have no .udm representation", udm.TypeOf(v))
	}
	return nil
}

func formatTimeOfDay(d time.Duration) string {
	base := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d)
	return base.Format("15:04:05.999999999")
}

func writeArray(buf *bytes.Buffer, v *udm.Value, depth int, opts Options) error {
	elems := v.Elements()
	if len(elems) == 0 {
		buf.WriteString("arr()")
		return nil
	}
	buf.WriteString("arr(")
	for _, e := range elems {
		newline(buf, depth+1, opts)
		if err := writeValue(buf, e, depth+1, opts); err != nil {
			return err
		}
	}
	newline(buf, depth, opts)
	buf.WriteByte(')')
	return nil
}

func writeObject(buf *bytes.Buffer, o *udm.Object, depth int, opts Options) error {
	buf.WriteString("obj(")
	empty := true

	if name, ok := o.Name(); ok {
		newline(buf, depth+1, opts)
		fmt.Fprintf(buf, "name(%s)", strconv.Quote(name))
		empty = false
	}
	for _, k := range o.AttrKeys() {
		val, _ := o.Attr(k)
		newline(buf, depth+1, opts)
		fmt.Fprintf(buf, "attr(%s %s)", strconv.Quote(k), strconv.Quote(val))
		empty = false
	}
	for _, k := range o.Keys() {
		val, _ := o.Get(k)
		newline(buf, depth+1, opts)
		fmt.Fprintf(buf, "prop(%s ", strconv.Quote(k))
		if err := writeValue(buf, val, depth+1, opts); err != nil {
			return err
		}
		buf.WriteByte(')')
		empty = false
	}

	if !empty {
		newline(buf, depth, opts)
	}
	buf.WriteByte(')')
	return nil
}

func newline(buf *bytes.Buffer, depth int, opts Options) {
	if !opts.pretty() {
		buf.WriteByte(' ')
		return
	}
	buf.WriteByte('\n')
	for i := 0; i < depth*opts.Indent; i++ {
		buf.WriteByte(' ')
	}
}
