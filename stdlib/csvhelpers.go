// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"

	ucsv "github.com/utlxlang/utlx/format/csv"
	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// registerCSV implements single-line CSV helpers for programs that build or
// parse a row without going through a full input/output directive, plus
// the bulk parseCsv/renderCsv bridge functions delegating to format/csv.
func registerCSV(r map[string]interp.StdlibFunc) {
	r["csvParseLine"] = fnCSVParseLine
	r["csvJoinLine"] = fnCSVJoinLine
	r["parseCsv"] = fnParseCSV
	r["renderCsv"] = fnRenderCSV
}

func fnParseCSV(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("parseCsv", args, 1, 2); err != nil {
		return nil, err
	}
	s, err := wantString("parseCsv", args[0])
	if err != nil {
		return nil, err
	}
	opts := ucsv.DefaultOptions()
	if len(args) == 2 {
		oerr := applyCSVOptions(&opts, args[1])
		if oerr != nil {
			return nil, oerr
		}
	}
	return ucsv.Parse([]byte(s), opts)
}

func fnRenderCSV(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("renderCsv", args, 1, 2); err != nil {
		return nil, err
	}
	opts := ucsv.DefaultOptions()
	if len(args) == 2 {
		oerr := applyCSVOptions(&opts, args[1])
		if oerr != nil {
			return nil, oerr
		}
	}
	out, err := ucsv.Serialize(args[0], opts)
	if err != nil {
		return nil, err
	}
	return udm.String(string(out)), nil
}

func applyCSVOptions(opts *ucsv.Options, v *udm.Value) *uerr.Error {
	o, err := wantObject("csv options", v)
	if err != nil {
		return err
	}
	if h, ok := o.Get("headers"); ok {
		b, berr := wantBool("csv options", h)
		if berr != nil {
			return berr
		}
		opts.Headers = b
	}
	if d, ok := o.Get("delimiter"); ok {
		s, serr := wantString("csv options", d)
		if serr != nil {
			return serr
		}
		if r := []rune(s); len(r) == 1 {
			opts.Delimiter = r[0]
		}
	}
	if q, ok := o.Get("quote"); ok {
		s, serr := wantString("csv options", q)
		if serr != nil {
			return serr
		}
		if r := []rune(s); len(r) == 1 {
			opts.Quote = r[0]
		}
	}
	if esc, ok := o.Get("escape"); ok {
		s, serr := wantString("csv options", esc)
		if serr != nil {
			return serr
		}
		if r := []rune(s); len(r) == 1 {
			opts.Escape = r[0]
		}
	}
	if skip, ok := o.Get("skipEmptyLines"); ok {
		b, berr := wantBool("csv options", skip)
		if berr != nil {
			return berr
		}
		opts.SkipEmptyLines = b
	}
	return nil
}

func fnCSVParseLine(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("csvParseLine", args, 1, 1); err != nil {
		return nil, err
	}
	line, err := wantString("csvParseLine", args[0])
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(strings.NewReader(line))
	fields, rerr := reader.Read()
	if rerr != nil {
		return nil, argError("csvParseLine", "cannot parse CSV line: %v", rerr)
	}
	out := make([]*udm.Value, len(fields))
	for i, f := range fields {
		out[i] = udm.String(f)
	}
	return udm.Array(out...), nil
}

func fnCSVJoinLine(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("csvJoinLine", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray("csvJoinLine", args[0])
	if err != nil {
		return nil, err
	}
	fields := make([]string, len(elems))
	for i, e := range elems {
		fields[i] = udm.Stringify(e)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if werr := w.Write(fields); werr != nil {
		return nil, argError("csvJoinLine", "cannot render CSV line: %v", werr)
	}
	w.Flush()
	return udm.String(strings.TrimRight(buf.String(), "\r\n")), nil
}
