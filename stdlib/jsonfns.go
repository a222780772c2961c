// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"

	ujson "github.com/utlxlang/utlx/format/json"
	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerJSON(r map[string]interp.StdlibFunc) {
	r["parseJson"] = fnParseJSON
	r["renderJson"] = fnRenderJSON
	r["canonicalizeJSON"] = fnCanonicalizeJSON
}

func fnParseJSON(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("parseJson", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := wantString("parseJson", args[0])
	if err != nil {
		return nil, err
	}
	return ujson.Parse([]byte(s))
}

func fnRenderJSON(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("renderJson", args, 1, 2); err != nil {
		return nil, err
	}
	opts := ujson.Options{}
	if len(args) == 2 {
		o, oerr := wantObject("renderJson", args[1])
		if oerr != nil {
			return nil, oerr
		}
		if p, ok := o.Get("pretty"); ok {
			b, berr := wantBool("renderJson", p)
			if berr != nil {
				return nil, berr
			}
			opts.Pretty = b
		}
		if ind, ok := o.Get("indent"); ok {
			n, ierr := wantInt("renderJson", ind)
			if ierr != nil {
				return nil, ierr
			}
			opts.Indent = int(n)
		}
	}
	out, err := ujson.Serialize(args[0], opts)
	if err != nil {
		return nil, err
	}
	return udm.String(string(out)), nil
}

func fnCanonicalizeJSON(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("canonicalizeJSON", args, 1, 1); err != nil {
		return nil, err
	}
	out, err := ujson.CanonicalizeJSON(args[0])
	if err != nil {
		return nil, err
	}
	return udm.String(string(out)), nil
}
