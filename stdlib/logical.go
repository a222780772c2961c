// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerLogical(r map[string]interp.StdlibFunc) {
	r["default"] = fnDefault
	r["coalesce"] = fnCoalesce
	r["not"] = fnNot
	r["xor"] = fnXor
}

// fnDefault is spec §7's "explicit stdlib form" of the || fallback: returns
// d if v is nullish, else v unchanged (unlike "||" it does not also treat
// the empty string as nullish).
func fnDefault(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("default", args, 2, 2); err != nil {
		return nil, err
	}
	if udm.IsNullish(args[0]) {
		return args[1], nil
	}
	return args[0], nil
}

func fnCoalesce(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("coalesce", args, 1, -1); err != nil {
		return nil, err
	}
	for _, a := range args {
		if !udm.IsNullish(a) {
			return a, nil
		}
	}
	return udm.Null, nil
}

func fnNot(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("not", args, 1, 1); err != nil {
		return nil, err
	}
	b, err := wantBool("not", args[0])
	if err != nil {
		return nil, err
	}
	return udm.Bool(!b), nil
}

func fnXor(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("xor", args, 2, 2); err != nil {
		return nil, err
	}
	a, err := wantBool("xor", args[0])
	if err != nil {
		return nil, err
	}
	b, err := wantBool("xor", args[1])
	if err != nil {
		return nil, err
	}
	return udm.Bool(a != b), nil
}
