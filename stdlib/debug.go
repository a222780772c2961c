// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"
	"fmt"
	"strings"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerDebug(r map[string]interp.StdlibFunc) {
	r["assert"] = fnAssert
	r["inspect"] = fnInspect
}

// fnAssert fails the evaluation with a FunctionArgumentException carrying
// the caller's message when cond is false; it returns its first argument
// unchanged on success so assert(x > 0, "...")  can be threaded inline in a
// pipeline without a separate statement.
func fnAssert(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("assert", args, 2, 2); err != nil {
		return nil, err
	}
	ok, err := wantBool("assert", args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		msg, merr := wantString("assert", args[1])
		if merr != nil {
			msg = udm.Stringify(args[1])
		}
		return nil, argError("assert", "%s", msg)
	}
	return args[0], nil
}

// fnInspect renders a debug-oriented textual form, distinct from toStringValue
// in that it quotes strings and shows container contents recursively rather
// than the lossy human-facing form stdlib's Stringify produces for arrays
// and objects. Scalars other than strings render as Stringify does; no kind
// name is printed.
func fnInspect(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("inspect", args, 1, 1); err != nil {
		return nil, err
	}
	return udm.String(inspect(args[0])), nil
}

func inspect(v *udm.Value) string {
	switch v.Kind() {
	case udm.KindArray:
		parts := make([]string, len(v.Elements()))
		for i, e := range v.Elements() {
			parts[i] = inspect(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case udm.KindObject:
		o := v.Object()
		parts := make([]string, 0, o.Len())
		for _, k := range o.Keys() {
			fv, _ := o.Get(k)
			parts = append(parts, fmt.Sprintf("%s: %s", k, inspect(fv)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case udm.KindString:
		return fmt.Sprintf("%q", v.AsString())
	default:
		return udm.Stringify(v)
	}
}
