// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerObject(r map[string]interp.StdlibFunc) {
	r["keys"] = fnKeys
	r["values"] = fnValues
	r["entries"] = fnEntries
	r["fromEntries"] = fnFromEntries
	r["merge"] = fnMerge
	r["has"] = fnHas
	r["get"] = fnGet
	r["omit"] = fnOmit
	r["pick"] = fnPick
	r["mapValues"] = fnMapValues
}

func fnKeys(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("keys", args, 1, 1); err != nil {
		return nil, err
	}
	o, err := wantObject("keys", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]*udm.Value, 0, o.Len())
	for _, k := range o.Keys() {
		out = append(out, udm.String(k))
	}
	return udm.Array(out...), nil
}

func fnValues(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("values", args, 1, 1); err != nil {
		return nil, err
	}
	o, err := wantObject("values", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]*udm.Value, 0, o.Len())
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		out = append(out, v)
	}
	return udm.Array(out...), nil
}

func fnEntries(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("entries", args, 1, 1); err != nil {
		return nil, err
	}
	o, err := wantObject("entries", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]*udm.Value, 0, o.Len())
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		pair := udm.NewObject().With("key", udm.String(k)).With("value", v)
		out = append(out, udm.ObjectValue(pair))
	}
	return udm.Array(out...), nil
}

func fnFromEntries(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("fromEntries", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray("fromEntries", args[0])
	if err != nil {
		return nil, err
	}
	obj := udm.NewObject()
	for _, e := range elems {
		pairObj, err := wantObject("fromEntries", e)
		if err != nil {
			return nil, err
		}
		k, ok := pairObj.Get("key")
		if !ok {
			return nil, argError("fromEntries", "each entry must have a %q property", "key")
		}
		v, ok := pairObj.Get("value")
		if !ok {
			return nil, argError("fromEntries", "each entry must have a %q property", "value")
		}
		obj = obj.With(udm.Stringify(k), v)
	}
	return udm.ObjectValue(obj), nil
}

// fnMerge applies arguments left-to-right, later objects winning on
// conflicting keys while preserving each key's first-seen position.
func fnMerge(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("merge", args, 1, -1); err != nil {
		return nil, err
	}
	result := udm.NewObject()
	for _, a := range args {
		o, err := wantObject("merge", a)
		if err != nil {
			return nil, err
		}
		for _, k := range o.Keys() {
			v, _ := o.Get(k)
			result = result.With(k, v)
		}
	}
	return udm.ObjectValue(result), nil
}

func fnHas(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("has", args, 2, 2); err != nil {
		return nil, err
	}
	o, err := wantObject("has", args[0])
	if err != nil {
		return nil, err
	}
	key, err := wantString("has", args[1])
	if err != nil {
		return nil, err
	}
	_, ok := o.Get(key)
	return udm.Bool(ok), nil
}

func fnGet(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("get", args, 2, 3); err != nil {
		return nil, err
	}
	o, err := wantObject("get", args[0])
	if err != nil {
		return nil, err
	}
	key, err := wantString("get", args[1])
	if err != nil {
		return nil, err
	}
	v, ok := o.Get(key)
	if ok {
		return v, nil
	}
	if len(args) == 3 {
		return args[2], nil
	}
	return udm.Null, nil
}

func fnOmit(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("omit", args, 2, 2); err != nil {
		return nil, err
	}
	o, err := wantObject("omit", args[0])
	if err != nil {
		return nil, err
	}
	drop, err := wantArray("omit", args[1])
	if err != nil {
		return nil, err
	}
	dropSet := make(map[string]bool, len(drop))
	for _, d := range drop {
		s, err := wantString("omit", d)
		if err != nil {
			return nil, err
		}
		dropSet[s] = true
	}
	result := o
	for _, k := range o.Keys() {
		if dropSet[k] {
			result = result.Without(k)
		}
	}
	return udm.ObjectValue(result), nil
}

func fnPick(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("pick", args, 2, 2); err != nil {
		return nil, err
	}
	o, err := wantObject("pick", args[0])
	if err != nil {
		return nil, err
	}
	keep, err := wantArray("pick", args[1])
	if err != nil {
		return nil, err
	}
	result := udm.NewObject()
	for _, k := range keep {
		s, err := wantString("pick", k)
		if err != nil {
			return nil, err
		}
		if v, ok := o.Get(s); ok {
			result = result.With(s, v)
		}
	}
	return udm.ObjectValue(result), nil
}

func fnMapValues(ctx context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("mapValues", args, 2, 2); err != nil {
		return nil, err
	}
	o, err := wantObject("mapValues", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantLambda("mapValues", args[1])
	if err != nil {
		return nil, err
	}
	result := udm.NewObject()
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		nv, err := call2(ctx, it, fn, v, udm.String(k))
		if err != nil {
			return nil, err
		}
		result = result.With(k, nv)
	}
	return udm.ObjectValue(result), nil
}
