// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"
	"strconv"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerTypeFns(r map[string]interp.StdlibFunc) {
	r["typeOf"] = fnTypeOf
	r["isString"] = isKind("isString", udm.KindString)
	r["isNumber"] = isNumberKind
	r["isBoolean"] = isKind("isBoolean", udm.KindBool)
	r["isArray"] = isKind("isArray", udm.KindArray)
	r["isObject"] = isKind("isObject", udm.KindObject)
	r["isNull"] = fnIsNull
	r["toNumber"] = fnToNumber
	r["toStringValue"] = fnToStringValue
	r["toBoolean"] = fnToBoolean
}

func fnTypeOf(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("typeOf", args, 1, 1); err != nil {
		return nil, err
	}
	return udm.String(udm.TypeOf(udm.Unwrap(args[0]))), nil
}

func isKind(name string, k udm.Kind) interp.StdlibFunc {
	return func(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		return udm.Bool(udm.Unwrap(args[0]).Kind() == k), nil
	}
}

func isNumberKind(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("isNumber", args, 1, 1); err != nil {
		return nil, err
	}
	k := udm.Unwrap(args[0]).Kind()
	return udm.Bool(k == udm.KindInt || k == udm.KindFloat), nil
}

func fnIsNull(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("isNull", args, 1, 1); err != nil {
		return nil, err
	}
	return udm.Bool(udm.IsNullish(args[0])), nil
}

func fnToNumber(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("toNumber", args, 1, 1); err != nil {
		return nil, err
	}
	v := udm.Unwrap(args[0])
	switch v.Kind() {
	case udm.KindInt, udm.KindFloat:
		return v, nil
	case udm.KindBool:
		if v.AsBool() {
			return udm.Int(1), nil
		}
		return udm.Int(0), nil
	case udm.KindString:
		if i, err := strconv.ParseInt(v.AsString(), 10, 64); err == nil {
			return udm.Int(i), nil
		}
		f, err := strconv.ParseFloat(v.AsString(), 64)
		if err != nil {
			return nil, argError("toNumber", "cannot parse %q as a number", v.AsString())
		}
		return udm.Float(f), nil
	default:
		return nil, argError("toNumber", "cannot convert %s to a number", udm.TypeOf(v))
	}
}

func fnToStringValue(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("toStringValue", args, 1, 1); err != nil {
		return nil, err
	}
	return udm.String(udm.Stringify(args[0])), nil
}

func fnToBoolean(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("toBoolean", args, 1, 1); err != nil {
		return nil, err
	}
	v := udm.Unwrap(args[0])
	switch v.Kind() {
	case udm.KindBool:
		return v, nil
	case udm.KindString:
		b, err := strconv.ParseBool(v.AsString())
		if err != nil {
			return nil, argError("toBoolean", "cannot parse %q as a boolean", v.AsString())
		}
		return udm.Bool(b), nil
	case udm.KindInt:
		return udm.Bool(v.AsInt() != 0), nil
	case udm.KindFloat:
		return udm.Bool(v.AsFloat() != 0), nil
	default:
		return nil, argError("toBoolean", "cannot convert %s to a boolean", udm.TypeOf(v))
	}
}
