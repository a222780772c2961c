// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package stdlib implements the ~150 pure functions spec §4.9 groups by
// category (string, array, object, math, datetime, type, logical, encoding,
// XML navigation, binary, debug, CSV helpers, URL, JSON canonicalization,
// JWT decode, UUID). Every entry has the interp.StdlibFunc shape: it
// receives already-evaluated UDM arguments and returns UDM or a
// *uerr.Error (a FunctionArgumentException, or a TypeMismatch when an
// array operand is not an array), never a panic.
//
// Functions are assembled into one static table by Registry, following the
// teacher's scalarConstructors map[string]ScalarConstructFunc pattern
// (internal/libyaml/constructor.go): a map literal built once, read-only
// after construction, keyed by name rather than dispatched through
// reflection or a registration side effect.
package stdlib

import (
	"context"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// Registry builds the full stdlib function table. The Span on every error
// raised here is left zero; interp.invokeCallee fills in the call site
// before returning the error to the user.
func Registry() map[string]interp.StdlibFunc {
	r := make(map[string]interp.StdlibFunc, 160)
	registerString(r)
	registerArray(r)
	registerObject(r)
	registerMath(r)
	registerDatetime(r)
	registerTypeFns(r)
	registerLogical(r)
	registerEncoding(r)
	registerXML(r)
	registerBinary(r)
	registerDebug(r)
	registerCSV(r)
	registerYAML(r)
	registerURL(r)
	registerJSON(r)
	registerJWT(r)
	registerUUID(r)
	registerCrypto(r)
	return r
}

func argError(name, format string, args ...any) *uerr.Error {
	allArgs := make([]any, 0, len(args)+1)
	allArgs = append(allArgs, name)
	allArgs = append(allArgs, args...)
	return uerr.New(uerr.FunctionArgumentError, udm.Span{}, "%s: "+format, allArgs...)
}

func checkArity(name string, args []*udm.Value, min, max int) *uerr.Error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		if min == max {
			return argError(name, "expects %d argument(s), got %d", min, len(args))
		}
		if max < 0 {
			return argError(name, "expects at least %d argument(s), got %d", min, len(args))
		}
		return argError(name, "expects %d-%d argument(s), got %d", min, max, len(args))
	}
	return nil
}

func wantString(name string, v *udm.Value) (string, *uerr.Error) {
	v = udm.Unwrap(v)
	if v.Kind() != udm.KindString {
		return "", argError(name, "expects a string, got %s", udm.TypeOf(v))
	}
	return v.AsString(), nil
}

func wantInt(name string, v *udm.Value) (int64, *uerr.Error) {
	v = udm.Unwrap(v)
	switch v.Kind() {
	case udm.KindInt:
		return v.AsInt(), nil
	case udm.KindFloat:
		return int64(v.AsFloat()), nil
	default:
		return 0, argError(name, "expects a number, got %s", udm.TypeOf(v))
	}
}

func wantFloat(name string, v *udm.Value) (float64, *uerr.Error) {
	f, ok := udm.AsFloat64(v)
	if !ok {
		return 0, argError(name, "expects a number, got %s", udm.TypeOf(v))
	}
	return f, nil
}

func wantBool(name string, v *udm.Value) (bool, *uerr.Error) {
	v = udm.Unwrap(v)
	if v.Kind() != udm.KindBool {
		return false, argError(name, "expects a boolean, got %s", udm.TypeOf(v))
	}
	return v.AsBool(), nil
}

func wantArray(name string, v *udm.Value) ([]*udm.Value, *uerr.Error) {
	v = udm.Unwrap(v)
	if v.Kind() != udm.KindArray {
		return nil, argError(name, "expects an array, got %s", udm.TypeOf(v))
	}
	return v.Elements(), nil
}

func wantObject(name string, v *udm.Value) (*udm.Object, *uerr.Error) {
	v = udm.Unwrap(v)
	if v.Kind() != udm.KindObject {
		return nil, argError(name, "expects an object, got %s", udm.TypeOf(v))
	}
	return v.Object(), nil
}

func wantLambda(name string, v *udm.Value) (*udm.Value, *uerr.Error) {
	if v.Kind() != udm.KindLambda {
		return nil, argError(name, "expects a function, got %s", udm.TypeOf(v))
	}
	return v, nil
}

// call1 invokes a lambda argument with a single argument, used throughout
// the array functions (map's callback, filter's predicate, ...).
func call1(ctx context.Context, it *interp.Interp, fn *udm.Value, a *udm.Value) (*udm.Value, *uerr.Error) {
	return it.Invoke(ctx, udm.Span{}, fn, []*udm.Value{a})
}

func call2(ctx context.Context, it *interp.Interp, fn *udm.Value, a, b *udm.Value) (*udm.Value, *uerr.Error) {
	return it.Invoke(ctx, udm.Span{}, fn, []*udm.Value{a, b})
}
