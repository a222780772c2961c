// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"
	"strings"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerString(r map[string]interp.StdlibFunc) {
	r["upperCase"] = str1("upperCase", strings.ToUpper)
	r["lowerCase"] = str1("lowerCase", strings.ToLower)
	r["trim"] = str1("trim", strings.TrimSpace)
	r["trimStart"] = str1("trimStart", func(s string) string { return strings.TrimLeft(s, " \t\n\r") })
	r["trimEnd"] = str1("trimEnd", func(s string) string { return strings.TrimRight(s, " \t\n\r") })
	r["capitalize"] = str1("capitalize", capitalize)
	r["reverse"] = str1("reverse", reverseString)

	r["length"] = fnLength
	r["substring"] = fnSubstring
	r["indexOf"] = fnIndexOf
	r["lastIndexOf"] = fnLastIndexOf
	r["contains"] = fnContains
	r["startsWith"] = fnStartsWith
	r["endsWith"] = fnEndsWith
	r["replace"] = fnReplace
	r["replaceAll"] = fnReplaceAll
	r["split"] = fnSplit
	r["join"] = fnJoin
	r["padStart"] = fnPadStart
	r["padEnd"] = fnPadEnd
	r["repeat"] = fnRepeat
}

func str1(name string, f func(string) string) interp.StdlibFunc {
	return func(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		s, err := wantString(name, args[0])
		if err != nil {
			return nil, err
		}
		return udm.String(f(s)), nil
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// fnLength is polymorphic over string, array, and object per spec's
// container-length contract: strings count runes, arrays their elements,
// objects their properties.
func fnLength(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("length", args, 1, 1); err != nil {
		return nil, err
	}
	v := udm.Unwrap(args[0])
	switch v.Kind() {
	case udm.KindString:
		return udm.Int(int64(len([]rune(v.AsString())))), nil
	case udm.KindArray:
		return udm.Int(int64(len(v.Elements()))), nil
	case udm.KindObject:
		return udm.Int(int64(v.Object().Len())), nil
	default:
		return nil, argError("length", "expects a string, array, or object, got %s", udm.TypeOf(v))
	}
}

func fnSubstring(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("substring", args, 2, 3); err != nil {
		return nil, err
	}
	s, err := wantString("substring", args[0])
	if err != nil {
		return nil, err
	}
	r := []rune(s)
	start, err := wantInt("substring", args[1])
	if err != nil {
		return nil, err
	}
	end := int64(len(r))
	if len(args) == 3 {
		end, err = wantInt("substring", args[2])
		if err != nil {
			return nil, err
		}
	}
	start = clampIndex(start, int64(len(r)))
	end = clampIndex(end, int64(len(r)))
	if end < start {
		end = start
	}
	return udm.String(string(r[start:end])), nil
}

func clampIndex(i, n int64) int64 {
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return i
}

func fnIndexOf(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("indexOf", args, 2, 2); err != nil {
		return nil, err
	}
	s, err := wantString("indexOf", args[0])
	if err != nil {
		return nil, err
	}
	sub, err := wantString("indexOf", args[1])
	if err != nil {
		return nil, err
	}
	idx := strings.Index(s, sub)
	if idx < 0 {
		return udm.Int(-1), nil
	}
	return udm.Int(int64(len([]rune(s[:idx])))), nil
}

func fnLastIndexOf(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("lastIndexOf", args, 2, 2); err != nil {
		return nil, err
	}
	s, err := wantString("lastIndexOf", args[0])
	if err != nil {
		return nil, err
	}
	sub, err := wantString("lastIndexOf", args[1])
	if err != nil {
		return nil, err
	}
	idx := strings.LastIndex(s, sub)
	if idx < 0 {
		return udm.Int(-1), nil
	}
	return udm.Int(int64(len([]rune(s[:idx])))), nil
}

func fnContains(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("contains", args, 2, 2); err != nil {
		return nil, err
	}
	v := udm.Unwrap(args[0])
	if v.Kind() == udm.KindArray {
		for _, e := range v.Elements() {
			if udm.Equal(udm.Unwrap(e), udm.Unwrap(args[1])) {
				return udm.Bool(true), nil
			}
		}
		return udm.Bool(false), nil
	}
	s, err := wantString("contains", args[0])
	if err != nil {
		return nil, err
	}
	sub, err := wantString("contains", args[1])
	if err != nil {
		return nil, err
	}
	return udm.Bool(strings.Contains(s, sub)), nil
}

func fnStartsWith(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("startsWith", args, 2, 2); err != nil {
		return nil, err
	}
	s, err := wantString("startsWith", args[0])
	if err != nil {
		return nil, err
	}
	prefix, err := wantString("startsWith", args[1])
	if err != nil {
		return nil, err
	}
	return udm.Bool(strings.HasPrefix(s, prefix)), nil
}

func fnEndsWith(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("endsWith", args, 2, 2); err != nil {
		return nil, err
	}
	s, err := wantString("endsWith", args[0])
	if err != nil {
		return nil, err
	}
	suffix, err := wantString("endsWith", args[1])
	if err != nil {
		return nil, err
	}
	return udm.Bool(strings.HasSuffix(s, suffix)), nil
}

func fnReplace(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("replace", args, 3, 3); err != nil {
		return nil, err
	}
	s, err := wantString("replace", args[0])
	if err != nil {
		return nil, err
	}
	old, err := wantString("replace", args[1])
	if err != nil {
		return nil, err
	}
	n, err := wantString("replace", args[2])
	if err != nil {
		return nil, err
	}
	return udm.String(strings.Replace(s, old, n, 1)), nil
}

func fnReplaceAll(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("replaceAll", args, 3, 3); err != nil {
		return nil, err
	}
	s, err := wantString("replaceAll", args[0])
	if err != nil {
		return nil, err
	}
	old, err := wantString("replaceAll", args[1])
	if err != nil {
		return nil, err
	}
	n, err := wantString("replaceAll", args[2])
	if err != nil {
		return nil, err
	}
	return udm.String(strings.ReplaceAll(s, old, n)), nil
}

func fnSplit(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("split", args, 2, 2); err != nil {
		return nil, err
	}
	s, err := wantString("split", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := wantString("split", args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	out := make([]*udm.Value, len(parts))
	for i, p := range parts {
		out[i] = udm.String(p)
	}
	return udm.Array(out...), nil
}

func fnJoin(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("join", args, 2, 2); err != nil {
		return nil, err
	}
	elems, err := wantArray("join", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := wantString("join", args[1])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = udm.Stringify(e)
	}
	return udm.String(strings.Join(parts, sep)), nil
}

func fnPadStart(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	return pad("padStart", args, true)
}

func fnPadEnd(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	return pad("padEnd", args, false)
}

func pad(name string, args []*udm.Value, start bool) (*udm.Value, *uerr.Error) {
	if err := checkArity(name, args, 2, 3); err != nil {
		return nil, err
	}
	s, err := wantString(name, args[0])
	if err != nil {
		return nil, err
	}
	width, err := wantInt(name, args[1])
	if err != nil {
		return nil, err
	}
	fill := " "
	if len(args) == 3 {
		fill, err = wantString(name, args[2])
		if err != nil {
			return nil, err
		}
		if fill == "" {
			fill = " "
		}
	}
	r := []rune(s)
	need := int(width) - len(r)
	if need <= 0 {
		return udm.String(s), nil
	}
	padding := strings.Repeat(fill, need/len([]rune(fill))+1)
	padding = string([]rune(padding)[:need])
	if start {
		return udm.String(padding + s), nil
	}
	return udm.String(s + padding), nil
}

func fnRepeat(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("repeat", args, 2, 2); err != nil {
		return nil, err
	}
	s, err := wantString("repeat", args[0])
	if err != nil {
		return nil, err
	}
	n, err := wantInt("repeat", args[1])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, argError("repeat", "count must be non-negative, got %d", n)
	}
	return udm.String(strings.Repeat(s, int(n))), nil
}
