// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"
	"sort"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerArray(r map[string]interp.StdlibFunc) {
	r["map"] = fnMap
	r["filter"] = fnFilter
	r["reduce"] = fnReduce
	r["flatMap"] = fnFlatMap
	r["first"] = fnFirst
	r["last"] = fnLast
	r["slice"] = fnSlice
	r["concat"] = fnConcat
	r["flatten"] = fnFlatten
	r["reverseArray"] = fnReverseArray
	r["sortArray"] = fnSortArray
	r["sortBy"] = fnSortBy
	r["distinct"] = fnDistinct
	r["groupBy"] = fnGroupBy
	r["zip"] = fnZip
	r["range"] = fnRange
	r["sum"] = fnSum
	r["avg"] = fnAvg
	r["minOf"] = fnMinOf
	r["maxOf"] = fnMaxOf
	r["any"] = fnAny
	r["all"] = fnAll
	r["find"] = fnFind
	r["isEmpty"] = fnIsEmpty
}

// toArrayOperand implements spec §4.9's "lift-or-fail" rule for map, filter,
// reduce, and flatMap: unlike selector auto-map, these always require an
// array and never silently wrap a scalar into a singleton.
func toArrayOperand(name string, v *udm.Value) ([]*udm.Value, *uerr.Error) {
	v = udm.Unwrap(v)
	if v.Kind() != udm.KindArray {
		return nil, uerr.New(uerr.TypeMismatch, udm.Span{}, "%s: expects an array, got %s", name, udm.TypeOf(v))
	}
	return v.Elements(), nil
}

func fnMap(ctx context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("map", args, 2, 2); err != nil {
		return nil, err
	}
	elems, err := toArrayOperand("map", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantLambda("map", args[1])
	if err != nil {
		return nil, err
	}
	out := make([]*udm.Value, 0, len(elems))
	for i, e := range elems {
		if err := interp.CheckCancelled(ctx, udm.Span{}); err != nil {
			return nil, err
		}
		v, err := call2(ctx, it, fn, e, udm.Int(int64(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return udm.Array(out...), nil
}

func fnFilter(ctx context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("filter", args, 2, 2); err != nil {
		return nil, err
	}
	elems, err := toArrayOperand("filter", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantLambda("filter", args[1])
	if err != nil {
		return nil, err
	}
	out := make([]*udm.Value, 0, len(elems))
	for i, e := range elems {
		if err := interp.CheckCancelled(ctx, udm.Span{}); err != nil {
			return nil, err
		}
		keep, err := call2(ctx, it, fn, e, udm.Int(int64(i)))
		if err != nil {
			return nil, err
		}
		b, err := wantBool("filter", keep)
		if err != nil {
			return nil, err
		}
		if b {
			out = append(out, e)
		}
	}
	return udm.Array(out...), nil
}

func fnReduce(ctx context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("reduce", args, 3, 3); err != nil {
		return nil, err
	}
	elems, err := toArrayOperand("reduce", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantLambda("reduce", args[1])
	if err != nil {
		return nil, err
	}
	acc := args[2]
	for _, e := range elems {
		if err := interp.CheckCancelled(ctx, udm.Span{}); err != nil {
			return nil, err
		}
		acc, err = call2(ctx, it, fn, acc, e)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func fnFlatMap(ctx context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("flatMap", args, 2, 2); err != nil {
		return nil, err
	}
	elems, err := toArrayOperand("flatMap", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantLambda("flatMap", args[1])
	if err != nil {
		return nil, err
	}
	out := make([]*udm.Value, 0, len(elems))
	for i, e := range elems {
		if err := interp.CheckCancelled(ctx, udm.Span{}); err != nil {
			return nil, err
		}
		v, err := call2(ctx, it, fn, e, udm.Int(int64(i)))
		if err != nil {
			return nil, err
		}
		v = udm.Unwrap(v)
		if v.Kind() == udm.KindArray {
			out = append(out, v.Elements()...)
		} else {
			out = append(out, v)
		}
	}
	return udm.Array(out...), nil
}

func fnFirst(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("first", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray("first", args[0])
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return udm.Null, nil
	}
	return elems[0], nil
}

func fnLast(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("last", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray("last", args[0])
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return udm.Null, nil
	}
	return elems[len(elems)-1], nil
}

func fnSlice(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("slice", args, 2, 3); err != nil {
		return nil, err
	}
	elems, err := wantArray("slice", args[0])
	if err != nil {
		return nil, err
	}
	start, err := wantInt("slice", args[1])
	if err != nil {
		return nil, err
	}
	end := int64(len(elems))
	if len(args) == 3 {
		end, err = wantInt("slice", args[2])
		if err != nil {
			return nil, err
		}
	}
	start = clampIndex(start, int64(len(elems)))
	end = clampIndex(end, int64(len(elems)))
	if end < start {
		end = start
	}
	return udm.Array(elems[start:end]...), nil
}

func fnConcat(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("concat", args, 1, -1); err != nil {
		return nil, err
	}
	out := make([]*udm.Value, 0)
	for _, a := range args {
		elems, err := wantArray("concat", a)
		if err != nil {
			return nil, err
		}
		out = append(out, elems...)
	}
	return udm.Array(out...), nil
}

func fnFlatten(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("flatten", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray("flatten", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]*udm.Value, 0, len(elems))
	for _, e := range elems {
		u := udm.Unwrap(e)
		if u.Kind() == udm.KindArray {
			out = append(out, u.Elements()...)
		} else {
			out = append(out, e)
		}
	}
	return udm.Array(out...), nil
}

func fnReverseArray(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("reverseArray", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray("reverseArray", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]*udm.Value, len(elems))
	for i, e := range elems {
		out[len(elems)-1-i] = e
	}
	return udm.Array(out...), nil
}

func fnSortArray(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("sortArray", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray("sortArray", args[0])
	if err != nil {
		return nil, err
	}
	out := append([]*udm.Value(nil), elems...)
	var sortErr *uerr.Error
	sort.SliceStable(out, func(i, j int) bool {
		less, e := lessValue(out[i], out[j])
		if e != nil && sortErr == nil {
			sortErr = e
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return udm.Array(out...), nil
}

func lessValue(a, b *udm.Value) (bool, *uerr.Error) {
	a, b = udm.Unwrap(a), udm.Unwrap(b)
	if a.Kind() == udm.KindString && b.Kind() == udm.KindString {
		return a.AsString() < b.AsString(), nil
	}
	af, aok := udm.AsFloat64(a)
	bf, bok := udm.AsFloat64(b)
	if aok && bok {
		return af < bf, nil
	}
	return false, argError("sortArray", "cannot compare %s and %s", udm.TypeOf(a), udm.TypeOf(b))
}

// fnSortBy is stable and keys each element by invoking fn once per element,
// per spec §4.9's documented stability contract.
func fnSortBy(ctx context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("sortBy", args, 2, 2); err != nil {
		return nil, err
	}
	elems, err := wantArray("sortBy", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantLambda("sortBy", args[1])
	if err != nil {
		return nil, err
	}
	keys := make([]*udm.Value, len(elems))
	for i, e := range elems {
		keys[i], err = call1(ctx, it, fn, e)
		if err != nil {
			return nil, err
		}
	}
	idx := make([]int, len(elems))
	for i := range idx {
		idx[i] = i
	}
	var sortErr *uerr.Error
	sort.SliceStable(idx, func(i, j int) bool {
		less, e := lessValue(keys[idx[i]], keys[idx[j]])
		if e != nil && sortErr == nil {
			sortErr = e
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}
	out := make([]*udm.Value, len(elems))
	for i, k := range idx {
		out[i] = elems[k]
	}
	return udm.Array(out...), nil
}

// fnDistinct preserves first-occurrence order per spec §4.9.
func fnDistinct(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("distinct", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray("distinct", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]*udm.Value, 0, len(elems))
	for _, e := range elems {
		dup := false
		for _, seen := range out {
			if udm.Equal(seen, e) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return udm.Array(out...), nil
}

// fnGroupBy preserves first-occurrence order of keys and of elements within
// each group, per spec §4.9.
func fnGroupBy(ctx context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("groupBy", args, 2, 2); err != nil {
		return nil, err
	}
	elems, err := wantArray("groupBy", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantLambda("groupBy", args[1])
	if err != nil {
		return nil, err
	}
	obj := udm.NewObject()
	for _, e := range elems {
		k, err := call1(ctx, it, fn, e)
		if err != nil {
			return nil, err
		}
		key := udm.Stringify(k)
		existing, ok := obj.Get(key)
		if !ok {
			obj = obj.With(key, udm.Array(e))
			continue
		}
		obj = obj.With(key, existing.Append(e))
	}
	return udm.ObjectValue(obj), nil
}

func fnZip(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("zip", args, 2, 2); err != nil {
		return nil, err
	}
	a, err := wantArray("zip", args[0])
	if err != nil {
		return nil, err
	}
	b, err := wantArray("zip", args[1])
	if err != nil {
		return nil, err
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]*udm.Value, n)
	for i := 0; i < n; i++ {
		out[i] = udm.Array(a[i], b[i])
	}
	return udm.Array(out...), nil
}

func fnRange(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("range", args, 1, 2); err != nil {
		return nil, err
	}
	start, end := int64(0), int64(0)
	var err *uerr.Error
	if len(args) == 1 {
		end, err = wantInt("range", args[0])
	} else {
		start, err = wantInt("range", args[0])
		if err == nil {
			end, err = wantInt("range", args[1])
		}
	}
	if err != nil {
		return nil, err
	}
	if end < start {
		return udm.Array(), nil
	}
	out := make([]*udm.Value, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, udm.Int(i))
	}
	return udm.Array(out...), nil
}

func fnSum(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("sum", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray("sum", args[0])
	if err != nil {
		return nil, err
	}
	allInt := true
	var isum int64
	var fsum float64
	for _, e := range elems {
		u := udm.Unwrap(e)
		switch u.Kind() {
		case udm.KindInt:
			isum += u.AsInt()
			fsum += float64(u.AsInt())
		case udm.KindFloat:
			allInt = false
			fsum += u.AsFloat()
		default:
			return nil, argError("sum", "expects an array of numbers, found %s", udm.TypeOf(u))
		}
	}
	if allInt {
		return udm.Int(isum), nil
	}
	return udm.Float(fsum), nil
}

func fnAvg(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("avg", args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray("avg", args[0])
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, argError("avg", "cannot average an empty array")
	}
	var total float64
	for _, e := range elems {
		f, ok := udm.AsFloat64(e)
		if !ok {
			return nil, argError("avg", "expects an array of numbers, found %s", udm.TypeOf(udm.Unwrap(e)))
		}
		total += f
	}
	return udm.Float(total / float64(len(elems))), nil
}

func fnMinOf(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	return extremum("minOf", args, true)
}

func fnMaxOf(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	return extremum("maxOf", args, false)
}

func extremum(name string, args []*udm.Value, wantMin bool) (*udm.Value, *uerr.Error) {
	if err := checkArity(name, args, 1, 1); err != nil {
		return nil, err
	}
	elems, err := wantArray(name, args[0])
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, argError(name, "cannot reduce an empty array")
	}
	best := elems[0]
	for _, e := range elems[1:] {
		less, err := lessValue(e, best)
		if err != nil {
			return nil, err
		}
		if less == wantMin {
			best = e
		}
	}
	return best, nil
}

func fnAny(ctx context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("any", args, 2, 2); err != nil {
		return nil, err
	}
	elems, err := toArrayOperand("any", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantLambda("any", args[1])
	if err != nil {
		return nil, err
	}
	for _, e := range elems {
		v, err := call1(ctx, it, fn, e)
		if err != nil {
			return nil, err
		}
		b, err := wantBool("any", v)
		if err != nil {
			return nil, err
		}
		if b {
			return udm.Bool(true), nil
		}
	}
	return udm.Bool(false), nil
}

func fnAll(ctx context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("all", args, 2, 2); err != nil {
		return nil, err
	}
	elems, err := toArrayOperand("all", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantLambda("all", args[1])
	if err != nil {
		return nil, err
	}
	for _, e := range elems {
		v, err := call1(ctx, it, fn, e)
		if err != nil {
			return nil, err
		}
		b, err := wantBool("all", v)
		if err != nil {
			return nil, err
		}
		if !b {
			return udm.Bool(false), nil
		}
	}
	return udm.Bool(true), nil
}

func fnFind(ctx context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("find", args, 2, 2); err != nil {
		return nil, err
	}
	elems, err := toArrayOperand("find", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := wantLambda("find", args[1])
	if err != nil {
		return nil, err
	}
	for _, e := range elems {
		v, err := call1(ctx, it, fn, e)
		if err != nil {
			return nil, err
		}
		b, err := wantBool("find", v)
		if err != nil {
			return nil, err
		}
		if b {
			return e, nil
		}
	}
	return udm.Null, nil
}

func fnIsEmpty(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("isEmpty", args, 1, 1); err != nil {
		return nil, err
	}
	return udm.Bool(udm.IsEmpty(args[0])), nil
}
