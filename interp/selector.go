// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"context"

	"github.com/utlxlang/utlx/ast"
	"github.com/utlxlang/utlx/env"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// evalPathAccess implements `.ident`: member access on an object, with
// automatic broadcast over an array target (spec's selector "auto-map"
// rule — `.items.name` on an array of objects yields the array of each
// element's `.name`, in document order, skipping elements where the
// property is absent rather than erroring).
func (it *Interp) evalPathAccess(ctx context.Context, n *ast.PathAccess, e *env.Environment) (*udm.Value, *uerr.Error) {
	target, err := it.Eval(ctx, n.Target, e)
	if err != nil {
		return nil, err
	}
	return it.pathAccess(n, udm.Unwrap(target), n.Name)
}

func (it *Interp) pathAccess(n ast.Node, target *udm.Value, name string) (*udm.Value, *uerr.Error) {
	switch target.Kind() {
	case udm.KindObject:
		if v, ok := target.Object().Get(name); ok {
			return udm.Unwrap(v), nil
		}
		return udm.Null, nil
	case udm.KindArray:
		var out []*udm.Value
		for _, el := range target.Elements() {
			v, err := it.pathAccess(n, udm.Unwrap(el), name)
			if err != nil {
				return nil, err
			}
			if v.Kind() == udm.KindNull {
				continue
			}
			out = append(out, v)
		}
		return udm.Array(out...), nil
	case udm.KindNull:
		return udm.Null, nil
	default:
		return nil, uerr.New(uerr.SelectorFailure, n.Span(), "cannot access property %q of a %s", name, udm.TypeOf(target))
	}
}

// evalAttrAccess implements `.@ident`: attribute access, broadcasting over
// arrays the same way evalPathAccess does.
func (it *Interp) evalAttrAccess(ctx context.Context, n *ast.AttrAccess, e *env.Environment) (*udm.Value, *uerr.Error) {
	target, err := it.Eval(ctx, n.Target, e)
	if err != nil {
		return nil, err
	}
	return it.attrAccess(n, udm.Unwrap(target), n.Name)
}

func (it *Interp) attrAccess(n ast.Node, target *udm.Value, name string) (*udm.Value, *uerr.Error) {
	switch target.Kind() {
	case udm.KindObject:
		if v, ok := target.Object().Attr(name); ok {
			return udm.String(v), nil
		}
		return udm.Null, nil
	case udm.KindArray:
		var out []*udm.Value
		for _, el := range target.Elements() {
			v, err := it.attrAccess(n, udm.Unwrap(el), name)
			if err != nil {
				return nil, err
			}
			if v.Kind() == udm.KindNull {
				continue
			}
			out = append(out, v)
		}
		return udm.Array(out...), nil
	case udm.KindNull:
		return udm.Null, nil
	default:
		return nil, uerr.New(uerr.SelectorFailure, n.Span(), "cannot access attribute %q of a %s", name, udm.TypeOf(target))
	}
}

// evalIndexAccess implements `[expr]`. When the index expression evaluates
// to a number it is an element index into an array (negative indices count
// from the end); when it evaluates to a boolean, or when the target is an
// array and the index expression must be re-evaluated per element, it acts
// as a predicate filter. Since the index expression may reference the
// current element (e.g. `$input.items[.price > 10]`), predicates are
// detected by evaluating the index expression once against each candidate
// element with that element bound as the implicit context; a numeric
// result instead selects by position and is only valid against the target
// directly, not per element.
func (it *Interp) evalIndexAccess(ctx context.Context, n *ast.IndexAccess, e *env.Environment) (*udm.Value, *uerr.Error) {
	target, err := it.Eval(ctx, n.Target, e)
	if err != nil {
		return nil, err
	}
	target = udm.Unwrap(target)

	// A statically-numeric index (the common case: a literal or an
	// expression that doesn't reference the element context) is resolved
	// once against the whole target, which must be an array.
	if !referencesElementContext(n.Index) {
		idx, err := it.Eval(ctx, n.Index, e)
		if err != nil {
			return nil, err
		}
		if idx.Kind() == udm.KindInt {
			return indexInto(n, target, int(idx.AsInt()))
		}
		if idx.Kind() == udm.KindBool {
			return it.filterArray(ctx, n, target, func(*udm.Value) (*udm.Value, *uerr.Error) { return idx, nil }, e)
		}
		return nil, uerr.New(uerr.TypeMismatch, n.Index.Span(), "index/predicate must be a number or boolean, got %s", udm.TypeOf(idx))
	}

	return it.filterArray(ctx, n, target, func(elem *udm.Value) (*udm.Value, *uerr.Error) {
		scope := e.Push()
		scope.DefineValue(".", elem)
		return it.Eval(ctx, n.Index, scope)
	}, e)
}

// referencesElementContext reports whether expr can only be evaluated
// meaningfully per-element (it mentions the reserved "." current-context
// binding somewhere in its tree). This is a conservative syntactic check:
// any PathAccess/AttrAccess/IndexAccess/comparison rooted at an Ident "."
// counts.
func referencesElementContext(expr ast.Node) bool {
	switch n := expr.(type) {
	case *ast.Ident:
		return n.Name == "."
	case *ast.PathAccess:
		return referencesElementContext(n.Target)
	case *ast.AttrAccess:
		return referencesElementContext(n.Target)
	case *ast.IndexAccess:
		return referencesElementContext(n.Target) || referencesElementContext(n.Index)
	case *ast.BinaryOp:
		return referencesElementContext(n.Left) || referencesElementContext(n.Right)
	case *ast.UnaryOp:
		return referencesElementContext(n.Operand)
	default:
		return false
	}
}

func indexInto(n ast.Node, target *udm.Value, idx int) (*udm.Value, *uerr.Error) {
	if target.Kind() != udm.KindArray {
		return nil, uerr.New(uerr.SelectorFailure, n.Span(), "cannot index a %s", udm.TypeOf(target))
	}
	elems := target.Elements()
	if idx < 0 {
		idx += len(elems)
	}
	if idx < 0 || idx >= len(elems) {
		return udm.Null, nil
	}
	return udm.Unwrap(elems[idx]), nil
}

func (it *Interp) filterArray(ctx context.Context, n ast.Node, target *udm.Value, pred func(*udm.Value) (*udm.Value, *uerr.Error), e *env.Environment) (*udm.Value, *uerr.Error) {
	if target.Kind() != udm.KindArray {
		return nil, uerr.New(uerr.SelectorFailure, n.Span(), "cannot filter a %s", udm.TypeOf(target))
	}
	var out []*udm.Value
	for _, el := range target.Elements() {
		cond, err := pred(el)
		if err != nil {
			return nil, err
		}
		if cond.Kind() != udm.KindBool {
			return nil, uerr.New(uerr.TypeMismatch, n.Span(), "predicate must be boolean, got %s", udm.TypeOf(cond))
		}
		if cond.AsBool() {
			out = append(out, udm.Unwrap(el))
		}
	}
	return udm.Array(out...), nil
}

// evalRecursiveDescent implements `..ident`: a pre-order, document-order
// search for every Object anywhere beneath Target (including Target
// itself) whose properties contain Name, collecting each match's value. A
// match does not prune its own subtree — descent continues into a
// matched object's children too, since a property can legally recur at
// multiple depths.
func (it *Interp) evalRecursiveDescent(ctx context.Context, n *ast.RecursiveDescent, e *env.Environment) (*udm.Value, *uerr.Error) {
	var root *udm.Value
	if n.Target == nil {
		v, ok := it.Inputs[""]
		if !ok {
			return nil, uerr.New(uerr.UnresolvedBinding, n.Span(), "no default input for recursive descent")
		}
		root = v
	} else {
		v, err := it.Eval(ctx, n.Target, e)
		if err != nil {
			return nil, err
		}
		root = v
	}
	var out []*udm.Value
	collectRecursive(udm.Unwrap(root), n.Name, &out)
	return udm.Array(out...), nil
}

func collectRecursive(v *udm.Value, name string, out *[]*udm.Value) {
	switch v.Kind() {
	case udm.KindObject:
		obj := v.Object()
		if match, ok := obj.Get(name); ok {
			*out = append(*out, udm.Unwrap(match))
		}
		for _, k := range obj.Keys() {
			child, _ := obj.Get(k)
			collectRecursive(udm.Unwrap(child), name, out)
		}
	case udm.KindArray:
		for _, el := range v.Elements() {
			collectRecursive(udm.Unwrap(el), name, out)
		}
	}
}

// evalWildcard implements `.*`: every property value of an object, in
// insertion order (stable/deterministic), or the array itself for an
// array.
func (it *Interp) evalWildcard(ctx context.Context, n *ast.Wildcard, e *env.Environment) (*udm.Value, *uerr.Error) {
	target, err := it.Eval(ctx, n.Target, e)
	if err != nil {
		return nil, err
	}
	target = udm.Unwrap(target)
	switch target.Kind() {
	case udm.KindObject:
		obj := target.Object()
		out := make([]*udm.Value, 0, len(obj.Keys()))
		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			out = append(out, udm.Unwrap(v))
		}
		return udm.Array(out...), nil
	case udm.KindArray:
		return target, nil
	default:
		return nil, uerr.New(uerr.SelectorFailure, n.Span(), "cannot wildcard-select a %s", udm.TypeOf(target))
	}
}
