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

// evalMatch evaluates the scrutinee once and dispatches to the first case
// whose pattern matches, in source order, per spec's match semantics.
func (it *Interp) evalMatch(ctx context.Context, n *ast.Match, e *env.Environment) (*udm.Value, *uerr.Error) {
	v, err := it.Eval(ctx, n.Scrutinee, e)
	if err != nil {
		return nil, err
	}
	v = udm.Unwrap(v)
	for _, c := range n.Cases {
		scope := e.Push()
		ok, err := it.matchPattern(ctx, c.Pattern, v, scope)
		if err != nil {
			return nil, err
		}
		if ok {
			return it.Eval(ctx, c.Body, scope)
		}
	}
	return nil, uerr.New(uerr.NoTemplateMatch, n.Span(), "no match arm matched value of type %s", udm.TypeOf(v))
}

// matchPattern reports whether pat matches v, binding any names pat
// introduces into scope as a side effect of a successful match.
func (it *Interp) matchPattern(ctx context.Context, pat ast.Pattern, v *udm.Value, scope *env.Environment) (bool, *uerr.Error) {
	switch p := pat.(type) {
	case ast.WildcardPattern:
		return true, nil
	case ast.BindingPattern:
		scope.DefineValue(p.Name, v)
		return true, nil
	case ast.TypePattern:
		if udm.TypeOf(v) != p.TypeName {
			return false, nil
		}
		if p.Name != "" {
			scope.DefineValue(p.Name, v)
		}
		return true, nil
	case ast.LiteralPattern:
		lit, err := it.Eval(ctx, p.Value, scope)
		if err != nil {
			return false, err
		}
		return udm.Equal(lit, v), nil
	case ast.ObjectPattern:
		if v.Kind() != udm.KindObject {
			return false, nil
		}
		for _, f := range p.Fields {
			fv, ok := v.Object().Get(f.Key)
			if !ok {
				return false, nil
			}
			matched, err := it.matchPattern(ctx, f.Pattern, udm.Unwrap(fv), scope)
			if err != nil {
				return false, err
			}
			if !matched {
				return false, nil
			}
		}
		return true, nil
	case ast.ArrayPattern:
		if v.Kind() != udm.KindArray {
			return false, nil
		}
		elems := v.Elements()
		if p.Rest == "" {
			if len(elems) != len(p.Elements) {
				return false, nil
			}
		} else if len(elems) < len(p.Elements) {
			return false, nil
		}
		for i, sub := range p.Elements {
			matched, err := it.matchPattern(ctx, sub, udm.Unwrap(elems[i]), scope)
			if err != nil {
				return false, err
			}
			if !matched {
				return false, nil
			}
		}
		if p.Rest != "" {
			scope.DefineValue(p.Rest, udm.Array(elems[len(p.Elements):]...))
		}
		return true, nil
	case ast.GuardedPattern:
		matched, err := it.matchPattern(ctx, p.Inner, v, scope)
		if err != nil || !matched {
			return matched, err
		}
		guard, err := it.Eval(ctx, p.Guard, scope)
		if err != nil {
			return false, err
		}
		if guard.Kind() != udm.KindBool {
			return false, uerr.New(uerr.TypeMismatch, p.Guard.Span(), "when guard must be boolean, got %s", udm.TypeOf(guard))
		}
		return guard.AsBool(), nil
	default:
		return false, uerr.New(uerr.TypeMismatch, udm.Span{}, "internal error: unhandled pattern %T", pat)
	}
}
