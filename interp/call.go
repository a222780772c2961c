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

func (it *Interp) evalCall(ctx context.Context, n *ast.Call, e *env.Environment) (*udm.Value, *uerr.Error) {
	args := make([]*udm.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := it.Eval(ctx, a, e)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return it.invokeCallee(ctx, n, n.Callee, args, e)
}

// invokeCallee resolves callee (which names the call in source, so a bare
// identifier is checked against the user-function and stdlib tables before
// falling back to evaluating it as an ordinary expression that should
// yield a lambda value — the path taken for higher-order parameters).
func (it *Interp) invokeCallee(ctx context.Context, site ast.Node, callee ast.Node, args []*udm.Value, e *env.Environment) (*udm.Value, *uerr.Error) {
	if ident, ok := callee.(*ast.Ident); ok {
		if cl, ok := it.Functions[ident.Name]; ok {
			return it.applyClosure(ctx, site, cl, args)
		}
		if fn, ok := it.Stdlib[ident.Name]; ok {
			if err := checkCancelled(ctx, site.Span()); err != nil {
				return nil, err
			}
			v, err := fn(ctx, it, args)
			if err != nil {
				return nil, err.WithSpan(site.Span())
			}
			return v, nil
		}
	}
	v, err := it.Eval(ctx, callee, e)
	if err != nil {
		return nil, err
	}
	return it.invokeValue(ctx, site, v, args)
}

// invokeValue calls an already-evaluated callee value, which must be a
// lambda (closure over a user function, a named-function reference, or an
// inline lambda literal).
func (it *Interp) invokeValue(ctx context.Context, site ast.Node, callee *udm.Value, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if callee.Kind() != udm.KindLambda {
		return nil, uerr.New(uerr.TypeMismatch, site.Span(), "cannot call a %s", udm.TypeOf(callee))
	}
	cl, ok := callee.LambdaPayload().(*Closure)
	if !ok {
		return nil, uerr.New(uerr.TypeMismatch, site.Span(), "internal error: malformed lambda value")
	}
	return it.applyClosure(ctx, site, cl, args)
}

// applyClosure checks arity first (spec's call-ordering requirement: an
// arity mismatch is reported before any argument-type error would be),
// then evaluates the body in a fresh frame pushed from the closure's
// captured environment.
func (it *Interp) applyClosure(ctx context.Context, site ast.Node, cl *Closure, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkCancelled(ctx, site.Span()); err != nil {
		return nil, err
	}
	if len(args) != len(cl.Params) {
		return nil, uerr.New(uerr.ArityMismatch, site.Span(), "%s expects %d argument(s), got %d", closureName(cl), len(cl.Params), len(args))
	}
	frame := cl.Env.Push()
	for i, p := range cl.Params {
		frame.DefineValue(p.Name, args[i])
	}
	v, err := it.Eval(ctx, cl.Body, frame)
	if err != nil {
		name := closureName(cl)
		return nil, err.WithTrace(uerr.Frame{Name: name, Span: site.Span()})
	}
	return v, nil
}

func closureName(cl *Closure) string {
	if cl.Name == "" {
		return "<lambda>"
	}
	return cl.Name
}

// spanSite adapts a bare udm.Span to ast.Node so call helpers that anchor
// diagnostics to a source node can be reused from callers that only have a
// span on hand (stdlib higher-order functions have no call-expression node).
type spanSite udm.Span

func (s spanSite) Span() udm.Span { return udm.Span(s) }

// Invoke applies fn (which must be a lambda value) to args, for use by
// stdlib functions such as map/filter/reduce that call back into a
// user-supplied function or named-function reference.
func (it *Interp) Invoke(ctx context.Context, span udm.Span, fn *udm.Value, args []*udm.Value) (*udm.Value, *uerr.Error) {
	return it.invokeValue(ctx, spanSite(span), fn, args)
}
