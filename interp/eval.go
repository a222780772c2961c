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

// Eval evaluates node in e, returning the automatically-unwrapped result
// (spec §3.1) or a diagnostic. It switches on the concrete ast type rather
// than using virtual dispatch, matching the rest of the ast package.
func (it *Interp) Eval(ctx context.Context, node ast.Node, e *env.Environment) (*udm.Value, *uerr.Error) {
	if err := ctx.Err(); err != nil {
		return nil, uerr.New(uerr.Cancelled, node.Span(), "evaluation cancelled: %v", err)
	}

	switch n := node.(type) {
	case *ast.NullLit:
		return udm.Null, nil
	case *ast.BoolLit:
		return udm.Bool(n.Value), nil
	case *ast.IntLit:
		return udm.Int(n.Value), nil
	case *ast.FloatLit:
		return udm.Float(n.Value), nil
	case *ast.StringLit:
		return udm.String(n.Value), nil
	case *ast.ArrayLit:
		return it.evalArrayLit(ctx, n, e)
	case *ast.ObjectLit:
		return it.evalObjectLit(ctx, n, e)
	case *ast.Ident:
		return it.evalIdent(n, e)
	case *ast.InputRef:
		return it.evalInputRef(n)
	case *ast.PathAccess:
		return it.evalPathAccess(ctx, n, e)
	case *ast.AttrAccess:
		return it.evalAttrAccess(ctx, n, e)
	case *ast.IndexAccess:
		return it.evalIndexAccess(ctx, n, e)
	case *ast.RecursiveDescent:
		return it.evalRecursiveDescent(ctx, n, e)
	case *ast.Wildcard:
		return it.evalWildcard(ctx, n, e)
	case *ast.UnaryOp:
		return it.evalUnaryOp(ctx, n, e)
	case *ast.BinaryOp:
		return it.evalBinaryOp(ctx, n, e)
	case *ast.Call:
		return it.evalCall(ctx, n, e)
	case *ast.If:
		return it.evalIf(ctx, n, e)
	case *ast.Match:
		return it.evalMatch(ctx, n, e)
	case *ast.Lambda:
		return udm.Lambda(&Closure{Params: n.Params, Body: n.Body, Env: e}), nil
	case *ast.LetBinding:
		v, err := it.Eval(ctx, n.Value, e)
		if err != nil {
			return nil, err
		}
		e.DefineValue(n.Name, v)
		return v, nil
	case *ast.Block:
		return it.evalBlock(ctx, n, e)
	case *ast.Apply:
		return it.evalApply(ctx, n, e)
	case *ast.FunctionDef:
		it.Functions[n.Name] = &Closure{Params: n.Params, Body: n.Body, Env: e, Name: n.Name}
		return udm.Null, nil
	case *ast.TemplateDef:
		it.Templates = append(it.Templates, n)
		return udm.Null, nil
	default:
		return nil, uerr.New(uerr.TypeMismatch, node.Span(), "internal error: unhandled AST node %T", node)
	}
}

func (it *Interp) evalArrayLit(ctx context.Context, n *ast.ArrayLit, e *env.Environment) (*udm.Value, *uerr.Error) {
	elems := make([]*udm.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		v, err := it.Eval(ctx, el, e)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return udm.Array(elems...), nil
}

// evalObjectLit evaluates entries in source order. Let entries push a
// binding visible to every later sibling entry (spec's object-literal
// scoping rule) but never appear in the resulting Object.
func (it *Interp) evalObjectLit(ctx context.Context, n *ast.ObjectLit, e *env.Environment) (*udm.Value, *uerr.Error) {
	scope := e.Push()
	obj := udm.NewObject()
	for _, entry := range n.Entries {
		switch entry.Kind {
		case ast.LetEntry:
			v, err := it.Eval(ctx, entry.Value, scope)
			if err != nil {
				return nil, err
			}
			scope.DefineValue(entry.Name, v)
		case ast.PropertyEntry:
			v, err := it.Eval(ctx, entry.Value, scope)
			if err != nil {
				return nil, err
			}
			obj = obj.With(entry.Key, v)
		case ast.AttributeEntry:
			v, err := it.Eval(ctx, entry.Value, scope)
			if err != nil {
				return nil, err
			}
			obj = obj.WithAttr(entry.Key, udm.Stringify(v))
		}
	}
	return udm.ObjectValue(obj), nil
}

func (it *Interp) evalIdent(n *ast.Ident, e *env.Environment) (*udm.Value, *uerr.Error) {
	if v, ok := e.LookupValue(n.Name); ok {
		return v, nil
	}
	if _, ok := it.Functions[n.Name]; ok {
		// A bare reference to a function name (not a call) yields a lambda
		// value so it can be passed around, e.g. `map($input.items, double)`.
		cl := it.Functions[n.Name]
		return udm.Lambda(cl), nil
	}
	return nil, uerr.New(uerr.UnresolvedBinding, n.Span(), "unresolved binding %q", n.Name)
}

func (it *Interp) evalInputRef(n *ast.InputRef) (*udm.Value, *uerr.Error) {
	v, ok := it.Inputs[n.Name]
	if !ok {
		name := n.Name
		if name == "" {
			name = "<default>"
		}
		return nil, uerr.New(uerr.UnresolvedBinding, n.Span(), "no such input %q", name)
	}
	return v, nil
}

func (it *Interp) evalIf(ctx context.Context, n *ast.If, e *env.Environment) (*udm.Value, *uerr.Error) {
	cond, err := it.Eval(ctx, n.Cond, e)
	if err != nil {
		return nil, err
	}
	if cond.Kind() != udm.KindBool {
		return nil, uerr.New(uerr.TypeMismatch, n.Cond.Span(), "if condition must be boolean, got %s", udm.TypeOf(cond))
	}
	if cond.AsBool() {
		return it.Eval(ctx, n.Then, e)
	}
	if n.Else == nil {
		return udm.Null, nil
	}
	return it.Eval(ctx, n.Else, e)
}

func (it *Interp) evalBlock(ctx context.Context, n *ast.Block, e *env.Environment) (*udm.Value, *uerr.Error) {
	scope := e.Push()
	for _, stmt := range n.Lets {
		if _, err := it.Eval(ctx, stmt, scope); err != nil {
			return nil, err
		}
	}
	if n.Result == nil {
		return udm.Null, nil
	}
	return it.Eval(ctx, n.Result, scope)
}
