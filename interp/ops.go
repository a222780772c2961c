// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"context"
	"strings"

	"github.com/utlxlang/utlx/ast"
	"github.com/utlxlang/utlx/env"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func (it *Interp) evalUnaryOp(ctx context.Context, n *ast.UnaryOp, e *env.Environment) (*udm.Value, *uerr.Error) {
	v, err := it.Eval(ctx, n.Operand, e)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		switch v.Kind() {
		case udm.KindInt:
			return udm.Int(-v.AsInt()), nil
		case udm.KindFloat:
			return udm.Float(-v.AsFloat()), nil
		default:
			return nil, uerr.New(uerr.TypeMismatch, n.Span(), "unary - requires a number, got %s", udm.TypeOf(v))
		}
	case "!":
		if v.Kind() != udm.KindBool {
			return nil, uerr.New(uerr.TypeMismatch, n.Span(), "unary ! requires a boolean, got %s", udm.TypeOf(v))
		}
		return udm.Bool(!v.AsBool()), nil
	default:
		return nil, uerr.New(uerr.TypeMismatch, n.Span(), "internal error: unknown unary operator %q", n.Op)
	}
}

// evalBinaryOp dispatches every binary operator. `||`, `&&`, and `??` are
// short-circuiting so the right operand is only evaluated when needed;
// `|>` rewrites `x |> f(a, b)` into a call to f with x prepended, per
// spec's pipeline operator.
func (it *Interp) evalBinaryOp(ctx context.Context, n *ast.BinaryOp, e *env.Environment) (*udm.Value, *uerr.Error) {
	switch n.Op {
	case "&&":
		l, err := it.Eval(ctx, n.Left, e)
		if err != nil {
			return nil, err
		}
		if l.Kind() != udm.KindBool {
			return nil, uerr.New(uerr.TypeMismatch, n.Left.Span(), "&& requires a boolean, got %s", udm.TypeOf(l))
		}
		if !l.AsBool() {
			return udm.Bool(false), nil
		}
		r, err := it.Eval(ctx, n.Right, e)
		if err != nil {
			return nil, err
		}
		if r.Kind() != udm.KindBool {
			return nil, uerr.New(uerr.TypeMismatch, n.Right.Span(), "&& requires a boolean, got %s", udm.TypeOf(r))
		}
		return r, nil
	case "||":
		l, err := it.Eval(ctx, n.Left, e)
		if err != nil {
			return nil, err
		}
		if !udm.IsFalsyForOr(l) {
			return l, nil
		}
		return it.Eval(ctx, n.Right, e)
	case "??":
		l, err := it.Eval(ctx, n.Left, e)
		if err != nil {
			return nil, err
		}
		if !udm.IsNullish(l) {
			return l, nil
		}
		return it.Eval(ctx, n.Right, e)
	case "|>":
		return it.evalPipeline(ctx, n, e)
	}

	l, err := it.Eval(ctx, n.Left, e)
	if err != nil {
		return nil, err
	}
	r, err := it.Eval(ctx, n.Right, e)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "==":
		return udm.Bool(udm.Equal(l, r)), nil
	case "!=":
		return udm.Bool(!udm.Equal(l, r)), nil
	case "<", "<=", ">", ">=":
		return compareOp(n, l, r)
	case "+":
		return addOp(n, l, r)
	case "-", "*", "/", "%":
		return arithOp(n, l, r)
	default:
		return nil, uerr.New(uerr.TypeMismatch, n.Span(), "internal error: unknown binary operator %q", n.Op)
	}
}

// evalPipeline rewrites `x |> expr`. When expr is a Call, x is prepended
// to its argument list; when expr is any other expression (an identifier
// naming a function, or a lambda), x is the sole argument.
func (it *Interp) evalPipeline(ctx context.Context, n *ast.BinaryOp, e *env.Environment) (*udm.Value, *uerr.Error) {
	x, err := it.Eval(ctx, n.Left, e)
	if err != nil {
		return nil, err
	}
	if call, ok := n.Right.(*ast.Call); ok {
		args := make([]*udm.Value, 0, len(call.Args)+1)
		args = append(args, x)
		for _, a := range call.Args {
			v, err := it.Eval(ctx, a, e)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return it.invokeCallee(ctx, call, call.Callee, args, e)
	}
	callee, err := it.Eval(ctx, n.Right, e)
	if err != nil {
		return nil, err
	}
	return it.invokeValue(ctx, n, callee, []*udm.Value{x})
}

func compareOp(n *ast.BinaryOp, l, r *udm.Value) (*udm.Value, *uerr.Error) {
	if l.Kind() == udm.KindString && r.Kind() == udm.KindString {
		switch n.Op {
		case "<":
			return udm.Bool(l.AsString() < r.AsString()), nil
		case "<=":
			return udm.Bool(l.AsString() <= r.AsString()), nil
		case ">":
			return udm.Bool(l.AsString() > r.AsString()), nil
		default:
			return udm.Bool(l.AsString() >= r.AsString()), nil
		}
	}
	lf, lok := udm.AsFloat64(l)
	rf, rok := udm.AsFloat64(r)
	if !lok || !rok {
		return nil, uerr.New(uerr.TypeMismatch, n.Span(), "%s requires two numbers or two strings, got %s and %s", n.Op, udm.TypeOf(l), udm.TypeOf(r))
	}
	switch n.Op {
	case "<":
		return udm.Bool(lf < rf), nil
	case "<=":
		return udm.Bool(lf <= rf), nil
	case ">":
		return udm.Bool(lf > rf), nil
	default:
		return udm.Bool(lf >= rf), nil
	}
}

// addOp implements `+`: numeric addition, or string concatenation when
// either operand is a string (the other is stringified).
func addOp(n *ast.BinaryOp, l, r *udm.Value) (*udm.Value, *uerr.Error) {
	if l.Kind() == udm.KindString || r.Kind() == udm.KindString {
		var b strings.Builder
		b.WriteString(udm.Stringify(l))
		b.WriteString(udm.Stringify(r))
		return udm.String(b.String()), nil
	}
	return arithOp(n, l, r)
}

func arithOp(n *ast.BinaryOp, l, r *udm.Value) (*udm.Value, *uerr.Error) {
	if l.Kind() == udm.KindInt && r.Kind() == udm.KindInt {
		a, b := l.AsInt(), r.AsInt()
		switch n.Op {
		case "+":
			return udm.Int(a + b), nil
		case "-":
			return udm.Int(a - b), nil
		case "*":
			return udm.Int(a * b), nil
		case "/":
			if b == 0 {
				return nil, uerr.New(uerr.DivisionByZero, n.Span(), "division by zero")
			}
			return udm.Int(a / b), nil
		case "%":
			if b == 0 {
				return nil, uerr.New(uerr.DivisionByZero, n.Span(), "modulo by zero")
			}
			return udm.Int(a % b), nil
		}
	}
	lf, lok := udm.AsFloat64(l)
	rf, rok := udm.AsFloat64(r)
	if !lok || !rok {
		return nil, uerr.New(uerr.TypeMismatch, n.Span(), "%s requires two numbers, got %s and %s", n.Op, udm.TypeOf(l), udm.TypeOf(r))
	}
	switch n.Op {
	case "+":
		return udm.Float(lf + rf), nil
	case "-":
		return udm.Float(lf - rf), nil
	case "*":
		return udm.Float(lf * rf), nil
	case "/":
		if rf == 0 {
			return nil, uerr.New(uerr.DivisionByZero, n.Span(), "division by zero")
		}
		return udm.Float(lf / rf), nil
	default:
		return nil, uerr.New(uerr.TypeMismatch, n.Span(), "%% requires two integers, got %s and %s", udm.TypeOf(l), udm.TypeOf(r))
	}
}
