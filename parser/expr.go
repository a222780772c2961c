// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"strconv"

	"github.com/utlxlang/utlx/ast"
	"github.com/utlxlang/utlx/lexer"
)

// parseExpression is the grammar's entry point and its lowest precedence
// level: a let-binding followed by its continuation, or (falling through)
// a pipeline expression.
func (p *parser) parseExpression() ast.Node {
	if p.cur().Type == lexer.KwLet {
		start := p.cur().Span.Start
		p.advance()
		name := p.cur().Literal
		p.advance()
		p.expect(lexer.Assign)
		val := p.parseExpression()
		p.expectLetTerminator()
		cont := p.parseExpression()
		return &ast.Block{
			Base:   ast.NewBase(p.span(start)),
			Lets:   []ast.Node{&ast.LetBinding{Base: ast.NewBase(p.span(start)), Name: name, Value: val}},
			Result: cont,
		}
	}
	return p.parsePipeline()
}

// parsePipeline handles the left-associative `|>` operator, the lowest
// ordinary binary-operator precedence level.
func (p *parser) parsePipeline() ast.Node {
	left := p.parseOrNullish()
	for p.cur().Type == lexer.Pipe {
		start := left.Span().Start
		p.advance()
		right := p.parseOrNullish()
		left = &ast.BinaryOp{Base: ast.NewBase(p.span(start)), Op: "|>", Left: left, Right: right}
	}
	return left
}

// parseOrNullish handles `||` and `??`, which share a precedence level but
// carry distinct falsy-test semantics resolved later by interp.
func (p *parser) parseOrNullish() ast.Node {
	left := p.parseAnd()
	for p.cur().Type == lexer.OrOr || p.cur().Type == lexer.Question2 || p.cur().Type == lexer.KwOr {
		start := left.Span().Start
		op := "||"
		if p.cur().Type == lexer.Question2 {
			op = "??"
		}
		p.advance()
		right := p.parseAnd()
		left = &ast.BinaryOp{Base: ast.NewBase(p.span(start)), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseAnd() ast.Node {
	left := p.parseEquality()
	for p.cur().Type == lexer.AndAnd || p.cur().Type == lexer.KwAnd {
		start := left.Span().Start
		p.advance()
		right := p.parseEquality()
		left = &ast.BinaryOp{Base: ast.NewBase(p.span(start)), Op: "&&", Left: left, Right: right}
	}
	return left
}

func (p *parser) parseEquality() ast.Node {
	left := p.parseComparison()
	for p.cur().Type == lexer.EqEq || p.cur().Type == lexer.NotEq {
		start := left.Span().Start
		op := p.cur().Literal
		p.advance()
		right := p.parseComparison()
		left = &ast.BinaryOp{Base: ast.NewBase(p.span(start)), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseComparison() ast.Node {
	left := p.parseAdditive()
	for p.cur().Type == lexer.Lt || p.cur().Type == lexer.LtEq || p.cur().Type == lexer.Gt || p.cur().Type == lexer.GtEq {
		start := left.Span().Start
		op := p.cur().Literal
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryOp{Base: ast.NewBase(p.span(start)), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseAdditive() ast.Node {
	left := p.parseMultiplicative()
	for p.cur().Type == lexer.Plus || p.cur().Type == lexer.Minus {
		start := left.Span().Start
		op := p.cur().Literal
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryOp{Base: ast.NewBase(p.span(start)), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseMultiplicative() ast.Node {
	left := p.parseUnary()
	for p.cur().Type == lexer.Star || p.cur().Type == lexer.Slash || p.cur().Type == lexer.Percent {
		start := left.Span().Start
		op := p.cur().Literal
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryOp{Base: ast.NewBase(p.span(start)), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseUnary() ast.Node {
	if p.cur().Type == lexer.Minus || p.cur().Type == lexer.Bang || p.cur().Type == lexer.KwNot {
		start := p.cur().Span.Start
		op := p.cur().Literal
		if p.cur().Type == lexer.KwNot {
			op = "!"
		}
		p.advance()
		operand := p.parseUnary()
		return &ast.UnaryOp{Base: ast.NewBase(p.span(start)), Op: op, Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix handles the highest-precedence level: member access,
// attribute access, recursive descent, wildcard, indexing, and calls,
// chained left to right.
func (p *parser) parsePostfix() ast.Node {
	return p.parsePostfixFrom(p.parsePrimary())
}

// parsePostfixFrom continues the postfix chain starting from an
// already-parsed node, used both by parsePostfix and by the implicit
// current-element reference (a leading `.`) in parsePrimary.
func (p *parser) parsePostfixFrom(node ast.Node) ast.Node {
	for {
		start := node.Span().Start
		switch p.cur().Type {
		case lexer.Dot:
			p.advance()
			switch p.cur().Type {
			case lexer.At:
				p.advance()
				name := p.cur().Literal
				p.advance()
				node = &ast.AttrAccess{Base: ast.NewBase(p.span(start)), Target: node, Name: name}
			case lexer.Star:
				p.advance()
				node = &ast.Wildcard{Base: ast.NewBase(p.span(start)), Target: node}
			default:
				name := p.cur().Literal
				p.advance()
				node = &ast.PathAccess{Base: ast.NewBase(p.span(start)), Target: node, Name: name}
			}
		case lexer.DotDot:
			p.advance()
			name := p.cur().Literal
			p.advance()
			node = &ast.RecursiveDescent{Base: ast.NewBase(p.span(start)), Target: node, Name: name}
		case lexer.LBracket:
			p.advance()
			idx := p.parseExpression()
			p.expect(lexer.RBracket)
			node = &ast.IndexAccess{Base: ast.NewBase(p.span(start)), Target: node, Index: idx}
		case lexer.LParen:
			args := p.parseArgList()
			node = &ast.Call{Base: ast.NewBase(p.span(start)), Callee: node, Args: args}
		default:
			return node
		}
	}
}

func (p *parser) parseArgList() []ast.Node {
	var args []ast.Node
	p.expect(lexer.LParen)
	for p.cur().Type != lexer.RParen && p.cur().Type != lexer.EOF {
		args = append(args, p.parseExpression())
		if p.cur().Type == lexer.Comma {
			p.advance()
		}
	}
	p.expect(lexer.RParen)
	return args
}

func (p *parser) parsePrimary() ast.Node {
	start := p.cur().Span.Start

	// Single-parameter lambda without parens: `ident => body`.
	if p.cur().Type == lexer.Ident && p.at(1) == lexer.FatArrow {
		name := p.cur().Literal
		p.advance()
		p.advance() // '=>'
		body := p.parseExpression()
		return &ast.Lambda{
			Base: ast.NewBase(p.span(start)), Params: []ast.Param{{Name: name}}, Body: body,
		}
	}

	// A leading `.` inside a predicate or lambda body refers to the
	// current element context, e.g. `items[.price > 10]`.
	if p.cur().Type == lexer.Dot {
		implicit := &ast.Ident{Base: ast.NewBase(p.span(start)), Name: "."}
		return p.parsePostfixFrom(implicit)
	}

	switch p.cur().Type {
	case lexer.KwNull:
		p.advance()
		return &ast.NullLit{Base: ast.NewBase(p.span(start))}
	case lexer.KwTrue:
		p.advance()
		return &ast.BoolLit{Base: ast.NewBase(p.span(start)), Value: true}
	case lexer.KwFalse:
		p.advance()
		return &ast.BoolLit{Base: ast.NewBase(p.span(start)), Value: false}
	case lexer.Int:
		lit := p.cur().Literal
		p.advance()
		v, _ := strconv.ParseInt(lit, 10, 64)
		return &ast.IntLit{Base: ast.NewBase(p.span(start)), Value: v}
	case lexer.Float:
		lit := p.cur().Literal
		p.advance()
		v, _ := strconv.ParseFloat(lit, 64)
		return &ast.FloatLit{Base: ast.NewBase(p.span(start)), Value: v}
	case lexer.String:
		lit := p.cur().Literal
		p.advance()
		return &ast.StringLit{Base: ast.NewBase(p.span(start)), Value: lit}
	case lexer.Dollar:
		p.advance()
		name := ""
		if p.cur().Type == lexer.Ident {
			name = p.cur().Literal
			p.advance()
		}
		return &ast.InputRef{Base: ast.NewBase(p.span(start)), Name: name}
	case lexer.Ident:
		name := p.cur().Literal
		p.advance()
		return &ast.Ident{Base: ast.NewBase(p.span(start)), Name: name}
	case lexer.DotDot:
		// Leading recursive descent anchored at the current input.
		p.advance()
		name := p.cur().Literal
		p.advance()
		return &ast.RecursiveDescent{Base: ast.NewBase(p.span(start)), Target: nil, Name: name}
	case lexer.LBracket:
		return p.parseArrayLit(start)
	case lexer.LBrace:
		return p.parseObjectLit(start)
	case lexer.LParen:
		return p.parseParenOrLambda(start)
	case lexer.KwIf:
		return p.parseIf(start)
	case lexer.KwMatch:
		return p.parseMatch(start)
	case lexer.KwFunction:
		return p.parseAnonymousFunction(start)
	default:
		p.errorf(p.cur().Span, "unexpected token %s in expression", p.cur().Type)
		tok := p.advance()
		return &ast.NullLit{Base: ast.NewBase(tok.Span)}
	}
}

