// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"strconv"

	"github.com/utlxlang/utlx/ast"
	"github.com/utlxlang/utlx/lexer"
	"github.com/utlxlang/utlx/udm"
)

// parseMatch parses `match (scrutinee) { pattern => body, ... }`.
func (p *parser) parseMatch(start udm.Mark) ast.Node {
	p.advance() // 'match'
	p.expect(lexer.LParen)
	scrutinee := p.parseExpression()
	p.expect(lexer.RParen)
	p.expect(lexer.LBrace)

	var cases []ast.MatchCase
	for p.cur().Type != lexer.RBrace && p.cur().Type != lexer.EOF {
		pat := p.parsePattern()
		if p.cur().Type == lexer.KwWhen {
			p.advance()
			guard := p.parseExpression()
			pat = &ast.GuardedPattern{Inner: pat, Guard: guard}
		}
		p.expect(lexer.FatArrow)
		body := p.parseExpression()
		cases = append(cases, ast.MatchCase{Pattern: pat, Body: body})
		if p.cur().Type == lexer.Comma {
			p.advance()
		}
	}
	p.expect(lexer.RBrace)
	return &ast.Match{Base: ast.NewBase(p.span(start)), Scrutinee: scrutinee, Cases: cases}
}

// parsePattern parses one match-arm pattern: literal, wildcard `_`,
// binding identifier, type pattern (`string as s`), object pattern, or
// array pattern with an optional `..rest` tail.
func (p *parser) parsePattern() ast.Pattern {
	switch p.cur().Type {
	case lexer.KwNull:
		start := p.cur().Span.Start
		p.advance()
		return ast.LiteralPattern{Value: &ast.NullLit{Base: ast.NewBase(p.span(start))}}
	case lexer.KwTrue:
		start := p.cur().Span.Start
		p.advance()
		return ast.LiteralPattern{Value: &ast.BoolLit{Base: ast.NewBase(p.span(start)), Value: true}}
	case lexer.KwFalse:
		start := p.cur().Span.Start
		p.advance()
		return ast.LiteralPattern{Value: &ast.BoolLit{Base: ast.NewBase(p.span(start)), Value: false}}
	case lexer.Int:
		start := p.cur().Span.Start
		lit := p.advance().Literal
		v, _ := strconv.ParseInt(lit, 10, 64)
		return ast.LiteralPattern{Value: &ast.IntLit{Base: ast.NewBase(p.span(start)), Value: v}}
	case lexer.Float:
		start := p.cur().Span.Start
		lit := p.advance().Literal
		v, _ := strconv.ParseFloat(lit, 64)
		return ast.LiteralPattern{Value: &ast.FloatLit{Base: ast.NewBase(p.span(start)), Value: v}}
	case lexer.String:
		start := p.cur().Span.Start
		lit := p.advance().Literal
		return ast.LiteralPattern{Value: &ast.StringLit{Base: ast.NewBase(p.span(start)), Value: lit}}
	case lexer.LBrace:
		return p.parseObjectPattern()
	case lexer.LBracket:
		return p.parseArrayPattern()
	case lexer.Ident:
		name := p.cur().Literal
		if name == "_" {
			p.advance()
			return ast.WildcardPattern{}
		}
		p.advance()
		// A lowercase type name followed by `as binding` is a type
		// pattern; a bare identifier is a catch-all binding pattern.
		if p.cur().Type == lexer.Ident && p.cur().Literal == "as" {
			p.advance()
			bound := p.cur().Literal
			p.advance()
			return ast.TypePattern{TypeName: name, Name: bound}
		}
		if isTypeName(name) {
			return ast.TypePattern{TypeName: name}
		}
		return ast.BindingPattern{Name: name}
	default:
		p.errorf(p.cur().Span, "unexpected token %s in pattern", p.cur().Type)
		p.advance()
		return ast.WildcardPattern{}
	}
}

func isTypeName(s string) bool {
	switch s {
	case "string", "number", "boolean", "array", "object", "null":
		return true
	}
	return false
}

func (p *parser) parseObjectPattern() ast.Pattern {
	p.advance() // '{'
	var fields []ast.ObjectPatternField
	for p.cur().Type != lexer.RBrace && p.cur().Type != lexer.EOF {
		key := p.cur().Literal
		p.advance()
		p.expect(lexer.Colon)
		sub := p.parsePattern()
		fields = append(fields, ast.ObjectPatternField{Key: key, Pattern: sub})
		if p.cur().Type == lexer.Comma {
			p.advance()
		}
	}
	p.expect(lexer.RBrace)
	return ast.ObjectPattern{Fields: fields}
}

func (p *parser) parseArrayPattern() ast.Pattern {
	p.advance() // '['
	var elems []ast.Pattern
	rest := ""
	for p.cur().Type != lexer.RBracket && p.cur().Type != lexer.EOF {
		if p.cur().Type == lexer.DotDot {
			p.advance()
			rest = p.cur().Literal
			p.advance()
			break
		}
		elems = append(elems, p.parsePattern())
		if p.cur().Type == lexer.Comma {
			p.advance()
		}
	}
	p.expect(lexer.RBracket)
	return ast.ArrayPattern{Elements: elems, Rest: rest}
}
