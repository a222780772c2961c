// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/utlxlang/utlx/ast"
	"github.com/utlxlang/utlx/lexer"
	"github.com/utlxlang/utlx/udm"
)

func (p *parser) parseArrayLit(start udm.Mark) ast.Node {
	p.advance() // '['
	var elems []ast.Node
	for p.cur().Type != lexer.RBracket && p.cur().Type != lexer.EOF {
		elems = append(elems, p.parseExpression())
		if p.cur().Type == lexer.Comma {
			p.advance()
		}
	}
	p.expect(lexer.RBracket)
	return &ast.ArrayLit{Base: ast.NewBase(p.span(start)), Elements: elems}
}

func (p *parser) parseObjectLit(start udm.Mark) ast.Node {
	p.advance() // '{'
	var entries []ast.ObjectEntry
	for p.cur().Type != lexer.RBrace && p.cur().Type != lexer.EOF {
		switch {
		case p.cur().Type == lexer.KwLet:
			p.advance()
			name := p.cur().Literal
			p.advance()
			p.expect(lexer.Assign)
			val := p.parseExpression()
			entries = append(entries, ast.ObjectEntry{Kind: ast.LetEntry, Name: name, Value: val})
		case p.cur().Type == lexer.At:
			p.advance()
			key := p.cur().Literal
			p.advance()
			p.expect(lexer.Colon)
			val := p.parseExpression()
			entries = append(entries, ast.ObjectEntry{Kind: ast.AttributeEntry, Key: key, Value: val})
		default:
			key := p.cur().Literal
			p.advance()
			p.expect(lexer.Colon)
			val := p.parseExpression()
			entries = append(entries, ast.ObjectEntry{Kind: ast.PropertyEntry, Key: key, Value: val})
		}
		if p.cur().Type == lexer.Comma {
			p.advance()
		} else if p.cur().Type == lexer.Semicolon {
			// permits `let` entries terminated with ';' like block statements
			p.advance()
		}
	}
	p.expect(lexer.RBrace)
	return &ast.ObjectLit{Base: ast.NewBase(p.span(start)), Entries: entries}
}

// parseParenOrLambda disambiguates `(expr)` grouping from a multi-parameter
// lambda `(a, b) => body` by speculatively parsing a parameter list and
// rolling back if it isn't followed by `=>`.
func (p *parser) parseParenOrLambda(start udm.Mark) ast.Node {
	checkpoint := p.mark()
	if params, ok := p.tryParseLambdaParams(); ok {
		body := p.parseExpression()
		return &ast.Lambda{Base: ast.NewBase(p.span(start)), Params: params, Body: body}
	}
	p.restore(checkpoint)

	p.advance() // '('
	inner := p.parseExpression()
	p.expect(lexer.RParen)
	return inner
}

func (p *parser) tryParseLambdaParams() ([]ast.Param, bool) {
	if p.cur().Type != lexer.LParen {
		return nil, false
	}
	p.advance()
	var params []ast.Param
	for p.cur().Type != lexer.RParen {
		if p.cur().Type != lexer.Ident {
			return nil, false
		}
		name := p.cur().Literal
		p.advance()
		typ := ""
		if p.cur().Type == lexer.Colon {
			p.advance()
			if p.cur().Type != lexer.Ident {
				return nil, false
			}
			typ = p.cur().Literal
			p.advance()
		}
		params = append(params, ast.Param{Name: name, Type: typ})
		if p.cur().Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if p.cur().Type != lexer.RParen {
		return nil, false
	}
	p.advance()
	if p.cur().Type != lexer.FatArrow {
		return nil, false
	}
	p.advance()
	return params, true
}

func (p *parser) parseIf(start udm.Mark) ast.Node {
	p.advance() // 'if'
	p.expect(lexer.LParen)
	cond := p.parseExpression()
	p.expect(lexer.RParen)
	then := p.parseExpression()
	var elseNode ast.Node
	if p.cur().Type == lexer.KwElse {
		p.advance()
		elseNode = p.parseExpression()
	}
	return &ast.If{Base: ast.NewBase(p.span(start)), Cond: cond, Then: then, Else: elseNode}
}

func (p *parser) parseAnonymousFunction(start udm.Mark) ast.Node {
	p.advance() // 'function'
	params := p.parseParamList()
	p.expect(lexer.FatArrow)
	body := p.parseExpression()
	return &ast.Lambda{Base: ast.NewBase(p.span(start)), Params: params, Body: body}
}
