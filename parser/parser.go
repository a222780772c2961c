// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package parser implements a recursive-descent parser for UTL-X source,
// producing an ast.Program. The full token stream is buffered up front
// (UTL-X transformations are short scripts, not megabyte documents), which
// lets the expression grammar backtrack cheaply when disambiguating a
// parenthesized lambda parameter list from a grouped expression. Precedence
// climbs through a fixed ladder of mutually recursive parseX functions
// (spec §4.4):
//
//	member/index/call > unary > * / % > + - > comparisons > == != >
//	&& > || ?? > |> > let/assignment
package parser

import (
	"github.com/utlxlang/utlx/ast"
	"github.com/utlxlang/utlx/lexer"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

type parser struct {
	toks []lexer.Token
	idx  int
	diag uerr.Diagnostics
}

// Parse compiles src into an ast.Program, collecting every syntax error it
// can recover from rather than stopping at the first one. A caller should
// check diag.HasErrors() before trusting the returned program.
func Parse(src string) (*ast.Program, uerr.Diagnostics) {
	p := &parser{}
	p.tokenize(src)
	prog := p.parseProgram()
	return prog, p.diag
}

func (p *parser) tokenize(src string) {
	l := lexer.New(src)
	for {
		tok, err := l.Next()
		if err != nil {
			p.diag.Add(uerr.New(uerr.LexError, err.Span, "%s", err.Message))
			continue
		}
		p.toks = append(p.toks, tok)
		if tok.Type == lexer.EOF {
			return
		}
	}
}

// cur is the token at the parser's current position.
func (p *parser) cur() lexer.Token { return p.toks[p.idx] }

// at reports the type of the token offset tokens ahead of cur (0 = cur).
func (p *parser) at(offset int) lexer.Type {
	i := p.idx + offset
	if i >= len(p.toks) {
		return lexer.EOF
	}
	return p.toks[i].Type
}

func (p *parser) advance() lexer.Token {
	t := p.cur()
	if p.idx < len(p.toks)-1 {
		p.idx++
	}
	return t
}

// mark/restore let the expression grammar speculatively parse and roll
// back when a lambda parameter list turns out to be a grouped expression.
func (p *parser) mark() int     { return p.idx }
func (p *parser) restore(m int) { p.idx = m }

func (p *parser) span(start udm.Mark) udm.Span {
	prev := p.idx
	if prev > 0 {
		prev--
	}
	return udm.Span{Start: start, End: p.toks[prev].Span.End}
}

func (p *parser) errorf(span udm.Span, format string, args ...any) {
	p.diag.Add(uerr.New(uerr.ParseError, span, format, args...))
}

// expect consumes the current token if it has type t, else records a
// diagnostic and leaves the cursor in place so recovery can resynchronize.
func (p *parser) expect(t lexer.Type) bool {
	if p.cur().Type != t {
		p.errorf(p.cur().Span, "expected %s, found %s", t, p.cur().Type)
		return false
	}
	p.advance()
	return true
}

// expectLetTerminator enforces the let-binding terminator rule: a let
// statement must end in `;` before the next statement or trailing
// expression begins. When missing, the diagnostic suggests the fix
// explicitly rather than reporting a generic parse error.
func (p *parser) expectLetTerminator() {
	if p.cur().Type == lexer.Semicolon {
		p.advance()
		return
	}
	p.errorf(p.cur().Span, "expected ';' after let binding (insert ';' to separate it from the following expression)")
	p.synchronize()
}

// synchronize skips tokens until a likely statement/expression boundary so
// one syntax error does not cascade into dozens of spurious ones.
func (p *parser) synchronize() {
	for p.cur().Type != lexer.EOF {
		switch p.cur().Type {
		case lexer.RBrace, lexer.RBracket, lexer.SectionSep, lexer.Semicolon:
			return
		}
		p.advance()
	}
}

// --- Document grammar ---

func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}

	if p.cur().Type == lexer.VersionDirective {
		p.advance()
		prog.Version = p.cur().Literal
		p.advance()
	}

	for p.cur().Type == lexer.KwInput {
		prog.Inputs = append(prog.Inputs, p.parseInputDirective())
	}
	if p.cur().Type == lexer.KwOutput {
		prog.Output = p.parseOutputDirective()
	}

	if p.cur().Type == lexer.SectionSep {
		p.advance()
	}

	for p.cur().Type == lexer.KwFunction || p.cur().Type == lexer.KwTemplate {
		switch p.cur().Type {
		case lexer.KwFunction:
			prog.Functions = append(prog.Functions, p.parseFunctionDef())
		case lexer.KwTemplate:
			prog.Templates = append(prog.Templates, p.parseTemplateDef())
		}
	}

	if p.cur().Type != lexer.EOF {
		prog.Body = p.parseExpression()
	}
	return prog
}

func (p *parser) parseDirectiveOptions() map[string]string {
	opts := map[string]string{}
	if p.cur().Type != lexer.LParen {
		return opts
	}
	p.advance()
	for p.cur().Type != lexer.RParen && p.cur().Type != lexer.EOF {
		key := p.cur().Literal
		p.advance()
		p.expect(lexer.Colon)
		val := p.cur().Literal
		p.advance()
		opts[key] = val
		if p.cur().Type == lexer.Comma {
			p.advance()
		}
	}
	p.expect(lexer.RParen)
	return opts
}

func (p *parser) parseInputDirective() ast.InputDirective {
	p.advance() // 'input'
	d := ast.InputDirective{}
	if p.cur().Type == lexer.Dollar {
		p.advance()
		d.Name = p.cur().Literal
		p.advance()
	}
	if p.cur().Type == lexer.Ident {
		d.Format = p.cur().Literal
		p.advance()
	}
	d.Options = p.parseDirectiveOptions()
	return d
}

func (p *parser) parseOutputDirective() ast.OutputDirective {
	p.advance() // 'output'
	d := ast.OutputDirective{}
	if p.cur().Type == lexer.Ident {
		d.Format = p.cur().Literal
		p.advance()
	}
	d.Options = p.parseDirectiveOptions()
	return d
}

func (p *parser) parseParamList() []ast.Param {
	var params []ast.Param
	p.expect(lexer.LParen)
	for p.cur().Type != lexer.RParen && p.cur().Type != lexer.EOF {
		name := p.cur().Literal
		p.advance()
		typ := ""
		if p.cur().Type == lexer.Colon {
			p.advance()
			typ = p.cur().Literal
			p.advance()
		}
		params = append(params, ast.Param{Name: name, Type: typ})
		if p.cur().Type == lexer.Comma {
			p.advance()
		}
	}
	p.expect(lexer.RParen)
	return params
}

func (p *parser) parseFunctionDef() *ast.FunctionDef {
	start := p.cur().Span.Start
	p.advance() // 'function'
	name := p.cur().Literal
	p.advance()
	params := p.parseParamList()
	retType := ""
	if p.cur().Type == lexer.Colon {
		p.advance()
		retType = p.cur().Literal
		p.advance()
	}
	p.expect(lexer.Assign)
	body := p.parseExpression()
	return &ast.FunctionDef{
		Base: ast.NewBase(p.span(start)), Name: name,
		Params: params, ReturnType: retType, Body: body,
	}
}

func (p *parser) parseTemplateDef() *ast.TemplateDef {
	start := p.cur().Span.Start
	p.advance() // 'template'
	pattern := p.parseExpression()
	body := p.parseBraceBlock()
	return &ast.TemplateDef{
		Base: ast.NewBase(p.span(start)), Pattern: pattern, Body: body,
	}
}

func (p *parser) parseBraceBlock() ast.Node {
	start := p.cur().Span.Start
	p.expect(lexer.LBrace)
	var lets []ast.Node
	for p.cur().Type == lexer.KwLet {
		lets = append(lets, p.parseLetStatement())
	}
	var result ast.Node
	if p.cur().Type != lexer.RBrace {
		result = p.parseExpression()
	}
	p.expect(lexer.RBrace)
	return &ast.Block{Base: ast.NewBase(p.span(start)), Lets: lets, Result: result}
}

func (p *parser) parseLetStatement() ast.Node {
	start := p.cur().Span.Start
	p.advance() // 'let'
	name := p.cur().Literal
	p.advance()
	p.expect(lexer.Assign)
	val := p.parseExpression()
	p.expectLetTerminator()
	return &ast.LetBinding{Base: ast.NewBase(p.span(start)), Name: name, Value: val}
}
