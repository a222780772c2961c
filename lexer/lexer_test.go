// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package lexer

import "testing"

func collectTypes(t *testing.T, src string) []Type {
	t.Helper()
	l := New(src)
	var types []Type
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		types = append(types, tok.Type)
		if tok.Type == EOF {
			return types
		}
	}
}

func TestLexerPunctuatorsAndOperators(t *testing.T) {
	types := collectTypes(t, `{ } [ ] ( ) , : ; . @ $ + - * / % == != < <= > >= && || ! ?? |> => ..`)
	want := []Type{
		LBrace, RBrace, LBracket, RBracket, LParen, RParen, Comma, Colon, Semicolon,
		Dot, At, Dollar, Plus, Minus, Star, Slash, Percent, EqEq, NotEq, Lt, LtEq,
		Gt, GtEq, AndAnd, OrOr, Bang, Question2, Pipe, FatArrow, DotDot, EOF,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(types), len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestLexerNumberDistinguishesIntFloat(t *testing.T) {
	l := New("42 3.14 1e10")
	tok, _ := l.Next()
	if tok.Type != Int || tok.Literal != "42" {
		t.Fatalf("got %v %q", tok.Type, tok.Literal)
	}
	tok, _ = l.Next()
	if tok.Type != Float || tok.Literal != "3.14" {
		t.Fatalf("got %v %q", tok.Type, tok.Literal)
	}
	tok, _ = l.Next()
	if tok.Type != Float || tok.Literal != "1e10" {
		t.Fatalf("got %v %q", tok.Type, tok.Literal)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	l := New(`"hello\nworld" 'it\'s'`)
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Literal != "hello\nworld" {
		t.Fatalf("got %q", tok.Literal)
	}
	tok, err = l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Literal != "it's" {
		t.Fatalf("got %q", tok.Literal)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := New(`"oops`)
	_, err := l.Next()
	if err == nil {
		t.Fatalf("expected a LexError for an unterminated string")
	}
}

func TestLexerKeywordsAndIdentifiers(t *testing.T) {
	types := collectTypes(t, "if else match let function template input output true false null and or not when foo")
	want := []Type{
		KwIf, KwElse, KwMatch, KwLet, KwFunction, KwTemplate, KwInput, KwOutput,
		KwTrue, KwFalse, KwNull, KwAnd, KwOr, KwNot, KwWhen, Ident, EOF,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(types), len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestLexerCommentsAreSkipped(t *testing.T) {
	types := collectTypes(t, "1 // line comment\n2 /* block\ncomment */ 3")
	want := []Type{Int, Int, Int, EOF}
	if len(types) != len(want) {
		t.Fatalf("got %v", types)
	}
}

func TestLexerVersionDirectiveAndSectionSep(t *testing.T) {
	types := collectTypes(t, "%utlx 1.0\n---")
	if types[0] != VersionDirective {
		t.Fatalf("expected version directive, got %v", types[0])
	}
	found := false
	for _, tt := range types {
		if tt == SectionSep {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a section separator token, got %v", types)
	}
}
