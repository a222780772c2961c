// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package lexer tokenizes UTL-X source text (spec §4.3).
package lexer

import "github.com/utlxlang/utlx/udm"

// Type identifies a token's lexical category.
type Type int

const (
	EOF Type = iota
	Illegal

	Ident
	Int
	Float
	String

	VersionDirective // %utlx
	SectionSep       // ---

	// Keywords
	KwInput
	KwOutput
	KwIf
	KwElse
	KwMatch
	KwLet
	KwFunction
	KwTemplate
	KwTrue
	KwFalse
	KwNull
	KwAnd
	KwOr
	KwNot
	KwWhen

	// Punctuators
	LBrace
	RBrace
	LBracket
	RBracket
	LParen
	RParen
	Comma
	Colon
	Semicolon
	Dot
	At
	Dollar

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	EqEq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	Bang
	Question2 // ??
	Pipe      // |>
	FatArrow  // =>
	Assign    // =
	DotDot    // .. (recursive descent)
)

var keywords = map[string]Type{
	"input":    KwInput,
	"output":   KwOutput,
	"if":       KwIf,
	"else":     KwElse,
	"match":    KwMatch,
	"let":      KwLet,
	"function": KwFunction,
	"template": KwTemplate,
	"true":     KwTrue,
	"false":    KwFalse,
	"null":     KwNull,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
	"when":     KwWhen,
}

// LookupIdent returns the keyword Type for ident, or Ident if it is not a
// reserved word.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return Ident
}

// String renders the token type name for diagnostics.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

var typeNames = map[Type]string{
	EOF: "EOF", Illegal: "ILLEGAL", Ident: "IDENT", Int: "INT", Float: "FLOAT", String: "STRING",
	VersionDirective: "%utlx", SectionSep: "---",
	KwInput: "input", KwOutput: "output", KwIf: "if", KwElse: "else", KwMatch: "match",
	KwLet: "let", KwFunction: "function", KwTemplate: "template", KwTrue: "true",
	KwFalse: "false", KwNull: "null", KwAnd: "and", KwOr: "or", KwNot: "not", KwWhen: "when",
	LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]", LParen: "(", RParen: ")",
	Comma: ",", Colon: ":", Semicolon: ";", Dot: ".", At: "@", Dollar: "$",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	EqEq: "==", NotEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	AndAnd: "&&", OrOr: "||", Bang: "!", Question2: "??", Pipe: "|>",
	FatArrow: "=>", Assign: "=", DotDot: "..",
}

// Token is one lexical unit plus the source span it occupies.
type Token struct {
	Type    Type
	Literal string
	Span    udm.Span
}
