// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package udmtext implements the ".udm" fixture format: a full-fidelity,
// whitespace-insensitive text serialization of udm.Value, used for test
// fixtures and inter-runtime diffing (spec §6 "Persisted state"). Every
// scalar kind, the attribute/property split, the element-name hint, and
// binary encoding tags all round-trip exactly, which none of the other
// format bridges promise (JSON has no date/binary kinds, XML conflates
// attributes and text content).
//
// A value is a parenthesized s-expression tagged by kind:
//
//	null, true, false
//	int(42)              float(3.5)            str("hi")
//	date("2024-01-02")   datetime("2024-01-02T03:04:05Z")
//	localdatetime("2024-01-02T03:04:05")   time("13:45:00")
//	binary("base64" "aGVsbG8=")
//	arr( <value>* )
//	obj( name("Order")? attr("id" "A")* prop("qty" int(2))* )
//
// Whitespace (including newlines) between tokens is insignificant, so
// Serialize can pretty-print with indentation while Parse stays a single
// grammar.
package udmtext

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokIdent
	tokString
	tokNumber
)

type token struct {
	kind tokenKind
	text string
}

type lexer struct {
	src []byte
	pos int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen}, nil
	case c == '"':
		return l.lexString()
	case c == '-' || (c >= '0' && c <= '9'):
		return l.lexNumber()
	case isIdentStart(c):
		return l.lexIdent(), nil
	default:
		return token{}, fmt.Errorf("unexpected byte %q at offset %d", c, l.pos)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (l *lexer) lexIdent() token {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: tokIdent, text: string(l.src[start:l.pos])}
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	return token{kind: tokNumber, text: string(l.src[start:l.pos])}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *lexer) lexString() (token, error) {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
		case '"':
			l.pos++
			raw := string(l.src[start:l.pos])
			s, err := strconv.Unquote(raw)
			if err != nil {
				return token{}, fmt.Errorf("invalid string literal %s: %w", raw, err)
			}
			return token{kind: tokString, text: s}, nil
		default:
			l.pos++
		}
	}
	return token{}, fmt.Errorf("unterminated string literal starting at offset %d", start)
}

// parser consumes a lexer's token stream with one token of lookahead.
type parser struct {
	lex  *lexer
	cur  token
	peek error
}

func newParser(src []byte) (*parser, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.cur.kind != kind {
		return token{}, fmt.Errorf("expected %s, got %v", what, p.cur)
	}
	tok := p.cur
	err := p.advance()
	return tok, err
}

func (p *parser) expectIdent(name string) error {
	if p.cur.kind != tokIdent || p.cur.text != name {
		return fmt.Errorf("expected %q, got %v", name, p.cur)
	}
	return p.advance()
}

// Parse lifts .udm source text into a single UDM value.
func Parse(data []byte) (*udm.Value, *uerr.Error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "empty input is not valid .udm")
	}
	p, err := newParser(data)
	if err != nil {
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "%v", err)
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "%v", err)
	}
	if p.cur.kind != tokEOF {
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "trailing content after value: %v", p.cur)
	}
	return v, nil
}

func (p *parser) parseValue() (*udm.Value, error) {
	switch p.cur.kind {
	case tokNumber:
		return p.parseBareNumber()
	case tokIdent:
		return p.parseTagged()
	default:
		return nil, fmt.Errorf("expected a value, got %v", p.cur)
	}
}

// parseBareNumber exists only for defense in depth: every number this
// package emits is wrapped in int(...)/float(...), but a bare numeric
// token is unambiguous enough to accept directly.
func (p *parser) parseBareNumber() (*udm.Value, error) {
	text := p.cur.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	return parseNumberLiteral(text)
}

func parseNumberLiteral(text string) (*udm.Value, error) {
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q: %w", text, err)
		}
		return udm.Float(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid int literal %q: %w", text, err)
	}
	return udm.Int(i), nil
}

func (p *parser) parseTagged() (*udm.Value, error) {
	tag := p.cur.text
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch tag {
	case "null":
		return udm.Null, nil
	case "true":
		return udm.Bool(true), nil
	case "false":
		return udm.Bool(false), nil
	case "int":
		return p.parseParenthesized(tag, func() (*udm.Value, error) {
			n, err := p.expect(tokNumber, "integer literal")
			if err != nil {
				return nil, err
			}
			return parseNumberLiteral(n.text)
		})
	case "float":
		return p.parseParenthesized(tag, func() (*udm.Value, error) {
			n, err := p.expect(tokNumber, "float literal")
			if err != nil {
				return nil, err
			}
			f, err := strconv.ParseFloat(n.text, 64)
			if err != nil {
				return nil, err
			}
			return udm.Float(f), nil
		})
	case "str":
		return p.parseParenthesized(tag, func() (*udm.Value, error) {
			s, err := p.expect(tokString, "string literal")
			if err != nil {
				return nil, err
			}
			return udm.String(s.text), nil
		})
	case "date":
		return p.parseTemporal(tag, "2006-01-02", udm.Date)
	case "datetime":
		return p.parseTemporal(tag, time.RFC3339Nano, udm.DateTime)
	case "localdatetime":
		return p.parseTemporal(tag, "2006-01-02T15:04:05.999999999", udm.LocalDateTime)
	case "time":
		return p.parseParenthesized(tag, func() (*udm.Value, error) {
			s, err := p.expect(tokString, "time literal")
			if err != nil {
				return nil, err
			}
			t, perr := time.Parse("15:04:05.999999999", s.text)
			if perr != nil {
				return nil, fmt.Errorf("invalid time literal %q: %w", s.text, perr)
			}
			h, m, sec := t.Clock()
			dur := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
				time.Duration(sec)*time.Second + time.Duration(t.Nanosecond())
			return udm.Time(dur), nil
		})
	case "binary":
		return p.parseParenthesized(tag, func() (*udm.Value, error) {
			bTag, err := p.expect(tokString, "binary tag")
			if err != nil {
				return nil, err
			}
			payload, err := p.expect(tokString, "base64 payload")
			if err != nil {
				return nil, err
			}
			raw, derr := decodeBase64(payload.text)
			if derr != nil {
				return nil, derr
			}
			return udm.Binary(raw, bTag.text), nil
		})
	case "arr":
		return p.parseArray()
	case "obj":
		return p.parseObject()
	default:
		return nil, fmt.Errorf("unknown value tag %q", tag)
	}
}

func (p *parser) parseParenthesized(tag string, body func() (*udm.Value, error)) (*udm.Value, error) {
	if _, err := p.expect(tokLParen, "'(' after "+tag); err != nil {
		return nil, err
	}
	v, err := body()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen, "')' closing "+tag); err != nil {
		return nil, err
	}
	return v, nil
}

func (p *parser) parseTemporal(tag, layout string, ctor func(time.Time) *udm.Value) (*udm.Value, error) {
	return p.parseParenthesized(tag, func() (*udm.Value, error) {
		s, err := p.expect(tokString, tag+" literal")
		if err != nil {
			return nil, err
		}
		t, perr := time.Parse(layout, s.text)
		if perr != nil {
			return nil, fmt.Errorf("invalid %s literal %q: %w", tag, s.text, perr)
		}
		return ctor(t), nil
	})
}

func (p *parser) parseArray() (*udm.Value, error) {
	if _, err := p.expect(tokLParen, "'(' after arr"); err != nil {
		return nil, err
	}
	var elems []*udm.Value
	for p.cur.kind != tokRParen {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	if _, err := p.expect(tokRParen, "')' closing arr"); err != nil {
		return nil, err
	}
	return udm.Array(elems...), nil
}

func (p *parser) parseObject() (*udm.Value, error) {
	if _, err := p.expect(tokLParen, "'(' after obj"); err != nil {
		return nil, err
	}

	o := udm.NewObject()

	for p.cur.kind == tokIdent {
		switch p.cur.text {
		case "name":
			if err := p.advance(); err != nil {
				return nil, err
			}
			v, err := p.parseParenthesized("name", func() (*udm.Value, error) {
				s, err := p.expect(tokString, "element name")
				if err != nil {
					return nil, err
				}
				return udm.String(s.text), nil
			})
			if err != nil {
				return nil, err
			}
			o = o.WithName(v.AsString())
		case "attr":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.expect(tokLParen, "'(' after attr"); err != nil {
				return nil, err
			}
			key, err := p.expect(tokString, "attribute key")
			if err != nil {
				return nil, err
			}
			val, err := p.expect(tokString, "attribute value")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRParen, "')' closing attr"); err != nil {
				return nil, err
			}
			o = o.WithAttr(key.text, val.text)
		case "prop":
			if err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.expect(tokLParen, "'(' after prop"); err != nil {
				return nil, err
			}
			key, err := p.expect(tokString, "property key")
			if err != nil {
				return nil, err
			}
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRParen, "')' closing prop"); err != nil {
				return nil, err
			}
			o = o.With(key.text, val)
		default:
			return nil, fmt.Errorf("unexpected tag %q inside obj", p.cur.text)
		}
	}

	if _, err := p.expect(tokRParen, "')' closing obj"); err != nil {
		return nil, err
	}
	return udm.ObjectValue(o), nil
}
