// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package uerr implements the engine's diagnostic taxonomy (spec §7): a
// single Error type whose Kind field names the category, carrying a source
// span when available and satisfying the error interface; callers tell
// kinds apart by comparing Kind. The shape follows the teacher's
// MarkedYAMLError family
// (go.yaml.in/yaml's internal/libyaml/errors.go): a Mark-stamped struct
// with an Error() method that renders "utlx: <kind>: <message> at <mark>".
package uerr

import (
	"fmt"
	"strings"

	"github.com/utlxlang/utlx/udm"
)

// Kind identifies a diagnostic category from spec §7's taxonomy table.
type Kind string

const (
	LexError               Kind = "LexError"
	ParseError             Kind = "ParseError"
	UnresolvedBinding      Kind = "UnresolvedBinding"
	TypeMismatch           Kind = "TypeMismatch"
	ArityMismatch          Kind = "ArityMismatch"
	SelectorFailure        Kind = "SelectorFailure"
	NoTemplateMatch        Kind = "NoTemplateMatch"
	FormatParseError       Kind = "FormatParseError"
	FormatSerializeError   Kind = "FormatSerializeError"
	FunctionArgumentError  Kind = "FunctionArgumentException"
	DivisionByZero         Kind = "DivisionByZero"
	Cancelled              Kind = "Cancelled"
)

// Frame is one entry in a runtime diagnostic's call back-trace: the
// function or template name plus the span of the call site.
type Frame struct {
	Name string
	Span udm.Span
}

// Error is a single diagnostic: a Kind, a human-readable message, the
// source span it occurred at (zero value if unavailable, e.g. a
// host-supplied RuntimeError with no source program attached), and for
// runtime errors a back-trace of call Frames innermost-first.
type Error struct {
	Kind    Kind
	Message string
	Span    udm.Span
	Excerpt string // caret-annotated source excerpt, filled in by the caller that has the source text
	Trace   []Frame
}

// Error renders "utlx: <kind>: <message> at line L, column C".
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "utlx: %s: %s at %s", e.Kind, e.Message, e.Span.Start)
	if e.Excerpt != "" {
		b.WriteString("\n")
		b.WriteString(e.Excerpt)
	}
	for _, f := range e.Trace {
		fmt.Fprintf(&b, "\n\tat %s (%s)", f.Name, f.Span.Start)
	}
	return b.String()
}

// New builds an Error of the given kind at span with a formatted message.
func New(kind Kind, span udm.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// WithTrace returns a copy of e with frame prepended to its back-trace,
// used as the evaluator unwinds out of nested function/template calls.
func (e *Error) WithTrace(frame Frame) *Error {
	cp := *e
	cp.Trace = append([]Frame{frame}, e.Trace...)
	return &cp
}

// WithSpan returns a copy of e with Span set to span, if e did not already
// carry one. Used to attach a call-site span to errors raised by stdlib
// functions, which have no AST node of their own to anchor a span to.
func (e *Error) WithSpan(span udm.Span) *Error {
	if e.Span != (udm.Span{}) {
		return e
	}
	cp := *e
	cp.Span = span
	return &cp
}

// WithExcerpt returns a copy of e with a caret-annotated source excerpt
// attached, built from the full source text and e's span.
func (e *Error) WithExcerpt(source string) *Error {
	cp := *e
	cp.Excerpt = caretExcerpt(source, e.Span)
	return &cp
}

func caretExcerpt(source string, span udm.Span) string {
	lines := strings.Split(source, "\n")
	line := span.Start.Line - 1
	if line < 0 || line >= len(lines) {
		return ""
	}
	text := lines[line]
	col := span.Start.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(text) {
		col = len(text)
	}
	caret := strings.Repeat(" ", col) + "^"
	return text + "\n" + caret
}
