// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package ast defines the UTL-X abstract syntax tree: a closed set of node
// kinds (spec §3.2). Every node is a Go struct implementing Node; there is
// no virtual dispatch — the interpreter switches on the concrete type.
package ast

import "github.com/utlxlang/utlx/udm"

// Node is implemented by every AST node. It carries only a source Span;
// evaluation behavior lives in the interp package, not on the node types,
// keeping ast a pure data package.
type Node interface {
	Span() udm.Span
}

type Base struct {
	span udm.Span
}

// Span returns the node's source span.
func (b Base) Span() udm.Span { return b.span }

// NewBase is used by the parser to attach a span when constructing a node.
func NewBase(span udm.Span) Base { return Base{span: span} }

// --- Literals ---

// NullLit is the `null` literal.
type NullLit struct{ Base }

// BoolLit is a `true`/`false` literal.
type BoolLit struct {
	Base
	Value bool
}

// IntLit is an integer literal.
type IntLit struct {
	Base
	Value int64
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Base
	Value float64
}

// StringLit is a string literal.
type StringLit struct {
	Base
	Value string
}

// ArrayLit is an array literal `[a, b, c]`.
type ArrayLit struct {
	Base
	Elements []Node
}

// ObjectEntryKind distinguishes the three forms an ObjectLit entry may take.
type ObjectEntryKind int

const (
	// PropertyEntry is `key: expr`.
	PropertyEntry ObjectEntryKind = iota
	// AttributeEntry is `@key: expr`.
	AttributeEntry
	// LetEntry is `let name = expr` inside an object literal.
	LetEntry
)

// ObjectEntry is one entry of an ObjectLit.
type ObjectEntry struct {
	Kind  ObjectEntryKind
	Key   string     // literal key for Property/Attribute; computed key unsupported in v1
	Name  string     // binding name for LetEntry
	Value Node
}

// ObjectLit is an object literal: a sequence of property, attribute, and
// let entries. Let entries introduce bindings visible to later sibling
// entries but are never emitted as properties.
type ObjectLit struct {
	Base
	Entries []ObjectEntry
}

// --- References ---

// Ident is a bare identifier reference.
type Ident struct {
	Base
	Name string
}

// InputRef is a `$name` or bare `$input` reference to a named input.
type InputRef struct {
	Base
	Name string // "" means the bare, single unnamed input
}

// --- Selectors ---

// PathAccess is `.ident` member access.
type PathAccess struct {
	Base
	Target Node
	Name   string
}

// AttrAccess is `.@ident` attribute access.
type AttrAccess struct {
	Base
	Target Node
	Name   string
}

// IndexAccess is `[expr]` used as an integer index.
type IndexAccess struct {
	Base
	Target Node
	Index  Node
}

// Predicate is `[expr]` used as a boolean filter over the current element.
type Predicate struct {
	Base
	Target Node
	Cond   Node
}

// RecursiveDescent is `..ident`.
type RecursiveDescent struct {
	Base
	Target Node
	Name   string
}

// Wildcard is `.*`.
type Wildcard struct {
	Base
	Target Node
}

// --- Operators ---

// UnaryOp is a prefix `-` or `!`.
type UnaryOp struct {
	Base
	Op      string
	Operand Node
}

// BinaryOp covers arithmetic, comparison, logical, concatenation, pipeline,
// and default operators; Op is the operator's literal spelling.
type BinaryOp struct {
	Base
	Op    string
	Left  Node
	Right Node
}

// MemberOp is a dynamic member access `a.(expr)` reserved for future use;
// v1 only produces PathAccess for syntactic member access, but the
// interpreter's coercion boundary treats both uniformly through the
// selector engine.
type MemberOp struct {
	Base
	Target Node
	Member Node
}

// --- Calls and control flow ---

// Call is a function application.
type Call struct {
	Base
	Callee Node
	Args   []Node
}

// If is `if (cond) then else else_`.
type If struct {
	Base
	Cond Node
	Then Node
	Else Node // nil if no else branch
}

// MatchCase is one arm of a Match.
type MatchCase struct {
	Pattern Pattern
	Body    Node
}

// Match evaluates Scrutinee once and dispatches to the first matching case.
type Match struct {
	Base
	Scrutinee Node
	Cases     []MatchCase
}

// --- Definitions ---

// Param is one function/lambda parameter.
type Param struct {
	Name string
	Type string // declared type name, "" if untyped
}

// FunctionDef is a top-level or let-bound function definition.
type FunctionDef struct {
	Base
	Name       string
	Params     []Param
	ReturnType string
	Body       Node
}

// Lambda is an inline `(p, q) => body` or `p => body` lambda literal.
type Lambda struct {
	Base
	Params []Param
	Body   Node
}

// LetBinding introduces Name into the surrounding scope.
type LetBinding struct {
	Base
	Name  string
	Value Node
}

// TemplateDef is a `template <pattern> { body }` definition.
type TemplateDef struct {
	Base
	Pattern Node
	Body    Node
}

// Apply is `apply(selector)`, dispatching to the best-matching template for
// each node the selector yields.
type Apply struct {
	Base
	Selector Node
}

// Block is a sequence of let-bindings (and nested function/template defs)
// followed by a trailing expression, the value of the block.
type Block struct {
	Base
	Lets   []Node // LetBinding, FunctionDef, or TemplateDef
	Result Node
}

// --- Source program ---

// InputDirective declares one named (or the sole unnamed) input.
type InputDirective struct {
	Name    string // "" for the single unnamed input
	Format  string
	Options map[string]string
}

// OutputDirective declares the program's single output.
type OutputDirective struct {
	Format  string
	Options map[string]string
}

// Program is a compiled UTL-X source unit: version tag, input/output
// directives, top-level definitions, and the body expression evaluated
// once per run.
type Program struct {
	Version   string
	Inputs    []InputDirective
	Output    OutputDirective
	Functions []*FunctionDef
	Templates []*TemplateDef
	Body      Node
}
