// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine wires the lexer, parser, interpreter, and format bridges
// into the four entry points spec §6 declares for external collaborators
// (the CLI, a future daemon, an MCP server): compile, run, validate, and
// canonical-fingerprint. Nothing in this package logs; diagnostics and
// errors are returned, not printed, per the AMBIENT STACK's library
// discipline.
package engine

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math/rand"
	"time"

	"github.com/utlxlang/utlx/ast"
	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/parser"
	"github.com/utlxlang/utlx/stdlib"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// Compile parses source into a Program. A non-empty Diagnostics means
// compilation failed; the returned *ast.Program is then the parser's
// partially recovered tree, not nil.
func Compile(source string) (*ast.Program, uerr.Diagnostics) {
	return parser.Parse(source)
}

// Validate runs the lexer and parser over source without ever building an
// interpreter, collecting every diagnostic the parser's error recovery can
// find. It never executes a program body.
func Validate(source string) uerr.Diagnostics {
	_, diags := parser.Parse(source)
	return diags
}

// config holds the options an Option mutates. Zero value means "use
// process defaults", resolved in Run.
type config struct {
	ctx   context.Context
	clock time.Time
	seed  *int64
}

// Option configures a Run call: deterministic clock override, cooperative
// cancellation context, and random seed, per the AMBIENT STACK's
// EvalOption.
type Option func(*config)

// WithContext supplies the context Run's cooperative cancellation checks
// observe. Defaults to context.Background() when not given.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// WithClock pins the instant now()/today() observe for the run, overriding
// the default of a single time.Now() snapshot taken when Run starts.
func WithClock(t time.Time) Option {
	return func(c *config) { c.clock = t }
}

// WithSeed makes random/randomInt draw from a seeded source instead of the
// process-wide default, per spec §5.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = &seed }
}

// Run compiles nothing itself: prog must already be the result of Compile.
// inputs maps each declared input's name to its raw bytes, using the empty
// string as the key for a program's single unnamed input. Run lifts each
// input through its declared (or sniffed) format bridge, evaluates the
// program body, and lowers the result through the output bridge.
func Run(prog *ast.Program, inputs map[string][]byte, opts ...Option) ([]byte, *uerr.Error) {
	cfg := config{ctx: context.Background(), clock: time.Now().UTC()}
	for _, o := range opts {
		o(&cfg)
	}

	udmInputs := make(map[string]*udm.Value, len(prog.Inputs))
	for _, d := range prog.Inputs {
		raw, ok := inputs[d.Name]
		if !ok {
			return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "missing input %q", inputLabel(d.Name))
		}
		v, err := parseBytes(d.Format, raw, d.Options)
		if err != nil {
			return nil, err
		}
		udmInputs[d.Name] = v
	}

	it := interp.New(prog, udmInputs, stdlib.Registry(), cfg.clock)
	if cfg.seed != nil {
		it.Rand = rand.New(rand.NewSource(*cfg.seed))
	}

	result, rerr := it.Run(cfg.ctx)
	if rerr != nil {
		return nil, rerr
	}
	return serializeValue(prog.Output.Format, result, prog.Output.Options)
}

func inputLabel(name string) string {
	if name == "" {
		return "$input"
	}
	return "$" + name
}

// CanonicalFingerprint hashes a deterministic re-serialization of prog's
// AST (stable field order, no source spans) so collaborators can use it as
// a cache key, per spec §6's canonical-fingerprint entry point.
func CanonicalFingerprint(prog *ast.Program) []byte {
	var buf []byte
	for _, fn := range prog.Functions {
		buf = append(buf, fmt.Sprintf("fn(%s,%d,", fn.Name, len(fn.Params))...)
		buf = appendCanonical(buf, fn.Body)
		buf = append(buf, ')')
	}
	for _, tmpl := range prog.Templates {
		buf = append(buf, "template("...)
		buf = appendCanonical(buf, tmpl.Pattern)
		buf = append(buf, ',')
		buf = appendCanonical(buf, tmpl.Body)
		buf = append(buf, ')')
	}
	buf = appendCanonical(buf, prog.Body)
	sum := sha256.Sum256(buf)
	return sum[:]
}

// appendCanonical renders n into a stable byte form for fingerprinting. It
// walks the same node set the interpreter evaluates, omitting every Span so
// two programs that differ only in formatting/whitespace fingerprint
// identically.
func appendCanonical(buf []byte, n ast.Node) []byte {
	if n == nil {
		return append(buf, "nil"...)
	}
	switch v := n.(type) {
	case *ast.NullLit:
		return append(buf, "null"...)
	case *ast.BoolLit:
		return append(buf, fmt.Sprintf("bool(%v)", v.Value)...)
	case *ast.IntLit:
		return append(buf, fmt.Sprintf("int(%d)", v.Value)...)
	case *ast.FloatLit:
		return append(buf, fmt.Sprintf("float(%v)", v.Value)...)
	case *ast.StringLit:
		return append(buf, fmt.Sprintf("str(%q)", v.Value)...)
	case *ast.ArrayLit:
		buf = append(buf, "arr["...)
		for _, e := range v.Elements {
			buf = appendCanonical(buf, e)
			buf = append(buf, ',')
		}
		return append(buf, ']')
	case *ast.ObjectLit:
		buf = append(buf, "obj["...)
		for _, e := range v.Entries {
			buf = append(buf, entryKey(e)...)
			buf = append(buf, ':')
			buf = appendCanonical(buf, e.Value)
			buf = append(buf, ',')
		}
		return append(buf, ']')
	case *ast.Ident:
		return append(buf, fmt.Sprintf("id(%s)", v.Name)...)
	case *ast.InputRef:
		return append(buf, fmt.Sprintf("input(%s)", v.Name)...)
	case *ast.PathAccess:
		buf = appendCanonical(buf, v.Target)
		return append(buf, fmt.Sprintf(".%s", v.Name)...)
	case *ast.AttrAccess:
		buf = appendCanonical(buf, v.Target)
		return append(buf, fmt.Sprintf(".@%s", v.Name)...)
	case *ast.IndexAccess:
		buf = appendCanonical(buf, v.Target)
		buf = append(buf, '[')
		buf = appendCanonical(buf, v.Index)
		return append(buf, ']')
	case *ast.Predicate:
		buf = appendCanonical(buf, v.Target)
		buf = append(buf, "?["...)
		buf = appendCanonical(buf, v.Cond)
		return append(buf, ']')
	case *ast.RecursiveDescent:
		buf = appendCanonical(buf, v.Target)
		return append(buf, fmt.Sprintf("..%s", v.Name)...)
	case *ast.Wildcard:
		buf = appendCanonical(buf, v.Target)
		return append(buf, ".*"...)
	case *ast.UnaryOp:
		buf = append(buf, fmt.Sprintf("un(%s,", v.Op)...)
		buf = appendCanonical(buf, v.Operand)
		return append(buf, ')')
	case *ast.BinaryOp:
		buf = append(buf, fmt.Sprintf("bin(%s,", v.Op)...)
		buf = appendCanonical(buf, v.Left)
		buf = append(buf, ',')
		buf = appendCanonical(buf, v.Right)
		return append(buf, ')')
	case *ast.Call:
		buf = append(buf, "call("...)
		buf = appendCanonical(buf, v.Callee)
		for _, a := range v.Args {
			buf = append(buf, ',')
			buf = appendCanonical(buf, a)
		}
		return append(buf, ')')
	case *ast.If:
		buf = append(buf, "if("...)
		buf = appendCanonical(buf, v.Cond)
		buf = append(buf, ',')
		buf = appendCanonical(buf, v.Then)
		buf = append(buf, ',')
		buf = appendCanonical(buf, v.Else)
		return append(buf, ')')
	case *ast.Match:
		buf = append(buf, "match("...)
		buf = appendCanonical(buf, v.Scrutinee)
		for _, c := range v.Cases {
			buf = append(buf, ";case("...)
			buf = appendPattern(buf, c.Pattern)
			buf = append(buf, ")->"...)
			buf = appendCanonical(buf, c.Body)
		}
		return append(buf, ')')
	case *ast.Lambda:
		buf = append(buf, fmt.Sprintf("lambda(%d,", len(v.Params))...)
		buf = appendCanonical(buf, v.Body)
		return append(buf, ')')
	case *ast.LetBinding:
		buf = append(buf, fmt.Sprintf("let(%s,", v.Name)...)
		buf = appendCanonical(buf, v.Value)
		return append(buf, ')')
	case *ast.Apply:
		buf = append(buf, "apply("...)
		buf = appendCanonical(buf, v.Selector)
		return append(buf, ')')
	case *ast.Block:
		buf = append(buf, "block["...)
		for _, l := range v.Lets {
			buf = appendCanonical(buf, l)
			buf = append(buf, ';')
		}
		buf = appendCanonical(buf, v.Result)
		return append(buf, ']')
	default:
		return append(buf, fmt.Sprintf("?(%T)", v)...)
	}
}

// appendPattern renders a match-arm pattern into the same canonical byte
// form appendCanonical uses for expressions.
func appendPattern(buf []byte, p ast.Pattern) []byte {
	switch v := p.(type) {
	case ast.LiteralPattern:
		buf = append(buf, "lit("...)
		buf = appendCanonical(buf, v.Value)
		return append(buf, ')')
	case ast.BindingPattern:
		return append(buf, fmt.Sprintf("bind(%s)", v.Name)...)
	case ast.WildcardPattern:
		return append(buf, "_"...)
	case ast.TypePattern:
		return append(buf, fmt.Sprintf("type(%s,%s)", v.TypeName, v.Name)...)
	case ast.ObjectPattern:
		buf = append(buf, "objpat["...)
		for _, f := range v.Fields {
			buf = append(buf, f.Key...)
			buf = append(buf, ':')
			buf = appendPattern(buf, f.Pattern)
			buf = append(buf, ',')
		}
		return append(buf, ']')
	case ast.ArrayPattern:
		buf = append(buf, "arrpat["...)
		for _, e := range v.Elements {
			buf = appendPattern(buf, e)
			buf = append(buf, ',')
		}
		return append(buf, fmt.Sprintf("]rest(%s)", v.Rest)...)
	case ast.GuardedPattern:
		buf = append(buf, "guard("...)
		buf = appendPattern(buf, v.Inner)
		buf = append(buf, ",when:"...)
		buf = appendCanonical(buf, v.Guard)
		return append(buf, ')')
	default:
		return append(buf, fmt.Sprintf("?(%T)", v)...)
	}
}

func entryKey(e ast.ObjectEntry) string {
	switch e.Kind {
	case ast.AttributeEntry:
		return "@" + e.Key
	case ast.LetEntry:
		return "let:" + e.Name
	default:
		return e.Key
	}
}
