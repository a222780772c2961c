// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package interp tree-walks a UTL-X ast.Program against a set of inputs,
// producing a single udm.Value result. It owns the selector engine,
// pipeline rewrite, pattern matching, function/closure application, and
// template dispatch described in spec §3.5-§3.7.
package interp

import (
	"context"
	"math/rand"
	"time"

	"github.com/utlxlang/utlx/ast"
	"github.com/utlxlang/utlx/env"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// StdlibFunc is the signature every standard-library function implements.
// args have already been evaluated; the function is responsible for its
// own arity/type checking and must return a *uerr.Error (not panic) on
// misuse, per spec §7's FunctionArgumentException kind.
type StdlibFunc func(ctx context.Context, it *Interp, args []*udm.Value) (*udm.Value, *uerr.Error)

// Closure is the runtime representation of a user-defined function or
// lambda: parameters, body, and the environment it closed over. Lambdas
// are stored behind udm.Value's opaque lambda payload as `any` to avoid a
// udm <-> interp import cycle; the evaluator type-asserts it back before
// invoking. Top-level functions live in Interp.Functions instead, keyed
// by name, since they need no closure-identity beyond the root frame.
type Closure struct {
	Params []ast.Param
	Body   ast.Node
	Env    *env.Environment
	Name   string // "" for anonymous lambdas, used only for trace frames
}

// Interp holds everything needed to evaluate one Program run: its function
// and template tables, the inputs it was invoked with, and the run's
// options (deterministic clock, stdlib registry).
type Interp struct {
	Program   *ast.Program
	Functions map[string]*Closure
	Templates []*ast.TemplateDef
	Root      *env.Environment
	Inputs    map[string]*udm.Value
	Stdlib    map[string]StdlibFunc
	Clock     time.Time // single snapshot used for every now()/today() call this run

	// Rand backs the random/randomInt stdlib functions when set by the
	// caller (the engine's WithSeed option), so a seeded run is
	// reproducible. Left nil, those functions fall back to math/rand's
	// process-wide source, per spec §5.
	Rand *rand.Rand
}

// New builds an Interp for prog, registering its top-level functions as
// closures over the root environment and binding inputs under their
// declared names (and the bare "" key for the single unnamed input).
func New(prog *ast.Program, inputs map[string]*udm.Value, stdlib map[string]StdlibFunc, clock time.Time) *Interp {
	root := env.New()
	it := &Interp{
		Program:   prog,
		Functions: make(map[string]*Closure, len(prog.Functions)),
		Templates: prog.Templates,
		Root:      root,
		Inputs:    inputs,
		Stdlib:    stdlib,
		Clock:     clock,
	}
	for _, fn := range prog.Functions {
		it.Functions[fn.Name] = &Closure{Params: fn.Params, Body: fn.Body, Env: root, Name: fn.Name}
	}
	return it
}

// Run evaluates the program body to completion.
func (it *Interp) Run(ctx context.Context) (*udm.Value, *uerr.Error) {
	if it.Program.Body == nil {
		return udm.Null, nil
	}
	return it.Eval(ctx, it.Program.Body, it.Root)
}

// checkCancelled is called at function/template call boundaries and
// stdlib reducer loop heads so a host-supplied deadline or cancellation
// is honored promptly rather than only after the whole tree is walked.
func checkCancelled(ctx context.Context, span udm.Span) *uerr.Error {
	select {
	case <-ctx.Done():
		return uerr.New(uerr.Cancelled, span, "evaluation cancelled: %v", ctx.Err())
	default:
		return nil
	}
}

// CheckCancelled is checkCancelled exposed for stdlib reducers (map, filter,
// reduce, flatMap), whose loops must honor cooperative
// cancellation at each iteration per spec §5.
func CheckCancelled(ctx context.Context, span udm.Span) *uerr.Error {
	return checkCancelled(ctx, span)
}
