// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package env implements UTL-X's lexical scoping: a stack of frames, each a
// flat name-to-binding map, searched innermost-out. Closures capture an
// Environment by reference so a lambda created inside a let-binding still
// sees later mutations are impossible (UDM is immutable) but still resolves
// names introduced after the closure if they share the same frame chain.
package env

import "github.com/utlxlang/utlx/udm"

// Kind distinguishes what a name is bound to. Functions, templates, and
// stdlib entries are resolved through Interp.Functions/Templates/Stdlib
// directly rather than through an Environment lookup (spec §3.3's three
// namespaces all key off the program/interp tables, not frames), so
// ValueBinding is the only Kind a Frame ever actually holds; it stays a
// named type rather than collapsing to plain *udm.Value so Lookup can
// report "bound to something else" if that ever changes.
type Kind int

const (
	// ValueBinding holds a plain UDM value.
	ValueBinding Kind = iota
)

// Binding is one named entry in a Frame.
type Binding struct {
	Kind  Kind
	Value *udm.Value // set when Kind == ValueBinding
}

// Frame is one lexical scope level: a function call, a template
// application, a let-introduction, or an object-literal's let entries.
type Frame struct {
	names map[string]Binding
}

func newFrame() *Frame {
	return &Frame{names: make(map[string]Binding)}
}

// Environment is a stack of Frames, innermost last. The zero value is not
// usable; construct with New.
type Environment struct {
	frames []*Frame
}

// New returns an Environment with a single root frame.
func New() *Environment {
	return &Environment{frames: []*Frame{newFrame()}}
}

// Push returns a new Environment sharing this one's frame chain plus one
// fresh frame on top. The parent Environment is left untouched, so a
// caller can push a call frame without the callee ever seeing its own
// frame escape back into the caller's scope.
func (e *Environment) Push() *Environment {
	frames := make([]*Frame, len(e.frames)+1)
	copy(frames, e.frames)
	frames[len(frames)-1] = newFrame()
	return &Environment{frames: frames}
}

// Define introduces name in the innermost frame, shadowing any outer
// binding of the same name for lookups performed against this
// Environment (or any Environment pushed from it) from this point on.
func (e *Environment) Define(name string, b Binding) {
	e.frames[len(e.frames)-1].names[name] = b
}

// DefineValue is shorthand for Define with a ValueBinding.
func (e *Environment) DefineValue(name string, v *udm.Value) {
	e.Define(name, Binding{Kind: ValueBinding, Value: v})
}

// Lookup searches frames innermost-out and reports whether name is bound.
func (e *Environment) Lookup(name string) (Binding, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if b, ok := e.frames[i].names[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// LookupValue is a convenience wrapper for the common case of resolving a
// plain value binding; it reports ok=false both when name is unbound and
// when it is bound to something other than a value.
func (e *Environment) LookupValue(name string) (*udm.Value, bool) {
	b, ok := e.Lookup(name)
	if !ok || b.Kind != ValueBinding {
		return nil, false
	}
	return b.Value, true
}
