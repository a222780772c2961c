// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

// Package udm implements the Universal Data Model: the format-agnostic,
// immutable value type that format bridges lift external bytes into and
// that the interpreter evaluates over. See SPEC_FULL.md §3.1.
package udm

import "time"

// Value is the tagged sum at the center of the engine. Every field below is
// populated only for the Kind it corresponds to; callers must switch on
// Kind() before reading. Values are semantically immutable — every
// constructor and "With" method returns a new Value, sharing unmodified
// substructure with its inputs wherever possible.
type Value struct {
	kind Kind

	b bool
	i int64
	f float64
	s string

	arr []*Value
	obj *Object

	t   time.Time
	dur time.Duration // wall time-of-day for KindTime, measured from midnight

	bin      []byte
	binTag   string

	lambda any // opaque payload owned by the interp package
}

// Kind returns which variant of the sum this Value holds.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// Null is the shared null Value.
var Null = &Value{kind: KindNull}

// Bool constructs a boolean scalar.
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Int constructs an integer scalar.
func Int(i int64) *Value { return &Value{kind: KindInt, i: i} }

// Float constructs a floating-point scalar.
func Float(f float64) *Value { return &Value{kind: KindFloat, f: f} }

// String constructs a string scalar.
func String(s string) *Value { return &Value{kind: KindString, s: s} }

// Array constructs an array from the given elements, copying the slice
// header but not the elements (Values are immutable, so sharing is safe).
func Array(elems ...*Value) *Value {
	cp := make([]*Value, len(elems))
	copy(cp, elems)
	return &Value{kind: KindArray, arr: cp}
}

// ObjectValue wraps an *Object as a Value.
func ObjectValue(o *Object) *Value {
	if o == nil {
		o = NewObject()
	}
	return &Value{kind: KindObject, obj: o}
}

// DateTime constructs an instant-with-offset scalar.
func DateTime(t time.Time) *Value { return &Value{kind: KindDateTime, t: t} }

// Date constructs a calendar-date scalar (the time-of-day component of t is
// ignored).
func Date(t time.Time) *Value {
	y, m, d := t.Date()
	return &Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// LocalDateTime constructs a wall-clock date+time scalar with no zone
// semantics attached (the Location of t is ignored on formatting).
func LocalDateTime(t time.Time) *Value { return &Value{kind: KindLocalDateTime, t: t} }

// Time constructs a wall-clock time-of-day scalar.
func Time(d time.Duration) *Value { return &Value{kind: KindTime, dur: d} }

// Binary constructs an opaque byte-sequence scalar with an optional
// encoding tag recording how the source text presented it (e.g. "base64").
func Binary(b []byte, tag string) *Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Value{kind: KindBinary, bin: cp, binTag: tag}
}

// Lambda constructs a closure scalar. payload is owned and interpreted only
// by the interp package; udm never inspects it.
func Lambda(payload any) *Value {
	return &Value{kind: KindLambda, lambda: payload}
}

// AsBool returns the boolean payload. Callers must check Kind() first.
func (v *Value) AsBool() bool { return v.b }

// AsInt returns the integer payload.
func (v *Value) AsInt() int64 { return v.i }

// AsFloat returns the float payload.
func (v *Value) AsFloat() float64 { return v.f }

// AsString returns the string payload.
func (v *Value) AsString() string { return v.s }

// Elements returns the array payload. The caller must not mutate it.
func (v *Value) Elements() []*Value { return v.arr }

// Object returns the object payload, or nil if Kind() != KindObject.
func (v *Value) Object() *Object { return v.obj }

// AsTime returns the time payload for DateTime, Date, and LocalDateTime.
func (v *Value) AsTime() time.Time { return v.t }

// AsDuration returns the time-of-day payload for KindTime.
func (v *Value) AsDuration() time.Duration { return v.dur }

// Bytes returns the binary payload. The caller must not mutate it.
func (v *Value) Bytes() []byte { return v.bin }

// BinaryTag returns the encoding tag recorded alongside binary data.
func (v *Value) BinaryTag() string { return v.binTag }

// LambdaPayload returns the opaque closure payload owned by interp.
func (v *Value) LambdaPayload() any { return v.lambda }

// WithArrayElement returns a copy of the array with elements[i] replaced.
// Panics if v is not an array or i is out of range; callers are expected to
// have already validated the index via the selector engine.
func (v *Value) WithArrayElement(i int, elem *Value) *Value {
	cp := make([]*Value, len(v.arr))
	copy(cp, v.arr)
	cp[i] = elem
	return &Value{kind: KindArray, arr: cp}
}

// Append returns a new array with elem appended.
func (v *Value) Append(elem *Value) *Value {
	cp := make([]*Value, len(v.arr)+1)
	copy(cp, v.arr)
	cp[len(v.arr)] = elem
	return &Value{kind: KindArray, arr: cp}
}
