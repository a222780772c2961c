// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package udm

import "testing"

func TestNumericEquivalence(t *testing.T) {
	if !Equal(Int(42), Float(42.0)) {
		t.Fatalf("Int(42) should equal Float(42.0)")
	}
	if Equal(Int(42), Float(42.5)) {
		t.Fatalf("Int(42) should not equal Float(42.5)")
	}
}

func TestFormatNumberNoTrailingZero(t *testing.T) {
	if got := FormatNumber(Float(42.0)); got != "42" {
		t.Fatalf("FormatNumber(42.0) = %q, want 42", got)
	}
	if got := FormatNumber(Float(42.5)); got != "42.5" {
		t.Fatalf("FormatNumber(42.5) = %q, want 42.5", got)
	}
	if got := FormatNumber(Int(42)); got != "42" {
		t.Fatalf("FormatNumber(Int(42)) = %q, want 42", got)
	}
}

func TestUnwrapTextOnlyObject(t *testing.T) {
	o := NewObject().With(TextProperty, String("hello"))
	v := ObjectValue(o)
	uv := Unwrap(v)
	if uv.Kind() != KindString || uv.AsString() != "hello" {
		t.Fatalf("Unwrap did not produce the text scalar: %#v", uv)
	}
}

func TestUnwrapLeavesStructuredObject(t *testing.T) {
	o := NewObject().With(TextProperty, String("hello")).With("id", String("A"))
	v := ObjectValue(o)
	uv := Unwrap(v)
	if uv.Kind() != KindObject {
		t.Fatalf("Unwrap should not collapse an object with other properties")
	}
}

func TestObjectPropertiesAndAttributesAreDisjoint(t *testing.T) {
	o := NewObject().With("id", String("child")).WithAttr("id", "attr-value")
	prop, _ := o.Get("id")
	attr, _ := o.Attr("id")
	if prop.AsString() != "child" || attr != "attr-value" {
		t.Fatalf("properties and attributes namespaces collided")
	}
}

func TestObjectInsertionOrderPreserved(t *testing.T) {
	o := NewObject().With("b", Int(2)).With("a", Int(1)).With("b", Int(3))
	keys := o.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("insertion order not preserved: %v", keys)
	}
}

func TestIsFalsyForOr(t *testing.T) {
	if !IsFalsyForOr(Null) {
		t.Fatalf("null should be falsy for ||")
	}
	if !IsFalsyForOr(String("")) {
		t.Fatalf("empty string should be falsy for ||")
	}
	if IsFalsyForOr(Int(0)) {
		t.Fatalf("0 should not be falsy for ||")
	}
}
