// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package udm

import (
	"fmt"
	"strconv"
	"time"
)

// TextProperty is the reserved property name an XML element's own text is
// placed under during parsing (spec §3.1's "text-content convention"). The
// exact name is an implementation detail; every other component treats it
// uniformly through Unwrap rather than naming it directly.
const TextProperty = "_text"

// TypeOf returns one of the canonical type-name probes spec §4.1 requires:
// string, number, boolean, null, array, object, datetime, date, binary,
// lambda, plus localdatetime and time for the two wall-clock kinds. It
// returns Kind.String(), so it does not distinguish int/float either —
// "number" covers both, matching the stdlib typeOf() function's contract.
func TypeOf(v *Value) string {
	return v.Kind().String()
}

// IsEmpty reports whether v is empty: an array with no elements, an object
// with no properties and no attributes, the empty string, or null. It is
// O(1) for arrays (slice length) and objects (property/attribute count).
// For any other kind it returns false rather than panicking.
func IsEmpty(v *Value) bool {
	switch v.Kind() {
	case KindArray:
		return len(v.arr) == 0
	case KindObject:
		return v.obj.IsEmpty()
	case KindString:
		return v.s == ""
	case KindNull:
		return true
	default:
		return false
	}
}

// Unwrap implements automatic unwrapping: an Object whose only structured
// content is the reserved text property is treated as that scalar at every
// coercion boundary (member access, stringification, arithmetic). Called
// uniformly from one place rather than scattered per-operator, per spec
// §4.6 and the DESIGN NOTES re-architecture guidance.
func Unwrap(v *Value) *Value {
	if v.Kind() != KindObject {
		return v
	}
	o := v.obj
	if o.Len() != 1 || len(o.AttrKeys()) != 0 {
		return v
	}
	text, ok := o.Get(TextProperty)
	if !ok {
		return v
	}
	return Unwrap(text)
}

// FormatNumber renders an integer or float Value per the numeric-fidelity
// rule: a number that equals its truncation to integer serializes without
// a trailing ".0". This is the single coercion boundary every serializer
// must route through — the historical bug this guards against is an XML
// attribute encoder calling strconv.FormatFloat directly instead of here.
func FormatNumber(v *Value) string {
	switch v.Kind() {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		f := v.f
		if f == float64(int64(f)) && !isSpecialFloat(f) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		return ""
	}
}

func isSpecialFloat(f float64) bool {
	return f != f || f > 1e18 || f < -1e18 // NaN or outside safe int64 round-trip range
}

// Stringify renders any Value as text, applying automatic unwrapping first.
// This is the coercion boundary used wherever the language needs a scalar's
// textual form: string concatenation, XML text/attribute emission, CSV
// field rendering.
func Stringify(v *Value) string {
	v = Unwrap(v)
	switch v.Kind() {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt, KindFloat:
		return FormatNumber(v)
	case KindString:
		return v.s
	case KindDateTime, KindLocalDateTime:
		return v.t.Format("2006-01-02T15:04:05.999999999Z07:00")
	case KindDate:
		return v.t.Format("2006-01-02")
	case KindTime:
		return formatTimeOfDay(v.dur)
	case KindBinary:
		return fmt.Sprintf("<binary:%d bytes>", len(v.bin))
	case KindArray:
		return fmt.Sprintf("<array:%d elements>", len(v.arr))
	case KindObject:
		return fmt.Sprintf("<object:%d properties>", v.obj.Len())
	case KindLambda:
		return "<lambda>"
	default:
		return ""
	}
}

func formatTimeOfDay(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// AsFloat64 coerces a numeric Value (after unwrapping) to float64 and
// reports whether the Value was in fact numeric.
func AsFloat64(v *Value) (float64, bool) {
	v = Unwrap(v)
	switch v.Kind() {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// IsNullish reports whether v is null or Undefined-equivalent for the
// purposes of the "||" fallback operator, which additionally treats the
// empty string as nullish. IsNullish itself only covers the "??" half of
// that contract (null); callers implementing "||" add the empty-string
// check themselves since "??" must not.
func IsNullish(v *Value) bool {
	return v == nil || v.Kind() == KindNull
}

// IsFalsyForOr reports whether v should be replaced by the right operand of
// "||": null, or (after unwrapping) an empty string. Undefined is handled
// by the interpreter before this is ever called, since Undefined is a
// selector-evaluation outcome rather than a Value.
func IsFalsyForOr(v *Value) bool {
	if IsNullish(v) {
		return true
	}
	uv := Unwrap(v)
	return uv.Kind() == KindString && uv.s == ""
}
