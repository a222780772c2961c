// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package udm

// Equal reports structural equality between a and b, honoring
// numeric-equivalence: an integer 42 equals a floating-point 42.0. Object
// equality ignores metadata (which is opaque bookkeeping, not data) and the
// name hint, and compares properties and attributes.
func Equal(a, b *Value) bool {
	if a == nil {
		a = Null
	}
	if b == nil {
		b = Null
	}
	ak, bk := a.Kind(), b.Kind()
	if isNumeric(ak) && isNumeric(bk) {
		return numericValue(a) == numericValue(b)
	}
	if ak != bk {
		return false
	}
	switch ak {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return objectsEqual(a.obj, b.obj)
	case KindDateTime, KindDate, KindLocalDateTime:
		return a.t.Equal(b.t)
	case KindTime:
		return a.dur == b.dur
	case KindBinary:
		if len(a.bin) != len(b.bin) {
			return false
		}
		for i := range a.bin {
			if a.bin[i] != b.bin[i] {
				return false
			}
		}
		return true
	case KindLambda:
		return a == b
	default:
		return false
	}
}

func objectsEqual(a, b *Object) bool {
	if a.Len() != b.Len() || len(a.AttrKeys()) != len(b.AttrKeys()) {
		return false
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	for _, k := range a.AttrKeys() {
		av, _ := a.Attr(k)
		bv, ok := b.Attr(k)
		if !ok || av != bv {
			return false
		}
	}
	return true
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindFloat }

func numericValue(v *Value) float64 {
	if v.Kind() == KindInt {
		return float64(v.i)
	}
	return v.f
}
