// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package udm

// Object is an insertion-ordered mapping from string key to Value, plus a
// disjoint side-table of string attributes, an optional element-name hint
// (used by the XML bridge to remember the tag a value was lifted from), and
// an optional metadata map that parsers may populate (source file, line,
// schema hints) and serializers may consume or ignore.
//
// Object is never mutated after construction; every "modifying" method
// returns a new Object, sharing the unmodified slices where possible.
type Object struct {
	keys       []string
	props      map[string]*Value
	attrKeys   []string
	attrs      map[string]string
	name       string
	hasName    bool
	meta       map[string]any
}

// NewObject returns an empty Object with no name hint.
func NewObject() *Object {
	return &Object{
		props: make(map[string]*Value),
		attrs: make(map[string]string),
	}
}

// clone makes a shallow copy suitable as the starting point for a "With"
// method; slices are copied so callers never see their appends leak back
// into the original.
func (o *Object) clone() *Object {
	n := &Object{
		keys:     append([]string(nil), o.keys...),
		props:    make(map[string]*Value, len(o.props)),
		attrKeys: append([]string(nil), o.attrKeys...),
		attrs:    make(map[string]string, len(o.attrs)),
		name:     o.name,
		hasName:  o.hasName,
	}
	for k, v := range o.props {
		n.props[k] = v
	}
	for k, v := range o.attrs {
		n.attrs[k] = v
	}
	if o.meta != nil {
		n.meta = make(map[string]any, len(o.meta))
		for k, v := range o.meta {
			n.meta[k] = v
		}
	}
	return n
}

// Name returns the element-name hint and whether one was set.
func (o *Object) Name() (string, bool) {
	return o.name, o.hasName
}

// WithName returns a copy of o with the element-name hint set.
func (o *Object) WithName(name string) *Object {
	n := o.clone()
	n.name = name
	n.hasName = true
	return n
}

// Keys returns the property keys in insertion order. The caller must not
// mutate the returned slice.
func (o *Object) Keys() []string {
	return o.keys
}

// Get returns the value stored at key and whether it was present. A stored
// explicit null is present; a missing key is not.
func (o *Object) Get(key string) (*Value, bool) {
	v, ok := o.props[key]
	return v, ok
}

// With returns a copy of o with key set to value. If key already exists its
// position in Keys() is preserved; otherwise it is appended.
func (o *Object) With(key string, value *Value) *Object {
	n := o.clone()
	if _, exists := n.props[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.props[key] = value
	return n
}

// Without returns a copy of o with key removed, if present.
func (o *Object) Without(key string) *Object {
	if _, ok := o.props[key]; !ok {
		return o
	}
	n := o.clone()
	delete(n.props, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
	return n
}

// Len returns the number of properties.
func (o *Object) Len() int {
	return len(o.keys)
}

// AttrKeys returns the attribute keys in insertion order.
func (o *Object) AttrKeys() []string {
	return o.attrKeys
}

// Attr returns the attribute stored at key and whether it was present.
func (o *Object) Attr(key string) (string, bool) {
	v, ok := o.attrs[key]
	return v, ok
}

// WithAttr returns a copy of o with attribute key set to value.
func (o *Object) WithAttr(key, value string) *Object {
	n := o.clone()
	if _, exists := n.attrs[key]; !exists {
		n.attrKeys = append(n.attrKeys, key)
	}
	n.attrs[key] = value
	return n
}

// Meta returns the metadata value stored at key, if any. Metadata entries
// are opaque to the interpreter; only parsers and serializers interpret
// them (source file, line, schema tags, ...).
func (o *Object) Meta(key string) (any, bool) {
	if o.meta == nil {
		return nil, false
	}
	v, ok := o.meta[key]
	return v, ok
}

// WithMeta returns a copy of o with metadata key set to value.
func (o *Object) WithMeta(key string, value any) *Object {
	n := o.clone()
	if n.meta == nil {
		n.meta = make(map[string]any)
	}
	n.meta[key] = value
	return n
}

// IsEmpty reports whether the object has no properties and no attributes.
func (o *Object) IsEmpty() bool {
	return len(o.keys) == 0 && len(o.attrKeys) == 0
}
