// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package uerr

// Diagnostics accumulates multiple compile-time Errors so the parser can
// recover after a syntax error and keep looking for more, rather than
// aborting at the first one (spec §4.4's recovery requirement and the
// validate() entry point added in SPEC_FULL.md §12).
type Diagnostics struct {
	errs []*Error
}

// Add appends e to the collector. A nil e is ignored so callers can write
// `d.Add(tryParse())` without a separate nil check.
func (d *Diagnostics) Add(e *Error) {
	if e == nil {
		return
	}
	d.errs = append(d.errs, e)
}

// Errors returns every collected diagnostic in the order they were added.
func (d *Diagnostics) Errors() []*Error {
	return d.errs
}

// HasErrors reports whether any diagnostic was collected.
func (d *Diagnostics) HasErrors() bool {
	return len(d.errs) > 0
}

// Len returns the number of collected diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.errs)
}
