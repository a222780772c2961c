// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package interp

import (
	"context"

	"github.com/utlxlang/utlx/ast"
	"github.com/utlxlang/utlx/env"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// evalApply evaluates the selector to a set of candidate context values,
// then dispatches each candidate to the first template (in source order)
// whose pattern selects it. Results are collected into an array mirroring
// the candidate order, matching spec's "apply produces one output per
// selected node" rule.
func (it *Interp) evalApply(ctx context.Context, n *ast.Apply, e *env.Environment) (*udm.Value, *uerr.Error) {
	selected, err := it.Eval(ctx, n.Selector, e)
	if err != nil {
		return nil, err
	}
	selected = udm.Unwrap(selected)

	candidates := []*udm.Value{selected}
	if selected.Kind() == udm.KindArray {
		candidates = selected.Elements()
	}

	out := make([]*udm.Value, 0, len(candidates))
	for _, cand := range candidates {
		v, err := it.applyOne(ctx, n, udm.Unwrap(cand), e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if selected.Kind() != udm.KindArray {
		return out[0], nil
	}
	return udm.Array(out...), nil
}

func (it *Interp) applyOne(ctx context.Context, site ast.Node, cand *udm.Value, e *env.Environment) (*udm.Value, *uerr.Error) {
	if err := checkCancelled(ctx, site.Span()); err != nil {
		return nil, err
	}
	for _, tmpl := range it.Templates {
		matches, err := it.templateMatches(ctx, tmpl, cand, e)
		if err != nil {
			return nil, err
		}
		if !matches {
			continue
		}
		scope := e.Push()
		scope.DefineValue(".", cand)
		v, err := it.Eval(ctx, tmpl.Body, scope)
		if err != nil {
			return nil, err.WithTrace(uerr.Frame{Name: "template", Span: tmpl.Span()})
		}
		return v, nil
	}
	return nil, uerr.New(uerr.NoTemplateMatch, site.Span(), "no template matches a %s value", udm.TypeOf(cand))
}

// templateMatches reports whether cand is a member of the set tmpl's
// pattern expression selects when evaluated against the root environment.
// A template's pattern is an ordinary selector expression (e.g.
// `$input.items`), not a match-arm Pattern; membership is tested by
// udm.Equal against every value the pattern selects, which is exact but
// O(pattern-result-size) per candidate — acceptable for the document sizes
// this engine targets.
func (it *Interp) templateMatches(ctx context.Context, tmpl *ast.TemplateDef, cand *udm.Value, e *env.Environment) (bool, *uerr.Error) {
	selected, err := it.Eval(ctx, tmpl.Pattern, it.Root)
	if err != nil {
		return false, err
	}
	selected = udm.Unwrap(selected)
	if selected.Kind() == udm.KindArray {
		for _, v := range selected.Elements() {
			if udm.Equal(udm.Unwrap(v), cand) {
				return true, nil
			}
		}
		return false, nil
	}
	return udm.Equal(selected, cand), nil
}
