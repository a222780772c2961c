// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"
	"time"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerDatetime(r map[string]interp.StdlibFunc) {
	r["now"] = fnNow
	r["today"] = fnToday
	r["parseDate"] = fnParseDate
	r["parseDateTime"] = fnParseDateTime
	r["formatDate"] = fnFormatDate
	r["formatDateTime"] = fnFormatDateTime
	r["addDays"] = fnAddDays
	r["addSeconds"] = fnAddSeconds
	r["diffDays"] = fnDiffDays
	r["diffSeconds"] = fnDiffSeconds
	r["year"] = dateField("year", func(t time.Time) int64 { return int64(t.Year()) })
	r["month"] = dateField("month", func(t time.Time) int64 { return int64(t.Month()) })
	r["day"] = dateField("day", func(t time.Time) int64 { return int64(t.Day()) })
	r["hour"] = dateField("hour", func(t time.Time) int64 { return int64(t.Hour()) })
	r["minute"] = dateField("minute", func(t time.Time) int64 { return int64(t.Minute()) })
	r["second"] = dateField("second", func(t time.Time) int64 { return int64(t.Second()) })
	r["dayOfWeek"] = dateField("dayOfWeek", func(t time.Time) int64 { return int64(t.Weekday()) })
}

// fnNow and fnToday return the single clock snapshot the Interp was
// constructed with, per spec §4.9's determinism requirement: every call
// within one evaluation returns the same instant.
func fnNow(_ context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("now", args, 0, 0); err != nil {
		return nil, err
	}
	return udm.DateTime(it.Clock), nil
}

func fnToday(_ context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("today", args, 0, 0); err != nil {
		return nil, err
	}
	return udm.Date(it.Clock), nil
}

func wantTime(name string, v *udm.Value) (time.Time, *uerr.Error) {
	v = udm.Unwrap(v)
	switch v.Kind() {
	case udm.KindDateTime, udm.KindDate, udm.KindLocalDateTime:
		return v.AsTime(), nil
	default:
		return time.Time{}, argError(name, "expects a date or datetime, got %s", udm.TypeOf(v))
	}
}

func fnParseDate(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("parseDate", args, 1, 2); err != nil {
		return nil, err
	}
	s, err := wantString("parseDate", args[0])
	if err != nil {
		return nil, err
	}
	layout := "2006-01-02"
	if len(args) == 2 {
		layout, err = wantString("parseDate", args[1])
		if err != nil {
			return nil, err
		}
	}
	t, perr := time.Parse(layout, s)
	if perr != nil {
		return nil, argError("parseDate", "cannot parse %q as %q: %v", s, layout, perr)
	}
	return udm.Date(t), nil
}

func fnParseDateTime(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("parseDateTime", args, 1, 2); err != nil {
		return nil, err
	}
	s, err := wantString("parseDateTime", args[0])
	if err != nil {
		return nil, err
	}
	layout := time.RFC3339
	if len(args) == 2 {
		layout, err = wantString("parseDateTime", args[1])
		if err != nil {
			return nil, err
		}
	}
	t, perr := time.Parse(layout, s)
	if perr != nil {
		return nil, argError("parseDateTime", "cannot parse %q as %q: %v", s, layout, perr)
	}
	return udm.DateTime(t), nil
}

func fnFormatDate(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("formatDate", args, 1, 2); err != nil {
		return nil, err
	}
	t, err := wantTime("formatDate", args[0])
	if err != nil {
		return nil, err
	}
	layout := "2006-01-02"
	if len(args) == 2 {
		layout, err = wantString("formatDate", args[1])
		if err != nil {
			return nil, err
		}
	}
	return udm.String(t.Format(layout)), nil
}

func fnFormatDateTime(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("formatDateTime", args, 1, 2); err != nil {
		return nil, err
	}
	t, err := wantTime("formatDateTime", args[0])
	if err != nil {
		return nil, err
	}
	layout := time.RFC3339
	if len(args) == 2 {
		layout, err = wantString("formatDateTime", args[1])
		if err != nil {
			return nil, err
		}
	}
	return udm.String(t.Format(layout)), nil
}

func fnAddDays(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("addDays", args, 2, 2); err != nil {
		return nil, err
	}
	t, err := wantTime("addDays", args[0])
	if err != nil {
		return nil, err
	}
	n, err := wantInt("addDays", args[1])
	if err != nil {
		return nil, err
	}
	result := t.AddDate(0, 0, int(n))
	if udm.Unwrap(args[0]).Kind() == udm.KindDate {
		return udm.Date(result), nil
	}
	return udm.DateTime(result), nil
}

func fnAddSeconds(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("addSeconds", args, 2, 2); err != nil {
		return nil, err
	}
	t, err := wantTime("addSeconds", args[0])
	if err != nil {
		return nil, err
	}
	n, err := wantInt("addSeconds", args[1])
	if err != nil {
		return nil, err
	}
	return udm.DateTime(t.Add(time.Duration(n) * time.Second)), nil
}

func fnDiffDays(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("diffDays", args, 2, 2); err != nil {
		return nil, err
	}
	a, err := wantTime("diffDays", args[0])
	if err != nil {
		return nil, err
	}
	b, err := wantTime("diffDays", args[1])
	if err != nil {
		return nil, err
	}
	return udm.Int(int64(a.Sub(b).Hours() / 24)), nil
}

func fnDiffSeconds(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("diffSeconds", args, 2, 2); err != nil {
		return nil, err
	}
	a, err := wantTime("diffSeconds", args[0])
	if err != nil {
		return nil, err
	}
	b, err := wantTime("diffSeconds", args[1])
	if err != nil {
		return nil, err
	}
	return udm.Int(int64(a.Sub(b).Seconds())), nil
}

func dateField(name string, f func(time.Time) int64) interp.StdlibFunc {
	return func(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		t, err := wantTime(name, args[0])
		if err != nil {
			return nil, err
		}
		return udm.Int(f(t)), nil
	}
}
