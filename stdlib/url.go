// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"
	"net/url"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerURL(r map[string]interp.StdlibFunc) {
	r["urlEncode"] = str1("urlEncode", url.QueryEscape)
	r["urlDecode"] = fnURLDecode
	r["parseUrl"] = fnParseURL
	r["buildUrl"] = fnBuildURL
	r["queryParam"] = fnQueryParam
}

func fnURLDecode(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("urlDecode", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := wantString("urlDecode", args[0])
	if err != nil {
		return nil, err
	}
	decoded, derr := url.QueryUnescape(s)
	if derr != nil {
		return nil, argError("urlDecode", "invalid percent-encoding: %v", derr)
	}
	return udm.String(decoded), nil
}

func fnParseURL(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("parseUrl", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := wantString("parseUrl", args[0])
	if err != nil {
		return nil, err
	}
	u, perr := url.Parse(s)
	if perr != nil {
		return nil, argError("parseUrl", "invalid URL %q: %v", s, perr)
	}
	query := udm.NewObject()
	for k, v := range u.Query() {
		if len(v) > 0 {
			query = query.With(k, udm.String(v[0]))
		}
	}
	obj := udm.NewObject().
		With("scheme", udm.String(u.Scheme)).
		With("host", udm.String(u.Hostname())).
		With("port", udm.String(u.Port())).
		With("path", udm.String(u.Path)).
		With("query", udm.ObjectValue(query)).
		With("fragment", udm.String(u.Fragment))
	return udm.ObjectValue(obj), nil
}

func fnBuildURL(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("buildUrl", args, 1, 1); err != nil {
		return nil, err
	}
	o, err := wantObject("buildUrl", args[0])
	if err != nil {
		return nil, err
	}
	u := &url.URL{}
	if v, ok := o.Get("scheme"); ok {
		u.Scheme = udm.Stringify(v)
	}
	host := ""
	if v, ok := o.Get("host"); ok {
		host = udm.Stringify(v)
	}
	if v, ok := o.Get("port"); ok && udm.Stringify(v) != "" {
		host += ":" + udm.Stringify(v)
	}
	u.Host = host
	if v, ok := o.Get("path"); ok {
		u.Path = udm.Stringify(v)
	}
	if v, ok := o.Get("fragment"); ok {
		u.Fragment = udm.Stringify(v)
	}
	if v, ok := o.Get("query"); ok {
		qo, qerr := wantObject("buildUrl", v)
		if qerr != nil {
			return nil, qerr
		}
		q := url.Values{}
		for _, k := range qo.Keys() {
			qv, _ := qo.Get(k)
			q.Set(k, udm.Stringify(qv))
		}
		u.RawQuery = q.Encode()
	}
	return udm.String(u.String()), nil
}

func fnQueryParam(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("queryParam", args, 2, 2); err != nil {
		return nil, err
	}
	s, err := wantString("queryParam", args[0])
	if err != nil {
		return nil, err
	}
	name, err := wantString("queryParam", args[1])
	if err != nil {
		return nil, err
	}
	u, perr := url.Parse(s)
	if perr != nil {
		return nil, argError("queryParam", "invalid URL %q: %v", s, perr)
	}
	v := u.Query().Get(name)
	if v == "" && !u.Query().Has(name) {
		return udm.Null, nil
	}
	return udm.String(v), nil
}
