// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerJWT(r map[string]interp.StdlibFunc) {
	r["decodeJWT"] = fnDecodeJWT
}

// fnDecodeJWT decodes (never verifies) a JWT via jwt.ParseUnverified, per
// spec §4.9's explicit "verified: false" contract — signature verification
// is out of scope for this function.
func fnDecodeJWT(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("decodeJWT", args, 1, 1); err != nil {
		return nil, err
	}
	token, err := wantString("decodeJWT", args[0])
	if err != nil {
		return nil, err
	}
	claims := jwt.MapClaims{}
	parsed, _, perr := jwt.NewParser().ParseUnverified(token, claims)
	if perr != nil {
		return nil, argError("decodeJWT", "cannot decode token: %v", perr)
	}
	header := udm.NewObject()
	for _, k := range sortedKeys(parsed.Header) {
		header = header.With(k, jsonValueToUDM(parsed.Header[k]))
	}
	payload := udm.NewObject()
	for _, k := range sortedKeys(claims) {
		payload = payload.With(k, jsonValueToUDM(claims[k]))
	}
	result := udm.NewObject().
		With("header", udm.ObjectValue(header)).
		With("payload", udm.ObjectValue(payload)).
		With("verified", udm.Bool(false))
	return udm.ObjectValue(result), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// jsonValueToUDM converts the interface{} values jwt.MapClaims decodes JSON
// into (via encoding/json's default map[string]any unmarshaling) into UDM.
func jsonValueToUDM(v any) *udm.Value {
	switch t := v.(type) {
	case nil:
		return udm.Null
	case bool:
		return udm.Bool(t)
	case float64:
		if t == float64(int64(t)) {
			return udm.Int(int64(t))
		}
		return udm.Float(t)
	case string:
		return udm.String(t)
	case []any:
		elems := make([]*udm.Value, len(t))
		for i, e := range t {
			elems[i] = jsonValueToUDM(e)
		}
		return udm.Array(elems...)
	case map[string]any:
		obj := udm.NewObject()
		for _, k := range sortedKeys(t) {
			obj = obj.With(k, jsonValueToUDM(t[k]))
		}
		return udm.ObjectValue(obj)
	default:
		return udm.Null
	}
}
