// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"html"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerEncoding(r map[string]interp.StdlibFunc) {
	r["base64Encode"] = fnBase64Encode
	r["base64Decode"] = fnBase64Decode
	r["hexEncode"] = fnHexEncode
	r["hexDecode"] = fnHexDecode
	r["htmlEscape"] = str1("htmlEscape", html.EscapeString)
	r["htmlUnescape"] = str1("htmlUnescape", html.UnescapeString)
}

func fnBase64Encode(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("base64Encode", args, 1, 1); err != nil {
		return nil, err
	}
	b, err := bytesOf("base64Encode", args[0])
	if err != nil {
		return nil, err
	}
	return udm.String(base64.StdEncoding.EncodeToString(b)), nil
}

func fnBase64Decode(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("base64Decode", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := wantString("base64Decode", args[0])
	if err != nil {
		return nil, err
	}
	b, derr := base64.StdEncoding.DecodeString(s)
	if derr != nil {
		return nil, argError("base64Decode", "invalid base64 input: %v", derr)
	}
	return udm.Binary(b, "base64"), nil
}

func fnHexEncode(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("hexEncode", args, 1, 1); err != nil {
		return nil, err
	}
	b, err := bytesOf("hexEncode", args[0])
	if err != nil {
		return nil, err
	}
	return udm.String(hex.EncodeToString(b)), nil
}

func fnHexDecode(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("hexDecode", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := wantString("hexDecode", args[0])
	if err != nil {
		return nil, err
	}
	b, derr := hex.DecodeString(s)
	if derr != nil {
		return nil, argError("hexDecode", "invalid hex input: %v", derr)
	}
	return udm.Binary(b, "hex"), nil
}

// bytesOf accepts either a string (UTF-8 encoded, per spec §4.9's crypto
// function contract) or an already-binary Value.
func bytesOf(name string, v *udm.Value) ([]byte, *uerr.Error) {
	v = udm.Unwrap(v)
	switch v.Kind() {
	case udm.KindBinary:
		return v.Bytes(), nil
	case udm.KindString:
		return []byte(v.AsString()), nil
	default:
		return nil, argError(name, "expects a string or binary value, got %s", udm.TypeOf(v))
	}
}
