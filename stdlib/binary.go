// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerBinary(r map[string]interp.StdlibFunc) {
	r["byteLength"] = fnByteLength
	r["toBinary"] = fnToBinary
	r["fromBinary"] = fnFromBinary
	r["concatBinary"] = fnConcatBinary
}

func fnByteLength(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("byteLength", args, 1, 1); err != nil {
		return nil, err
	}
	b, err := bytesOf("byteLength", args[0])
	if err != nil {
		return nil, err
	}
	return udm.Int(int64(len(b))), nil
}

func fnToBinary(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("toBinary", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := wantString("toBinary", args[0])
	if err != nil {
		return nil, err
	}
	return udm.Binary([]byte(s), ""), nil
}

func fnFromBinary(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("fromBinary", args, 1, 1); err != nil {
		return nil, err
	}
	v := udm.Unwrap(args[0])
	if v.Kind() != udm.KindBinary {
		return nil, argError("fromBinary", "expects binary data, got %s", udm.TypeOf(v))
	}
	return udm.String(string(v.Bytes())), nil
}

func fnConcatBinary(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("concatBinary", args, 1, -1); err != nil {
		return nil, err
	}
	var out []byte
	for _, a := range args {
		b, err := bytesOf("concatBinary", a)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return udm.Binary(out, ""), nil
}
