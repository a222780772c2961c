// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"
	"math"
	"math/rand"

	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func registerMath(r map[string]interp.StdlibFunc) {
	r["abs"] = numUnary("abs", math.Abs, func(i int64) int64 {
		if i < 0 {
			return -i
		}
		return i
	})
	r["ceil"] = floatToInt("ceil", math.Ceil)
	r["floor"] = floatToInt("floor", math.Floor)
	r["round"] = floatToInt("round", math.Round)
	r["sqrt"] = floatUnary("sqrt", math.Sqrt)
	r["log"] = floatUnary("log", math.Log)
	r["log10"] = floatUnary("log10", math.Log10)
	r["exp"] = floatUnary("exp", math.Exp)
	r["sign"] = numUnary("sign", sign, func(i int64) int64 {
		switch {
		case i > 0:
			return 1
		case i < 0:
			return -1
		default:
			return 0
		}
	})
	r["pow"] = fnPow
	r["mod"] = fnMod
	r["random"] = fnRandom
	r["randomInt"] = fnRandomInt
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

func numUnary(name string, ffn func(float64) float64, ifn func(int64) int64) interp.StdlibFunc {
	return func(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		v := udm.Unwrap(args[0])
		switch v.Kind() {
		case udm.KindInt:
			return udm.Int(ifn(v.AsInt())), nil
		case udm.KindFloat:
			return udm.Float(ffn(v.AsFloat())), nil
		default:
			return nil, argError(name, "expects a number, got %s", udm.TypeOf(v))
		}
	}
}

func floatUnary(name string, f func(float64) float64) interp.StdlibFunc {
	return func(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		x, err := wantFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return udm.Float(f(x)), nil
	}
}

// floatToInt rounds via f and reports the result as an integer Value, since
// ceil/floor/round are conventionally integer-valued even over float input.
func floatToInt(name string, f func(float64) float64) interp.StdlibFunc {
	return func(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
		if err := checkArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		v := udm.Unwrap(args[0])
		if v.Kind() == udm.KindInt {
			return v, nil
		}
		x, err := wantFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return udm.Int(int64(f(x))), nil
	}
}

func fnPow(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("pow", args, 2, 2); err != nil {
		return nil, err
	}
	base, err := wantFloat("pow", args[0])
	if err != nil {
		return nil, err
	}
	exp, err := wantFloat("pow", args[1])
	if err != nil {
		return nil, err
	}
	result := math.Pow(base, exp)
	if udm.Unwrap(args[0]).Kind() == udm.KindInt && udm.Unwrap(args[1]).Kind() == udm.KindInt && exp >= 0 {
		return udm.Int(int64(result)), nil
	}
	return udm.Float(result), nil
}

func fnMod(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("mod", args, 2, 2); err != nil {
		return nil, err
	}
	a, err := wantInt("mod", args[0])
	if err != nil {
		return nil, err
	}
	b, err := wantInt("mod", args[1])
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, uerr.New(uerr.DivisionByZero, udm.Span{}, "mod: modulo by zero")
	}
	return udm.Int(a % b), nil
}

// fnRandom and fnRandomInt draw from it.Rand when the engine's WithSeed
// option set one, and from the process-wide source otherwise, per spec
// §5's "random* draws from a seedable source when a seed option is set;
// by default a process-wide source is used."
func fnRandom(_ context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("random", args, 0, 0); err != nil {
		return nil, err
	}
	if it.Rand != nil {
		return udm.Float(it.Rand.Float64()), nil
	}
	return udm.Float(rand.Float64()), nil
}

func fnRandomInt(_ context.Context, it *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("randomInt", args, 2, 2); err != nil {
		return nil, err
	}
	lo, err := wantInt("randomInt", args[0])
	if err != nil {
		return nil, err
	}
	hi, err := wantInt("randomInt", args[1])
	if err != nil {
		return nil, err
	}
	if hi <= lo {
		return nil, argError("randomInt", "upper bound must exceed lower bound, got [%d,%d)", lo, hi)
	}
	if it.Rand != nil {
		return udm.Int(lo + it.Rand.Int63n(hi-lo)), nil
	}
	return udm.Int(lo + rand.Int63n(hi-lo)), nil
}
