// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"context"

	uyaml "github.com/utlxlang/utlx/format/yaml"
	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// registerYAML implements the parseYaml/renderYaml bridge functions,
// delegating to format/yaml.
func registerYAML(r map[string]interp.StdlibFunc) {
	r["parseYaml"] = fnParseYAML
	r["renderYaml"] = fnRenderYAML
}

func fnParseYAML(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("parseYaml", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := wantString("parseYaml", args[0])
	if err != nil {
		return nil, err
	}
	return uyaml.Parse([]byte(s), uyaml.ParseOptions{})
}

func fnRenderYAML(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("renderYaml", args, 1, 2); err != nil {
		return nil, err
	}
	opts := uyaml.SerializeOptions{}
	if len(args) == 2 {
		o, oerr := wantObject("renderYaml", args[1])
		if oerr != nil {
			return nil, oerr
		}
		if flow, ok := o.Get("flow"); ok {
			b, berr := wantBool("renderYaml", flow)
			if berr != nil {
				return nil, berr
			}
			opts.Flow = b
		}
		if md, ok := o.Get("multiDocument"); ok {
			b, berr := wantBool("renderYaml", md)
			if berr != nil {
				return nil, berr
			}
			opts.MultiDocument = b
		}
		if ind, ok := o.Get("indent"); ok {
			n, nerr := wantInt("renderYaml", ind)
			if nerr != nil {
				return nil, nerr
			}
			opts.Indent = int(n)
		}
	}
	out, err := uyaml.Serialize(args[0], opts)
	if err != nil {
		return nil, err
	}
	return udm.String(string(out)), nil
}
