// Copyright 2026 The UTL-X Authors
// SPDX-License-Identifier: Apache-2.0

package stdlib

import (
	"bytes"
	"context"
	"encoding/xml"

	uxml "github.com/utlxlang/utlx/format/xml"
	"github.com/utlxlang/utlx/interp"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

// registerXML implements the XML-navigation category: introspecting the
// element-name hint and attribute side-table an XML-sourced Object carries,
// escaping/unescaping text per XML's entity rules (encoding/xml, the same
// tokenizer format/xml bridges over, per DOMAIN STACK), and the bulk
// parseXml/renderXml bridge functions spec §8's round-trip property names.
func registerXML(r map[string]interp.StdlibFunc) {
	r["elementName"] = fnElementName
	r["attrsOf"] = fnAttrsOf
	r["textOf"] = fnTextOf
	r["xmlEscape"] = fnXMLEscape
	r["xmlUnescape"] = str1("xmlUnescape", xmlUnescape)
	r["parseXml"] = fnParseXML
	r["renderXml"] = fnRenderXML
}

func fnParseXML(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("parseXml", args, 1, 2); err != nil {
		return nil, err
	}
	s, err := wantString("parseXml", args[0])
	if err != nil {
		return nil, err
	}
	opts := uxml.ParseOptions{}
	if len(args) == 2 {
		o, oerr := wantObject("parseXml", args[1])
		if oerr != nil {
			return nil, oerr
		}
		if ns, ok := o.Get("namespaces"); ok {
			nsObj, nserr := wantObject("parseXml", ns)
			if nserr != nil {
				return nil, nserr
			}
			opts.Namespaces = make(map[string]string, len(nsObj.Keys()))
			for _, uri := range nsObj.Keys() {
				prefix, _ := nsObj.Get(uri)
				opts.Namespaces[uri] = udm.Stringify(prefix)
			}
		}
	}
	return uxml.Parse([]byte(s), opts)
}

func fnRenderXML(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("renderXml", args, 1, 2); err != nil {
		return nil, err
	}
	opts := uxml.SerializeOptions{}
	if len(args) == 2 {
		o, oerr := wantObject("renderXml", args[1])
		if oerr != nil {
			return nil, oerr
		}
		if p, ok := o.Get("pretty"); ok {
			b, berr := wantBool("renderXml", p)
			if berr != nil {
				return nil, berr
			}
			opts.Pretty = b
		}
		if style, ok := o.Get("emptyElementStyle"); ok {
			s, serr := wantString("renderXml", style)
			if serr != nil {
				return nil, serr
			}
			opts.EmptyElementStyle = uxml.EmptyElementStyle(s)
		}
		if root, ok := o.Get("rootName"); ok {
			s, serr := wantString("renderXml", root)
			if serr != nil {
				return nil, serr
			}
			opts.RootName = s
		}
		if soap, ok := o.Get("soapEnvelope"); ok {
			b, berr := wantBool("renderXml", soap)
			if berr != nil {
				return nil, berr
			}
			opts.SOAPEnvelope = b
		}
	}
	out, err := uxml.Serialize(args[0], opts)
	if err != nil {
		return nil, err
	}
	return udm.String(string(out)), nil
}

func fnElementName(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("elementName", args, 1, 1); err != nil {
		return nil, err
	}
	o, err := wantObject("elementName", args[0])
	if err != nil {
		return nil, err
	}
	name, ok := o.Name()
	if !ok {
		return udm.Null, nil
	}
	return udm.String(name), nil
}

func fnAttrsOf(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("attrsOf", args, 1, 1); err != nil {
		return nil, err
	}
	o, err := wantObject("attrsOf", args[0])
	if err != nil {
		return nil, err
	}
	result := udm.NewObject()
	for _, k := range o.AttrKeys() {
		v, _ := o.Attr(k)
		result = result.With(k, udm.String(v))
	}
	return udm.ObjectValue(result), nil
}

func fnTextOf(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("textOf", args, 1, 1); err != nil {
		return nil, err
	}
	v := udm.Unwrap(args[0])
	if v.Kind() == udm.KindObject {
		if text, ok := v.Object().Get(udm.TextProperty); ok {
			return udm.String(udm.Stringify(text)), nil
		}
		return udm.String(""), nil
	}
	return udm.String(udm.Stringify(v)), nil
}

func fnXMLEscape(_ context.Context, _ *interp.Interp, args []*udm.Value) (*udm.Value, *uerr.Error) {
	if err := checkArity("xmlEscape", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := wantString("xmlEscape", args[0])
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if werr := xml.EscapeText(&buf, []byte(s)); werr != nil {
		return nil, argError("xmlEscape", "cannot escape input: %v", werr)
	}
	return udm.String(buf.String()), nil
}

func xmlUnescape(s string) string {
	d := xml.NewDecoder(bytes.NewReader([]byte("<x>" + s + "</x>")))
	var out bytes.Buffer
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		if cd, ok := tok.(xml.CharData); ok {
			out.Write(cd)
		}
	}
	return out.String()
}
