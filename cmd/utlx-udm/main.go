// Command utlx-udm converts fixture files between the .udm text form and
// the engine's other format bridges, so a JSON/XML/YAML/CSV sample can be
// captured once as a .udm fixture and diffed byte-for-byte across runtimes
// regardless of which serializer quirks the original format has.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	ucsv "github.com/utlxlang/utlx/format/csv"
	ujson "github.com/utlxlang/utlx/format/json"
	udmtext "github.com/utlxlang/utlx/format/udm"
	uxml "github.com/utlxlang/utlx/format/xml"
	uyaml "github.com/utlxlang/utlx/format/yaml"
	"github.com/utlxlang/utlx/udm"
	"github.com/utlxlang/utlx/uerr"
)

func main() {
	var from, to, outPath string
	var indent int

	rootCmd := &cobra.Command{
		Use:           "utlx-udm <file>",
		Short:         "Convert fixtures between .udm and the engine's format bridges",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], from, to, outPath, indent)
		},
	}

	flags := rootCmd.Flags()
	registerFlags(flags, &from, &to, &outPath, &indent)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "utlx-udm: %v\n", err)
		os.Exit(1)
	}
}

func registerFlags(flags *pflag.FlagSet, from, to, outPath *string, indent *int) {
	flags.StringVar(from, "from", "auto",
		"source format: json, xml, yaml, csv, udm, or auto to sniff from the file extension")
	flags.StringVar(to, "to", "udm",
		"destination format: json, xml, yaml, csv, or udm")
	flags.StringVarP(outPath, "output", "o", "-",
		"output file path (- for stdout)")
	flags.IntVar(indent, "indent", 2,
		"indentation width for formats that pretty-print (udm, yaml, json)")
}

func run(inPath, from, to, outPath string, indent int) error {
	data, err := readInput(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}

	if from == "auto" || from == "" {
		from = sniffExtension(inPath)
	}

	v, perr := parseAs(from, data, indent)
	if perr != nil {
		return perr
	}

	out, serr := serializeAs(to, v, indent)
	if serr != nil {
		return serr
	}

	return writeOutput(outPath, out)
}

func sniffExtension(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepathExt(path)), ".")
	switch ext {
	case "yml":
		return "yaml"
	case "":
		return "json"
	default:
		return ext
	}
}

func filepathExt(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

func parseAs(format string, data []byte, indent int) (*udm.Value, *uerr.Error) {
	switch strings.ToLower(format) {
	case "json":
		return ujson.Parse(data)
	case "xml":
		return uxml.Parse(data, uxml.ParseOptions{})
	case "yaml", "yml":
		return uyaml.Parse(data, uyaml.ParseOptions{})
	case "csv":
		return ucsv.Parse(data, ucsv.DefaultOptions())
	case "udm":
		return udmtext.Parse(data)
	default:
		return nil, uerr.New(uerr.FormatParseError, udm.Span{}, "unknown source format %q", format)
	}
}

func serializeAs(format string, v *udm.Value, indent int) ([]byte, *uerr.Error) {
	switch strings.ToLower(format) {
	case "json":
		return ujson.Serialize(v, ujson.Options{Pretty: true, Indent: indent})
	case "xml":
		return uxml.Serialize(v, uxml.SerializeOptions{})
	case "yaml", "yml":
		return uyaml.Serialize(v, uyaml.SerializeOptions{Indent: indent})
	case "csv":
		return ucsv.Serialize(v, ucsv.DefaultOptions())
	case "udm":
		return udmtext.Serialize(v, udmtext.Options{Indent: indent})
	default:
		return nil, uerr.New(uerr.FormatSerializeError, udm.Span{}, "unknown destination format %q", format)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
