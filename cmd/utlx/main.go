// Command utlx is the reference CLI for the UTL-X transformation engine: a
// thin shell over the engine package that reads a program and its inputs
// from disk, runs or validates or fingerprints it, and maps the result
// onto the exit-code/stdout/stderr contract collaborators expect.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utlxlang/utlx/engine"
	"github.com/utlxlang/utlx/uerr"
)

func main() {
	cfg := NewConfig()

	rootCmd := &cobra.Command{
		Use:           "utlx",
		Short:         "Run, validate, and fingerprint UTL-X transformations",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	runCmd := &cobra.Command{
		Use:   "run <script.utlx>",
		Short: "Compile and run a UTL-X program",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRun(cfg, args[0])
		},
	}
	cfg.RegisterFlags(runCmd.Flags())

	validateCmd := &cobra.Command{
		Use:   "validate <script.utlx>",
		Short: "Check a UTL-X program for syntax errors without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}

	fingerprintCmd := &cobra.Command{
		Use:   "fingerprint <script.utlx>",
		Short: "Print the canonical SHA-256 fingerprint of a UTL-X program",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runFingerprint(args[0])
		},
	}

	rootCmd.AddCommand(runCmd, validateCmd, fingerprintCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "utlx: %v\n", err)
		os.Exit(1)
	}
}

func runRun(cfg *Config, scriptPath string) error {
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", scriptPath, err)
	}

	prog, diags := engine.Compile(string(source))
	if diags.HasErrors() {
		return reportDiagnostics(string(source), diags)
	}

	inputPaths, err := parseInputs(cfg.Inputs)
	if err != nil {
		return err
	}

	inputs := make(map[string][]byte, len(inputPaths))
	for name, path := range inputPaths {
		data, rerr := readInput(path)
		if rerr != nil {
			return fmt.Errorf("reading input %s: %w", path, rerr)
		}
		inputs[name] = data
	}

	var opts []engine.Option

	if seed, ok, serr := cfg.parseSeed(); serr != nil {
		return serr
	} else if ok {
		opts = append(opts, engine.WithSeed(seed))
		logger.Debug("seeded run", "seed", seed)
	}

	clock, cerr := cfg.parseClock()
	if cerr != nil {
		return fmt.Errorf("--%s: %w", cfg.Flags.Clock, cerr)
	}
	if !clock.IsZero() {
		opts = append(opts, engine.WithClock(clock))
		logger.Debug("pinned clock", "at", clock)
	}

	logger.Info("running transformation", "script", scriptPath, "inputs", len(inputs))

	out, rerr := engine.Run(prog, inputs, opts...)
	if rerr != nil {
		logger.Error("run failed", "kind", rerr.Kind, "message", rerr.Message)
		return rerr
	}

	return writeOutput(cfg.Output, out)
}

func runValidate(scriptPath string) error {
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", scriptPath, err)
	}

	diags := engine.Validate(string(source))
	if diags.HasErrors() {
		return reportDiagnostics(string(source), diags)
	}

	fmt.Fprintln(os.Stderr, "ok")
	return nil
}

func runFingerprint(scriptPath string) error {
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", scriptPath, err)
	}

	prog, diags := engine.Compile(string(source))
	if diags.HasErrors() {
		return reportDiagnostics(string(source), diags)
	}

	fmt.Printf("%x\n", engine.CanonicalFingerprint(prog))
	return nil
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

// reportDiagnostics prints every collected diagnostic to stderr with a
// caret-annotated excerpt, then returns a plain error so main's Execute
// path exits non-zero without also printing cobra's own error line.
func reportDiagnostics(source string, diags uerr.Diagnostics) error {
	var lines []string
	for _, e := range diags.Errors() {
		lines = append(lines, e.WithExcerpt(source).Error())
	}
	fmt.Fprintln(os.Stderr, strings.Join(lines, "\n\n"))
	return errors.New("compilation failed")
}
