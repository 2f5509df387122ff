// Package main provides the CLI entrypoint for control-resolver.
//
// control-resolver resolves markup tags to controls and evaluates binding
// expressions against a control tree:
//   - check: validates a tag-mapping rule file against the registered controls
//   - resolve: resolves prefix:Name tags and prints control metadata
//   - scan: resolves every prefixed tag and binding kind used in markup files
//   - eval: evaluates a binding expression inside a sample order list
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"control-resolver/controls"
	"control-resolver/internal/control"
	"control-resolver/internal/mapping"
)

const appName = "control-resolver"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "check":
		return cmdCheck(args[1:], stdout, stderr)
	case "resolve":
		return cmdResolve(args[1:], stdout, stderr)
	case "scan":
		return cmdScan(args[1:], stdout, stderr)
	case "eval":
		return cmdEval(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "%s: unknown command %q\n", appName, args[0])
		usage(stderr)

		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  %[1]s check   [-config rules.yaml]                    Validate tag-mapping rules.
  %[1]s resolve [-config rules.yaml] [-dump] TAG...     Resolve prefix:Name tags.
  %[1]s scan    [-config rules.yaml] FILE...            Resolve the tags used in markup files.
  %[1]s eval    -expr EXPR [-level L] [-index N] [-set V]
                                                        Evaluate a binding in the sample order list.

Without -config the built-in sample rules are used. -markup DIR reads
markup controls from DIR instead of the built-in ones; -v enables debug logs.
`, appName)
}

// setup holds the flags shared by the resolver commands.
type setup struct {
	config    string
	markupDir string
	verbose   bool
}

func (s *setup) register(fs *flag.FlagSet) {
	fs.StringVar(&s.config, "config", "", "tag-mapping rule file (default: built-in sample rules)")
	fs.StringVar(&s.markupDir, "markup", "", "directory markup controls are read from (default: built-in)")
	fs.BoolVar(&s.verbose, "v", false, "enable debug logging")
}

func (s *setup) rules() (*mapping.File, error) {
	if s.config == "" {
		return controls.DefaultRules(), nil
	}

	return mapping.LoadFile(s.config)
}

func (s *setup) logger(stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func (s *setup) registry() (*control.Registry, error) {
	reg := control.NewRegistry(nil)
	if err := controls.Register(reg); err != nil {
		return nil, fmt.Errorf("failed to register controls: %w", err)
	}

	return reg, nil
}

func (s *setup) resolver(stderr io.Writer) (*control.Resolver, error) {
	f, err := s.rules()
	if err != nil {
		return nil, err
	}

	reg, err := s.registry()
	if err != nil {
		return nil, err
	}

	loader := control.FSLoader{FS: controls.Markup}
	if s.markupDir != "" {
		loader = control.FSLoader{FS: os.DirFS(s.markupDir)}
	}

	return control.NewResolver(f, reg,
		control.WithLogger(s.logger(stderr)),
		control.WithMarkupLoader(loader))
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	return fs
}
