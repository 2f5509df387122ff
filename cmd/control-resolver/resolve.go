package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"control-resolver/internal/common"
	"control-resolver/internal/control"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                3,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func cmdResolve(args []string, stdout, stderr io.Writer) int {
	var s setup

	fs := newFlagSet("resolve", stderr)
	s.register(fs)
	dump := fs.Bool("dump", false, "dump the full metadata")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "resolve: no tags given")
		return 2
	}

	r, err := s.resolver(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	status := 0

	for _, tag := range fs.Args() {
		md, params, err := r.ResolveControl(common.SplitTag(tag))
		if err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", tag, err)

			status = 1

			continue
		}

		printMetadata(stdout, tag, md, params)

		if *dump {
			dumpConfig.Fdump(stdout, md)
		}
	}

	return status
}

func printMetadata(w io.Writer, tag string, md *control.Metadata, params []any) {
	fmt.Fprintf(w, "%s -> %s.%s (%s)\n", tag, md.Namespace, md.Name, md.Type)

	if md.BuilderType != nil {
		fmt.Fprintf(w, "  builder: %s\n", md.BuilderType)
	}

	if len(params) > 0 {
		fmt.Fprintf(w, "  activation: %v\n", params)
	}

	fmt.Fprintf(w, "  html attributes: %t\n", md.HasHTMLAttributes)
	fmt.Fprintf(w, "  properties: %s\n", strings.Join(md.PropertyNames(), ", "))
}
