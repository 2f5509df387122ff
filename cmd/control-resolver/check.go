package main

import (
	"fmt"
	"io"

	"control-resolver/internal/mapping"
)

func cmdCheck(args []string, stdout, stderr io.Writer) int {
	var s setup

	fs := newFlagSet("check", stderr)
	s.register(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	f, err := s.rules()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	reg, err := s.registry()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	diags := mapping.Validate(f, reg)

	for _, d := range diags.Errors {
		fmt.Fprintln(stdout, "error:", d)
	}

	for _, d := range diags.Warnings {
		fmt.Fprintln(stdout, "warning:", d)
	}

	for _, d := range diags.Infos {
		fmt.Fprintln(stdout, "info:", d)
	}

	if diags.HasErrors() {
		return 1
	}

	fmt.Fprintf(stdout, "ok: %d rules\n", len(f.Controls))

	return 0
}
