package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"control-resolver/internal/control"
	"control-resolver/internal/markup"
)

func cmdScan(args []string, stdout, stderr io.Writer) int {
	var s setup

	fs := newFlagSet("scan", stderr)
	s.register(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "scan: no files given")
		return 2
	}

	r, err := s.resolver(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var tags, failures int

	for _, name := range fs.Args() {
		n, failed, err := scanFile(r, name, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		tags += n
		failures += failed
	}

	fmt.Fprintf(stdout, "%d tags, %d problems\n", tags, failures)

	if failures > 0 {
		return 1
	}

	return 0
}

// scanFile resolves the prefixed tags and binding kinds of one markup file.
func scanFile(r *control.Resolver, name string, w io.Writer) (int, int, error) {
	src, err := os.ReadFile(name)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read %s: %w", name, err)
	}

	_, body := markup.ParseDirectives(src)
	offset := bytes.Count(src[:len(src)-len(body)], []byte{'\n'})

	tags, err := markup.Scan(bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to scan %s: %w", name, err)
	}

	var resolved, failures int

	for _, tag := range tags {
		line := tag.Line + offset

		for _, a := range tag.Attributes {
			kind, _, ok := markup.ParseBinding(a.Value)
			if !ok {
				continue
			}

			if _, err := r.ResolveBinding(kind); err != nil {
				fmt.Fprintf(w, "%s:%d: %s %s: %v\n", name, line, tag, a.Name, err)
				failures++
			}
		}

		if tag.Prefix == "" {
			continue
		}

		resolved++

		if _, _, err := r.ResolveControl(tag.Prefix, tag.Name); err != nil {
			fmt.Fprintf(w, "%s:%d: %v\n", name, line, err)
			failures++
		}
	}

	return resolved, failures, nil
}
