package main

import (
	"fmt"
	"io"
	"strings"

	"control-resolver/internal/bindexpr"
	"control-resolver/internal/binding"
)

func cmdEval(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("eval", stderr)
	src := fs.String("expr", "", "binding expression")
	level := fs.String("level", "order", "context the binding is compiled in: page, orders or order")
	index := fs.Int("index", 0, "order item the binding is evaluated on")
	set := fs.String("set", "", "write this value back through the binding, then evaluate again")
	verbose := fs.Bool("v", false, "print the binding target")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*src) == "" {
		fmt.Fprintln(stderr, "eval: -expr is required")
		return 2
	}

	d, err := newDemoTree()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	stack, ok := d.stacks[*level]
	if !ok {
		fmt.Fprintf(stderr, "eval: unknown level %q\n", *level)
		return 2
	}

	n, err := d.literal(*index)
	if err != nil {
		fmt.Fprintln(stderr, "eval:", err)
		return 2
	}

	b, err := bindexpr.Compile(binding.Value, *src, stack)
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}

	if *verbose {
		changes, target, err := binding.FindTarget(b, n)
		if err != nil {
			fmt.Fprintln(stdout, err)
			return 1
		}

		fmt.Fprintf(stdout, "%s on %s: %d context changes up\n", b, target, changes)
	}

	if *set != "" {
		if err := binding.UpdateSource(b, n, *set); err != nil {
			fmt.Fprintln(stdout, err)
			return 1
		}
	}

	v, err := binding.Evaluate(b, n)
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}

	fmt.Fprintln(stdout, v)

	return 0
}
