package binding

import (
	"iter"

	"control-resolver/internal/diagnostic"
	"control-resolver/internal/property"
	"control-resolver/internal/tree"
)

// FindTarget finds the node whose data context the binding was authored
// against, walking from n toward the root. It returns the number of context
// boundaries crossed before the match (n itself included) and the matching
// node.
//
// When either stack is unknown or n already evaluates in the binding's
// stack, the result is (0, n).
func FindTarget(b *Binding, n tree.Node) (int, tree.Node, error) {
	if b == nil {
		return 0, nil, diagnostic.NewError(diagnostic.DataContextSpaceNotFound, b.String(),
			"cannot resolve a nil binding")
	}

	if n == nil {
		return 0, nil, diagnostic.NewError(diagnostic.DataContextSpaceNotFound, b.String(),
			"cannot evaluate binding without a control")
	}

	want := b.DataContext
	have := tree.DataContextStack(n)

	if want == nil || have == nil || have.Equal(want) {
		return 0, n, nil
	}

	changes := 0

	for a := range tree.Ancestors(n, true) {
		if own := tree.OwnDataContextStack(a); own != nil && own.Equal(want) {
			return changes, a, nil
		}

		if tree.IsContextBoundary(a) {
			changes++
		}
	}

	return 0, nil, diagnostic.NewError(diagnostic.DataContextSpaceNotFound, b.String(),
		"could not find the data context space of the binding (expected "+want.String()+")")
}

// DataContexts yields the data context values from n to the root, nearest
// first, stopping after count values. A negative count means no limit.
// Only context boundaries contribute a value.
func DataContexts(n tree.Node, count int) iter.Seq[any] {
	return func(yield func(any) bool) {
		if count == 0 {
			return
		}

		for a := range tree.Ancestors(n, true) {
			if !tree.IsContextBoundary(a) {
				continue
			}

			if !yield(a.GetValue(property.DataContext, false)) {
				return
			}

			count--
			if count == 0 {
				return
			}
		}
	}
}

func collect(n tree.Node) []any {
	var out []any
	for v := range DataContexts(n, -1) {
		out = append(out, v)
	}

	return out
}
