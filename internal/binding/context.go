package binding

import (
	"control-resolver/internal/datacontext"
	"control-resolver/internal/property"
	"control-resolver/internal/tree"
)

// ChildDataContext returns the context stack that bindings inside the value
// of prop on n are compiled in.
//
// A binding placed in the property carries its own stack. Otherwise the
// node's stack is transformed by the property's data context changes, in
// Order; a property without changes, or whose changes yield no type, leaves
// the node's stack. A node without a stack yields nil.
func ChildDataContext(prop *property.Property, n tree.Node) (*datacontext.Stack, error) {
	if b, ok := n.GetValue(prop, false).(*Binding); ok {
		return b.DataContext, nil
	}

	stack := tree.DataContextStack(n)
	if stack == nil {
		return nil, nil
	}

	if len(prop.DataContextChanges) == 0 {
		return stack, nil
	}

	return datacontext.Apply(stack, prop.DataContextChanges)
}
