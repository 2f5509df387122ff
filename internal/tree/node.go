// Package tree defines the capabilities the resolver needs from a node of a
// UI control tree, plus Object, a minimal property-store implementation of
// them used by tests, the CLI and embedders without their own tree.
package tree

import (
	"iter"

	"control-resolver/internal/datacontext"
	"control-resolver/internal/property"
)

// Node is a control in a UI tree. The parent chain is acyclic and ends at
// a root whose Parent is nil.
type Node interface {
	Parent() Node
	// GetValue returns the property value; with inherit it falls back to
	// ancestors for inherited properties, then to the default value.
	GetValue(p *property.Property, inherit bool) any
	// IsPropertySet reports whether the value is set on this node, or with
	// inherit, on an ancestor for inherited properties.
	IsPropertySet(p *property.Property, inherit bool) bool
}

// ExtensionValueSource is implemented by nodes that provide values of
// data-context extension parameters (for example a repeater item's index).
type ExtensionValueSource interface {
	ExtensionValue(name string) (any, bool)
}

// Ancestors yields the parents of n up to the root, starting with n itself
// when includingThis is set.
func Ancestors(n Node, includingThis bool) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if n == nil {
			return
		}

		c := n
		if !includingThis {
			c = n.Parent()
		}

		for ; c != nil; c = c.Parent() {
			if !yield(c) {
				return
			}
		}
	}
}

// DataContextStack returns the context stack n evaluates bindings in.
func DataContextStack(n Node) *datacontext.Stack {
	s, _ := n.GetValue(property.DataContextType, true).(*datacontext.Stack)
	return s
}

// OwnDataContextStack returns the context stack set on n itself, or nil.
func OwnDataContextStack(n Node) *datacontext.Stack {
	s, _ := n.GetValue(property.DataContextType, false).(*datacontext.Stack)
	return s
}

// IsContextBoundary reports whether n overrides the inherited data context.
func IsContextBoundary(n Node) bool {
	return n.IsPropertySet(property.DataContext, false)
}

// ExtensionValue finds the value of an extension parameter on n or its
// nearest ancestor that provides it.
func ExtensionValue(n Node, name string) (any, bool) {
	for a := range Ancestors(n, true) {
		if src, ok := a.(ExtensionValueSource); ok {
			if v, ok := src.ExtensionValue(name); ok {
				return v, true
			}
		}
	}

	return nil, false
}
