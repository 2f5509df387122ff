package datacontext

import (
	"errors"
	"iter"
	"reflect"
	"strings"
)

// ErrNilType is the panic value of New when called without a context type.
var ErrNilType = errors.New("datacontext: nil data context type")

// ExtensionParameter is a named value injected into one context level beyond
// the primary context value. Inherit makes it visible to nested levels.
type ExtensionParameter struct {
	Name    string
	Type    reflect.Type
	Inherit bool
}

// Stack is one level of nested data context. A nil *Stack means "no context".
type Stack struct {
	dataContextType reflect.Type
	parent          *Stack
	params          []ExtensionParameter
	depth           int
}

// New creates a context level of type t on top of parent.
// It panics with ErrNilType if t is nil.
func New(t reflect.Type, parent *Stack, params ...ExtensionParameter) *Stack {
	if t == nil {
		panic(ErrNilType)
	}

	s := &Stack{
		dataContextType: t,
		parent:          parent,
		depth:           1,
	}

	if len(params) > 0 {
		s.params = append([]ExtensionParameter(nil), params...)
	}

	if parent != nil {
		s.depth = parent.depth + 1
	}

	return s
}

// Root creates a parentless context level for the type of v.
func Root(v any, params ...ExtensionParameter) *Stack {
	return New(reflect.TypeOf(v), nil, params...)
}

// For creates a context level for T on top of parent.
func For[T any](parent *Stack, params ...ExtensionParameter) *Stack {
	return New(reflect.TypeFor[T](), parent, params...)
}

// DataContextType returns the type of the value bound at this level.
func (s *Stack) DataContextType() reflect.Type {
	if s == nil {
		return nil
	}

	return s.dataContextType
}

// Parent returns the enclosing level, or nil at the root.
func (s *Stack) Parent() *Stack {
	if s == nil {
		return nil
	}

	return s.parent
}

// ExtensionParameters returns a copy of the parameters declared at this level.
func (s *Stack) ExtensionParameters() []ExtensionParameter {
	if s == nil || len(s.params) == 0 {
		return nil
	}

	return append([]ExtensionParameter(nil), s.params...)
}

// Depth returns the number of levels from s to the root, inclusive.
func (s *Stack) Depth() int {
	if s == nil {
		return 0
	}

	return s.depth
}

// EnumerableItems yields s, its parent, and so on up to the root.
// Every range over the returned sequence walks the chain again.
func (s *Stack) EnumerableItems() iter.Seq[*Stack] {
	return func(yield func(*Stack) bool) {
		for c := s; c != nil; c = c.parent {
			if !yield(c) {
				return
			}
		}
	}
}

// Items returns EnumerableItems as a slice, root last.
func (s *Stack) Items() []*Stack {
	items := make([]*Stack, 0, s.Depth())
	for c := range s.EnumerableItems() {
		items = append(items, c)
	}

	return items
}

// At returns the n-th level above s; At(0) is s itself.
func (s *Stack) At(n int) (*Stack, bool) {
	if n < 0 {
		return nil, false
	}

	i := 0
	for c := range s.EnumerableItems() {
		if i == n {
			return c, true
		}
		i++
	}

	return nil, false
}

// Outermost returns the root level of the chain.
func (s *Stack) Outermost() *Stack {
	var last *Stack
	for c := range s.EnumerableItems() {
		last = c
	}

	return last
}

// LevelOf returns how many levels above s a level equal to other sits.
func (s *Stack) LevelOf(other *Stack) (int, bool) {
	if other == nil {
		return 0, false
	}

	i := 0
	for c := range s.EnumerableItems() {
		if c.Equal(other) {
			return i, true
		}
		i++
	}

	return 0, false
}

// ExtensionParameter finds the parameter called name visible at s: any
// parameter of s itself, or an inheritable one of an enclosing level.
// The returned level is the one that declares it.
func (s *Stack) ExtensionParameter(name string) (ExtensionParameter, *Stack, bool) {
	for c := range s.EnumerableItems() {
		for _, p := range c.params {
			if p.Name == name && (c == s || p.Inherit) {
				return p, c, true
			}
		}
	}

	return ExtensionParameter{}, nil, false
}

// Equal reports structural equality: same type, same extension parameters in
// the same order, and equal parents. Two nil stacks are equal.
func (s *Stack) Equal(other *Stack) bool {
	for {
		if s == other {
			return true
		}

		if s == nil || other == nil {
			return false
		}

		if s.depth != other.depth || s.dataContextType != other.dataContextType {
			return false
		}

		if len(s.params) != len(other.params) {
			return false
		}

		for i := range s.params {
			if s.params[i] != other.params[i] {
				return false
			}
		}

		s, other = s.parent, other.parent
	}
}

// String renders the chain innermost first, e.g. "Item -> List -> Page".
func (s *Stack) String() string {
	if s == nil {
		return "<nil>"
	}

	parts := make([]string, 0, s.depth)
	for c := range s.EnumerableItems() {
		name := c.dataContextType.String()
		if len(c.params) > 0 {
			names := make([]string, len(c.params))
			for i, p := range c.params {
				names[i] = p.Name
			}
			name += "{" + strings.Join(names, ",") + "}"
		}

		parts = append(parts, name)
	}

	return strings.Join(parts, " -> ")
}
