// Package property defines control property identifiers and the registry
// that maps control types to the properties they declare.
//
// Properties are plain values created with New and made known to a Registry
// by an explicit Register call, normally from a control library's bootstrap
// function. Resolution of a type's property table walks its base chain.
package property

import (
	"reflect"

	"control-resolver/internal/datacontext"
)

// Bindable is the declaring type of the properties every control has.
type Bindable struct{}

// BindableType is reflect.TypeFor[Bindable]().
var BindableType = reflect.TypeFor[Bindable]()

var (
	// DataContext holds the value bindings of a node and its descendants
	// evaluate against. Setting it on a node makes the node a context boundary.
	DataContext = New[Bindable]("DataContext", Inherited())
	// DataContextType holds the *datacontext.Stack of a node.
	DataContextType = New[Bindable]("DataContextType",
		Inherited(),
		OfType(reflect.TypeFor[*datacontext.Stack]()))
)

// Property identifies one property of a control type. Properties are
// compared by pointer.
type Property struct {
	Name          string
	DeclaringType reflect.Type
	// PropertyType is the expected value type, nil when unconstrained.
	PropertyType reflect.Type
	DefaultValue any
	// IsValueInherited makes unset values fall back to the parent node.
	IsValueInherited bool
	// DataContextChanges alter the context seen by bindings in this
	// property's value and by child content placed in it.
	DataContextChanges []datacontext.Change
}

// Option configures a Property created with New.
type Option func(*Property)

// New creates a property named name declared on T.
func New[T any](name string, opts ...Option) *Property {
	p := &Property{
		Name:          name,
		DeclaringType: reflect.TypeFor[T](),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Inherited makes the property value inherit down the tree.
func Inherited() Option {
	return func(p *Property) {
		p.IsValueInherited = true
	}
}

// WithDefault sets the value returned when the property is not set.
func WithDefault(v any) Option {
	return func(p *Property) {
		p.DefaultValue = v
	}
}

// OfType sets the expected value type.
func OfType(t reflect.Type) Option {
	return func(p *Property) {
		p.PropertyType = t
	}
}

// WithDataContextChange attaches context changes to the property.
func WithDataContextChange(changes ...datacontext.Change) Option {
	return func(p *Property) {
		p.DataContextChanges = append(p.DataContextChanges, changes...)
	}
}

// FullName returns "Declaring.Name".
func (p *Property) FullName() string {
	if p.DeclaringType == nil {
		return p.Name
	}

	return p.DeclaringType.Name() + "." + p.Name
}

func (p *Property) String() string {
	return p.FullName()
}
