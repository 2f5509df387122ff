package tree

import (
	"control-resolver/internal/datacontext"
	"control-resolver/internal/property"
)

// Object is a Node backed by a plain property map. It is not safe for
// concurrent mutation; concurrent reads of a built tree are fine.
type Object struct {
	// Name labels the node in diagnostics.
	Name string

	parent     Node
	children   []*Object
	properties map[*property.Property]any
	extensions map[string]any
}

var (
	_ Node                 = (*Object)(nil)
	_ ExtensionValueSource = (*Object)(nil)
)

// NewObject creates a detached node.
func NewObject(name string) *Object {
	return &Object{
		Name:       name,
		properties: make(map[*property.Property]any),
	}
}

// Parent implements Node.
func (o *Object) Parent() Node {
	return o.parent
}

// SetParent attaches o under an arbitrary Node.
func (o *Object) SetParent(n Node) {
	o.parent = n
}

// Add creates a child named name and returns it.
func (o *Object) Add(name string) *Object {
	return o.AddChild(NewObject(name))
}

// AddChild attaches c under o and returns c.
func (o *Object) AddChild(c *Object) *Object {
	c.parent = o
	o.children = append(o.children, c)

	return c
}

// Children returns the direct children in insertion order.
func (o *Object) Children() []*Object {
	return o.children
}

// GetValue implements Node.
func (o *Object) GetValue(p *property.Property, inherit bool) any {
	if v, ok := o.properties[p]; ok {
		return v
	}

	if inherit && p.IsValueInherited && o.parent != nil {
		return o.parent.GetValue(p, true)
	}

	return p.DefaultValue
}

// IsPropertySet implements Node.
func (o *Object) IsPropertySet(p *property.Property, inherit bool) bool {
	if _, ok := o.properties[p]; ok {
		return true
	}

	if inherit && p.IsValueInherited && o.parent != nil {
		return o.parent.IsPropertySet(p, true)
	}

	return false
}

// SetValue sets a property on o.
func (o *Object) SetValue(p *property.Property, v any) *Object {
	o.properties[p] = v
	return o
}

// ClearValue removes a property from o.
func (o *Object) ClearValue(p *property.Property) *Object {
	delete(o.properties, p)
	return o
}

// SetDataContextType records the context stack of o.
func (o *Object) SetDataContextType(s *datacontext.Stack) *Object {
	return o.SetValue(property.DataContextType, s)
}

// SetDataContext makes o a context boundary holding v described by s.
func (o *Object) SetDataContext(v any, s *datacontext.Stack) *Object {
	o.SetValue(property.DataContext, v)
	return o.SetDataContextType(s)
}

// SetExtensionValue provides the value of an extension parameter.
func (o *Object) SetExtensionValue(name string, v any) *Object {
	if o.extensions == nil {
		o.extensions = make(map[string]any)
	}

	o.extensions[name] = v

	return o
}

// ExtensionValue implements ExtensionValueSource.
func (o *Object) ExtensionValue(name string) (any, bool) {
	v, ok := o.extensions[name]
	return v, ok
}

func (o *Object) String() string {
	return o.Name
}
