package control

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"control-resolver/internal/property"
)

// HTMLAttributesOwner is implemented by controls that accept arbitrary
// HTML attributes.
type HTMLAttributesOwner interface {
	HTMLAttributes() map[string]any
}

var htmlAttributesOwnerType = reflect.TypeFor[HTMLAttributesOwner]()

// HTMLGenericControl renders a plain HTML element. Tags without a prefix
// resolve to it, with the tag name as activation parameter.
type HTMLGenericControl struct {
	TagName    string
	Attributes map[string]any
}

// NewHTMLGenericControl is the activator for unprefixed tags.
func NewHTMLGenericControl(tagName string) *HTMLGenericControl {
	return &HTMLGenericControl{TagName: tagName, Attributes: map[string]any{}}
}

// HTMLAttributes implements HTMLAttributesOwner.
func (c *HTMLGenericControl) HTMLAttributes() map[string]any {
	return c.Attributes
}

// HTMLGenericControlType is the control type of unprefixed tags.
var HTMLGenericControlType = reflect.TypeFor[HTMLGenericControl]()

// ControlType is the result of resolving a tag.
type ControlType struct {
	Type reflect.Type
	// BuilderType is the type of the builder that compiled a markup
	// control; nil for compiled controls.
	BuilderType reflect.Type
	// Src is the markup file of a markup control.
	Src string
}

func (c *ControlType) String() string {
	if c.BuilderType == nil {
		return c.Type.String()
	}

	return fmt.Sprintf("%s (built by %s from %s)", c.Type, c.BuilderType, c.Src)
}

// Metadata describes a control type.
type Metadata struct {
	Name        string
	Namespace   string
	Type        reflect.Type
	// BuilderType is the builder of the first resolution that produced this
	// entry. Metadata is keyed by Type alone, so markup controls without
	// @baseType all share the MarkupControl entry and its first builder.
	BuilderType reflect.Type
	// HasHTMLAttributes reports whether the control accepts arbitrary HTML attributes.
	HasHTMLAttributes bool
	// Properties maps property names to properties, base types included.
	Properties map[string]*property.Property
}

// Property looks up a property by name, falling back to a case-insensitive match.
func (m *Metadata) Property(name string) (*property.Property, bool) {
	if p, ok := m.Properties[name]; ok {
		return p, true
	}

	for n, p := range m.Properties {
		if strings.EqualFold(n, name) {
			return p, true
		}
	}

	return nil, false
}

// PropertyNames returns the sorted property names.
func (m *Metadata) PropertyNames() []string {
	names := make([]string, 0, len(m.Properties))
	for n := range m.Properties {
		names = append(names, n)
	}

	slices.Sort(names)

	return names
}

func hasHTMLAttributes(t reflect.Type) bool {
	if t.Implements(htmlAttributesOwnerType) {
		return true
	}

	return t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(htmlAttributesOwnerType)
}
