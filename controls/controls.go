// Package controls is a small control library used by the CLI and tests.
// Register adds its controls to a registry; DefaultRules maps the "cc"
// prefix to them and to the markup controls embedded in Markup.
package controls

import (
	"embed"
	"reflect"

	"control-resolver/internal/control"
	"control-resolver/internal/datacontext"
	"control-resolver/internal/mapping"
	"control-resolver/internal/property"
)

const (
	Assembly  = "Sample"
	Namespace = "Sample.Controls"
	Prefix    = "cc"
)

// Markup holds the markup controls named by DefaultRules.
//
//go:embed markup/*.html
var Markup embed.FS

// ControlBase is the base of every control in this library.
type ControlBase struct {
	ID string
}

// Button raises Click when pressed.
type Button struct {
	ControlBase
}

// TextBox edits a text value and passes unknown attributes to the element.
type TextBox struct {
	ControlBase
	attributes map[string]any
}

// HTMLAttributes implements control.HTMLAttributesOwner.
func (t *TextBox) HTMLAttributes() map[string]any {
	if t.attributes == nil {
		t.attributes = map[string]any{}
	}

	return t.attributes
}

// Repeater renders ItemTemplate once per element of its data context.
type Repeater struct {
	ControlBase
}

// Literal renders text.
type Literal struct {
	ControlBase
}

// Panel groups child controls.
type Panel struct {
	ControlBase
}

var (
	IDProperty      = property.New[ControlBase]("ID")
	VisibleProperty = property.New[ControlBase]("Visible", property.WithDefault(true), property.Inherited())

	ButtonTextProperty  = property.New[Button]("Text")
	ButtonClickProperty = property.New[Button]("Click")

	TextBoxTextProperty    = property.New[TextBox]("Text")
	TextBoxChangedProperty = property.New[TextBox]("Changed")

	RepeaterItemTemplateProperty = property.New[Repeater]("ItemTemplate",
		property.WithDataContextChange(datacontext.CollectionElement{}))
	RepeaterEmptyTemplateProperty = property.New[Repeater]("EmptyDataTemplate")

	LiteralTextProperty = property.New[Literal]("Text")

	PanelContentProperty = property.New[Panel]("Content")
)

func registration(name string, t reflect.Type, newFn func() any, props ...*property.Property) control.Registration {
	reg := control.Registration{
		Assembly:  Assembly,
		Namespace: Namespace,
		Name:      name,
		Type:      t,
		New:       newFn,
		Init: func(r *property.Registry) error {
			return r.Register(props...)
		},
	}

	if t != reflect.TypeFor[ControlBase]() {
		reg.Base = reflect.TypeFor[ControlBase]()
	}

	return reg
}

// Registrations lists the compiled controls of the library.
func Registrations() []control.Registration {
	return []control.Registration{
		registration("ControlBase", reflect.TypeFor[ControlBase](), nil,
			IDProperty, VisibleProperty),
		registration("Button", reflect.TypeFor[Button](), func() any { return &Button{} },
			ButtonTextProperty, ButtonClickProperty),
		registration("TextBox", reflect.TypeFor[TextBox](), func() any { return &TextBox{} },
			TextBoxTextProperty, TextBoxChangedProperty),
		registration("Repeater", reflect.TypeFor[Repeater](), func() any { return &Repeater{} },
			RepeaterItemTemplateProperty, RepeaterEmptyTemplateProperty),
		registration("Literal", reflect.TypeFor[Literal](), func() any { return &Literal{} },
			LiteralTextProperty),
		registration("Panel", reflect.TypeFor[Panel](), func() any { return &Panel{} },
			PanelContentProperty),
	}
}

// Register adds the library's controls to r.
func Register(r *control.Registry) error {
	return r.Register(Registrations()...)
}

// DefaultRules maps cc:Card and cc:Summary to the embedded markup controls
// and every other cc tag to the compiled controls.
func DefaultRules() *mapping.File {
	return &mapping.File{
		Version: "1",
		Controls: []mapping.ControlRule{
			{TagPrefix: Prefix, TagName: "Card", Src: "markup/Card.html"},
			{TagPrefix: Prefix, TagName: "Summary", Src: "markup/Summary.html"},
			{TagPrefix: Prefix, Namespace: Namespace, Assembly: Assembly},
		},
	}
}
