package controls

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"control-resolver/internal/control"
	"control-resolver/internal/mapping"
)

func newResolver(t *testing.T) *control.Resolver {
	t.Helper()

	reg := control.NewRegistry(nil)
	require.NoError(t, Register(reg))

	r, err := control.NewResolver(DefaultRules(), reg,
		control.WithMarkupLoader(control.FSLoader{FS: Markup}))
	require.NoError(t, err)

	return r
}

func TestDefaultRules_Valid(t *testing.T) {
	reg := control.NewRegistry(nil)
	require.NoError(t, Register(reg))

	diags := mapping.Validate(DefaultRules(), reg)
	assert.True(t, diags.IsValid(), "%v", diags.Error())
	assert.Empty(t, diags.Warnings)
}

func TestResolve(t *testing.T) {
	r := newResolver(t)

	md, _, err := r.ResolveControl(Prefix, "Button")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[Button](), md.Type)
	assert.Subset(t, md.PropertyNames(), []string{"ID", "Visible", "Text", "Click", "DataContext"})

	md, _, err = r.ResolveControl(Prefix, "TextBox")
	require.NoError(t, err)
	assert.True(t, md.HasHTMLAttributes)

	md, _, err = r.ResolveControl(Prefix, "Card")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[Panel](), md.Type)
	assert.Equal(t, reflect.TypeFor[*control.DirectiveBuilder](), md.BuilderType)

	md, _, err = r.ResolveControl(Prefix, "Summary")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[control.MarkupControl](), md.Type)
}

func TestTextBox_HTMLAttributes(t *testing.T) {
	tb := &TextBox{}
	tb.HTMLAttributes()["placeholder"] = "name"
	assert.Equal(t, "name", tb.HTMLAttributes()["placeholder"])
}
