package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlRule_IsMatch(t *testing.T) {
	code := ControlRule{TagPrefix: "cc", Namespace: "App.Controls", Assembly: "App"}
	markup := ControlRule{TagPrefix: "cc", TagName: "Card", Src: "Card.dothtml"}

	tests := []struct {
		name   string
		rule   ControlRule
		prefix string
		tag    string
		want   bool
	}{
		{"code rule any name", code, "cc", "Button", true},
		{"code rule case-insensitive prefix", code, "CC", "Button", true},
		{"code rule other prefix", code, "bs", "Button", false},
		{"markup rule exact name", markup, "cc", "Card", true},
		{"markup rule case-insensitive name", markup, "cc", "card", true},
		{"markup rule other name", markup, "cc", "Button", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.IsMatch(tt.prefix, tt.tag))
		})
	}
}

func TestControlRule_Validate(t *testing.T) {
	tests := []struct {
		name string
		rule ControlRule
		errs []error
	}{
		{"valid code", ControlRule{TagPrefix: "cc", Namespace: "N", Assembly: "A"}, nil},
		{"valid markup", ControlRule{TagPrefix: "cc", TagName: "Card", Src: "c.dothtml"}, nil},
		{"missing prefix", ControlRule{Namespace: "N", Assembly: "A"}, []error{ErrMissingTagPrefix}},
		{"markup without src", ControlRule{TagPrefix: "cc", TagName: "Card"}, []error{ErrMissingSrc}},
		{"markup with namespace", ControlRule{TagPrefix: "cc", TagName: "Card", Src: "c", Namespace: "N"}, []error{ErrConflictingSource}},
		{"code with src", ControlRule{TagPrefix: "cc", Namespace: "N", Assembly: "A", Src: "c"}, []error{ErrConflictingSource}},
		{"code without namespace and assembly", ControlRule{TagPrefix: "cc"}, []error{ErrMissingNamespace, ErrMissingAssembly}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if len(tt.errs) == 0 {
				require.NoError(t, err)
				return
			}

			for _, want := range tt.errs {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestControlRule_TypeKeyAndString(t *testing.T) {
	code := ControlRule{TagPrefix: "cc", Namespace: "App.Controls", Assembly: "App"}
	assert.Equal(t, "App.Controls.Button, App", code.TypeKey("Button"))
	assert.Equal(t, "cc:* -> App.Controls, App", code.String())

	markup := ControlRule{TagPrefix: "cc", TagName: "Card", Src: "Card.dothtml"}
	assert.Equal(t, "cc:Card -> Card.dothtml", markup.String())
	assert.Equal(t, "markup", markup.Kind().String())
	assert.Equal(t, "unknown", RuleKind(9).String())
}

func TestMatch_FirstWins(t *testing.T) {
	f := &File{Controls: []ControlRule{
		{TagPrefix: "cc", TagName: "Card", Src: "Card.dothtml"},
		{TagPrefix: "cc", Namespace: "App.Controls", Assembly: "App"},
	}}

	r, ok := f.Match("cc", "Card")
	require.True(t, ok)
	assert.Equal(t, RuleKindMarkup, r.Kind())

	r, ok = f.Match("cc", "Button")
	require.True(t, ok)
	assert.Equal(t, RuleKindCode, r.Kind())

	_, ok = f.Match("xx", "Button")
	assert.False(t, ok)
}

func TestFile_Prefixes(t *testing.T) {
	f := &File{Controls: []ControlRule{
		{TagPrefix: "cc"}, {TagPrefix: "bs"}, {TagPrefix: "CC"},
	}}
	assert.Equal(t, []string{"cc", "bs"}, f.Prefixes())
}
