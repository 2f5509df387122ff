package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	known := []string{"Button", "TextBox", "Repeater", "Literal", "CheckBox"}

	tests := []struct {
		name     string
		unknown  string
		expected []string
	}{
		{"typo", "Buton", []string{"Button"}},
		{"case only", "textbox", []string{"TextBox"}},
		{"nothing close", "GridView", []string{}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.unknown, known)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSuggestN_LimitAndOrder(t *testing.T) {
	known := []string{"valueX", "value", "values", "value"}

	got := SuggestN("valu", known, 0.5, 2)
	assert.Equal(t, []string{"value", "valueX"}, got)
}

func TestSuggest_SkipsExactMatch(t *testing.T) {
	assert.Empty(t, Suggest("value", []string{"value"}))
}

func TestSuggest_BindingTokens(t *testing.T) {
	tokens := []string{"value", "command", "controlState", "controlProperty", "controlCommand", "resource"}

	assert.Equal(t, []string{"value"}, Suggest("valeu", tokens))
	assert.Equal(t, []string{"command"}, Suggest("comand", tokens))
	assert.Equal(t, []string{"controlState"}, Suggest("control-state", tokens))
	assert.Empty(t, Suggest("binding", tokens))
}

func TestSuggest_Tags(t *testing.T) {
	known := []string{"cc:Button", "cc:Card", "xy:Button", "cc:TextBox"}

	assert.Equal(t, []string{"cc:Button"}, Suggest("cc:Buton", known))
	assert.Equal(t, []string{"cc:TextBox"}, Suggest("cc:text-box", known))
	assert.Equal(t, []string{"cc:Button"}, Suggest("ccc:Button", known))
}
