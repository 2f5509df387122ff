package diagnostic

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolutionError_Is(t *testing.T) {
	tests := []struct {
		kind     Kind
		sentinel error
	}{
		{ControlNotFound, ErrControlNotFound},
		{InvalidRule, ErrInvalidRule},
		{UnknownBindingKind, ErrUnknownBindingKind},
		{DataContextSpaceNotFound, ErrDataContextSpaceNotFound},
		{InvalidParameterIndex, ErrInvalidParameterIndex},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", NewError(tt.kind, "subject", "message"))
			assert.ErrorIs(t, err, tt.sentinel)

			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestResolutionError_Cause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := NewError(ControlNotFound, "cc:Card", "cannot load markup").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrControlNotFound)
	assert.NotErrorIs(t, err, ErrInvalidRule)
	assert.Equal(t, "control not found [cc:Card]: cannot load markup: disk on fire", err.Error())
}

func TestResolutionError_Suggestions(t *testing.T) {
	err := NewError(UnknownBindingKind, "valeu", "").WithSuggestions([]string{"value"})
	assert.Equal(t, "unknown binding kind [valeu] (did you mean value?)", err.Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ControlNotFound", ControlNotFound.String())
	assert.Equal(t, "InvalidParameterIndex", InvalidParameterIndex.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestKindOf_NotResolutionError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning("unused_rule", "rule never matches", "cc:*", "")
	assert.True(t, d.IsValid())

	d.AddError("missing_src", "markup rule requires src", "cc:Card", "Card")
	assert.True(t, d.HasErrors())
	require.EqualError(t, d.Error(), "[cc:Card] Card: [missing_src] markup rule requires src")

	var other Diagnostics
	other.AddInfo("prepared", "2 controls initialized", "", "")
	d.Merge(other)
	assert.Len(t, d.Infos, 1)
}

func TestDiagnostic_StringWithSuggestions(t *testing.T) {
	d := Diagnostic{Code: "unknown_control", Message: "no control Buton", Tag: "cc:Buton", Suggestions: []string{"Button"}}
	assert.Equal(t, "cc:Buton: [unknown_control] no control Buton (did you mean Button?)", d.String())
}
