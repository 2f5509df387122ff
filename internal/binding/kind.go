package binding

import (
	"control-resolver/internal/diagnostic"
	"control-resolver/internal/match"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind is the binding variant named by a markup binding token.
type Kind int

const (
	_ Kind = iota

	Value
	Command
	ControlState
	ControlProperty
	ControlCommand
	Resource
)

var kindTokens = [...]string{
	Value:           "value",
	Command:         "command",
	ControlState:    "controlState",
	ControlProperty: "controlProperty",
	ControlCommand:  "controlCommand",
	Resource:        "resource",
}

// Token returns the markup token of k, or "" for an invalid kind.
func (k Kind) Token() string {
	if k <= 0 || int(k) >= len(kindTokens) {
		return ""
	}

	return kindTokens[k]
}

// Tokens returns every known token in Kind order.
func Tokens() []string {
	return append([]string(nil), kindTokens[1:]...)
}

// ParseKind maps a binding token such as "value" to its Kind. Tokens are
// case-sensitive.
func ParseKind(token string) (Kind, error) {
	for k := Value; int(k) < len(kindTokens); k++ {
		if kindTokens[k] == token {
			return k, nil
		}
	}

	return 0, diagnostic.NewError(diagnostic.UnknownBindingKind, token,
		"the binding type is not supported").
		WithSuggestions(match.Suggest(token, Tokens()))
}
