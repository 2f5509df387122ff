package markup

import "strings"

// ParseBinding splits an attribute value of the form "{kind: expression}".
// ok is false for values that are not bindings.
func ParseBinding(value string) (kind, expression string, ok bool) {
	v := strings.TrimSpace(value)
	if len(v) < 2 || v[0] != '{' || v[len(v)-1] != '}' {
		return "", "", false
	}

	kind, expression, ok = strings.Cut(v[1:len(v)-1], ":")
	if !ok {
		return "", "", false
	}

	kind = strings.TrimSpace(kind)
	if kind == "" || strings.ContainsAny(kind, " \t{}\"'") {
		return "", "", false
	}

	return kind, strings.TrimSpace(expression), true
}
