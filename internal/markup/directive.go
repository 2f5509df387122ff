package markup

import (
	"bytes"
	"strings"
)

// Directive is a "@name value" line at the top of a markup file.
type Directive struct {
	Name  string
	Value string
}

// Directives is the ordered directive list of a markup file.
type Directives []Directive

// Get returns the value of the first directive with the given name,
// compared case-insensitively.
func (d Directives) Get(name string) (string, bool) {
	for _, dir := range d {
		if strings.EqualFold(dir.Name, name) {
			return dir.Value, true
		}
	}

	return "", false
}

// ParseDirectives splits src into its leading directives and the remaining
// body. Blank lines between directives are skipped; the first other line
// starts the body.
func ParseDirectives(src []byte) (Directives, []byte) {
	var dirs Directives

	rest := src

	for len(rest) > 0 {
		line := rest
		next := []byte(nil)

		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, next = rest[:i], rest[i+1:]
		}

		trimmed := strings.TrimSpace(string(line))

		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, "@"):
			name, value, _ := strings.Cut(trimmed[1:], " ")
			dirs = append(dirs, Directive{Name: name, Value: strings.TrimSpace(value)})
		default:
			return dirs, rest
		}

		rest = next
	}

	return dirs, rest
}
