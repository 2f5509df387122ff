package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// File represents the root of a YAML rule file.
type File struct {
	// Version of the rule schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Controls lists tag-mapping rules in matching order.
	Controls []ControlRule `yaml:"controls"`
}

// ControlRule maps a markup prefix (and optionally a tag name) to a compiled
// control namespace or to a markup source file.
type ControlRule struct {
	TagPrefix string `yaml:"tagPrefix"`
	TagName   string `yaml:"tagName,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
	Assembly  string `yaml:"assembly,omitempty"`
	Src       string `yaml:"src,omitempty"`
}

// RuleKind tells code rules from markup rules.
type RuleKind int

const (
	RuleKindCode RuleKind = iota
	RuleKindMarkup
)

// String returns a human-readable rule kind.
func (k RuleKind) String() string {
	switch k {
	case RuleKindCode:
		return "code"
	case RuleKindMarkup:
		return "markup"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingTagPrefix is returned by Validate when tagPrefix is empty.
	ErrMissingTagPrefix = errors.New("tagPrefix is required")
	// ErrMissingSrc is returned by Validate for a markup rule without src.
	ErrMissingSrc = errors.New("markup rule requires src")
	// ErrMissingNamespace is returned by Validate for a code rule without namespace.
	ErrMissingNamespace = errors.New("code rule requires namespace")
	// ErrMissingAssembly is returned by Validate for a code rule without assembly.
	ErrMissingAssembly = errors.New("code rule requires assembly")
	// ErrConflictingSource is returned by Validate when a rule mixes code and markup fields.
	ErrConflictingSource = errors.New("rule mixes code (namespace/assembly) and markup (src) fields")
)

// Kind returns RuleKindMarkup for rules with a tag name.
func (r ControlRule) Kind() RuleKind {
	if r.TagName != "" {
		return RuleKindMarkup
	}

	return RuleKindCode
}

// IsMatch reports whether the rule applies to prefix:name.
func (r ControlRule) IsMatch(prefix, name string) bool {
	if !strings.EqualFold(r.TagPrefix, prefix) {
		return false
	}

	return r.TagName == "" || strings.EqualFold(r.TagName, name)
}

// Validate checks the rule's structure. All problems are joined.
func (r ControlRule) Validate() error {
	var errs []error

	if strings.TrimSpace(r.TagPrefix) == "" {
		errs = append(errs, ErrMissingTagPrefix)
	}

	switch r.Kind() {
	case RuleKindMarkup:
		if r.Src == "" {
			errs = append(errs, ErrMissingSrc)
		}

		if r.Namespace != "" || r.Assembly != "" {
			errs = append(errs, ErrConflictingSource)
		}
	default:
		if r.Src != "" {
			errs = append(errs, ErrConflictingSource)
		}

		if r.Namespace == "" {
			errs = append(errs, ErrMissingNamespace)
		}

		if r.Assembly == "" {
			errs = append(errs, ErrMissingAssembly)
		}
	}

	return errors.Join(errs...)
}

// TypeKey returns the registry key of the compiled control the code rule
// yields for tag name: "Namespace.Name, Assembly".
func (r ControlRule) TypeKey(name string) string {
	return TypeKey(r.Namespace, name, r.Assembly)
}

// TypeKey formats a compiled control key.
func TypeKey(namespace, name, assembly string) string {
	return namespace + "." + name + ", " + assembly
}

// String renders the rule the way diagnostics refer to it.
func (r ControlRule) String() string {
	tag := r.TagPrefix + ":"
	if r.TagName != "" {
		tag += r.TagName
	} else {
		tag += "*"
	}

	if r.Kind() == RuleKindMarkup {
		return fmt.Sprintf("%s -> %s", tag, r.Src)
	}

	return fmt.Sprintf("%s -> %s, %s", tag, r.Namespace, r.Assembly)
}

// Match returns the first rule that applies to prefix:name.
func (f *File) Match(prefix, name string) (ControlRule, bool) {
	return Match(f.Controls, prefix, name)
}

// Match returns the first of rules that applies to prefix:name.
func Match(rules []ControlRule, prefix, name string) (ControlRule, bool) {
	for _, r := range rules {
		if r.IsMatch(prefix, name) {
			return r, true
		}
	}

	return ControlRule{}, false
}

// Prefixes returns the distinct prefixes in declaration order.
func (f *File) Prefixes() []string {
	seen := make(map[string]struct{})

	var out []string

	for _, r := range f.Controls {
		p := strings.ToLower(r.TagPrefix)
		if _, ok := seen[p]; ok {
			continue
		}

		seen[p] = struct{}{}
		out = append(out, r.TagPrefix)
	}

	return out
}
