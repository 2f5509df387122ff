package mapping

import (
	"errors"
	"fmt"
	"strings"

	"control-resolver/internal/diagnostic"
	"control-resolver/internal/match"
)

// Catalog answers which compiled controls exist. It is implemented by the
// control type registry.
type Catalog interface {
	// Names returns the registered control names in namespace of assembly.
	Names(namespace, assembly string) []string
}

// Validate validates a rule file. With a non-nil catalog, code rules are
// also checked against the registered control namespaces.
func Validate(f *File, catalog Catalog) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("rules_is_nil", "rule file is nil", "", "")
		return res
	}

	if f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported rule file version %q", f.Version), "", "")
	}

	if len(f.Controls) == 0 {
		res.AddWarning("no_rules", "rule file declares no controls", "", "")
	}

	// catchAll records the first code rule per prefix; later rules with the
	// same prefix can never match.
	catchAll := map[string]ControlRule{}
	seen := map[string]struct{}{}

	for _, r := range f.Controls {
		ruleStr := r.String()

		if err := r.Validate(); err != nil {
			addRuleErrors(res, ruleStr, err)
			continue
		}

		prefix := strings.ToLower(r.TagPrefix)
		key := prefix + ":" + strings.ToLower(r.TagName)

		if _, dup := seen[key]; dup {
			res.AddWarning("duplicate_rule", "rule repeats an earlier rule and never matches", ruleStr, "")
			continue
		}

		seen[key] = struct{}{}

		if shadow, ok := catchAll[prefix]; ok {
			res.AddWarning("shadowed_rule",
				fmt.Sprintf("rule is unreachable behind earlier rule %s", shadow), ruleStr, "")
			continue
		}

		if r.Kind() == RuleKindCode {
			catchAll[prefix] = r
			validateNamespace(res, ruleStr, r, catalog)
		}
	}

	return res
}

func addRuleErrors(res *diagnostic.Diagnostics, ruleStr string, err error) {
	codes := []struct {
		err  error
		code string
	}{
		{ErrMissingTagPrefix, "missing_tag_prefix"},
		{ErrMissingSrc, "missing_src"},
		{ErrMissingNamespace, "missing_namespace"},
		{ErrMissingAssembly, "missing_assembly"},
		{ErrConflictingSource, "conflicting_rule_source"},
	}

	for _, c := range codes {
		if errors.Is(err, c.err) {
			res.AddError(c.code, c.err.Error(), ruleStr, "")
		}
	}
}

func validateNamespace(res *diagnostic.Diagnostics, ruleStr string, r ControlRule, catalog Catalog) {
	if catalog == nil {
		return
	}

	if len(catalog.Names(r.Namespace, r.Assembly)) == 0 {
		res.AddError("unknown_control_namespace",
			fmt.Sprintf("no controls registered in %s, %s", r.Namespace, r.Assembly), ruleStr, "")
	}
}

// CheckTag validates that prefix:name resolves through the rules to a
// registered compiled control, returning a diagnostic with suggestions when
// it does not. Markup rules are accepted as-is.
func CheckTag(f *File, catalog Catalog, prefix, name string) (diagnostic.Diagnostic, bool) {
	tag := prefix + ":" + name

	r, ok := f.Match(prefix, name)
	if !ok {
		return diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticError,
			Code:        "no_matching_rule",
			Message:     fmt.Sprintf("no rule matches prefix %q", prefix),
			Tag:         tag,
			Suggestions: match.Suggest(prefix, f.Prefixes()),
		}, false
	}

	if r.Kind() == RuleKindMarkup || catalog == nil {
		return diagnostic.Diagnostic{}, true
	}

	names := catalog.Names(r.Namespace, r.Assembly)
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return diagnostic.Diagnostic{}, true
		}
	}

	return diagnostic.Diagnostic{
		Severity:    diagnostic.DiagnosticError,
		Code:        "unknown_control",
		Message:     fmt.Sprintf("%s has no control %s", r.Namespace, name),
		Rule:        r.String(),
		Tag:         tag,
		Suggestions: match.Suggest(name, names),
	}, false
}
