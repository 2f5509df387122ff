package control

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"control-resolver/internal/binding"
	"control-resolver/internal/common"
	"control-resolver/internal/diagnostic"
	"control-resolver/internal/mapping"
	"control-resolver/internal/match"
)

// TypeLookup finds compiled controls by their "Namespace.Name, Assembly" key.
type TypeLookup interface {
	LookupKey(key string) (Registration, bool)
}

// Resolver maps markup tags to control types and control types to metadata.
// It is safe for concurrent use.
type Resolver struct {
	rules    []mapping.ControlRule
	types    *Registry
	lookup   TypeLookup
	caches   *Caches
	markup   MarkupLoader
	builders BuilderFactory
	logger   *slog.Logger
	prepare  bool
}

// NewResolver creates a Resolver over the rules of f and the controls of
// types, then runs the registry's one-time preparation.
func NewResolver(f *mapping.File, types *Registry, opts ...Option) (*Resolver, error) {
	if types == nil {
		types = NewRegistry(nil)
	}

	r := &Resolver{
		types:   types,
		lookup:  types,
		logger:  slog.Default(),
		prepare: true,
	}

	if f != nil {
		r.rules = append([]mapping.ControlRule(nil), f.Controls...)
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.caches == nil {
		r.caches = NewCaches()
	}

	if r.builders == nil {
		r.builders = DirectiveBuilderFactory{Types: types}
	}

	if r.prepare {
		if err := types.Prepare(r.rules, r.logger); err != nil {
			return nil, fmt.Errorf("failed to prepare controls: %w", err)
		}
	}

	return r, nil
}

// Registry returns the registry the resolver reads compiled controls from.
func (r *Resolver) Registry() *Registry {
	return r.types
}

// Caches returns the caches in use.
func (r *Resolver) Caches() *Caches {
	return r.caches
}

// ResolveTag returns the control type of prefix:name. Results are cached
// per "prefix:name" and the same *ControlType is returned on every hit.
func (r *Resolver) ResolveTag(prefix, name string) (*ControlType, error) {
	return r.caches.Tags.GetOrAdd(prefix+":"+name, func(string) (*ControlType, error) {
		return r.findControlType(prefix, name)
	})
}

// ResolveControl resolves a tag to metadata. An empty prefix denotes a
// plain HTML element: the HTMLGenericControl metadata is returned with the
// tag name as the only activation parameter.
func (r *Resolver) ResolveControl(prefix, name string) (*Metadata, []any, error) {
	if prefix == "" {
		md, err := r.ResolveMetadata(HTMLGenericControlType, nil)
		if err != nil {
			return nil, nil, err
		}

		return md, []any{name}, nil
	}

	ct, err := r.ResolveTag(prefix, name)
	if err != nil {
		return nil, nil, err
	}

	md, err := r.ResolveMetadata(ct.Type, ct.BuilderType)
	if err != nil {
		return nil, nil, err
	}

	return md, nil, nil
}

// ResolveMetadata returns the metadata of control type t. The first call
// for a type initializes it and its base types and builds its property
// table; builderType is recorded from that call.
func (r *Resolver) ResolveMetadata(t, builderType reflect.Type) (*Metadata, error) {
	if t == nil {
		return nil, diagnostic.NewError(diagnostic.ControlNotFound, "", "nil control type")
	}

	return r.caches.Metadata.GetOrAdd(t, func(t reflect.Type) (*Metadata, error) {
		return r.buildMetadata(t, builderType)
	})
}

// ResolveBinding maps a binding token to its kind.
func (r *Resolver) ResolveBinding(token string) (binding.Kind, error) {
	return binding.ParseKind(token)
}

func (r *Resolver) findControlType(prefix, name string) (*ControlType, error) {
	tag := common.JoinTag(prefix, name)

	r.logger.Debug("tag cache miss", slog.String("tag", tag))

	rule, ok := mapping.Match(r.rules, prefix, name)
	if !ok {
		return nil, diagnostic.NewError(diagnostic.ControlNotFound, tag,
			"no control rule matches the tag").
			WithSuggestions(r.suggestTags(prefix, name))
	}

	if err := rule.Validate(); err != nil {
		return nil, diagnostic.NewError(diagnostic.InvalidRule, tag,
			"rule "+rule.String()+" is invalid").
			WithCause(err)
	}

	if rule.Kind() == mapping.RuleKindMarkup {
		return r.loadMarkupControl(tag, rule)
	}

	key := rule.TypeKey(name)

	reg, ok := r.lookup.LookupKey(key)
	if !ok {
		return nil, diagnostic.NewError(diagnostic.ControlNotFound, tag,
			"control type "+key+" is not registered").
			WithSuggestions(match.Suggest(name, r.types.Names(rule.Namespace, rule.Assembly)))
	}

	return &ControlType{Type: reg.Type}, nil
}

func (r *Resolver) loadMarkupControl(tag string, rule mapping.ControlRule) (*ControlType, error) {
	if r.markup == nil {
		return nil, diagnostic.NewError(diagnostic.ControlNotFound, tag,
			"markup control "+rule.Src+" cannot be loaded: no markup loader configured")
	}

	file, err := r.markup.GetMarkup(rule.Src)
	if err != nil {
		return nil, fmt.Errorf("failed to load markup control %s: %w", tag, err)
	}

	builder, err := r.builders.GetControlBuilder(file)
	if err != nil {
		return nil, fmt.Errorf("failed to compile markup control %s: %w", tag, err)
	}

	ctl, err := builder.BuildControl()
	if err != nil {
		return nil, fmt.Errorf("failed to build markup control %s: %w", tag, err)
	}

	t := reflect.TypeOf(ctl)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil {
		return nil, fmt.Errorf("failed to build markup control %s: builder returned nil", tag)
	}

	r.logger.Debug("markup control compiled",
		slog.String("tag", tag),
		slog.String("src", rule.Src),
		slog.String("type", t.String()))

	return &ControlType{Type: t, BuilderType: reflect.TypeOf(builder), Src: rule.Src}, nil
}

func (r *Resolver) buildMetadata(t, builderType reflect.Type) (*Metadata, error) {
	r.logger.Debug("metadata cache miss", slog.String("type", t.String()))

	if err := r.types.Initialize(t); err != nil {
		return nil, fmt.Errorf("failed to initialize control %s: %w", t, err)
	}

	md := &Metadata{
		Name:              t.Name(),
		Namespace:         t.PkgPath(),
		Type:              t,
		BuilderType:       builderType,
		HasHTMLAttributes: hasHTMLAttributes(t),
		Properties:        r.types.Properties().Resolve(r.types.Chain(t)...),
	}

	if reg, ok := r.types.ByType(t); ok {
		md.Name, md.Namespace = reg.Name, reg.Namespace
	}

	return md, nil
}

// suggestTags proposes tags for an unmatched prefix:name: markup tag names
// under a known prefix, otherwise the known prefixes.
func (r *Resolver) suggestTags(prefix, name string) []string {
	var names, prefixes []string

	for _, rule := range r.rules {
		if !strings.EqualFold(rule.TagPrefix, prefix) {
			prefixes = append(prefixes, rule.TagPrefix)
			continue
		}

		if rule.TagName != "" {
			names = append(names, rule.TagName)
		}
	}

	if len(names) > 0 {
		return prefixed(prefix, match.Suggest(name, names))
	}

	out := match.Suggest(prefix, prefixes)
	for i, p := range out {
		out[i] = common.JoinTag(p, name)
	}

	return out
}

func prefixed(prefix string, names []string) []string {
	for i, n := range names {
		names[i] = common.JoinTag(prefix, n)
	}

	return names
}
