package control

import "log/slog"

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCaches makes the resolver use (and share) c.
func WithCaches(c *Caches) Option {
	return func(r *Resolver) {
		if c != nil {
			r.caches = c
		}
	}
}

// WithMarkupLoader sets the loader used for markup rules.
func WithMarkupLoader(l MarkupLoader) Option {
	return func(r *Resolver) {
		r.markup = l
	}
}

// WithBuilderFactory sets the factory that compiles markup controls.
// The default is a DirectiveBuilderFactory over the resolver's registry.
func WithBuilderFactory(f BuilderFactory) Option {
	return func(r *Resolver) {
		r.builders = f
	}
}

// WithTypeLookup replaces the compiled control lookup. The default is the
// resolver's registry.
func WithTypeLookup(l TypeLookup) Option {
	return func(r *Resolver) {
		if l != nil {
			r.lookup = l
		}
	}
}

// WithPreparation enables or disables the preparation sweep in
// NewResolver. When disabled, control types are initialized on their first
// metadata resolution only.
func WithPreparation(enabled bool) Option {
	return func(r *Resolver) {
		r.prepare = enabled
	}
}
