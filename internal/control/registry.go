package control

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"control-resolver/internal/mapping"
	"control-resolver/internal/property"
)

var (
	// ErrInvalidRegistration is returned for a registration missing required fields.
	ErrInvalidRegistration = errors.New("control: registration requires name, namespace, assembly and type")
	// ErrConflictingRegistration is returned when a key or type is already
	// registered differently.
	ErrConflictingRegistration = errors.New("control: conflicting control registration")
)

// InitFunc registers the properties a control type declares.
type InitFunc func(props *property.Registry) error

// Registration describes one compiled control.
type Registration struct {
	Assembly  string
	Namespace string
	Name      string
	// Type is the control implementation type (usually a struct type).
	Type reflect.Type
	// Base is the control type Type extends, if any.
	Base reflect.Type
	// New creates an instance; optional.
	New func() any
	// Init registers Type's own properties; optional.
	Init InitFunc
}

// Key returns "Namespace.Name, Assembly".
func (r Registration) Key() string {
	return mapping.TypeKey(r.Namespace, r.Name, r.Assembly)
}

type entry struct {
	reg  Registration
	once sync.Once
	err  error
}

func (e *entry) init(props *property.Registry) error {
	e.once.Do(func() {
		if e.reg.Init != nil {
			e.err = e.reg.Init(props)
		}
	})

	return e.err
}

// Registry is the catalog of compiled controls and the owner of the
// one-time preparation flag. It is safe for concurrent use.
type Registry struct {
	props *property.Registry

	// mu guards write-side consistency and counter
	mu     sync.Mutex
	byKey  sync.Map // folded key -> *entry
	byType sync.Map // reflect.Type -> *entry
	count  int

	prepMu   sync.Mutex
	prepared atomic.Bool
}

// NewRegistry creates an empty Registry whose initializers write into props.
// A nil props gets a fresh property.Registry.
func NewRegistry(props *property.Registry) *Registry {
	if props == nil {
		props = property.NewRegistry()
	}

	return &Registry{props: props}
}

// Properties returns the property registry initializers write into.
func (r *Registry) Properties() *property.Registry {
	return r.props
}

func foldKey(key string) string {
	return strings.ToLower(key)
}

// Register adds registrations. Re-registering an identical key and type is
// a no-op.
func (r *Registry) Register(regs ...Registration) error {
	for _, reg := range regs {
		if err := r.register(reg); err != nil {
			return err
		}
	}

	return nil
}

func (r *Registry) register(reg Registration) error {
	if reg.Type == nil || reg.Name == "" || reg.Namespace == "" || reg.Assembly == "" {
		return fmt.Errorf("%w: %q", ErrInvalidRegistration, reg.Key())
	}

	key := foldKey(reg.Key())

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byKey.Load(key); ok {
		if old.(*entry).reg.Type == reg.Type {
			return nil
		}

		return fmt.Errorf("%w: %s", ErrConflictingRegistration, reg.Key())
	}

	if old, ok := r.byType.Load(reg.Type); ok {
		return fmt.Errorf("%w: %s already registered as %s",
			ErrConflictingRegistration, reg.Type, old.(*entry).reg.Key())
	}

	e := &entry{reg: reg}
	r.byKey.Store(key, e)
	r.byType.Store(reg.Type, e)
	r.count++

	return nil
}

// Lookup finds a registration by namespace, name and assembly.
// Names compare case-insensitively.
func (r *Registry) Lookup(namespace, name, assembly string) (Registration, bool) {
	return r.LookupKey(mapping.TypeKey(namespace, name, assembly))
}

// LookupKey finds a registration by its "Namespace.Name, Assembly" key.
func (r *Registry) LookupKey(key string) (Registration, bool) {
	if v, ok := r.byKey.Load(foldKey(key)); ok {
		return v.(*entry).reg, true
	}

	return Registration{}, false
}

// ByType finds the registration of a control type.
func (r *Registry) ByType(t reflect.Type) (Registration, bool) {
	if v, ok := r.byType.Load(t); ok {
		return v.(*entry).reg, true
	}

	return Registration{}, false
}

// Names returns the sorted control names registered in namespace of assembly.
func (r *Registry) Names(namespace, assembly string) []string {
	var names []string

	r.byKey.Range(func(_, value any) bool {
		reg := value.(*entry).reg
		if strings.EqualFold(reg.Namespace, namespace) && strings.EqualFold(reg.Assembly, assembly) {
			names = append(names, reg.Name)
		}

		return true
	})

	slices.Sort(names)

	return names
}

// Registrations returns a snapshot of all registrations (order is unspecified).
func (r *Registry) Registrations() []Registration {
	regs := make([]Registration, 0, r.Count())
	r.byKey.Range(func(_, value any) bool {
		regs = append(regs, value.(*entry).reg)
		return true
	})

	return regs
}

// Count returns the number of registrations.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.count
}

// Chain returns t followed by its registered base types, most derived first.
func (r *Registry) Chain(t reflect.Type) []reflect.Type {
	var chain []reflect.Type

	for t != nil && !slices.Contains(chain, t) {
		chain = append(chain, t)

		reg, ok := r.ByType(t)
		if !ok {
			break
		}

		t = reg.Base
	}

	return chain
}

// Initialize runs the property initializers of t and its bases, each at
// most once per registry. Unregistered types are skipped.
func (r *Registry) Initialize(t reflect.Type) error {
	var errs []error

	for _, c := range r.Chain(t) {
		if v, ok := r.byType.Load(c); ok {
			if err := v.(*entry).init(r.props); err != nil {
				errs = append(errs, fmt.Errorf("initialize %s: %w", c, err))
			}
		}
	}

	return errors.Join(errs...)
}

// Prepare initializes every registration whose namespace and assembly are
// named by a code rule. It runs once per registry; concurrent callers block
// until the first finishes. A failed preparation is retried by the next call.
func (r *Registry) Prepare(rules []mapping.ControlRule, logger *slog.Logger) error {
	if r.prepared.Load() {
		return nil
	}

	r.prepMu.Lock()
	defer r.prepMu.Unlock()

	if r.prepared.Load() {
		return nil
	}

	if logger == nil {
		logger = slog.Default()
	}

	// assembly -> namespaces
	modules := map[string]map[string]struct{}{}

	for _, rule := range rules {
		if rule.Assembly == "" {
			continue
		}

		asm := foldKey(rule.Assembly)
		if modules[asm] == nil {
			modules[asm] = map[string]struct{}{}
		}

		modules[asm][foldKey(rule.Namespace)] = struct{}{}
	}

	logger.Info("preparing control modules", slog.Int("assemblies", len(modules)))

	var (
		errs        []error
		initialized int
	)

	r.byKey.Range(func(_, value any) bool {
		e := value.(*entry)

		namespaces, ok := modules[foldKey(e.reg.Assembly)]
		if !ok {
			return true
		}

		if _, ok := namespaces[foldKey(e.reg.Namespace)]; !ok {
			return true
		}

		if err := e.init(r.props); err != nil {
			errs = append(errs, fmt.Errorf("initialize %s: %w", e.reg.Key(), err))
		}

		initialized++

		return true
	})

	if err := errors.Join(errs...); err != nil {
		return err
	}

	r.prepared.Store(true)
	logger.Info("control modules prepared", slog.Int("controls", initialized))

	return nil
}

// Prepared reports whether Prepare has completed.
func (r *Registry) Prepared() bool {
	return r.prepared.Load()
}
