package property

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrNilProperty is returned when registering a nil property.
	ErrNilProperty = errors.New("property: nil property")
	// ErrInvalidProperty is returned for a property without name or declaring type.
	ErrInvalidProperty = errors.New("property: property requires a name and a declaring type")
	// ErrConflictingRegistration is returned when a different property with
	// the same name is already registered on the same type.
	ErrConflictingRegistration = errors.New("property: conflicting property registration")
)

// Registry maps declaring types to their properties.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type][]*Property
	count  int
}

// NewRegistry creates a Registry that already knows DataContext and
// DataContextType.
func NewRegistry() *Registry {
	r := &Registry{byType: make(map[reflect.Type][]*Property)}
	// Built-ins are valid by construction.
	_ = r.Register(DataContext, DataContextType)

	return r
}

// Register adds properties to their declaring types. Registering the same
// *Property twice is a no-op.
func (r *Registry) Register(props ...*Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range props {
		if p == nil {
			return ErrNilProperty
		}

		if p.Name == "" || p.DeclaringType == nil {
			return fmt.Errorf("%w: %q", ErrInvalidProperty, p.Name)
		}

		if err := r.addLocked(p); err != nil {
			return err
		}
	}

	return nil
}

func (r *Registry) addLocked(p *Property) error {
	for _, existing := range r.byType[p.DeclaringType] {
		if existing.Name != p.Name {
			continue
		}

		if existing == p {
			return nil
		}

		return fmt.Errorf("%w: %s", ErrConflictingRegistration, p.FullName())
	}

	r.byType[p.DeclaringType] = append(r.byType[p.DeclaringType], p)
	r.count++

	return nil
}

// Declared returns the properties declared directly on t, in registration order.
func (r *Registry) Declared(t reflect.Type) []*Property {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Property(nil), r.byType[t]...)
}

// Resolve builds the property table for a type chain given most-derived
// first. A property on a more derived type hides a same-named one further up.
// Bindable properties are always included.
func (r *Registry) Resolve(chain ...reflect.Type) map[string]*Property {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*Property)

	add := func(t reflect.Type) {
		for _, p := range r.byType[t] {
			if _, hidden := out[p.Name]; !hidden {
				out[p.Name] = p
			}
		}
	}

	for _, t := range chain {
		add(t)
	}

	add(BindableType)

	return out
}

// Count returns the number of registered properties.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.count
}
