package datacontext

import (
	"fmt"
	"reflect"
	"sort"
)

// IndexParameter is the extension parameter introduced by CollectionElement.
var IndexParameter = ExtensionParameter{Name: "_index", Type: reflect.TypeFor[int]()}

// Change describes how a property alters the data context of its children.
// Changes attached to one property are applied in ascending Order.
type Change interface {
	Order() int
	// ChildType returns the child context type for a parent of type current,
	// or nil to keep the parent context.
	ChildType(current reflect.Type, stack *Stack) (reflect.Type, error)
	// ExtensionParameters returns the parameters the child level receives.
	ExtensionParameters(current reflect.Type) []ExtensionParameter
}

// Apply folds changes over stack and returns the stack children see.
// If the changes produce no type the stack itself is returned.
func Apply(stack *Stack, changes []Change) (*Stack, error) {
	if stack == nil || len(changes) == 0 {
		return stack, nil
	}

	ordered := append([]Change(nil), changes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order() < ordered[j].Order()
	})

	t := stack.DataContextType()

	var params []ExtensionParameter

	for _, c := range ordered {
		if t == nil {
			break
		}

		params = append(params, c.ExtensionParameters(t)...)

		next, err := c.ChildType(t, stack)
		if err != nil {
			return nil, err
		}

		t = next
	}

	if t == nil {
		return stack, nil
	}

	return New(t, stack, params...), nil
}

// CollectionElement switches the context to one element of a collection.
// The collection is the context value itself, or its Member field when
// Member is set; it may be a slice, array, map or channel (or a pointer to
// one). Children get the element type and an _index parameter.
type CollectionElement struct {
	Member string
	Ord    int
}

func (c CollectionElement) Order() int { return c.Ord }

func (c CollectionElement) ChildType(current reflect.Type, _ *Stack) (reflect.Type, error) {
	if c.Member == "" {
		return ElementType(current)
	}

	owner := current
	for owner.Kind() == reflect.Pointer {
		owner = owner.Elem()
	}

	if owner.Kind() != reflect.Struct {
		return nil, fmt.Errorf("datacontext: %s has no member %s", current, c.Member)
	}

	f, ok := owner.FieldByName(c.Member)
	if !ok {
		return nil, fmt.Errorf("datacontext: %s has no member %s", current, c.Member)
	}

	return ElementType(f.Type)
}

func (c CollectionElement) ExtensionParameters(reflect.Type) []ExtensionParameter {
	return []ExtensionParameter{IndexParameter}
}

// ConstantType switches the context to a fixed type.
type ConstantType struct {
	Type reflect.Type
	Ord  int
}

func (c ConstantType) Order() int { return c.Ord }

func (c ConstantType) ChildType(reflect.Type, *Stack) (reflect.Type, error) {
	return c.Type, nil
}

func (c ConstantType) ExtensionParameters(reflect.Type) []ExtensionParameter { return nil }

// ElementType returns the element type of a collection type, looking through
// pointers.
func ElementType(t reflect.Type) (reflect.Type, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil {
		return nil, fmt.Errorf("datacontext: nil collection type")
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return t.Elem(), nil
	default:
		return nil, fmt.Errorf("datacontext: %s is not a collection", t)
	}
}
