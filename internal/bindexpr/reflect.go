package bindexpr

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotAssignable is returned when an update cannot write through a path.
var ErrNotAssignable = errors.New("bindexpr: path is not assignable")

// member returns the field, method or map entry called name of v.
func member(v any, name string) (any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}

	if m := rv.MethodByName(name); m.IsValid() {
		return m.Interface(), true
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return nil, false
		}

		return rv.FieldByIndex(f.Index).Interface(), true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		e := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !e.IsValid() {
			return nil, false
		}

		return e.Interface(), true
	}

	return nil, false
}

// setPath assigns value to root.fields[0].fields[1]... Structs must be
// reached through pointers to be settable; maps are set by key.
func setPath(root any, fields []string, value any) error {
	rv := reflect.ValueOf(root)

	for i, name := range fields {
		for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
			if rv.IsNil() {
				return fmt.Errorf("%w: nil value before %s", ErrNotAssignable, name)
			}

			rv = rv.Elem()
		}

		last := i == len(fields)-1

		switch rv.Kind() {
		case reflect.Struct:
			f, ok := rv.Type().FieldByName(name)
			if !ok || !f.IsExported() {
				return fmt.Errorf("%w: %s has no field %s", ErrNotAssignable, rv.Type(), name)
			}

			fv := rv.FieldByIndex(f.Index)
			if !last {
				rv = fv
				continue
			}

			if !fv.CanSet() {
				return fmt.Errorf("%w: %s.%s is not addressable", ErrNotAssignable, rv.Type(), name)
			}

			nv, err := convert(value, fv.Type())
			if err != nil {
				return err
			}

			fv.Set(nv)
		case reflect.Map:
			if rv.Type().Key().Kind() != reflect.String {
				return fmt.Errorf("%w: %s is not keyed by string", ErrNotAssignable, rv.Type())
			}

			key := reflect.ValueOf(name).Convert(rv.Type().Key())
			if !last {
				rv = rv.MapIndex(key)
				if !rv.IsValid() {
					return fmt.Errorf("%w: missing key %s", ErrNotAssignable, name)
				}

				continue
			}

			if rv.IsNil() {
				return fmt.Errorf("%w: nil map before %s", ErrNotAssignable, name)
			}

			nv, err := convert(value, rv.Type().Elem())
			if err != nil {
				return err
			}

			rv.SetMapIndex(key, nv)
		default:
			return fmt.Errorf("%w: cannot access %s on %s", ErrNotAssignable, name, rv.Kind())
		}
	}

	return nil
}

func convert(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(value)

	switch {
	case v.Type().AssignableTo(t):
		return v, nil
	case v.Type().ConvertibleTo(t):
		return v.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrNotAssignable, v.Type(), t)
}
