package binding

import (
	"errors"
	"fmt"
	"reflect"

	"control-resolver/internal/tree"
)

// ErrNotCommand is returned by EvaluateCommand when the binding value is
// not callable.
var ErrNotCommand = errors.New("binding: binding value is not a command")

// Evaluate finds the binding's target under n and calls its evaluation
// delegate. Errors from the delegate are returned as is.
func Evaluate(b *Binding, n tree.Node) (any, error) {
	if b == nil || b.Eval == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotEvaluable, b)
	}

	_, target, err := FindTarget(b, n)
	if err != nil {
		return nil, err
	}

	return b.Eval(collect(target), target)
}

// UpdateSource finds the binding's target under n and writes value through
// the binding's update delegate.
func UpdateSource(b *Binding, n tree.Node, value any) error {
	if b == nil || b.Update == nil {
		return fmt.Errorf("%w: %s", ErrReadOnly, b)
	}

	_, target, err := FindTarget(b, n)
	if err != nil {
		return err
	}

	return b.Update(collect(target), target, value)
}

// EvaluateCommand evaluates a command binding to its delegate and calls it
// with args. func(), func() error, func() any and func(...any) any are
// called directly; other functions are called by reflection when args fit.
// A binding that yields nil or a nil function fails with ErrNotCommand.
func EvaluateCommand(b *Binding, n tree.Node, args ...any) (any, error) {
	v, err := Evaluate(b, n)
	if err != nil {
		return nil, err
	}

	if v == nil {
		return nil, fmt.Errorf("%w: %s evaluated to nil", ErrNotCommand, b)
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Func && rv.IsNil() {
		return nil, fmt.Errorf("%w: %s evaluated to a nil %s", ErrNotCommand, b, rv.Type())
	}

	switch fn := v.(type) {
	case func():
		fn()
		return nil, nil
	case func() error:
		return nil, fn()
	case func() any:
		return fn(), nil
	case func(...any) any:
		return fn(args...), nil
	case func(...any) (any, error):
		return fn(args...)
	}

	return callFunc(b, reflect.ValueOf(v), args)
}

var errorType = reflect.TypeFor[error]()

func callFunc(b *Binding, fn reflect.Value, args []any) (any, error) {
	t := fn.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %s evaluated to %s", ErrNotCommand, b, t)
	}

	if t.IsVariadic() || t.NumIn() != len(args) {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", ErrNotCommand, b, t.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))

	for i, a := range args {
		want := t.In(i)
		if a == nil {
			in[i] = reflect.Zero(want)
			continue
		}

		v := reflect.ValueOf(a)
		switch {
		case v.Type().AssignableTo(want):
		case v.Type().ConvertibleTo(want):
			v = v.Convert(want)
		default:
			return nil, fmt.Errorf("%w: argument %d of %s: %s is not assignable to %s",
				ErrNotCommand, i, b, v.Type(), want)
		}

		in[i] = v
	}

	out := fn.Call(in)

	var (
		result any
		err    error
	)

	for _, o := range out {
		if o.Type() == errorType {
			if !o.IsNil() {
				err = o.Interface().(error)
			}

			continue
		}

		result = o.Interface()
	}

	return result, err
}
