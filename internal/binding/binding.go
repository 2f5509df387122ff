package binding

import (
	"errors"
	"fmt"

	"control-resolver/internal/datacontext"
	"control-resolver/internal/tree"
)

var (
	// ErrNotEvaluable is returned when a binding has no evaluation delegate.
	ErrNotEvaluable = errors.New("binding: binding has no evaluation delegate")
	// ErrReadOnly is returned by UpdateSource for a binding without an update delegate.
	ErrReadOnly = errors.New("binding: binding does not support assignment")
)

// Evaluator computes a binding's value. contexts holds the data context
// values from the target node upward, nearest first; control is the target.
type Evaluator func(contexts []any, control tree.Node) (any, error)

// Updater writes value through a binding.
type Updater func(contexts []any, control tree.Node, value any) error

// Binding is a compiled binding expression together with the context stack
// it was authored against. A Binding is immutable once created.
type Binding struct {
	Kind Kind
	// Expression is the source text, used in messages.
	Expression string
	// DataContext is the stack the expression was compiled in; nil means
	// the binding evaluates wherever it is placed.
	DataContext *datacontext.Stack
	Eval        Evaluator
	Update      Updater
}

// Derive returns a copy of b compiled for another stack with another delegate.
// The update delegate is dropped since it belongs to the old expression.
func (b *Binding) Derive(stack *datacontext.Stack, eval Evaluator) *Binding {
	return &Binding{
		Kind:        b.Kind,
		Expression:  b.Expression,
		DataContext: stack,
		Eval:        eval,
	}
}

func (b *Binding) String() string {
	if b == nil {
		return "<nil binding>"
	}

	return fmt.Sprintf("{%s: %s}", b.Kind.Token(), b.Expression)
}
