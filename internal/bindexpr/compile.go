package bindexpr

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"

	"control-resolver/internal/binding"
	"control-resolver/internal/datacontext"
	"control-resolver/internal/tree"
)

// ErrContextUnavailable is returned when evaluation receives fewer context
// values than the expression refers to.
var ErrContextUnavailable = errors.New("bindexpr: data context level not available")

// compiled is the delegate state shared by the evaluate and update closures.
type compiled struct {
	expr    *Expression
	program *vm.Program
	// named maps annotated identifier names to their annotation.
	named map[string]*Annotation
	// free lists unannotated identifier names, resolved against _this.
	free []string
}

// Compile parses src, annotates it against stack and returns a binding
// whose delegates evaluate it. Expressions that are member paths, such as
// "Title" or "_parent.Order.Total", also get an update delegate.
func Compile(kind binding.Kind, src string, stack *datacontext.Stack) (*binding.Binding, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}

	return CompileExpression(kind, e, stack)
}

// CompileExpression is Compile for an already parsed expression.
func CompileExpression(kind binding.Kind, e *Expression, stack *datacontext.Stack) (*binding.Binding, error) {
	if err := Annotate(e, stack); err != nil {
		return nil, err
	}

	program, err := expr.Compile(e.Source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("failed to compile binding expression %q: %w", e.Source, err)
	}

	c := &compiled{
		expr:    e,
		program: program,
		named:   make(map[string]*Annotation),
	}

	seen := make(map[string]struct{})

	for _, id := range e.Identifiers() {
		if a, ok := e.Annotation(id); ok {
			if _, dup := c.named[id.Value]; !dup {
				c.named[id.Value] = a
			}

			continue
		}

		if _, dup := seen[id.Value]; !dup {
			seen[id.Value] = struct{}{}
			c.free = append(c.free, id.Value)
		}
	}

	b := &binding.Binding{
		Kind:        kind,
		Expression:  e.Source,
		DataContext: stack,
		Eval:        c.evaluate,
	}

	if p, ok := memberPath(e.Tree.Node); ok {
		if update := c.updater(p); update != nil {
			b.Update = update
		}
	}

	return b, nil
}

func (c *compiled) evaluate(contexts []any, control tree.Node) (any, error) {
	env, err := c.env(contexts, control)
	if err != nil {
		return nil, err
	}

	return expr.Run(c.program, env)
}

func (c *compiled) env(contexts []any, control tree.Node) (map[string]any, error) {
	env := make(map[string]any, len(c.named)+len(c.free))

	for name, a := range c.named {
		v, err := c.value(name, a, contexts, control)
		if err != nil {
			return nil, err
		}

		env[name] = v
	}

	if len(contexts) > 0 {
		for _, name := range c.free {
			if v, ok := member(contexts[0], name); ok {
				env[name] = v
			}
		}
	}

	return env, nil
}

func (c *compiled) value(name string, a *Annotation, contexts []any, control tree.Node) (any, error) {
	if a.ExtensionParameter != nil {
		v, _ := tree.ExtensionValue(control, name)
		return v, nil
	}

	if a.Level >= len(contexts) {
		return nil, fmt.Errorf("%w: %s needs level %d of %d in %q",
			ErrContextUnavailable, name, a.Level, len(contexts), c.expr.Source)
	}

	return contexts[a.Level], nil
}

// path is an assignable expression: a root identifier followed by fields.
type path struct {
	root   string
	fields []string
}

// memberPath recognizes identifier and dotted member chains.
func memberPath(n ast.Node) (path, bool) {
	switch n := n.(type) {
	case *ast.IdentifierNode:
		return path{root: n.Value}, true
	case *ast.MemberNode:
		prop, ok := n.Property.(*ast.StringNode)
		if !ok || n.Optional {
			return path{}, false
		}

		p, ok := memberPath(n.Node)
		if !ok {
			return path{}, false
		}

		p.fields = append(p.fields, prop.Value)

		return p, true
	}

	return path{}, false
}

func (c *compiled) updater(p path) binding.Updater {
	a, annotated := c.named[p.root]

	fields := p.fields
	if !annotated {
		// a free identifier is a member of _this
		a = &Annotation{}
		fields = append([]string{p.root}, fields...)
	}

	if a.ExtensionParameter != nil || len(fields) == 0 {
		return nil
	}

	return func(contexts []any, control tree.Node, value any) error {
		root, err := c.value(p.root, a, contexts, control)
		if err != nil {
			return err
		}

		return setPath(root, fields, value)
	}
}
