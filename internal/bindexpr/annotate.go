package bindexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"control-resolver/internal/datacontext"
	"control-resolver/internal/diagnostic"
)

const (
	thisName   = "_this"
	parentName = "_parent"
	rootName   = "_root"
)

// Annotation tells which context level an identifier refers to.
type Annotation struct {
	DataContext *datacontext.Stack
	// Level is the number of context levels above the binding's own.
	Level int
	// ExtensionParameter is set when the identifier names an extension
	// parameter of DataContext rather than the context value itself.
	ExtensionParameter *datacontext.ExtensionParameter
}

// Expression is a parsed binding expression with its annotation table.
// It is not safe for concurrent Annotate calls.
type Expression struct {
	Source string
	Tree   *parser.Tree

	annotations map[*ast.IdentifierNode]*Annotation
}

// Parse parses a binding expression.
func Parse(src string) (*Expression, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse binding expression %q: %w", src, err)
	}

	return &Expression{
		Source:      src,
		Tree:        tree,
		annotations: make(map[*ast.IdentifierNode]*Annotation),
	}, nil
}

// Annotation returns the annotation of an identifier node.
func (e *Expression) Annotation(n *ast.IdentifierNode) (*Annotation, bool) {
	a, ok := e.annotations[n]
	return a, ok
}

// Identifiers returns the identifier nodes of the expression in walk order.
func (e *Expression) Identifiers() []*ast.IdentifierNode {
	c := &identCollector{}
	ast.Walk(&e.Tree.Node, c)

	return c.idents
}

type identCollector struct {
	idents []*ast.IdentifierNode
}

func (c *identCollector) Visit(node *ast.Node) {
	if id, ok := (*node).(*ast.IdentifierNode); ok {
		c.idents = append(c.idents, id)
	}
}

// Annotate annotates the reserved parameters and extension parameters of e
// against stack. Nodes annotated by an earlier call keep their annotation.
// Either every new annotation is recorded or, on error, none is.
func Annotate(e *Expression, stack *datacontext.Stack) error {
	added := make(map[*ast.IdentifierNode]*Annotation)

	for _, id := range e.Identifiers() {
		if _, done := e.annotations[id]; done {
			continue
		}

		if _, done := added[id]; done {
			continue
		}

		a, err := annotation(id.Value, stack, e.Source)
		if err != nil {
			return err
		}

		if a != nil {
			added[id] = a
		}
	}

	for id, a := range added {
		e.annotations[id] = a
	}

	return nil
}

// annotation returns nil for identifiers that are not annotated.
func annotation(name string, stack *datacontext.Stack, src string) (*Annotation, error) {
	switch name {
	case thisName:
		return &Annotation{DataContext: stack}, nil
	case parentName:
		return levelAnnotation(name, stack, 1, src)
	case rootName:
		return &Annotation{DataContext: stack.Outermost(), Level: max(stack.Depth()-1, 0)}, nil
	}

	if suffix, ok := strings.CutPrefix(name, parentName); ok {
		if n, ok := parentIndex(suffix); ok {
			return levelAnnotation(name, stack, n, src)
		}
	}

	if p, owner, ok := stack.ExtensionParameter(name); ok {
		level, _ := stack.LevelOf(owner)
		return &Annotation{DataContext: owner, Level: level, ExtensionParameter: &p}, nil
	}

	return nil, nil
}

func levelAnnotation(name string, stack *datacontext.Stack, n int, src string) (*Annotation, error) {
	s, ok := stack.At(n)
	if !ok {
		return nil, diagnostic.NewError(diagnostic.InvalidParameterIndex, src,
			fmt.Sprintf("%s refers to context level %d, but only %d levels exist", name, n, stack.Depth()))
	}

	return &Annotation{DataContext: s, Level: n}, nil
}

// parentIndex parses the N of _parentN: one or more decimal digits.
func parentIndex(s string) (int, bool) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}
