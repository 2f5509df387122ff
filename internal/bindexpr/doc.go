// Package bindexpr turns binding expression text into binding.Binding
// delegates.
//
// Expressions use the github.com/expr-lang/expr language. Parse keeps the
// parse tree; Annotate records, for each reserved identifier (_this,
// _parent, _parentN, _root) and each extension parameter such as _index,
// which context level it refers to. Annotations live in a table owned by the
// Expression and keyed by node identity; a node that already has one is
// never annotated again.
//
// Compile builds the evaluation delegate (and an update delegate for
// assignable member paths). At evaluation the annotated names are bound to
// the context values passed in by the binding package, extension parameters
// to the values the control tree provides, and every other identifier to the
// same-named member of the current data context.
package bindexpr
