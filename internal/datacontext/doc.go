// Package datacontext models the nested data shapes a binding expression can
// reference.
//
// A Stack is an immutable, parent-linked chain. Each level carries the Go
// type of the value bound at that level (the root view model, the current
// list item, ...) and the extension parameters introduced there (such as a
// loop index). Bindings are compiled against a Stack and matched to live
// control nodes by structural equality, never by pointer identity.
//
// Change values describe how a property alters the context for its children
// (for example a DataSource property whose children see one collection
// element). Apply folds them over a Stack.
package datacontext
