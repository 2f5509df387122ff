// Package match ranks known names against an unknown one for "did you mean"
// hints on unresolved tags, control names and binding tokens.
//
// Names are folded before comparison: case is ignored and the separators
// markup authors mix up ('-', '_', '.', spaces) are dropped. Tags of the
// form prefix:Name are compared part by part, so a good name match never
// hides a wrong prefix.
//
// Key functions:
//   - Fold: the comparison form of a name
//   - Distance: edit distance counting adjacent transpositions as one edit
//   - Similarity: folded, length-normalized score in [0, 1]
//   - Suggest: ranks known names by similarity to an unknown one
package match
