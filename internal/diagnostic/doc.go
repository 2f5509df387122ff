// Package diagnostic holds the error vocabulary of the resolver.
//
// Two shapes are provided:
//   - ResolutionError: a single synchronous failure of tag resolution,
//     binding-kind lookup, data-context target search or parameter
//     annotation. Each carries a Kind whose sentinel is reachable with
//     errors.Is.
//   - Diagnostics: an aggregate of coded errors, warnings and infos produced
//     when a whole rule file is checked.
package diagnostic
