// Package control resolves markup tags to control implementations and
// control implementations to their metadata.
//
// # Components
//
//   - Registry: the explicit catalog of compiled controls. Each control
//     library registers its controls (key "Namespace.Name, Assembly",
//     Go type, optional base type, factory and property initializer) from a
//     bootstrap function. No reflection-by-name is involved.
//   - Cache: a concurrent get-or-add map. Reads never block; concurrent
//     misses of one key share a single computation and only one value is
//     ever retained.
//   - Resolver: consults the tag-mapping rules on a tag-cache miss, and
//     builds the property table of a type on a metadata-cache miss.
//
// # Preparation
//
// Before the first resolver runs, every registration whose namespace and
// assembly are named by a code rule has its property initializer executed.
// Registry.Prepare does this once per registry under a mutex with a
// completion flag; later calls return immediately. Metadata resolution also
// initializes a type and its bases on demand, each at most once.
//
// # Ownership
//
// Caches and the Registry are plain values. Share them between resolvers by
// passing them in (WithCaches) rather than relying on package state.
package control
