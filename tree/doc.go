// Package tree implements the TreeMaker tree data model: nodes, edges,
// paths, polygons, conditions, and the crease-pattern substructure they
// own (vertices, creases, facets), together with the cleanup pipeline that
// keeps all of it consistent after an edit.
//
// Arenas follow the generational-handle pattern: every part lives in a
// growable slice behind a Handle{idx,gen}, so cross-references (which are
// pervasively cyclic — nodes reference edges, paths reference polys,
// vertices reference creases and back) never hold a Go pointer directly.
// A Handle into a freed or reused slot simply fails to resolve; nothing
// needs an owning-registry walk on delete. This keeps the fail-soft
// discipline of a map lookup ("missing key returns the zero value")
// while storing parts in O(1) slice-backed slots.
//
// Every public mutator funnels through beginEdit, a scoped cleanup guard:
// the outermost call runs CleanupAfterEdit on return; nested calls are
// no-ops. CleanupAfterEdit is a fixed, documented sequence of small
// private steps (cuInvalidateFlags, cuDeleteInvalidConditions, ...):
// one algorithm split into many narrowly named, independently testable
// methods rather than one large function.
//
// The heaviest cleanup steps — polygon insetting, crease construction,
// vertex depth, and facet ordering/assignment — live in separate packages
// (polygon, crease, depth, assign) that depend on tree's exported types.
// To avoid tree depending back on them, Tree accepts narrow interfaces for
// those steps via functional options (WithPolygonBuilder, WithCreaseBuilder,
// WithDepthComputer, WithFacetPipeline, WithAssigner); the root treemaker
// package, which imports all of them, wires the concrete implementations
// in (treemaker.NewTree). Steps left unconfigured are skipped, which is enough
// to unit test the purely topological steps (1-14) in isolation.
package tree
