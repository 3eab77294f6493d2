package tree

// ContentsBuilder builds a poly's inset sub-structure (sub-nodes,
// sub-paths, sub-polys, spoke/ridge paths). Implemented by
// package polygon.
type ContentsBuilder interface {
	BuildPolyContents(t *Tree, poly Handle) error
}

// CreaseBuilder builds every poly's creases and the vertices they
// connect, tree-wide, once all poly contents exist. The build
// is tree-wide rather than per-poly because interior ring paths are
// shared between two polys: hinge feet from both sides land on the same
// path, and its axial segmentation can only be done once both sides have
// dropped theirs. Implemented by package crease.
type CreaseBuilder interface {
	BuildCreases(t *Tree) error
}

// DepthComputer assigns per-vertex depth and crease bend (fold/unfold),
// cleanup steps 16-17. Implemented by package depth.
type DepthComputer interface {
	ComputeVertexDepth(t *Tree) error
	ComputeCreaseBend(t *Tree) error
}

// FacetPipeline validates well-formedness and two-colourability, tags
// each facet with its corridor edge, builds the global facet-ordering
// DAG, and reports whether every local-root network is connectable, per
// cleanup steps 18-20. Implemented by package depth (corridor/local-root)
// composed with package assign (topological order).
type FacetPipeline interface {
	ValidateFacets(t *Tree) (ok bool, err error)
	TagCorridors(t *Tree) error
	BuildOrderingDAG(t *Tree) (connectable bool, err error)
}

// Assigner propagates facet colour and derives each crease's fold
// direction, cleanup steps 21-22. Implemented by package assign.
type Assigner interface {
	AssignColour(t *Tree) error
	AssignFolds(t *Tree) error
}

type hooks struct {
	contents ContentsBuilder
	creases  CreaseBuilder
	depth    DepthComputer
	facets   FacetPipeline
	assign   Assigner
}

// WithPolygonBuilder installs the polygon-insetting hook used by cleanup
// step 15. If unset, step 15 builds no poly contents.
func WithPolygonBuilder(b ContentsBuilder) TreeOption {
	return func(t *Tree) { t.hooks.contents = b }
}

// WithCreaseBuilder installs the crease-construction hook used after
// step 15.
func WithCreaseBuilder(b CreaseBuilder) TreeOption {
	return func(t *Tree) { t.hooks.creases = b }
}

// WithDepthComputer installs the vertex-depth/crease-bend hook used by
// steps 16-17.
func WithDepthComputer(d DepthComputer) TreeOption {
	return func(t *Tree) { t.hooks.depth = d }
}

// WithFacetPipeline installs the facet validation/corridor/ordering hook
// used by steps 18-20.
func WithFacetPipeline(f FacetPipeline) TreeOption {
	return func(t *Tree) { t.hooks.facets = f }
}

// WithAssigner installs the colour/fold assignment hook used by steps
// 21-22.
func WithAssigner(a Assigner) TreeOption {
	return func(t *Tree) { t.hooks.assign = a }
}
