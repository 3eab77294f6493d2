package tree

import "github.com/katalvlaran/treemaker/geom"

// Owner discriminates between the two kinds of owner a Node or Path can
// have: the tree itself (top-level parts) or a Poly (sub-parts created
// during insetting). A tagged union over a stable Handle, per the
// "polymorphic owner pointers" design note.
type Owner struct {
	IsPoly bool
	Poly   Handle // valid only if IsPoly
}

// Node is a 2D point in the tree or in a poly's inset sub-structure.
type Node struct {
	Loc   geom.Vec
	Label string

	Owner Owner

	Edges     []Handle // incident edges, tree-wide index order
	LeafPaths []Handle // cached incident leaf paths

	Leaf       bool
	Sub        bool
	Border     bool
	Pinned     bool
	Polygon    bool
	Junction   bool
	Conditioned bool

	// Depth is the min-paper-length distance from the root, set by
	// cleanup step 16.
	Depth float64

	// Elevation is paper-axis distance from the tree's projection axis,
	// accumulated during insetting (0 for tree nodes).
	Elevation float64

	Vertex Handle // this node's own vertex slot (tree nodes always have one)
}

// Edge connects two tree nodes (or, within a poly, two sub-nodes).
type Edge struct {
	N1, N2 Handle

	Length   float64 // rest length, >= MinEdgeLength
	Strain   float64 // multiplier, >= -0.999; strained length = length*(1+strain)
	Stiffness float64 // > 0

	Pinned      bool
	Conditioned bool
}

// StrainedLength returns this edge's length in tree units (the metric
// the tree's internal path-length bookkeeping uses), i.e. length scaled
// by strain but not yet by the tree's global paper scale.
func (e *Edge) StrainedLength() float64 { return e.Length * (1 + e.Strain) }

// ScaledLength returns this edge's strained length in paper units
// (length*(1+strain)*scale). Distinct from StrainedLength precisely
// because the tree distinguishes "tree units" (used for min-length
// comparisons during optimisation) from "paper units" (used once scale
// is fixed) -- conflating them was flagged as a latent defect in the
// part of the system this is adapted from.
func (e *Edge) ScaledLength(t *Tree) float64 { return e.StrainedLength() * t.Scale }

// Path is an ordered walk of nodes and edges between two tree nodes (or
// two sub-nodes, for an inset sub-path).
type Path struct {
	Front, Back Handle // endpoint nodes
	Nodes       []Handle
	Edges       []Handle

	// Owner is the tree (every top-level path) or a Poly (an inset
	// sub-path created during insetting).
	Owner Owner

	Leaf        bool
	Sub         bool
	Feasible    bool
	Active      bool
	Border      bool
	Polygon     bool
	Conditioned bool

	// ForwardPoly/BackwardPoly are the (up to two) polys this path is a
	// ring edge of; zero Handle if none on that side.
	ForwardPoly, BackwardPoly Handle

	// Outset is valid only for an inset sub-path: the path this one was
	// derived from by insetting, plus the front/back length reductions
	// applied relative to it.
	IsInset             bool
	Outset              Handle
	FrontReduction      float64
	BackReduction       float64

	// MinDepth/MinDepthDist are set by cleanup step 16 for leaf-or-gusset
	// paths: the smallest node depth along the path, and the
	// accumulated strained-scaled distance to that node from the front.
	MinDepth     float64
	MinDepthDist float64
}

// MinLength returns this path's minimum tree-unit length: the sum of its
// edges' strained lengths for a top-level path, or outset.min minus the
// two reductions for an inset sub-path.
func (p *Path) MinLength(t *Tree) float64 {
	if p.IsInset {
		if outset, ok := t.paths.Get(p.Outset); ok {
			return outset.MinLength(t) - p.FrontReduction - p.BackReduction
		}

		return 0
	}
	var sum float64
	for _, eh := range p.Edges {
		if e, ok := t.edges.Get(eh); ok {
			sum += e.StrainedLength()
		}
	}

	return sum
}

// MinPaper returns this path's minimum length in paper units.
func (p *Path) MinPaper(t *Tree) float64 { return p.MinLength(t) * t.Scale }

// MustLoc returns h's node location, or the zero Vec if h does not
// resolve to a live node. Exported for packages (optimize, polygon,
// crease) that need a node's location without round-tripping through
// Node/Get themselves for every call site.
func (t *Tree) MustLoc(h Handle) geom.Vec { return t.mustLoc(h) }

// ActPaper returns the path's actual paper-space length: the straight-
// line distance between its front and back node locations.
func (p *Path) ActPaper(t *Tree) float64 {
	front, ok1 := t.nodes.Get(p.Front)
	back, ok2 := t.nodes.Get(p.Back)
	if !ok1 || !ok2 {
		return 0
	}

	return geom.Dist(front.Loc, back.Loc)
}

// Poly is a CCW ring of nodes and paths, plus everything built inside it
// by insetting.
//
// Its nested substructure -- sub-nodes, sub-paths, sub-polys, creases,
// vertices, facets -- is NOT stored in per-poly arenas. It lives in the
// tree's own global arenas (Tree.nodes/paths/polys/vertices/creases/
// facets) alongside top-level parts; a Poly only keeps the membership
// lists below. This is deliberate: Facet.Head/Tail, Crease.ForwardFacet,
// and every other crease-pattern cross-reference is a bare Handle, and the
// facet-ordering graph routinely links facets that belong to two
// *different* polys (across a shared ring path, or across a pseudohinge
// jump). A Handle is only safe to store and compare when every owner
// resolves it against the same arena -- so every owner resolves against
// the tree's one arena per kind, and "which poly owns this part" is
// tracked separately via the part's own Owner field (Node.Owner,
// Path.Owner, Crease.Owner, Vertex.Owner) or, for a nested Poly, its own
// Owner field below.
type Poly struct {
	RingNodes []Handle // CCW
	RingPaths []Handle

	Centroid     geom.Vec
	LastNodeLocs []geom.Vec // snapshot at last construction, for invalidation
	Sub          bool

	// Owner is the tree (top-level poly) or another Poly (a nested
	// sub-poly created by recursive insetting).
	Owner Owner

	// Membership lists: every part of that kind this poly owns, as
	// handles into the tree's corresponding global arena.
	SubNodes []Handle
	SubPaths []Handle
	SubPolys []Handle
	Creases  []Handle
	Vertices []Handle
	Facets   []Handle

	CrossPaths []Handle
	// InsetNodeOf maps ring index -> the (possibly shared) inset node
	// handle that ring corner insets to.
	InsetNodeOf []Handle
	SpokePaths  []Handle
	RidgePath   Handle // valid only when exactly 2 distinct inset nodes

	LocalRootVertices []Handle
	LocalRootCreases  []Handle
}

func newPoly() *Poly { return &Poly{} }

// VertexOwner discriminates a Vertex's owner: a Node or a Path.
type VertexOwner struct {
	IsPath bool
	Node   Handle
	Path   Handle
}

// Vertex is a point in the crease pattern: either a tree node's own
// vertex, or one created along a path during crease construction.
type Vertex struct {
	Loc       geom.Vec
	Elevation float64
	Border    bool

	// TreeNode is set if this vertex projects onto a tree node.
	TreeNode    Handle
	HasTreeNode bool

	Depth float64

	// DiscreteDepth is the tree-hop count of the projected tree node, or
	// -1 for a vertex that projects no tree node (ridge peaks, pseudohinge
	// feet); only tree-node projections participate in local-root network
	// identification.
	DiscreteDepth int

	// A pseudohinge triplet's two regular feet record each other here;
	// absorption of local-root networks collapses mates into one
	// component.
	LeftPseudohingeMate  Handle
	RightPseudohingeMate Handle

	Creases []Handle
	Owner   VertexOwner
}

// CreaseKind enumerates the geometric role of a crease.
type CreaseKind int

const (
	CreaseAxial CreaseKind = iota
	CreaseGusset
	CreaseRidge
	CreaseUnfoldedHinge
	CreaseFoldedHinge
	CreasePseudohinge
)

// FoldDirection is the fold assigned to a crease by MV assignment.
type FoldDirection int

const (
	FoldFlat FoldDirection = iota
	FoldMountain
	FoldValley
	FoldBorder
)

// CreaseOwner discriminates a Crease's owner: a Path or a Poly.
type CreaseOwner struct {
	IsPoly bool
	Path   Handle
	Poly   Handle
}

// Crease is an ordered pair of vertices with a geometric kind and,
// once assignment runs, a fold direction.
type Crease struct {
	V1, V2 Handle
	Kind   CreaseKind
	Fold   FoldDirection

	ForwardFacet, BackwardFacet   Handle
	HasForwardFacet, HasBackwardFacet bool

	Owner CreaseOwner
}

// Colour is a facet's two-colouring state, assigned by cleanup step 21.
type Colour int

const (
	Unoriented Colour = iota
	WhiteUp
	ColorUp
)

// Facet is a CCW ring of vertices and creases, rotated so index 0 is the
// unique Axial-or-Gusset "bottom" crease.
type Facet struct {
	Vertices []Handle
	Creases  []Handle

	Centroid    geom.Vec
	WellFormed  bool
	CorridorEdge Handle // the tree edge whose corridor this facet belongs to

	// Head/Tail are this facet's neighbours in the facet-ordering DAG
	// (built by cleanup step 20): Head = facets whose order must exceed
	// this one's, Tail = facets this one's order must exceed.
	Head []Handle
	Tail []Handle

	Order  int
	Colour Colour

	Owner Handle // owning Poly
}

// SymmetryAxis describes the tree's optional reflective symmetry: a line
// through Anchor at Angle radians.
type SymmetryAxis struct {
	Anchor geom.Vec
	Angle  float64
}

// Tree is the top-level TreeMaker data model: paper dimensions, global
// scale, optional symmetry, status flags, and the five top-level arenas.
type Tree struct {
	Width, Height float64
	Scale         float64

	HasSymmetry bool
	Symmetry    SymmetryAxis

	Feasible           bool
	PolygonsValid      bool
	PolygonsFilled     bool
	VertexDepthValid   bool
	FacetDataValid     bool
	LocalRootConnectable bool

	nodes      *arena[Node]
	edges      *arena[Edge]
	paths      *arena[Path]
	polys      *arena[Poly]
	conditions *arena[Condition]

	// vertices/creases/facets are the single tree-wide arenas for every
	// Vertex, Crease, and Facet -- both the ones owned directly by a
	// top-level Node/Path and the ones nested inside any Poly at any
	// insetting depth. See the comment on Poly for why these are not
	// per-poly arenas.
	vertices *arena[Vertex]
	creases  *arena[Crease]
	facets   *arena[Facet]

	// RootNode is the tree node with graph-theoretic index 1.
	RootNode Handle

	// LocalRootDiagnosticVertices/Creases hold the offending local-root
	// networks' parts when the last cleanup judged the facet-ordering
	// graph not connectable (duplicate depth-0 networks, or a deeper
	// network with no attachment vertex); empty otherwise. Surfaced by
	// GetCPStatus.
	LocalRootDiagnosticVertices []Handle
	LocalRootDiagnosticCreases  []Handle

	dirty     bool
	inCleanup bool

	// polysChanged is set while cleanup creates or deletes a top-level
	// poly; step 15 then rebuilds the whole crease level rather than
	// trusting surviving polys' facets, which may reference creases a
	// deleted neighbour's cascade removed.
	polysChanged bool

	hooks hooks
}

// TreeOption configures a Tree at construction time, following the
// usual functional-options convention.
type TreeOption func(*Tree)

// WithPaperSize sets the paper's width and height (must be positive).
func WithPaperSize(w, h float64) TreeOption {
	return func(t *Tree) { t.Width, t.Height = w, h }
}

// NewTree constructs an empty Tree with scale 1 and an 8.5x11 default
// paper, ready to accept nodes via AddNode.
func NewTree(opts ...TreeOption) *Tree {
	t := &Tree{
		Width:  8.5,
		Height: 11,
		Scale:  1,

		nodes:      newArena[Node](),
		edges:      newArena[Edge](),
		paths:      newArena[Path](),
		polys:      newArena[Poly](),
		conditions: newArena[Condition](),
		vertices:   newArena[Vertex](),
		creases:    newArena[Crease](),
		facets:     newArena[Facet](),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// NodeCount, EdgeCount, PathCount, PolyCount report the number of live
// parts of each kind in the tree-wide arenas, including the sub-nodes,
// sub-paths and sub-polys that insetting adds.
func (t *Tree) NodeCount() int { return t.nodes.Len() }
func (t *Tree) EdgeCount() int { return t.edges.Len() }
func (t *Tree) PathCount() int { return t.paths.Len() }
func (t *Tree) PolyCount() int { return t.polys.Len() }

// Node, Edge, Path, Poly, Condition resolve a Handle against the
// corresponding top-level arena.
func (t *Tree) Node(h Handle) (*Node, bool)           { return t.nodes.Get(h) }
func (t *Tree) Edge(h Handle) (*Edge, bool)           { return t.edges.Get(h) }
func (t *Tree) Path(h Handle) (*Path, bool)           { return t.paths.Get(h) }
func (t *Tree) Poly(h Handle) (*Poly, bool)           { return t.polys.Get(h) }
func (t *Tree) Condition(h Handle) (Condition, bool) {
	c, ok := t.conditions.Get(h)
	if !ok {
		return nil, false
	}

	return *c, true
}

// Nodes, Edges, Paths, Polys, Conditions return every live handle of that
// kind in allocation order.
func (t *Tree) Nodes() []Handle      { return t.nodes.Handles() }
func (t *Tree) Edges() []Handle      { return t.edges.Handles() }
func (t *Tree) Paths() []Handle      { return t.paths.Handles() }
func (t *Tree) Polys() []Handle      { return t.polys.Handles() }
func (t *Tree) Conditions() []Handle { return t.conditions.Handles() }
