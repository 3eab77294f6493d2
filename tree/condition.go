package tree

import "github.com/katalvlaran/treemaker/geom"

// Condition is a closed sum type over the kinds of user-applied
// constraint TreeMaker supports. The unexported condition() marker
// method seals the set to this package, the common Go idiom for closed
// enumerations whose variants carry heterogeneous payloads (a tagged
// struct sum, rather than a plain integer enum, because each variant
// carries its own fields).
type Condition interface {
	condition()

	// Uses reports whether this condition references part (a node,
	// edge, or path handle - the caller is responsible for comparing
	// against the right field).
	Uses(part Handle) bool

	// IsValid reports whether every part this condition references
	// still resolves in t. Cleanup step 2 deletes conditions for which
	// this returns false.
	IsValid(t *Tree) bool

	// ComputeFeasibility reports whether this condition's constraint is
	// currently satisfied by t's node locations/edge strains.
	ComputeFeasibility(t *Tree) bool
}

// NodeCombo constrains a single leaf node: any combination of lying on
// the symmetry line, on a paper edge, on a paper corner, or having a
// fixed x and/or y coordinate.
type NodeCombo struct {
	Node Handle

	OnSymLine bool
	OnEdge    bool
	Edge      PaperEdgeSide
	OnCorner  bool
	Corner    PaperCornerSide

	FixX  bool
	XVal  float64
	FixY  bool
	YVal  float64
}

func (*NodeCombo) condition() {}

func (c *NodeCombo) Uses(part Handle) bool { return c.Node == part }

func (c *NodeCombo) IsValid(t *Tree) bool {
	_, ok := t.nodes.Get(c.Node)

	return ok
}

func (c *NodeCombo) ComputeFeasibility(t *Tree) bool {
	n, ok := t.nodes.Get(c.Node)
	if !ok {
		return false
	}
	if c.FixX && absf(n.Loc.X-c.XVal) > geom.DistTol() {
		return false
	}
	if c.FixY && absf(n.Loc.Y-c.YVal) > geom.DistTol() {
		return false
	}

	return true
}

// PaperEdgeSide names one of the four paper edges a node can stick to.
type PaperEdgeSide int

const (
	EdgeLeft PaperEdgeSide = iota
	EdgeRight
	EdgeBottom
	EdgeTop
)

// PaperCornerSide names one of the four paper corners.
type PaperCornerSide int

const (
	CornerBottomLeft PaperCornerSide = iota
	CornerBottomRight
	CornerTopLeft
	CornerTopRight
)

// EdgeLengthFixed pins one edge's rest length.
type EdgeLengthFixed struct {
	Edge   Handle
	Length float64
}

func (*EdgeLengthFixed) condition() {}

func (c *EdgeLengthFixed) Uses(part Handle) bool { return c.Edge == part }

func (c *EdgeLengthFixed) IsValid(t *Tree) bool {
	_, ok := t.edges.Get(c.Edge)

	return ok
}

func (c *EdgeLengthFixed) ComputeFeasibility(t *Tree) bool {
	e, ok := t.edges.Get(c.Edge)

	return ok && absf(e.Length-c.Length) <= geom.DistTol()
}

// EdgesSameStrain constrains two edges to share one strain value.
type EdgesSameStrain struct {
	Edge1, Edge2 Handle
}

func (*EdgesSameStrain) condition() {}

func (c *EdgesSameStrain) Uses(part Handle) bool { return c.Edge1 == part || c.Edge2 == part }

func (c *EdgesSameStrain) IsValid(t *Tree) bool {
	_, ok1 := t.edges.Get(c.Edge1)
	_, ok2 := t.edges.Get(c.Edge2)

	return ok1 && ok2
}

func (c *EdgesSameStrain) ComputeFeasibility(t *Tree) bool {
	e1, ok1 := t.edges.Get(c.Edge1)
	e2, ok2 := t.edges.Get(c.Edge2)

	return ok1 && ok2 && absf(e1.Strain-e2.Strain) <= geom.DistTol()
}

// PathCombo constrains a path between two nodes: active, angle-fixed
// (to Angle), and/or angle-quantised (to a multiple of pi/Quanta plus
// Offset).
type PathCombo struct {
	path  Handle
	node1 Handle
	node2 Handle

	Active           bool
	AngleFixed       bool
	Angle            float64
	AngleQuantized   bool
	Quanta           int
	Offset           float64
}

func (*PathCombo) condition() {}

// NewPathCombo constructs a PathCombo over the path between node1 and
// node2.
func NewPathCombo(path, node1, node2 Handle) *PathCombo {
	return &PathCombo{path: path, node1: node1, node2: node2}
}

func (c *PathCombo) Path() Handle  { return c.path }
func (c *PathCombo) Node1() Handle { return c.node1 }
func (c *PathCombo) Node2() Handle { return c.node2 }

// SetPath replaces the constrained path, if it actually differs. The
// explicit equality check (rather than an assignment used as a
// condition) is deliberate: an earlier draft of this logic used `if
// newPath == c.path` as an assignment by mistake, which is the defect
// this type's construction intentionally avoids reproducing.
func (c *PathCombo) SetPath(newPath Handle) {
	if newPath == c.path {
		return
	}
	c.path = newPath
}

// SetNode1 replaces node1 if it actually differs.
func (c *PathCombo) SetNode1(n Handle) {
	if n == c.node1 {
		return
	}
	c.node1 = n
}

// SetNode2 replaces node2 if it actually differs.
func (c *PathCombo) SetNode2(n Handle) {
	if n == c.node2 {
		return
	}
	c.node2 = n
}

func (c *PathCombo) Uses(part Handle) bool {
	return c.path == part || c.node1 == part || c.node2 == part
}

func (c *PathCombo) IsValid(t *Tree) bool {
	_, ok1 := t.paths.Get(c.path)
	_, ok2 := t.nodes.Get(c.node1)
	_, ok3 := t.nodes.Get(c.node2)

	return ok1 && ok2 && ok3
}

func (c *PathCombo) ComputeFeasibility(t *Tree) bool {
	p, ok := t.paths.Get(c.path)
	if !ok {
		return false
	}
	if c.Active && !p.Active {
		return false
	}

	return true
}

// NodesCollinear constrains three leaf nodes to lie on one line.
type NodesCollinear struct {
	N1, N2, N3 Handle
}

func (*NodesCollinear) condition() {}

func (c *NodesCollinear) Uses(part Handle) bool {
	return c.N1 == part || c.N2 == part || c.N3 == part
}

func (c *NodesCollinear) IsValid(t *Tree) bool {
	_, ok1 := t.nodes.Get(c.N1)
	_, ok2 := t.nodes.Get(c.N2)
	_, ok3 := t.nodes.Get(c.N3)

	return ok1 && ok2 && ok3
}

func (c *NodesCollinear) ComputeFeasibility(t *Tree) bool {
	n1, ok1 := t.nodes.Get(c.N1)
	n2, ok2 := t.nodes.Get(c.N2)
	n3, ok3 := t.nodes.Get(c.N3)
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	cross := (n2.Loc.X-n1.Loc.X)*(n3.Loc.Y-n1.Loc.Y) - (n2.Loc.Y-n1.Loc.Y)*(n3.Loc.X-n1.Loc.X)

	return absf(cross) <= geom.ConvexityTol()
}

// Legacy variants (package format neither reads nor writes them: its
// reader skips their tags and its writer only emits current variants;
// they are never newly constructed by editing operations).

// Symmetric is the legacy equivalent of a two-node mirror-symmetry
// NodeCombo pair.
type Symmetric struct {
	Node1, Node2 Handle
}

func (*Symmetric) condition()                       {}
func (c *Symmetric) Uses(part Handle) bool           { return c.Node1 == part || c.Node2 == part }
func (c *Symmetric) IsValid(t *Tree) bool {
	_, ok1 := t.nodes.Get(c.Node1)
	_, ok2 := t.nodes.Get(c.Node2)

	return ok1 && ok2
}
func (c *Symmetric) ComputeFeasibility(t *Tree) bool { return c.IsValid(t) }

// Paired is the legacy equivalent of EdgesSameStrain.
type Paired struct {
	Edge1, Edge2 Handle
}

func (*Paired) condition()             {}
func (c *Paired) Uses(part Handle) bool { return c.Edge1 == part || c.Edge2 == part }
func (c *Paired) IsValid(t *Tree) bool {
	_, ok1 := t.edges.Get(c.Edge1)
	_, ok2 := t.edges.Get(c.Edge2)

	return ok1 && ok2
}
func (c *Paired) ComputeFeasibility(t *Tree) bool { return c.IsValid(t) }

// OnEdge is the legacy equivalent of a NodeCombo with only OnEdge set.
type OnEdge struct {
	Node Handle
	Edge PaperEdgeSide
}

func (*OnEdge) condition()              {}
func (c *OnEdge) Uses(part Handle) bool { return c.Node == part }
func (c *OnEdge) IsValid(t *Tree) bool {
	_, ok := t.nodes.Get(c.Node)

	return ok
}
func (c *OnEdge) ComputeFeasibility(t *Tree) bool { return c.IsValid(t) }

// OnCorner is the legacy equivalent of a NodeCombo with only OnCorner set.
type OnCorner struct {
	Node   Handle
	Corner PaperCornerSide
}

func (*OnCorner) condition()              {}
func (c *OnCorner) Uses(part Handle) bool { return c.Node == part }
func (c *OnCorner) IsValid(t *Tree) bool {
	_, ok := t.nodes.Get(c.Node)

	return ok
}
func (c *OnCorner) ComputeFeasibility(t *Tree) bool { return c.IsValid(t) }

// PathActive is the legacy equivalent of a PathCombo with only Active set.
type PathActive struct {
	PathHandle Handle
}

func (*PathActive) condition()              {}
func (c *PathActive) Uses(part Handle) bool { return c.PathHandle == part }
func (c *PathActive) IsValid(t *Tree) bool {
	_, ok := t.paths.Get(c.PathHandle)

	return ok
}
func (c *PathActive) ComputeFeasibility(t *Tree) bool {
	p, ok := t.paths.Get(c.PathHandle)

	return ok && p.Active
}

// PathAngleFixed is the legacy equivalent of a PathCombo with only
// AngleFixed set.
type PathAngleFixed struct {
	PathHandle Handle
	Angle      float64
}

func (*PathAngleFixed) condition()              {}
func (c *PathAngleFixed) Uses(part Handle) bool { return c.PathHandle == part }
func (c *PathAngleFixed) IsValid(t *Tree) bool {
	_, ok := t.paths.Get(c.PathHandle)

	return ok
}
func (c *PathAngleFixed) ComputeFeasibility(t *Tree) bool { return c.IsValid(t) }

// PathAngleQuantized is the legacy equivalent of a PathCombo with only
// AngleQuantized set.
type PathAngleQuantized struct {
	PathHandle Handle
	Quanta     int
	Offset     float64
}

func (*PathAngleQuantized) condition()              {}
func (c *PathAngleQuantized) Uses(part Handle) bool { return c.PathHandle == part }
func (c *PathAngleQuantized) IsValid(t *Tree) bool {
	_, ok := t.paths.Get(c.PathHandle)

	return ok
}
func (c *PathAngleQuantized) ComputeFeasibility(t *Tree) bool { return c.IsValid(t) }

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
