package geom

// Tolerances used across treemaker. Centralized here rather than passed as
// per-call arguments: changing any of them shifts solver results, so the
// property and scenario tests in tree/ and nlco/ pin them by value.
const (
	// distTol is the general distance tolerance for feasibility checks
	// (e.g. actPaper >= minPaper - distTol).
	distTol = 1e-6

	// moveTol is the tolerance below which a node relocation is treated
	// as a no-op by cleanup's change-detection.
	moveTol = 1e-6

	// convexityTol bounds the "are three points CCW" predicate and the
	// pinned-node angle-gap test.
	convexityTol = 1e-7

	// vertexSameTol is looser than distTol on purpose: vertices closer
	// than this are merged during insetting, because too-close vertices
	// degrade the resulting crease pattern more than merging them does.
	vertexSameTol = 3e-3

	// minEdgeLength is the shortest rest length an Edge may have.
	minEdgeLength = 0.01
)

// DistTol returns the general distance/feasibility tolerance.
func DistTol() float64 { return distTol }

// MoveTol returns the node-relocation no-op tolerance.
func MoveTol() float64 { return moveTol }

// ConvexityTol returns the convexity/angle-gap tolerance.
func ConvexityTol() float64 { return convexityTol }

// VertexSameTol returns the vertex-merge distance tolerance.
func VertexSameTol() float64 { return vertexSameTol }

// MinEdgeLength returns the minimum allowed rest length of an Edge.
func MinEdgeLength() float64 { return minEdgeLength }
