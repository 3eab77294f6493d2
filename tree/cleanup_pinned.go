package tree

import (
	"math"
	"sort"

	"github.com/katalvlaran/treemaker/geom"
)

// cuComputePinned is step 9. A leaf node is pinned iff the angles of its
// incident active paths -- augmented with fictitious angles for any
// paper edge it lies on -- have no gap exceeding pi+convexityTol. Edges
// on active paths between two pinned nodes are themselves pinned.
func (t *Tree) cuComputePinned() {
	t.nodes.Each(func(h Handle, n *Node) {
		if !n.Leaf {
			return
		}
		angles := t.incidentActiveAngles(h, n)
		n.Pinned = anglesHaveNoLargeGap(angles)
	})

	t.paths.Each(func(_ Handle, p *Path) {
		if p.Sub || !p.Active {
			return
		}
		front, ok1 := t.nodes.Get(p.Front)
		back, ok2 := t.nodes.Get(p.Back)
		if !ok1 || !ok2 || !front.Pinned || !back.Pinned {
			return
		}
		for _, eh := range p.Edges {
			if e, ok := t.edges.Get(eh); ok {
				e.Pinned = true
			}
		}
	})
}

// incidentActiveAngles collects the outward angle of every active leaf
// path incident to node h, plus two fictitious angles for each paper
// edge n lies on (the two directions along that edge).
func (t *Tree) incidentActiveAngles(h Handle, n *Node) []float64 {
	var angles []float64
	for _, ph := range n.LeafPaths {
		p, ok := t.paths.Get(ph)
		if !ok || !p.Active {
			continue
		}
		var other Handle
		if p.Front == h {
			other = p.Back
		} else {
			other = p.Front
		}
		if on, ok := t.nodes.Get(other); ok {
			angles = append(angles, geom.Angle(geom.Sub(on.Loc, n.Loc)))
		}
	}

	dt := geom.DistTol()
	if n.Loc.X <= dt {
		angles = append(angles, math.Pi/2, -math.Pi/2)
	}
	if n.Loc.X >= t.Width-dt {
		angles = append(angles, math.Pi/2, -math.Pi/2)
	}
	if n.Loc.Y <= dt {
		angles = append(angles, 0, math.Pi)
	}
	if n.Loc.Y >= t.Height-dt {
		angles = append(angles, 0, math.Pi)
	}

	return angles
}

// anglesHaveNoLargeGap sorts angles into (-pi,pi] order and reports
// whether every consecutive gap, including the wraparound gap, is at
// most pi+convexityTol.
//
// The wraparound check is kept in the exact form it was originally
// found in -- `angles[0] - angles[last] + pi > convexityTol` -- rather
// than paraphrased as `2*pi - (back-front) > pi+tol`; the two are
// algebraically identical given angles sorted into (-pi,pi], but this
// form is the one regression-tested and is not to be "simplified" back
// to the 2*pi version without re-deriving the tolerance placement.
func anglesHaveNoLargeGap(angles []float64) bool {
	if len(angles) == 0 {
		return false
	}
	sort.Float64s(angles)

	limit := math.Pi + geom.ConvexityTol()
	for i := 0; i+1 < len(angles); i++ {
		if angles[i+1]-angles[i] > limit {
			return false
		}
	}

	if angles[0]-angles[len(angles)-1]+math.Pi > geom.ConvexityTol() {
		return false
	}

	return true
}
