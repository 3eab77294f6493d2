package polygon

import (
	"math"

	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

const (
	minPositiveH = 1e-9

	// activeTol is the tolerance for marking an inset path active when
	// its computed minimum length matches its physical distance.
	activeTol = 1e-4
)

// cornerGeometry holds the per-corner bisector vector and cotangent
// used throughout the n>=4 inset computation. bisect is scaled so
// that loc + h*bisect sits at perpendicular height h above the ring
// sides: the inset height h, the corner's path reduction h*cot, and the
// pair quadratic then all speak the same unit.
type cornerGeometry struct {
	loc    geom.Vec
	bisect geom.Vec // interior bisector, 1/sin(theta/2) long
	cot    float64  // cotangent of the half interior angle
}

// insetNGon handles rings of four or more corners.
func insetNGon(t *tree.Tree, poly tree.Handle) error {
	p, ok := t.Poly(poly)
	if !ok {
		return ErrTooFewRingNodes
	}
	n := len(p.RingNodes)
	corners := make([]cornerGeometry, n)
	for i := range corners {
		prev := t.MustLoc(p.RingNodes[(i-1+n)%n])
		cur := t.MustLoc(p.RingNodes[i])
		next := t.MustLoc(p.RingNodes[(i+1)%n])
		dir := bisector(prev, cur, next)
		if s := sinHalfAngle(prev, cur, next); s > 1e-12 {
			dir = geom.Scale(dir, 1/s)
		}
		corners[i] = cornerGeometry{loc: cur, bisect: dir, cot: cotHalfAngle(prev, cur, next)}
	}

	// The pair constraint for non-adjacent corners is against the
	// minimum paper length of the path between them, not their current
	// separation.
	pairL := func(i, j int) (float64, bool) {
		ph, ok := t.AnyPathBetween(p.RingNodes[i], p.RingNodes[j])
		if !ok {
			return 0, false
		}
		path, ok := t.Path(ph)
		if !ok {
			return 0, false
		}

		return path.MinPaper(t), true
	}

	insetHeight, ok := minPairHeight(corners, pairL)
	if !ok {
		return ErrDegenerateInset
	}

	// Candidate inset locations, one per ring corner, before merging.
	candidates := make([]geom.Vec, n)
	for i, c := range corners {
		candidates[i] = geom.Add(c.loc, geom.Scale(c.bisect, insetHeight))
	}

	// Merge into contiguous cyclic runs within VertexSameTol of each
	// other's candidate location.
	groupOf := make([]int, n)
	groupStart := []int{0}
	groupOf[0] = 0
	g := 0
	for i := 1; i < n; i++ {
		if geom.Dist(candidates[i], candidates[i-1]) <= geom.VertexSameTol() {
			groupOf[i] = g
		} else {
			g++
			groupOf[i] = g
			groupStart = append(groupStart, i)
		}
	}
	// Close the cycle: if the last group's candidate is close to the
	// first group's, merge them too.
	if len(groupStart) > 1 && geom.Dist(candidates[n-1], candidates[0]) <= geom.VertexSameTol() {
		lastGroup := groupOf[n-1]
		for i := range groupOf {
			if groupOf[i] == lastGroup {
				groupOf[i] = 0
			}
		}
		groupStart = groupStart[:len(groupStart)-1]
	}

	ringLocs := make([]geom.Vec, n)
	for i, h := range p.RingNodes {
		ringLocs[i] = t.MustLoc(h)
	}
	elevation := ringElevation(t, p.RingNodes) + insetHeight

	groupNode := map[int]tree.Handle{}
	for _, start := range groupStart {
		// Average the group's members' candidate locations.
		var sum geom.Vec
		count := 0
		for i := 0; i < n; i++ {
			if groupOf[i] == groupOf[start] {
				sum = geom.Add(sum, candidates[i])
				count++
			}
		}
		loc := geom.Scale(sum, 1/float64(count))
		if !geom.ConvexEncloses(ringLocs, loc) {
			panic("polygon: inset node does not lie strictly inside its ring")
		}
		h, ok := t.NewSubNode(poly, tree.Node{
			Loc: loc, Elevation: elevation, Junction: count > 1,
		})
		if !ok {
			return ErrTooFewRingNodes
		}
		groupNode[groupOf[start]] = h
	}

	p.InsetNodeOf = make([]tree.Handle, n)
	p.SpokePaths = make([]tree.Handle, 0, n)
	for i, ringNode := range p.RingNodes {
		node := groupNode[groupOf[i]]
		p.InsetNodeOf[i] = node
		if spoke, ok := t.NewSubPath(poly, tree.Path{Front: ringNode, Back: node, Nodes: []tree.Handle{ringNode, node}}); ok {
			p.SpokePaths = append(p.SpokePaths, spoke)
		}
	}

	switch len(groupStart) {
	case 1:
		// Spokes already connect every ring corner to the single apex;
		// nothing further to build.
	case 2:
		a := groupNode[groupOf[groupStart[0]]]
		b := groupNode[groupOf[groupStart[1]]]
		if ridge, ok := t.NewSubPath(poly, tree.Path{Front: a, Back: b, Nodes: []tree.Handle{a, b}}); ok {
			p.RidgePath = ridge
		}
	default:
		return buildInsetRing(t, poly, groupStart, groupOf, corners, insetHeight)
	}

	return nil
}

// buildInsetRing handles an inset that leaves three or more distinct nodes:
// build an inset sub-path between every pair of distinct inset nodes
// (ring-adjacent pairs become the nested ring, the rest cross paths),
// then rebuild polygon structure inside recursively from the inset-node
// ring.
func buildInsetRing(t *tree.Tree, poly tree.Handle, groupStart, groupOf []int, corners []cornerGeometry, h float64) error {
	p, ok := t.Poly(poly)
	if !ok {
		return ErrTooFewRingNodes
	}
	m := len(groupStart)

	nodeOf := make([]tree.Handle, m) // distinct inset nodes, CCW
	for gi, start := range groupStart {
		nodeOf[gi] = p.InsetNodeOf[start]
	}

	var ringPaths []tree.Handle
	for a := 0; a < m; a++ {
		for b := a + 1; b < m; b++ {
			adjacent := b == a+1 || (a == 0 && b == m-1)
			ph, err := newInsetPath(t, poly, p, groupStart[a], groupStart[b], corners, h, adjacent)
			if err != nil {
				return err
			}
			if adjacent {
				ringPaths = append(ringPaths, ph)
			} else {
				p.CrossPaths = append(p.CrossPaths, ph)
			}
		}
	}

	// Consecutive-pair paths in CCW ring order: (0,1), (1,2), ...,
	// (m-1,0). The pair loop above emits (0,1)...(m-2,m-1) in order and
	// (0,m-1) first among a==0's pairs only when m==2, so reorder
	// explicitly.
	ordered := make([]tree.Handle, 0, m)
	for a := 0; a < m; a++ {
		b := (a + 1) % m
		for _, ph := range ringPaths {
			path, ok := t.Path(ph)
			if !ok {
				continue
			}
			if (path.Front == nodeOf[a] && path.Back == nodeOf[b]) ||
				(path.Front == nodeOf[b] && path.Back == nodeOf[a]) {
				ordered = append(ordered, ph)

				break
			}
		}
	}

	sub := tree.Poly{
		RingNodes: nodeOf,
		RingPaths: ordered,
		Centroid:  centroidOf(t, nodeOf),
	}
	subH, ok := t.NewSubPoly(poly, sub)
	if !ok {
		return ErrTooFewRingNodes
	}

	return buildPolyContents(t, subH)
}

// newInsetPath creates the inset sub-path between the inset nodes of
// ring corners i and j, carrying its outset reference and front/back
// reductions.
func newInsetPath(t *tree.Tree, poly tree.Handle, p *tree.Poly, i, j int, corners []cornerGeometry, h float64, adjacent bool) (tree.Handle, error) {
	a := p.InsetNodeOf[i]
	b := p.InsetNodeOf[j]
	frontRed := h * corners[i].cot
	backRed := h * corners[j].cot

	outset, ok := t.AnyPathBetween(p.RingNodes[i], p.RingNodes[j])
	if !ok {
		return tree.Handle{}, ErrDegenerateInset
	}
	outsetPath, ok := t.Path(outset)
	if !ok {
		return tree.Handle{}, ErrDegenerateInset
	}
	// Keep the inset path's front aligned with its outset's front, so
	// the reductions (and any metric derived from them) stay on the
	// right ends.
	if outsetPath.Front == p.RingNodes[j] {
		a, b = b, a
		frontRed, backRed = backRed, frontRed
	}

	path := tree.Path{
		Front:          a,
		Back:           b,
		Nodes:          []tree.Handle{a, b},
		Outset:         outset,
		FrontReduction: frontRed,
		BackReduction:  backRed,
		Border:         adjacent,
	}

	ph, ok := t.NewSubPath(poly, path)
	if !ok {
		return tree.Handle{}, ErrDegenerateInset
	}
	created, _ := t.Path(ph)
	dist := geom.Dist(t.MustLoc(a), t.MustLoc(b))
	created.Active = outsetPath.Active || math.Abs(created.MinPaper(t)-dist) < activeTol

	return ph, nil
}

// bisector returns the unit vector at cur bisecting the interior angle
// of the path prev-cur-next, pointing into the polygon.
func bisector(prev, cur, next geom.Vec) geom.Vec {
	toPrev, ok1 := geom.Normalize(geom.Sub(prev, cur))
	toNext, ok2 := geom.Normalize(geom.Sub(next, cur))
	if !ok1 || !ok2 {
		return geom.Vec{}
	}
	sum := geom.Add(toPrev, toNext)
	if dir, ok := geom.Normalize(sum); ok {
		return dir
	}
	// prev, cur, next collinear (straight angle): bisector is the
	// inward normal to the prev-next chord.
	chord := geom.Sub(next, prev)
	n := geom.RotateCCW90(chord)
	if dir, ok := geom.Normalize(n); ok {
		return dir
	}

	return geom.Vec{}
}

// sinHalfAngle returns sin(theta/2) where theta is the interior angle at
// cur of the path prev-cur-next.
func sinHalfAngle(prev, cur, next geom.Vec) float64 {
	u := geom.Sub(prev, cur)
	v := geom.Sub(next, cur)
	lu, lv := geom.Mag(u), geom.Mag(v)
	if lu < 1e-12 || lv < 1e-12 {
		return 1
	}
	cosTheta := geom.ClampF(geom.Inner(u, v)/(lu*lv), -1, 1)

	return math.Sin(math.Acos(cosTheta) / 2)
}

// cotHalfAngle returns cot(theta/2) where theta is the interior angle at
// cur of the path prev-cur-next.
func cotHalfAngle(prev, cur, next geom.Vec) float64 {
	u := geom.Sub(prev, cur)
	v := geom.Sub(next, cur)
	lu, lv := geom.Mag(u), geom.Mag(v)
	if lu < 1e-12 || lv < 1e-12 {
		return 0
	}
	cosTheta := geom.Inner(u, v) / (lu * lv)
	cosTheta = geom.ClampF(cosTheta, -1, 1)
	theta := math.Acos(cosTheta)
	half := theta / 2
	if math.Abs(math.Sin(half)) < 1e-12 {
		return 0
	}

	return math.Cos(half) / math.Sin(half)
}

// minPairHeight scans every corner pair and returns the smallest positive
// inset height h that keeps every pair's implied reduced length positive.
// pairL resolves the minimum paper length of the path between two ring
// corners, the L of the pair quadratic.
func minPairHeight(corners []cornerGeometry, pairL func(i, j int) (float64, bool)) (float64, bool) {
	n := len(corners)
	best := math.MaxFloat64
	found := false
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			adjacent := j == i+1 || (i == 0 && j == n-1)
			var l float64
			if !adjacent {
				var ok bool
				l, ok = pairL(i, j)
				if !ok {
					continue
				}
			}
			h, ok := pairHeight(corners[i], corners[j], adjacent, l)
			if ok && h > minPositiveH && h < best {
				best = h
				found = true
			}
		}
	}

	return best, found
}

func pairHeight(ci, cj cornerGeometry, adjacent bool, l float64) (float64, bool) {
	if adjacent {
		// The adjacent-pair bound is the inset height of the bisector
		// intersection point: its perpendicular distance to the shared
		// side, not its parameter along either bisector line.
		tp, _, ok := geom.LineIntersect(ci.loc, geom.Add(ci.loc, ci.bisect), cj.loc, geom.Add(cj.loc, cj.bisect))
		if !ok {
			return 0, false
		}
		meet := geom.Add(ci.loc, geom.Scale(ci.bisect, tp))
		side, ok := geom.Normalize(geom.Sub(cj.loc, ci.loc))
		if !ok {
			return 0, false
		}
		// The wrap-around pair (0, n-1) traverses its shared side against
		// ring orientation; the height is the unsigned distance either way.
		return math.Abs(geom.Cross(side, geom.Sub(meet, ci.loc))), true
	}

	u := geom.Sub(ci.loc, cj.loc)
	v := geom.Sub(ci.bisect, cj.bisect)
	msum := ci.cot + cj.cot

	a := geom.Mag2(v) - msum*msum
	b := 2*geom.Inner(u, v) + 2*l*msum
	c := geom.Mag2(u) - l*l

	roots, ok := solveQuadratic(a, b, c)
	if !ok {
		return 0, false
	}
	best := math.MaxFloat64
	found := false
	for _, h := range roots {
		if h > minPositiveH && l-h*msum > 0 && h < best {
			best = h
			found = true
		}
	}

	return best, found
}

// solveQuadratic solves a*x^2+b*x+c=0, handling the degenerate linear
// case (a==0).
func solveQuadratic(a, b, c float64) ([]float64, bool) {
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) < 1e-12 {
			return nil, false
		}

		return []float64{-c / b}, true
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil, false
	}
	sq := math.Sqrt(disc)

	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}, true
}

func centroidOf(t *tree.Tree, ring []tree.Handle) geom.Vec {
	var sum geom.Vec
	for _, h := range ring {
		sum = geom.Add(sum, t.MustLoc(h))
	}
	if len(ring) == 0 {
		return sum
	}

	return geom.Scale(sum, 1/float64(len(ring)))
}
