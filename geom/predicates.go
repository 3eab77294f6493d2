package geom

// AreCCW reports whether p, q, r form a counter-clockwise turn, within
// ConvexityTol. A near-zero cross product (collinear points, within
// tolerance) is reported as false.
//
// Complexity: O(1).
func AreCCW(p, q, r Vec) bool {
	cross := Cross(Sub(q, p), Sub(r, p))

	return cross > convexityTol
}

// LineIntersect solves for the intersection of the infinite lines through
// (p0, p1) and (q0, q1), returning the two line parameters tp (along p0->p1)
// and tq (along q0->q1). ok is false when the lines are parallel (within
// ConvexityTol).
func LineIntersect(p0, p1, q0, q1 Vec) (tp, tq float64, ok bool) {
	d1 := Sub(p1, p0)
	d2 := Sub(q1, q0)
	denom := Cross(d1, d2)
	if denom > -convexityTol && denom < convexityTol {
		return 0, 0, false
	}
	diff := Sub(q0, p0)
	tp = Cross(diff, d2) / denom
	tq = Cross(diff, d1) / denom

	return tp, tq, true
}

// ProjectPointToSegment projects pt onto the segment (a, b) (if asLine is
// false) or onto the infinite line through a, b (if asLine is true).
// ok is false only when a and b coincide.
func ProjectPointToSegment(pt, a, b Vec, asLine bool) (proj Vec, t float64, ok bool) {
	d := Sub(b, a)
	len2 := Mag2(d)
	if len2 < distTol*distTol {
		return a, 0, false
	}
	t = Inner(Sub(pt, a), d) / len2
	if !asLine {
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}

	return Add(a, Scale(d, t)), t, true
}

// ConvexEncloses reports whether point lies inside (or on the boundary,
// within ConvexityTol) of the convex polygon poly, given in CCW order.
// The test is consistent side-of-edge against the polygon centroid, so it
// tolerates polygons whose vertices are not perfectly centered.
func ConvexEncloses(poly []Vec, point Vec) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	var cx, cy float64
	for _, v := range poly {
		cx += v.X
		cy += v.Y
	}
	centroid := Vec{cx / float64(n), cy / float64(n)}

	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		edge := Sub(b, a)
		sidePoint := Cross(edge, Sub(point, a))
		sideCentroid := Cross(edge, Sub(centroid, a))
		// Degenerate edge: centroid exactly on the line; skip this edge.
		if sideCentroid > -convexityTol && sideCentroid < convexityTol {
			continue
		}
		if sideCentroid > 0 && sidePoint < -convexityTol {
			return false
		}
		if sideCentroid < 0 && sidePoint > convexityTol {
			return false
		}
	}

	return true
}

// Clamp restricts v into the axis-aligned rectangle [0,w]x[0,h].
func Clamp(v Vec, w, h float64) Vec {
	return Vec{ClampF(v.X, 0, w), ClampF(v.Y, 0, h)}
}

// ClampF restricts a scalar x into [lo, hi].
func ClampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}

	return x
}
