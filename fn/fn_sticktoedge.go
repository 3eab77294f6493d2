package fn

// PaperEdge identifies one of the four sides of the unit/paper rectangle.
type PaperEdge int

const (
	EdgeLeft PaperEdge = iota
	EdgeRight
	EdgeBottom
	EdgeTop
)

// StickToEdgeFn sticks node (ix,iy) to one of the four paper edges: the
// fixed coordinate (x for left/right, y for bottom/top) must equal the
// edge's constant (0 or w/h).
type StickToEdgeFn struct {
	idx   int // x[ix] or x[iy], whichever this edge fixes
	value float64
}

// NewStickToEdgeFn builds the constraint for the given edge; w and h are
// the paper width/height, ix/iy the node's coordinate indices.
func NewStickToEdgeFn(edge PaperEdge, ix, iy int, w, h float64) *StickToEdgeFn {
	switch edge {
	case EdgeLeft:
		return &StickToEdgeFn{idx: ix, value: 0}
	case EdgeRight:
		return &StickToEdgeFn{idx: ix, value: w}
	case EdgeBottom:
		return &StickToEdgeFn{idx: iy, value: 0}
	default: // EdgeTop
		return &StickToEdgeFn{idx: iy, value: h}
	}
}

func (f *StickToEdgeFn) Value(x []float64) float64 {
	recordValue()

	return x[f.idx] - f.value
}

func (f *StickToEdgeFn) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.idx] = 1
}

func (f *StickToEdgeFn) Vars() []int { return []int{f.idx} }
