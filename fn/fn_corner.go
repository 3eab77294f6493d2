package fn

// CornerFn pins node coordinate x[i] to one of the two ends of a paper
// side via the complementarity-style equality x[i]*(x[i]-side) == 0,
// satisfied exactly when x[i] is 0 or side.
type CornerFn struct {
	i    int
	side float64
}

// NewCornerFn constructs the corner-pinning equality for coordinate index
// i against the paper side length (w or h, matching whichever axis i is).
func NewCornerFn(i int, side float64) *CornerFn {
	return &CornerFn{i: i, side: side}
}

func (f *CornerFn) Value(x []float64) float64 {
	recordValue()

	return x[f.i] * (x[f.i] - f.side)
}

func (f *CornerFn) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.i] = 2*x[f.i] - f.side
}

func (f *CornerFn) Vars() []int { return []int{f.i} }
