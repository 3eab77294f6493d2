package fn

// TwoVarFn computes a*x[i] + b*x[j] + c. Used for linear pairings between
// two scalar variables (e.g. symmetry or linked-strain constraints).
type TwoVarFn struct {
	i, j int
	a, b float64
	c    float64
}

// NewTwoVarFn constructs a*x[i] + b*x[j] + c.
func NewTwoVarFn(i int, a float64, j int, b float64, c float64) *TwoVarFn {
	return &TwoVarFn{i: i, j: j, a: a, b: b, c: c}
}

func (f *TwoVarFn) Value(x []float64) float64 {
	recordValue()

	return f.a*x[f.i] + f.b*x[f.j] + f.c
}

func (f *TwoVarFn) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.i] += f.a
	out[f.j] += f.b
}

func (f *TwoVarFn) Vars() []int { return []int{f.i, f.j} }
