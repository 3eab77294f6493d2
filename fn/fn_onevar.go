package fn

// OneVarFn computes a*x[i] + b. Used for simple linear bounds/equalities,
// e.g. "scale > 0.1*currentScale" in the scale optimiser.
type OneVarFn struct {
	i    int
	a, b float64
}

// NewOneVarFn constructs a*x[i] + b.
func NewOneVarFn(i int, a, b float64) *OneVarFn {
	return &OneVarFn{i: i, a: a, b: b}
}

func (f *OneVarFn) Value(x []float64) float64 {
	recordValue()

	return f.a*x[f.i] + f.b
}

func (f *OneVarFn) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.i] = f.a
}

func (f *OneVarFn) Vars() []int { return []int{f.i} }
