package fn

// SquareFn computes coef*x[i]^2. Used by the strain optimiser's
// stiffness-weighted strain-squared objective terms, which are not
// expressible as a linear OneVarFn.
type SquareFn struct {
	i    int
	coef float64
}

// NewSquareFn constructs coef*x[i]^2.
func NewSquareFn(i int, coef float64) *SquareFn { return &SquareFn{i: i, coef: coef} }

func (f *SquareFn) Value(x []float64) float64 {
	recordValue()
	v := x[f.i]

	return f.coef * v * v
}

func (f *SquareFn) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.i] = 2 * f.coef * x[f.i]
}

func (f *SquareFn) Vars() []int { return []int{f.i} }

// OffsetSquareFn computes coef*(x[i]-x0)^2: the strain optimiser's small
// coordinate regulariser, penalising drift of a node away from its
// location when the optimiser started.
type OffsetSquareFn struct {
	i    int
	x0   float64
	coef float64
}

// NewOffsetSquareFn constructs coef*(x[i]-x0)^2.
func NewOffsetSquareFn(i int, x0, coef float64) *OffsetSquareFn {
	return &OffsetSquareFn{i: i, x0: x0, coef: coef}
}

func (f *OffsetSquareFn) Value(x []float64) float64 {
	recordValue()
	d := x[f.i] - f.x0

	return f.coef * d * d
}

func (f *OffsetSquareFn) Grad(x []float64, out []float64) {
	recordGrad()
	for k := range out {
		out[k] = 0
	}
	out[f.i] = 2 * f.coef * (x[f.i] - f.x0)
}

func (f *OffsetSquareFn) Vars() []int { return []int{f.i} }
