package fn

// SumFn adds a weighted list of Fns into a single Fn: Value/Grad are the
// weighted sum of the terms, Vars is the union of each term's Vars. Used
// to assemble the strain optimiser's composite objective (a stiffness-
// weighted sum of per-edge strain-squared terms plus a small coordinate
// regulariser), which none of the other single-shape Fns can express on
// their own.
type SumFn struct {
	terms   []Fn
	weights []float64
}

// NewSumFn constructs an empty sum; terms are appended with Add.
func NewSumFn() *SumFn { return &SumFn{} }

// Add appends weight*term to the sum.
func (f *SumFn) Add(term Fn, weight float64) {
	f.terms = append(f.terms, term)
	f.weights = append(f.weights, weight)
}

func (f *SumFn) Value(x []float64) float64 {
	var sum float64
	for i, t := range f.terms {
		sum += f.weights[i] * t.Value(x)
	}

	return sum
}

func (f *SumFn) Grad(x []float64, out []float64) {
	for k := range out {
		out[k] = 0
	}
	tmp := make([]float64, len(out))
	for i, t := range f.terms {
		t.Grad(x, tmp)
		w := f.weights[i]
		for k := range out {
			out[k] += w * tmp[k]
		}
	}
}

func (f *SumFn) Vars() []int {
	var vars []int
	for _, t := range f.terms {
		vars = append(vars, t.Vars()...)
	}

	return vars
}
