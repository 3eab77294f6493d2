package nlco

import (
	"math"

	"github.com/katalvlaran/treemaker/fn"
)

// Problem describes a nonlinear constrained optimisation problem over
// R^n: minimize objective subject to equality constraints (f(x)==0),
// inequality constraints (f(x)<=0), and box bounds bl <= x <= bu.
//
// A single struct assembled by the caller (package optimize), then
// handed to one entry point (Minimize).
type Problem struct {
	n          int
	objective  fn.Fn
	equalities []fn.Fn
	inequal    []fn.Fn
	bl, bu     []float64
}

// NewProblem allocates a Problem over n variables with no bounds
// (±infinity) and no constraints.
func NewProblem(n int) *Problem {
	bl := make([]float64, n)
	bu := make([]float64, n)
	for i := 0; i < n; i++ {
		bl[i] = negInf
		bu[i] = posInf
	}

	return &Problem{n: n, bl: bl, bu: bu}
}

// SetObjective sets the (single) objective function.
func (p *Problem) SetObjective(f fn.Fn) { p.objective = f }

// AddEquality registers an equality constraint f(x) == 0.
func (p *Problem) AddEquality(f fn.Fn) { p.equalities = append(p.equalities, f) }

// AddInequality registers an inequality constraint f(x) <= 0.
func (p *Problem) AddInequality(f fn.Fn) { p.inequal = append(p.inequal, f) }

// SetBound sets the box bound for variable i.
func (p *Problem) SetBound(i int, lo, hi float64) {
	p.bl[i] = lo
	p.bu[i] = hi
}

// Result reports the outcome of a successful or failed Minimize call.
type Result struct {
	Converged   bool
	OuterIters  int
	Feasibility float64
}

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)
