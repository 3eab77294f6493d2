package nlco_test

import (
	"fmt"

	"github.com/katalvlaran/treemaker/fn"
	"github.com/katalvlaran/treemaker/nlco"
)

// ExampleProblem_Minimize minimises -x0 subject to x0 + x1 <= 1 inside
// the unit box: the optimum pushes x0 to the constraint boundary.
func ExampleProblem_Minimize() {
	p := nlco.NewProblem(2)
	p.SetObjective(fn.NewOneVarFn(0, -1, 0))
	p.AddInequality(fn.NewTwoVarFn(0, 1, 1, 1, -1))
	p.SetBound(0, 0, 1)
	p.SetBound(1, 0, 1)

	x := []float64{0.2, 0.2}
	res, err := p.Minimize(x)
	if err != nil {
		fmt.Println("failed:", err)

		return
	}
	fmt.Printf("converged=%v x0+x1<=1: %v\n", res.Converged, x[0]+x[1] <= 1+1e-4)
	// Output:
	// converged=true x0+x1<=1: true
}
