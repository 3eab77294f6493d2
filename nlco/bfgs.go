package nlco

import "math"

// bfgsState holds the inner-loop search state in an explicit engine
// struct rather than closures.
type bfgsState struct {
	n    int
	hinv *dense
	grad []float64
}

func newBFGSState(n int) *bfgsState {
	return &bfgsState{n: n, hinv: newIdentity(n), grad: make([]float64, n)}
}

// valueGrad evaluates the augmented Lagrangian and its gradient at x.
type valueGrad func(x []float64) (value float64, grad []float64)

// minimizeBFGS runs the damped-BFGS inner loop (<=maxIters) starting from
// x (mutated in place): Armijo backtracking line search
// (alpha=1e-4), step-size clamped to the bounded box diagonal, termination
// on step tolerance 4*epsMachine or relative gradient tolerance 1e-5.
// Returns the number of iterations taken.
func minimizeBFGS(vg valueGrad, x []float64, bl, bu []float64, maxIters int) int {
	n := len(x)
	st := newBFGSState(n)
	fx, gx := vg(x)
	boxDiag := boxDiagonal(bl, bu)

	iter := 0
	for ; iter < maxIters; iter++ {
		gnorm := math.Sqrt(dot(gx, gx))
		if gnorm < 1e-5*(1+math.Abs(fx)) {
			break
		}

		d := st.hinv.mulVec(gx)
		for i := range d {
			d[i] = -d[i]
		}

		slope := dot(gx, d)
		if slope >= 0 {
			// Not a descent direction: reset to steepest descent and retry
			// once; if still not descending, give up this inner loop (the
			// outer AL loop will re-attempt from a better point).
			st.hinv = newIdentity(n)
			for i := range d {
				d[i] = -gx[i]
			}
			slope = dot(gx, d)
			if slope >= 0 {
				break
			}
		}

		dnorm := math.Sqrt(dot(d, d))
		if boxDiag > 0 && dnorm > boxDiag {
			scale := boxDiag / dnorm
			for i := range d {
				d[i] *= scale
			}
		}

		step, fNew, xNew := lineSearch(vg, x, fx, gx, d, slope, bl, bu)
		if step < 4*epsMachine {
			break
		}

		_, gNew := vg(xNew)
		s := make([]float64, n)
		y := make([]float64, n)
		for i := 0; i < n; i++ {
			s[i] = xNew[i] - x[i]
			y[i] = gNew[i] - gx[i]
		}
		st.hinv.bfgsUpdate(s, y)

		copy(x, xNew)
		fx, gx = fNew, gNew
	}

	return iter
}

// lineSearch performs backtracking line search with the Armijo condition
// f(x+t*d) <= f(x) + alpha*t*slope, alpha=1e-4, halving t on failure.
func lineSearch(vg valueGrad, x []float64, fx float64, gx, d []float64, slope float64, bl, bu []float64) (step, fNew float64, xNew []float64) {
	const alpha = 1e-4
	n := len(x)
	t := 1.0
	xTrial := make([]float64, n)
	for iter := 0; iter < 40; iter++ {
		for i := 0; i < n; i++ {
			xTrial[i] = clampTo(x[i]+t*d[i], bl[i], bu[i])
		}
		fTrial, _ := vg(xTrial)
		if fTrial <= fx+alpha*t*slope {
			return t, fTrial, xTrial
		}
		t *= 0.5
	}

	return 0, fx, x
}

func clampTo(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

func boxDiagonal(bl, bu []float64) float64 {
	var sum2 float64
	for i := range bl {
		if math.IsInf(bl[i], -1) || math.IsInf(bu[i], 1) {
			continue
		}
		d := bu[i] - bl[i]
		sum2 += d * d
	}

	return math.Sqrt(sum2)
}
