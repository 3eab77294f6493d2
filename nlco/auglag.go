package nlco

import "math"

// alState holds the outer-loop state: weight, multipliers, and the
// working gradient buffer reused across evaluations (explicit state, no
// closures capturing mutable locals).
type alState struct {
	n       int
	neq     int
	nineq   int
	w       float64
	lambda  []float64 // length neq+nineq+2n
	problem *Problem
	tmp     []float64 // scratch gradient buffer, length n
}

func newALState(p *Problem) *alState {
	neq := len(p.equalities)
	nineq := len(p.inequal)
	n := p.n

	return &alState{
		n:       n,
		neq:     neq,
		nineq:   nineq,
		w:       10,
		lambda:  make([]float64, neq+nineq+2*n),
		problem: p,
		tmp:     make([]float64, n),
	}
}

// lowerIdx/upperIdx return this state's lambda slot for variable i's
// lower/upper bound slack.
func (s *alState) lowerIdx(i int) int { return s.neq + s.nineq + i }
func (s *alState) upperIdx(i int) int { return s.neq + s.nineq + s.n + i }

// evaluate computes the augmented Lagrangian value and gradient at x:
// objective + sum_eq (lambda+w*f)*f, and for every inequality
// or bound slack f with effective multiplier mu=-lambda/(2w): (lambda+w*f)*f
// when f>=mu, else the constant floor (lambda+w*mu)*mu = -lambda^2/(4w)
// the active branch bottoms out at (gradient likewise zeroed below mu).
func (s *alState) evaluate(x []float64) (float64, []float64) {
	p := s.problem
	value := p.objective.Value(x)
	grad := make([]float64, s.n)
	p.objective.Grad(x, s.tmp)
	for i := range grad {
		grad[i] += s.tmp[i]
	}

	for k, f := range p.equalities {
		fv := f.Value(x)
		lam := s.lambda[k]
		value += (lam + s.w*fv) * fv
		f.Grad(x, s.tmp)
		coeff := lam + 2*s.w*fv
		addScaled(grad, s.tmp, coeff)
	}

	for k, f := range p.inequal {
		idx := s.neq + k
		s.accumInequality(x, f.Value(x), s.lambda[idx], func(g []float64) { f.Grad(x, g) }, &value, grad)
	}

	for i := 0; i < s.n; i++ {
		if !math.IsInf(p.bl[i], -1) {
			fv := p.bl[i] - x[i]
			idx := s.lowerIdx(i)
			s.accumBoundInequality(fv, s.lambda[idx], i, -1, &value, grad)
		}
		if !math.IsInf(p.bu[i], 1) {
			fv := x[i] - p.bu[i]
			idx := s.upperIdx(i)
			s.accumBoundInequality(fv, s.lambda[idx], i, 1, &value, grad)
		}
	}

	return value, grad
}

// accumInequality folds one general inequality constraint's AL
// contribution (value and gradient) into value/grad.
func (s *alState) accumInequality(x []float64, fv, lam float64, gradFn func([]float64), value *float64, grad []float64) {
	mu := -lam / (2 * s.w)
	if fv >= mu {
		*value += (lam + s.w*fv) * fv
		gradFn(s.tmp)
		addScaled(grad, s.tmp, lam+2*s.w*fv)
	} else {
		// Inactive constraint: the augmented-Lagrangian term flattens out
		// at its minimum -lambda^2/(4w), which equals (lam+w*mu)*mu, so
		// the value is continuous at the switch point f == mu.
		*value -= mu * mu * s.w
	}
}

// accumBoundInequality folds one box-bound slack's AL contribution. sign
// is -1 for a lower-bound slack (f = bl-x[i], df/dx[i] = -1) and +1 for an
// upper-bound slack (f = x[i]-bu, df/dx[i] = +1).
func (s *alState) accumBoundInequality(fv, lam float64, i int, sign float64, value *float64, grad []float64) {
	mu := -lam / (2 * s.w)
	if fv >= mu {
		*value += (lam + s.w*fv) * fv
		grad[i] += sign * (lam + 2*s.w*fv)
	} else {
		*value -= mu * mu * s.w
	}
}

func addScaled(dst, src []float64, coeff float64) {
	for i := range dst {
		dst[i] += coeff * src[i]
	}
}

// updateMultipliers applies the multiplier update: equalities lambda += 2*w*f;
// inequalities/bound-slacks use the mu-gated scheme, independently for
// each.
func (s *alState) updateMultipliers(x []float64) {
	p := s.problem
	for k, f := range p.equalities {
		s.lambda[k] += 2 * s.w * f.Value(x)
	}
	for k, f := range p.inequal {
		idx := s.neq + k
		s.updateOneMultiplier(idx, f.Value(x))
	}
	for i := 0; i < s.n; i++ {
		if !math.IsInf(p.bl[i], -1) {
			s.updateOneMultiplier(s.lowerIdx(i), p.bl[i]-x[i])
		}
		if !math.IsInf(p.bu[i], 1) {
			s.updateOneMultiplier(s.upperIdx(i), x[i]-p.bu[i])
		}
	}
}

func (s *alState) updateOneMultiplier(idx int, fv float64) {
	mu := -s.lambda[idx] / (2 * s.w)
	if fv < mu {
		s.lambda[idx] = 0
	} else {
		s.lambda[idx] += 2 * s.w * fv
	}
}

// feasibility computes the sup-norm of constraint violation: |f| for
// equalities, max(0,f) for inequalities and bound slacks.
func (s *alState) feasibility(x []float64) float64 {
	p := s.problem
	var worst float64
	for _, f := range p.equalities {
		v := math.Abs(f.Value(x))
		if v > worst {
			worst = v
		}
	}
	for _, f := range p.inequal {
		v := posPart(f.Value(x))
		if v > worst {
			worst = v
		}
	}
	for i := 0; i < s.n; i++ {
		if !math.IsInf(p.bl[i], -1) {
			if v := posPart(p.bl[i] - x[i]); v > worst {
				worst = v
			}
		}
		if !math.IsInf(p.bu[i], 1) {
			if v := posPart(x[i] - p.bu[i]); v > worst {
				worst = v
			}
		}
	}

	return worst
}

func posPart(v float64) float64 {
	if v < 0 {
		return 0
	}

	return v
}

// Option configures a single Minimize call.
type Option func(*options)

type options struct {
	maxOuterIters int
	maxInnerIters int
	progress      func() error
}

func defaultOptions() options {
	return options{maxOuterIters: 50, maxInnerIters: 200}
}

// WithProgress installs the per-outer-iteration callback: returning a
// non-nil error (conventionally ErrUserCancelled)
// unwinds Minimize.
func WithProgress(cb func() error) Option {
	return func(o *options) { o.progress = cb }
}

// WithMaxOuterIters overrides the default outer-loop budget (50).
func WithMaxOuterIters(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxOuterIters = n
		}
	}
}

// Minimize runs the Augmented-Lagrangian outer loop starting
// from x (mutated in place with the best iterate found). Returns
// ErrTooManyIterations if the iteration budget is exhausted without
// reaching feasibility+objective stability, ErrUserCancelled if the
// progress callback cancels, or ErrInvalidProblem for a malformed Problem.
func (p *Problem) Minimize(x []float64, opts ...Option) (Result, error) {
	if p.objective == nil || len(x) != p.n {
		return Result{}, ErrInvalidProblem
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	st := newALState(p)
	lastObj, haveLastObj := 0.0, false

	for outer := 1; outer <= o.maxOuterIters; outer++ {
		if o.progress != nil {
			if err := o.progress(); err != nil {
				return Result{Converged: false, OuterIters: outer}, ErrUserCancelled
			}
		}

		minimizeBFGS(st.evaluate, x, p.bl, p.bu, o.maxInnerIters)

		feas := st.feasibility(x)
		obj := p.objective.Value(x)
		objDelta := math.Inf(1)
		if haveLastObj {
			objDelta = math.Abs(obj - lastObj)
		}

		if feas < 1e-5 && objDelta < 1e-5 {
			return Result{Converged: true, OuterIters: outer, Feasibility: feas}, nil
		}

		if feas < 1e-5 {
			lastObj, haveLastObj = obj, true
		}

		st.updateMultipliers(x)
		st.w *= 10
		if st.w > 1e8 {
			st.w = 1e8
		}
	}

	return Result{Converged: false, OuterIters: o.maxOuterIters, Feasibility: st.feasibility(x)}, ErrTooManyIterations
}
