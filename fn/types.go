package fn

// Fn is the common contract for every differentiable objective or
// constraint function object the NLCO engine consumes.
//
// Value and Grad both take the full-length variable vector x; Grad fills
// out with the gradient, zeroing entries for variables this Fn does not
// depend on (the caller reuses the same backing slice across many Fns, so
// zeroing unused entries is the Fn's responsibility, not the caller's).
type Fn interface {
	// Value returns f(x).
	Value(x []float64) float64

	// Grad fills out[:len(x)] with the gradient of f at x. out must have
	// length >= len(x); entries at indices not in Vars() are set to 0.
	Grad(x []float64, out []float64)

	// Vars returns the (unordered, may contain duplicates) indices into x
	// that this Fn depends on, for sparse gradient assembly by callers
	// that want to skip untouched entries.
	Vars() []int
}

// Kind classifies how the NLCO engine treats a Fn: as the objective, an
// equality constraint, or an inequality constraint (f(x) <= 0).
type Kind int

const (
	// KindObjective marks the single objective function of a Problem.
	KindObjective Kind = iota
	// KindEquality marks an equality constraint f(x) == 0.
	KindEquality
	// KindInequality marks an inequality constraint f(x) <= 0.
	KindInequality
)

// Tagged pairs a Fn with the Kind the optimiser façade intends for it.
type Tagged struct {
	Fn   Fn
	Kind Kind
}
