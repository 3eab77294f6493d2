package nlco

import "errors"

// Sentinel errors returned by Problem.Minimize. Only sentinels are
// exposed, callers branch with errors.Is, and sentinels are never
// wrapped with formatted strings at the definition site.
var (
	// ErrTooManyIterations indicates the outer Augmented-Lagrangian loop
	// exhausted its iteration budget (50) without reaching feasibility
	// and objective stability.
	ErrTooManyIterations = errors.New("nlco: too many outer iterations")

	// ErrUserCancelled indicates the progress callback returned a
	// cancellation signal, unwinding Minimize.
	ErrUserCancelled = errors.New("nlco: cancelled by progress callback")

	// ErrInvalidProblem indicates a malformed Problem: no objective set,
	// or a starting point whose length is not the problem's dimension.
	ErrInvalidProblem = errors.New("nlco: invalid problem")
)
