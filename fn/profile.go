package fn

import "sync/atomic"

// Profile accumulates Value/Grad call counts across every Fn. It is only
// incremented when the binary is built with `-tags tmprofile`; the default
// build's recordValue/recordGrad calls are no-ops the compiler can inline
// away, keeping profiling opt-in via a
// build flag without slowing the default hot path.
var Profile struct {
	ValueCalls atomic.Int64
	GradCalls  atomic.Int64
}

// ResetProfile zeroes the call counters. Intended for test isolation.
func ResetProfile() {
	Profile.ValueCalls.Store(0)
	Profile.GradCalls.Store(0)
}
