// Package fn is the differentiable function library the NLCO engine (see
// package nlco) optimizes and constrains against. Every concrete function
// bakes in, at construction time, the indices of the variables it touches
// and whatever constants it needs, then exposes Value/Grad over the full
// variable vector.
//
// One file per concrete variant: fn_onevar.go, fn_twovar.go,
// fn_path1.go, fn_strainpath.go, fn_pathangle.go, fn_quantizeangle.go,
// fn_sticktoline.go, fn_sticktoedge.go, fn_corner.go, fn_pair.go,
// fn_collinear.go.
//
// Call-counting: every Fn increments package-level atomic counters on each
// Value/Grad call, but the counters only do real work when built with
// `-tags tmprofile` (see profile_on.go / profile_off.go); the default build
// keeps the hot path branch-free.
package fn
