package tree

// CleanupAfterEdit runs the fixed 22-step pipeline that re-derives all
// of the tree's derived state after an edit. It
// is idempotent: calling it twice with no intervening edit reaches the
// same fixed point both times. Reentry while already running is
// forbidden; mutators must always go through beginEdit rather than
// calling CleanupAfterEdit directly.
func (t *Tree) CleanupAfterEdit() {
	if t.inCleanup {
		panic(ErrReentrantCleanup)
	}
	t.inCleanup = true
	defer func() { t.inCleanup = false }()

	t.cuInvalidateFlags()             // 1
	t.cuDeleteInvalidConditions()     // 2
	t.cuClampAndClearNodeFlags()      // 3
	t.cuClearEdgeFlags()              // 4
	if !t.cuPathLengthsAndFeasibility() { // 5
		return
	}
	t.cuComputeFeasible() // 6
	t.cuPropagateConditioned() // 7
	t.cuComputeBorder() // 8
	t.cuComputePinned() // 9
	t.cuBuildPolygonNetwork() // 10
	t.cuDeleteInvalidPolys() // 11
	t.cuComputePolygonsValid() // 12
	if !t.PolygonsValid {
		return
	}
	t.cuDeleteOrphanVertsAndCreases() // 13
	t.cuEnsureRootAndRenumber()       // 14
	if !t.cuClearCleanupDataAndFill() { // 15
		return
	}
	if !t.cuComputeDepth() { // 16
		return
	}
	t.cuComputeCreaseBend() // 17
	if !t.cuValidateFacets() { // 18
		return
	}
	t.cuTagCorridors() // 19
	if !t.cuBuildOrderingDAG() { // 20
		return
	}
	t.cuAssignColour() // 21
	t.cuAssignFolds()   // 22
}
