package tree

// cuValidateFacets is step 18: validate facet well-formedness and
// crease-pattern two-colourability via the FacetPipeline hook. Without a
// hook installed this vacuously succeeds, so steps 1-17 remain testable
// in isolation.
func (t *Tree) cuValidateFacets() bool {
	if t.hooks.facets == nil {
		t.FacetDataValid = true

		return true
	}
	ok, err := t.hooks.facets.ValidateFacets(t)
	if err != nil || !ok {
		t.FacetDataValid = false

		return false
	}

	return true
}

// cuTagCorridors is step 19: tag every facet with the tree edge whose
// corridor contains it.
func (t *Tree) cuTagCorridors() {
	if t.hooks.facets == nil {
		return
	}
	_ = t.hooks.facets.TagCorridors(t)
}

// cuBuildOrderingDAG is step 20: build the global facet-ordering DAG;
// abort the remaining pipeline if the local-root networks are not
// connectable.
func (t *Tree) cuBuildOrderingDAG() bool {
	if t.hooks.facets == nil {
		t.LocalRootConnectable = true

		return true
	}
	connectable, err := t.hooks.facets.BuildOrderingDAG(t)
	t.LocalRootConnectable = connectable && err == nil

	return t.LocalRootConnectable
}

// cuAssignColour is step 21: propagate facet two-colouring from the
// source facet.
func (t *Tree) cuAssignColour() {
	if t.hooks.assign == nil {
		return
	}
	_ = t.hooks.assign.AssignColour(t)
}

// cuAssignFolds is step 22: derive each crease's fold direction from the
// facet colouring and ordering.
func (t *Tree) cuAssignFolds() {
	if t.hooks.assign == nil {
		return
	}
	_ = t.hooks.assign.AssignFolds(t)

	t.FacetDataValid = true
}
