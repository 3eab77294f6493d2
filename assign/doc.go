// Package assign implements tree.Assigner (cleanup steps 21-22: facet
// two-colouring propagation and crease fold-direction derivation) and
// the topological-ordering half of tree.FacetPipeline that package
// depth's BuildOrderingDAG composes with, via the exported Order
// function.
//
// Order is a Kahn's-algorithm topological sort (the usual
// indegree-queue shape, applied to Facet.Head/Tail instead of a generic
// graph's adjacency); AssignColour is a flood-fill traversal over the
// crease-adjacency graph between facets.
//
// Colour starts at the ordering DAG's source facet (ColorUp) and
// alternates across every crease except an UnfoldedHinge, which
// preserves it. Fold direction then follows from the colouring and the
// facet order: Border with one incident facet, Flat when both facets
// share a colour, else mountain when the higher-stacked facet shows
// colour up and valley otherwise, inverted when the forward facet is
// white side up.
package assign
