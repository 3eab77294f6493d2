// Package depth implements tree.DepthComputer and the depth/corridor
// half of tree.FacetPipeline: cleanup steps 16 (vertex depth), 17
// (crease bend), 18-20 (facet validation, corridor tagging, and the
// facet-ordering graph).
//
// Vertex depth: every active axial and gusset band establishes a metric
// (minDepth + |d - minDepthDist| along the band) applied to its own
// path vertices and its full ridgeline; feet on inactive border paths
// inherit the ridge vertex at the top of their hinge. Two consecutive
// inactive border paths leave their shared structure without depth, and
// the tree's vertex-depth validity fails with it. Crease bend then
// reclassifies each regular hinge folded or unfolded from the depth
// profile through its foot.
//
// The facet-ordering graph is built per molecule as a complete axial
// loop with corridor crossings (BuildCorridorLinks: up across ridge
// creases, down through gusset bottoms, sideways across pseudohinge
// partners), then assembled globally through the local-root networks:
// the connected components of minimum-discrete-depth vertices and the
// hinge creases joining them, with pseudohinge mates collapsing into one
// component. Each component carries a spanning tree and a degree
// classification of its axial vertices (cc0, cc1, cc2-st1, cc2-st2);
// exactly one component must sit at discrete depth 0 and every other
// must be connectable (a vertex with two hinge creases, one in the
// component), else the offending parts land in the tree's local-root
// diagnostics and the step fails. cc2-st2 vertices splice the loop
// pieces around their component, the depth-0 network absorbs the rest
// at shared axial vertices, and one final link is broken to leave a
// single-source, single-sink graph for assign.Order to number.
package depth
