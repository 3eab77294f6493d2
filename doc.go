// Package treemaker computes flat-foldable origami crease patterns from
// weighted tree graphs, following Robert Lang's TreeMaker algorithm.
//
// A caller builds a Tree (package tree) describing the desired base's
// tree graph -- nodes, edges, edge lengths and strains, paper size and
// symmetry -- then runs the optimizers in package optimize to find node
// placements realizing those lengths, and finally asks the Tree to
// clean itself up: compute its polygon network (package polygon),
// build creases and facets from it (package crease), derive per-vertex
// depth and the facet-stacking order (package depth), and assign
// mountain/valley folds (package assign). NewTree wires all four
// pipeline hooks together so a caller only needs this one constructor.
//
//	tr := treemaker.NewTree()
//	root, _, _ := tr.Bootstrap(1.0, geom.Vec{}, geom.Vec{X: 1})
//	...
//
// Package format reads and writes the persistent tree file format;
// package cmd/treemakerctl is the scriptable command-line driver
// used for batch optimization and regression testing.
package treemaker

import (
	"github.com/katalvlaran/treemaker/assign"
	"github.com/katalvlaran/treemaker/crease"
	"github.com/katalvlaran/treemaker/depth"
	"github.com/katalvlaran/treemaker/polygon"
	"github.com/katalvlaran/treemaker/tree"
)

// NewTree constructs a Tree with every cleanup-pipeline hook installed:
// polygon.Builder for the contents step, crease.Builder for crease
// construction, depth.Builder for vertex depth and the facet-pipeline's
// corridor/ordering half, and assign.Builder for colour and fold
// assignment. Additional options are applied after the hooks, so a
// caller can still override any of them with tree.WithPolygonBuilder et
// al.
func NewTree(opts ...tree.TreeOption) *tree.Tree {
	depthBuilder := depth.Builder{}

	base := []tree.TreeOption{
		tree.WithPolygonBuilder(polygon.Builder{}),
		tree.WithCreaseBuilder(crease.Builder{}),
		tree.WithDepthComputer(depthBuilder),
		tree.WithFacetPipeline(depthBuilder),
		tree.WithAssigner(assign.Builder{}),
	}

	return tree.NewTree(append(base, opts...)...)
}
