package treemaker_test

import (
	"fmt"
	"math"

	treemaker "github.com/katalvlaran/treemaker"
	"github.com/katalvlaran/treemaker/geom"
	"github.com/katalvlaran/treemaker/tree"
)

// ExampleNewTree builds a three-leg star whose leaf paths are all
// exactly active, lets cleanup derive its polygon network and crease
// pattern, and reports the crease-pattern status.
func ExampleNewTree() {
	tr := treemaker.NewTree(tree.WithPaperSize(10, 10))
	root, _, _ := tr.Bootstrap(1, geom.Vec{X: 5, Y: 4 + 1/math.Sqrt(3)}, geom.Vec{X: 4, Y: 4})
	tr.AddNode(root, 1, geom.Vec{X: 6, Y: 4})
	tr.AddNode(root, 1, geom.Vec{X: 5, Y: 4 + math.Sqrt(3)})

	fmt.Println("full crease pattern:", tr.HasFullCP())
	fmt.Println("facets:", len(tr.FacetHandles()))
	// Output:
	// full crease pattern: true
	// facets: 6
}
