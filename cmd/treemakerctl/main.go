// Command treemakerctl is TreeMaker's test-mode CLI: the minimal
// operational surface for batch optimization and regression testing, a
// stand-in for the GUI this specification puts out of scope.
//
// It loads a tree from the file path given as its sole argument, runs
// the scale, edge, and strain optimizers in sequence, and logs one line
// per stage: return code, final scale/strain, fn.Profile call counts
// (when built with `-tags tmprofile`), and wall-clock duration. Exit
// code is 0 iff every stage converged.
package main

import (
	"log"
	"os"
	"time"

	treemaker "github.com/katalvlaran/treemaker"
	"github.com/katalvlaran/treemaker/fn"
	"github.com/katalvlaran/treemaker/format"
	"github.com/katalvlaran/treemaker/nlco"
	"github.com/katalvlaran/treemaker/optimize"
	"github.com/katalvlaran/treemaker/tree"
)

func main() {
	log.SetFlags(log.Lmicroseconds)

	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <tree-file>", os.Args[0])
	}
	path := os.Args[1]

	if !run(path) {
		os.Exit(1)
	}
}

// run loads the tree at path and runs scale, edge, and strain
// optimization in sequence, logging each stage's outcome. It returns
// true iff every stage converged.
func run(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("%s: open: %v", path, err)

		return false
	}
	defer f.Close()

	tr, loadErr := format.Load(f, treemaker.NewTree)
	if tr == nil {
		log.Printf("%s: load: %v", path, loadErr)

		return false
	}
	if loadErr != nil {
		// format.Load can return a usable tree alongside
		// IoUnrecognizedCondition(count) -- keep going, but say so.
		log.Printf("%s: load: %v (continuing)", path, loadErr)
	}

	converged := true
	converged = runStage(path, "scale", func(opts ...nlco.Option) (nlco.Result, float64, error) {
		o := optimize.NewScaleOptimizer(tr)
		if err := o.Initialise(); err != nil {
			return nlco.Result{}, 0, err
		}
		res, err := o.Optimize(opts...)

		return res, tr.Scale, err
	}) && converged

	converged = runStage(path, "edge", func(opts ...nlco.Option) (nlco.Result, float64, error) {
		o := optimize.NewEdgeOptimizer(tr)
		if err := o.Initialise(); err != nil {
			return nlco.Result{}, 0, err
		}
		res, err := o.Optimize(opts...)

		return res, meanEdgeStrain(tr), err
	}) && converged

	converged = runStage(path, "strain", func(opts ...nlco.Option) (nlco.Result, float64, error) {
		o := optimize.NewStrainOptimizer(tr)
		if err := o.Initialise(); err != nil {
			return nlco.Result{}, 0, err
		}
		res, err := o.Optimize(opts...)

		return res, meanEdgeStrain(tr), err
	}) && converged

	return converged
}

// runStage times and runs one optimization stage, logging its outcome:
// file name, return code, final scale/strain, fn.Profile call
// counts, wall-clock duration. It returns true iff the stage converged.
func runStage(path, name string, stage func(opts ...nlco.Option) (nlco.Result, float64, error)) bool {
	fn.ResetProfile()
	start := time.Now()
	res, final, err := stage()
	elapsed := time.Since(start)

	valueCalls := fn.Profile.ValueCalls.Load()
	gradCalls := fn.Profile.GradCalls.Load()

	if err != nil {
		log.Printf("%s: %-6s FAILED rc=%v final=%.6f calls(value=%d,grad=%d) elapsed=%s",
			path, name, err, final, valueCalls, gradCalls, elapsed)

		return false
	}

	log.Printf("%s: %-6s ok rc=0 final=%.6f calls(value=%d,grad=%d) elapsed=%s",
		path, name, final, valueCalls, gradCalls, elapsed)

	return res.Converged
}

// meanEdgeStrain returns the mean strain across every movable (non-
// pinned) edge, the figure the edge/strain stages report as their
// "final strain".
func meanEdgeStrain(t *tree.Tree) float64 {
	var sum float64
	var n int
	for _, h := range t.Edges() {
		e, ok := t.Edge(h)
		if !ok || e.Pinned {
			continue
		}
		sum += e.Strain
		n++
	}
	if n == 0 {
		return 0
	}

	return sum / float64(n)
}
