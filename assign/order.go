package assign

import "github.com/katalvlaran/treemaker/tree"

// Order runs Kahn's algorithm over every live facet's Head/Tail edges,
// numbering each facet with its position in a valid topological order
// (0 = the DAG's source). Returns ErrCycle if the graph package depth
// built is not in fact acyclic.
func Order(t *tree.Tree) error {
	handles := t.FacetHandles()
	indeg := make(map[tree.Handle]int, len(handles))
	for _, fh := range handles {
		f, ok := t.Facet(fh)
		if !ok {
			continue
		}
		indeg[fh] = len(f.Tail)
	}

	queue := make([]tree.Handle, 0, len(handles))
	for _, fh := range handles {
		if indeg[fh] == 0 {
			queue = append(queue, fh)
		}
	}

	order, visited := 0, 0
	for len(queue) > 0 {
		fh := queue[0]
		queue = queue[1:]
		f, ok := t.Facet(fh)
		if !ok {
			continue
		}
		f.Order = order
		order++
		visited++
		for _, nh := range f.Head {
			indeg[nh]--
			if indeg[nh] == 0 {
				queue = append(queue, nh)
			}
		}
	}

	if visited != len(handles) {
		return ErrCycle
	}

	return nil
}
