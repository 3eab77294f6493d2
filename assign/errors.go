package assign

import "errors"

// ErrCycle indicates the facet-ordering DAG built by package depth is
// not in fact acyclic, a bookkeeping bug upstream since BuildOrderingDAG
// is only supposed to hand Order a DAG.
var ErrCycle = errors.New("assign: facet ordering graph has a cycle")
