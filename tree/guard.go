package tree

// beginEdit opens the scoped cleanup guard: the first
// (outermost) call records the tree as dirty and returns an end func
// that runs CleanupAfterEdit; nested calls, made from within another
// mutator, return a no-op end func. Every public mutator's first
// statement is `defer beginEdit(t)()`.
func beginEdit(t *Tree) func() {
	if t.dirty {
		return func() {}
	}
	t.dirty = true

	return func() {
		t.dirty = false
		t.CleanupAfterEdit()
	}
}
