package relocator

// visitedSet holds the root-relative names of every directory ensured
// and every file written during one run.
type visitedSet map[string]struct{}

func newVisitedSet() visitedSet {
	return make(visitedSet)
}

func (v visitedSet) has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v visitedSet) add(name string) {
	v[name] = struct{}{}
}
