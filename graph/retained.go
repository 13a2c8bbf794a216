// ABOUTME: Calculates retained value counts using dominator tree analysis
// ABOUTME: Tells how many values a collection would reclaim if an object lost its last root

package graph

// RetainedCount computes, for each reachable object, the number of values
// that would be reclaimed by the next collection if that object became
// unreachable: the object itself plus everything it dominates.
func RetainedCount(g Graph) map[ObjID]int {
	tree := DominatorTree(Dominators(g))
	retained := make(map[ObjID]int, len(tree))

	var count func(ObjID) int
	count = func(node ObjID) int {
		if n, ok := retained[node]; ok {
			return n
		}
		n := 1
		for _, child := range tree[node] {
			n += count(child)
		}
		retained[node] = n
		return n
	}

	for node := range tree {
		count(node)
	}
	delete(retained, SuperRoot)

	return retained
}
