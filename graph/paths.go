// ABOUTME: BFS over referrers for finding retention paths from values to roots
// ABOUTME: Answers why a value survives a collection

package graph

// Path is a chain of references from a value up to a root
type Path struct {
	IDs []ObjID // Sequence of object IDs from target to root
}

// Retainers answers retention queries against one graph. Reverse edges
// and the root set are computed once.
type Retainers struct {
	reverse ReverseEdges
	roots   map[ObjID]bool
}

// NewRetainers indexes g for retention queries
func NewRetainers(g Graph) *Retainers {
	r := &Retainers{
		reverse: BuildReverseEdges(g),
		roots:   make(map[ObjID]bool),
	}
	for _, id := range g.GetRoots().IDs {
		r.roots[id] = true
	}
	return r
}

// pathSearchBudget bounds how many partial paths PathsToRoots extends.
// Shared substructure multiplies simple paths at every level.
const pathSearchBudget = 1 << 16

// PathsToRoots finds up to maxPaths simple paths from an object to a root,
// shortest first. The search gives up after pathSearchBudget extensions and
// returns what it has found so far.
func (r *Retainers) PathsToRoots(from ObjID, maxPaths int) []Path {
	if maxPaths <= 0 {
		return nil
	}
	if r.roots[from] {
		return []Path{{IDs: []ObjID{from}}}
	}

	var result []Path
	queue := [][]ObjID{{from}}
	budget := pathSearchBudget

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		last := path[len(path)-1]

		for _, referrer := range r.reverse[last] {
			// Simple paths only
			if containsID(path, referrer) {
				continue
			}
			if budget == 0 {
				return result
			}
			budget--

			next := make([]ObjID, len(path)+1)
			copy(next, path)
			next[len(path)] = referrer

			if !r.roots[referrer] {
				queue = append(queue, next)
				continue
			}
			result = append(result, Path{IDs: next})
			if len(result) >= maxPaths {
				return result
			}
		}
	}

	return result
}

// ShortestPath returns the shortest retention path of an object, or false
// if it is unreachable. Every object is visited at most once.
func (r *Retainers) ShortestPath(from ObjID) (Path, bool) {
	if r.roots[from] {
		return Path{IDs: []ObjID{from}}, true
	}

	// parent points one step back towards from
	parent := map[ObjID]ObjID{from: from}
	queue := []ObjID{from}

	for len(queue) > 0 {
		last := queue[0]
		queue = queue[1:]

		for _, referrer := range r.reverse[last] {
			if _, seen := parent[referrer]; seen {
				continue
			}
			parent[referrer] = last
			if r.roots[referrer] {
				return tracePath(parent, from, referrer), true
			}
			queue = append(queue, referrer)
		}
	}
	return Path{}, false
}

// tracePath rebuilds the target-to-root path found by ShortestPath
func tracePath(parent map[ObjID]ObjID, from, root ObjID) Path {
	var ids []ObjID
	for id := root; id != from; id = parent[id] {
		ids = append(ids, id)
	}
	ids = append(ids, from)
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return Path{IDs: ids}
}

// PathsToRoots finds paths from an object to GC roots using BFS
func PathsToRoots(g Graph, from ObjID, maxPaths int) []Path {
	return NewRetainers(g).PathsToRoots(from, maxPaths)
}
