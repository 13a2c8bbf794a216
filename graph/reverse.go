// ABOUTME: Builds reverse edges and reachability for graph traversal
// ABOUTME: Maps objects to their referrers for retention paths

package graph

// ReverseEdges maps each object to the distinct objects that point to it
type ReverseEdges map[ObjID][]ObjID

// BuildReverseEdges creates a map of reverse edges. A pair whose head and
// tail are the same object is recorded once.
func BuildReverseEdges(g Graph) ReverseEdges {
	reverse := make(ReverseEdges)

	g.ForEachObject(func(obj *Object) {
		for i, targetID := range obj.Ptrs {
			if i > 0 && containsID(obj.Ptrs[:i], targetID) {
				continue
			}
			reverse[targetID] = append(reverse[targetID], obj.ID)
		}
	})

	return reverse
}

// Reachable returns the set of objects reachable from the roots
func Reachable(g Graph) map[ObjID]bool {
	seen := make(map[ObjID]bool)
	stack := g.GetRoots().IDs

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		obj := g.GetObject(id)
		if obj == nil {
			continue
		}
		seen[id] = true
		stack = append(stack, obj.Ptrs...)
	}

	return seen
}

func containsID(ids []ObjID, id ObjID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
