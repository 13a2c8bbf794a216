// ABOUTME: Computes immediate dominators of a heap snapshot graph
// ABOUTME: Iterative Cooper-Harvey-Kennedy data-flow algorithm over reverse postorder

package graph

// SuperRoot is the synthetic node that points at every root
const SuperRoot ObjID = 0

// Dominators computes the immediate dominator for each reachable object.
// Roots are dominated by SuperRoot. Unreachable objects are absent from the
// result.
func Dominators(g Graph) map[ObjID]ObjID {
	succ := successors(g)
	post := postorder(succ)

	// Postorder number of every reachable node; SuperRoot is numbered last
	num := make(map[ObjID]int, len(post))
	for i, id := range post {
		num[id] = i
	}

	preds := make(map[ObjID][]ObjID, len(post))
	for _, v := range post {
		for _, w := range succ[v] {
			preds[w] = append(preds[w], v)
		}
	}

	idom := map[ObjID]ObjID{SuperRoot: SuperRoot}
	intersect := func(a, b ObjID) ObjID {
		for a != b {
			for num[a] < num[b] {
				a = idom[a]
			}
			for num[b] < num[a] {
				b = idom[b]
			}
		}
		return a
	}

	for changed := true; changed; {
		changed = false
		// Reverse postorder, skipping SuperRoot
		for i := len(post) - 2; i >= 0; i-- {
			w := post[i]
			var newIdom ObjID
			found := false
			for _, p := range preds[w] {
				if _, ok := idom[p]; !ok {
					continue
				}
				if !found {
					newIdom, found = p, true
					continue
				}
				newIdom = intersect(p, newIdom)
			}
			if cur, ok := idom[w]; found && (!ok || cur != newIdom) {
				idom[w] = newIdom
				changed = true
			}
		}
	}

	delete(idom, SuperRoot)
	return idom
}

// successors builds forward edges restricted to objects present in g, with
// SuperRoot pointing at every distinct root
func successors(g Graph) map[ObjID][]ObjID {
	succ := make(map[ObjID][]ObjID)
	for _, id := range g.GetRoots().IDs {
		if g.GetObject(id) != nil && !containsID(succ[SuperRoot], id) {
			succ[SuperRoot] = append(succ[SuperRoot], id)
		}
	}
	g.ForEachObject(func(obj *Object) {
		for _, p := range obj.Ptrs {
			if g.GetObject(p) != nil && !containsID(succ[obj.ID], p) {
				succ[obj.ID] = append(succ[obj.ID], p)
			}
		}
	})
	return succ
}

// postorder returns the nodes reachable from SuperRoot in DFS postorder
func postorder(succ map[ObjID][]ObjID) []ObjID {
	type frame struct {
		id   ObjID
		next int
	}

	var post []ObjID
	visited := map[ObjID]bool{SuperRoot: true}
	stack := []frame{{id: SuperRoot}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(succ[top.id]) {
			w := succ[top.id][top.next]
			top.next++
			if !visited[w] {
				visited[w] = true
				stack = append(stack, frame{id: w})
			}
			continue
		}
		post = append(post, top.id)
		stack = stack[:len(stack)-1]
	}

	return post
}

// DominatorTree builds a tree structure from immediate dominators.
// Returns a map from each node to its list of immediately dominated nodes.
func DominatorTree(idom map[ObjID]ObjID) map[ObjID][]ObjID {
	tree := make(map[ObjID][]ObjID)
	tree[SuperRoot] = []ObjID{}

	for node, dom := range idom {
		if _, ok := tree[node]; !ok {
			tree[node] = []ObjID{}
		}
		tree[dom] = append(tree[dom], node)
	}

	return tree
}

// IsDominated returns true if node is dominated by dominator
func IsDominated(idom map[ObjID]ObjID, node, dominator ObjID) bool {
	if node == dominator || dominator == SuperRoot {
		return true
	}
	for {
		dom, exists := idom[node]
		if !exists || dom == SuperRoot {
			return false
		}
		if dom == dominator {
			return true
		}
		node = dom
	}
}
