// ABOUTME: Detached snapshots of a Manager's heap
// ABOUTME: Exports live values and roots as a graph for retention analysis and dumps

package gc

import "github.com/prateek/marksweep/graph"

// Snapshot copies every live value and the root stack into a graph. Object
// IDs are the values' Refs, so IDs from a snapshot can be passed back to
// Lookup while the values are still live.
func (m *Manager) Snapshot() *graph.MemGraph {
	g := graph.NewMemGraph()
	m.heap.forEach(func(ref Ref, v Value) {
		obj := &graph.Object{ID: graph.ObjID(ref)}
		switch v.Kind {
		case KindInteger:
			obj.Kind = graph.KindInt
			obj.Int = v.Int
		case KindPair:
			obj.Kind = graph.KindPair
			obj.Ptrs = []graph.ObjID{graph.ObjID(v.Head), graph.ObjID(v.Tail)}
		}
		g.AddObject(obj)
	})

	roots := make([]graph.ObjID, 0, m.roots.len())
	for _, ref := range m.roots.refs {
		roots = append(roots, graph.ObjID(ref))
	}
	g.SetRoots(graph.Roots{IDs: roots})
	return g
}
