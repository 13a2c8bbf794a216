// ABOUTME: Snapshot graph interface and its in-memory store
// ABOUTME: Holds the values and root stack copied out of a heap at one instant

package graph

import "sync"

// Graph is a heap snapshot: the live values and the root stack at the
// moment it was taken. Writers are the snapshot builder and dump readers;
// analyses only read.
type Graph interface {
	// AddObject records a value. A value with the same ID is replaced and
	// keeps its original position.
	AddObject(obj *Object)

	// GetObject returns the value with the given ID, or nil
	GetObject(id ObjID) *Object

	NumObjects() int

	// ForEachObject visits values in the order they were added, which for
	// a gc snapshot is heap slot order
	ForEachObject(fn func(*Object))

	SetRoots(roots Roots)

	// GetRoots returns a copy of the root stack, bottom first
	GetRoots() Roots
}

// MemGraph keeps a snapshot in memory. Values sit in a slice in slot
// order with an index by ID. Reads may run concurrently.
type MemGraph struct {
	mu    sync.RWMutex
	slots []*Object
	index map[ObjID]int
	roots []ObjID
}

// NewMemGraph returns an empty snapshot
func NewMemGraph() *MemGraph {
	return &MemGraph{index: make(map[ObjID]int)}
}

func (g *MemGraph) AddObject(obj *Object) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i, ok := g.index[obj.ID]; ok {
		g.slots[i] = obj
		return
	}
	g.index[obj.ID] = len(g.slots)
	g.slots = append(g.slots, obj)
}

func (g *MemGraph) GetObject(id ObjID) *Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.slots[i]
}

func (g *MemGraph) NumObjects() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.slots)
}

// ForEachObject holds the read lock while fn runs, so fn must not add
// values or change roots.
func (g *MemGraph) ForEachObject(fn func(*Object)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, obj := range g.slots {
		fn(obj)
	}
}

// SetRoots copies roots; later changes by the caller are not seen
func (g *MemGraph) SetRoots(roots Roots) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roots = append(g.roots[:0:0], roots.IDs...)
}

func (g *MemGraph) GetRoots() Roots {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Roots{IDs: append([]ObjID(nil), g.roots...)}
}
