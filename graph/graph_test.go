// ABOUTME: Tests for the graph data structures and interfaces
// ABOUTME: Validates object storage, ordering, roots and reachability

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integer(id ObjID, v int64) *Object {
	return &Object{ID: id, Kind: KindInt, Int: v}
}

func pair(id, head, tail ObjID) *Object {
	return &Object{ID: id, Kind: KindPair, Ptrs: []ObjID{head, tail}}
}

// buildGraph adds objects in order and sets roots
func buildGraph(roots []ObjID, objs ...*Object) *MemGraph {
	g := NewMemGraph()
	for _, obj := range objs {
		g.AddObject(obj)
	}
	g.SetRoots(Roots{IDs: roots})
	return g
}

func TestGraphInterface(t *testing.T) {
	g := buildGraph([]ObjID{3}, integer(1, 10), integer(2, 20), pair(3, 1, 2))

	retrieved := g.GetObject(3)
	require.NotNil(t, retrieved, "Expected to retrieve object 3")
	assert.Equal(t, KindPair, retrieved.Kind)
	assert.Equal(t, []ObjID{1, 2}, retrieved.Ptrs)

	assert.Equal(t, 3, g.NumObjects())
	assert.Equal(t, []ObjID{3}, g.GetRoots().IDs)
}

func TestForEachObjectInsertionOrder(t *testing.T) {
	g := buildGraph(nil, integer(7, 0), integer(2, 0), integer(5, 0))

	var order []ObjID
	g.ForEachObject(func(obj *Object) {
		order = append(order, obj.ID)
	})
	assert.Equal(t, []ObjID{7, 2, 5}, order)
}

func TestIDUniqueness(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(integer(1, 1))
	g.AddObject(integer(3, 3))
	g.AddObject(integer(1, 2)) // Should replace the first one in place

	assert.Equal(t, 2, g.NumObjects(), "Expected 2 objects after duplicate ID")
	assert.Equal(t, int64(2), g.GetObject(1).Int, "Expected duplicate to replace first")

	var order []ObjID
	g.ForEachObject(func(obj *Object) { order = append(order, obj.ID) })
	assert.Equal(t, []ObjID{1, 3}, order)
}

func TestRootsAreCopied(t *testing.T) {
	ids := []ObjID{1, 2}
	g := buildGraph(ids, integer(1, 1), integer(2, 2))
	ids[0] = 9

	roots := g.GetRoots()
	assert.Equal(t, []ObjID{1, 2}, roots.IDs)
	roots.IDs[1] = 9
	assert.Equal(t, []ObjID{1, 2}, g.GetRoots().IDs)
}

func TestNilObjectHandling(t *testing.T) {
	g := NewMemGraph()
	assert.Nil(t, g.GetObject(999), "Expected nil for non-existent object")
	assert.Equal(t, 0, g.NumObjects())
}

func TestReachable(t *testing.T) {
	// 5 = ((1, 2), 4) is rooted, 6 = (4, 4) is garbage
	g := buildGraph([]ObjID{5},
		integer(1, 1), integer(2, 2), pair(3, 1, 2), integer(4, 3), pair(5, 3, 4), pair(6, 4, 4))

	reach := Reachable(g)
	assert.Equal(t, map[ObjID]bool{1: true, 2: true, 3: true, 4: true, 5: true}, reach)
}

func TestReverseEdgesDeduplicateSamePair(t *testing.T) {
	g := buildGraph([]ObjID{2}, integer(1, 1), pair(2, 1, 1), pair(3, 1, 2))

	reverse := BuildReverseEdges(g)
	assert.Equal(t, []ObjID{2, 3}, reverse[1])
	assert.Equal(t, []ObjID{3}, reverse[2])
}
