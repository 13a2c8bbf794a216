// ABOUTME: Core data types for heap snapshot graphs
// ABOUTME: Defines Object, ObjID, and Roots structures

package graph

// ObjID is a unique identifier for a value in a snapshot. Zero is reserved
// for the synthetic super-root used by dominator analysis.
type ObjID uint64

// Kind names used by snapshots taken from a gc.Manager
const (
	KindInt  = "int"
	KindPair = "pair"
)

// Object is one value in a snapshot
type Object struct {
	ID   ObjID   // Unique identifier
	Kind string  // KindInt or KindPair
	Int  int64   // Scalar payload of an int
	Ptrs []ObjID // Head then tail for a pair, empty for an int
}

// Roots is the root stack at snapshot time, bottom first. The same ID may
// appear more than once.
type Roots struct {
	IDs []ObjID
}
