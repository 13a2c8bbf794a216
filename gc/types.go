// ABOUTME: Core data types for the managed value space
// ABOUTME: Defines Kind, Ref, Value and the collection Stats

package gc

import "fmt"

// Kind tags the payload carried by a Value
type Kind uint8

const (
	// KindInteger values carry a single scalar
	KindInteger Kind = iota + 1
	// KindPair values reference two other values
	KindPair
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindPair:
		return "pair"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Ref is a stable handle to a value in a Manager's arena. The low 32 bits
// hold the slot index and the high 32 bits the slot generation, so a Ref
// to a reclaimed slot never resolves to the slot's next occupant.
type Ref uint64

// Nil is the zero Ref; it never names a value
const Nil Ref = 0

func makeRef(index, gen uint32) Ref {
	return Ref(uint64(gen)<<32 | uint64(index))
}

func (r Ref) index() uint32 { return uint32(r) }
func (r Ref) gen() uint32   { return uint32(r >> 32) }

// String renders the ref as index@generation
func (r Ref) String() string {
	if r == Nil {
		return "nil"
	}
	return fmt.Sprintf("%d@%d", r.index(), r.gen())
}

// Value is an immutable heap node. Int is meaningful for KindInteger,
// Head and Tail for KindPair. Pair references do not own their targets.
type Value struct {
	Kind Kind
	Int  int64
	Head Ref
	Tail Ref
}

// IsPair reports whether the value is a pair
func (v Value) IsPair() bool { return v.Kind == KindPair }

// Stats reports the outcome of one collection cycle
type Stats struct {
	Collected int // values reclaimed by the sweep
	Remaining int // values alive after the sweep
}

// String matches the line printed by the demonstration driver
func (s Stats) String() string {
	return fmt.Sprintf("Collected Objects: %d, remaining Objects: %d", s.Collected, s.Remaining)
}
