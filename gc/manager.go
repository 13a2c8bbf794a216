// ABOUTME: Manager aggregates the heap, root stack and collector
// ABOUTME: Exposes allocation, root manipulation, collection and teardown

package gc

import (
	"fmt"

	"golang.org/x/exp/slog"
)

// Manager owns one heap and its root stack. It is not safe for concurrent
// use; independent Managers share no state.
type Manager struct {
	cfg   Config
	log   *slog.Logger
	heap  heap
	roots rootStack
	work  []Ref

	threshold   int
	collections int
	released    bool
}

// New creates an empty Manager
func New(cfg Config) *Manager {
	cfg = cfg.withDefaults()
	return &Manager{
		cfg:       cfg,
		log:       cfg.Logger,
		roots:     newRootStack(cfg.StackCapacity),
		threshold: cfg.BaselineThreshold,
	}
}

// AllocateInteger creates an Integer value. The result is not a root until
// the caller pushes it, so any later allocation may reclaim it.
func (m *Manager) AllocateInteger(v int64) (Ref, error) {
	if m.released {
		return Nil, ErrReleased
	}
	if err := m.reserve(); err != nil {
		return Nil, fmt.Errorf("allocate integer: %w", err)
	}
	return m.heap.alloc(Value{Kind: KindInteger, Int: v}), nil
}

// PushInteger allocates an Integer and pushes it as a root
func (m *Manager) PushInteger(v int64) (Ref, error) {
	if m.released {
		return Nil, ErrReleased
	}
	if m.roots.full() {
		return Nil, fmt.Errorf("push integer %d: %w", v, ErrStackOverflow)
	}
	ref, err := m.AllocateInteger(v)
	if err != nil {
		return Nil, err
	}
	return ref, m.roots.push(ref)
}

// AllocatePair pops the tail and then the head from the root stack, builds
// the Pair (head, tail) and pushes it as a root. Both operands stay on the
// stack through any collection the allocation triggers, and the new pair
// is rooted before control returns, so no step leaves a value unrooted.
func (m *Manager) AllocatePair() (Ref, error) {
	if m.released {
		return Nil, ErrReleased
	}
	if n := m.roots.len(); n < 2 {
		return Nil, fmt.Errorf("allocate pair: need 2 roots, have %d: %w", n, ErrStackUnderflow)
	}
	if err := m.reserve(); err != nil {
		return Nil, fmt.Errorf("allocate pair: %w", err)
	}

	tail, _ := m.roots.pop()
	head, _ := m.roots.pop()
	ref := m.heap.alloc(Value{Kind: KindPair, Head: head, Tail: tail})
	if err := m.roots.push(ref); err != nil {
		return Nil, err
	}
	return ref, nil
}

// PushRoot makes ref a root
func (m *Manager) PushRoot(ref Ref) error {
	if m.released {
		return ErrReleased
	}
	if _, ok := m.heap.resolve(ref); !ok {
		return fmt.Errorf("push root %v: %w", ref, ErrStaleRef)
	}
	return m.roots.push(ref)
}

// PopRoot removes and returns the top root
func (m *Manager) PopRoot() (Ref, error) {
	if m.released {
		return Nil, ErrReleased
	}
	return m.roots.pop()
}

// PeekRoot returns the root depth entries below the top without removing it
func (m *Manager) PeekRoot(depth int) (Ref, error) {
	if m.released {
		return Nil, ErrReleased
	}
	return m.roots.peek(depth)
}

// Collect forces a full mark-sweep cycle
func (m *Manager) Collect() Stats {
	if m.released {
		return Stats{}
	}
	return m.collect()
}

// Teardown clears every root, reclaims the whole heap and releases the
// Manager. Every later call fails with ErrReleased.
func (m *Manager) Teardown() Stats {
	if m.released {
		return Stats{}
	}
	m.roots.reset()
	stats := m.collect()
	m.released = true
	m.heap = heap{}
	m.work = nil
	return stats
}

// Lookup returns the value named by ref
func (m *Manager) Lookup(ref Ref) (Value, error) {
	if m.released {
		return Value{}, ErrReleased
	}
	s, ok := m.heap.resolve(ref)
	if !ok {
		return Value{}, fmt.Errorf("lookup %v: %w", ref, ErrStaleRef)
	}
	return s.val, nil
}

// Roots returns a copy of the root stack, bottom first
func (m *Manager) Roots() []Ref {
	return append([]Ref(nil), m.roots.refs...)
}

// Depth returns the number of roots on the stack
func (m *Manager) Depth() int { return m.roots.len() }

// Live returns the number of allocated values
func (m *Manager) Live() int { return m.heap.live }

// Threshold returns the live count at which the next allocation collects
func (m *Manager) Threshold() int { return m.threshold }

// Collections returns how many collection cycles have run
func (m *Manager) Collections() int { return m.collections }

// Released reports whether Teardown has been called
func (m *Manager) Released() bool { return m.released }
