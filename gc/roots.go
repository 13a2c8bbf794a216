// ABOUTME: Bounded LIFO root stack
// ABOUTME: The only source of GC roots for a Manager

package gc

import "fmt"

// rootStack is a capacity-checked LIFO of Refs. Every entry is a root
// while it stays on the stack.
type rootStack struct {
	refs     []Ref
	capacity int
}

func newRootStack(capacity int) rootStack {
	return rootStack{
		refs:     make([]Ref, 0, capacity),
		capacity: capacity,
	}
}

func (s *rootStack) len() int   { return len(s.refs) }
func (s *rootStack) full() bool { return len(s.refs) >= s.capacity }

func (s *rootStack) push(r Ref) error {
	if s.full() {
		return fmt.Errorf("push %v: %w (capacity %d)", r, ErrStackOverflow, s.capacity)
	}
	s.refs = append(s.refs, r)
	return nil
}

func (s *rootStack) pop() (Ref, error) {
	n := len(s.refs)
	if n == 0 {
		return Nil, fmt.Errorf("pop: %w", ErrStackUnderflow)
	}
	r := s.refs[n-1]
	s.refs = s.refs[:n-1]
	return r, nil
}

// peek returns the entry depth positions below the top
func (s *rootStack) peek(depth int) (Ref, error) {
	if depth < 0 || depth >= len(s.refs) {
		return Nil, fmt.Errorf("peek %d of %d: %w", depth, len(s.refs), ErrStackUnderflow)
	}
	return s.refs[len(s.refs)-1-depth], nil
}

// truncate drops every entry above height n
func (s *rootStack) truncate(n int) {
	if n < len(s.refs) {
		s.refs = s.refs[:n]
	}
}

func (s *rootStack) reset() { s.refs = s.refs[:0] }
