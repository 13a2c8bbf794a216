// ABOUTME: Temporary root scopes for values under construction
// ABOUTME: A scope roots what is pushed through it and unwinds the stack on Close

package gc

import "fmt"

// Scope roots values while a caller builds a structure from several
// allocations. Everything pushed after OpenScope stays a root until Close
// truncates the root stack back to its height at open time. Scopes nest
// in LIFO order.
type Scope struct {
	m    *Manager
	base int
}

// OpenScope records the current root stack height
func (m *Manager) OpenScope() *Scope {
	return &Scope{m: m, base: m.roots.len()}
}

// Integer allocates an Integer rooted for the life of the scope
func (s *Scope) Integer(v int64) (Ref, error) {
	return s.m.PushInteger(v)
}

// Keep roots ref for the life of the scope
func (s *Scope) Keep(ref Ref) error {
	return s.m.PushRoot(ref)
}

// Pair builds a Pair from the two most recently kept values, leaving the
// pair rooted in their place
func (s *Scope) Pair() (Ref, error) {
	if n := s.m.roots.len() - s.base; n < 2 {
		return Nil, fmt.Errorf("scope pair: need 2 scoped roots, have %d: %w", n, ErrStackUnderflow)
	}
	return s.m.AllocatePair()
}

// Close drops every root pushed since the scope was opened
func (s *Scope) Close() {
	s.m.roots.truncate(s.base)
}
