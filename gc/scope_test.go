// ABOUTME: Tests for temporary root scopes
// ABOUTME: Values built inside a scope survive collections until the scope closes

package gc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeRootsConstructionInProgress(t *testing.T) {
	// Threshold 1 collects before every allocation
	m := New(Config{BaselineThreshold: 1})
	outside, err := m.PushInteger(100)
	require.NoError(t, err)

	s := m.OpenScope()
	a, err := s.Integer(1)
	require.NoError(t, err)
	b, err := s.Integer(2)
	require.NoError(t, err)
	p, err := s.Pair()
	require.NoError(t, err)

	loose, err := m.AllocateInteger(3)
	require.NoError(t, err)
	require.NoError(t, s.Keep(loose))
	q, err := s.Pair()
	require.NoError(t, err)

	for _, ref := range []Ref{a, b, p, loose, q} {
		_, err := m.Lookup(ref)
		assert.NoError(t, err, "value %v reclaimed while its scope was open", ref)
	}
	assert.Equal(t, []Ref{outside, q}, m.Roots())

	s.Close()
	assert.Equal(t, []Ref{outside}, m.Roots())
	assert.Equal(t, Stats{Collected: 5, Remaining: 1}, m.Collect())
}

func TestScopePairNeedsScopedOperands(t *testing.T) {
	m := New(Config{})
	pushInts(t, m, 1)

	s := m.OpenScope()
	defer s.Close()
	_, err := s.Integer(2)
	require.NoError(t, err)

	_, err = s.Pair()
	assert.ErrorIs(t, err, ErrStackUnderflow, "pair must not consume roots below the scope")
	assert.Equal(t, 2, m.Depth())
}

func TestNestedScopes(t *testing.T) {
	m := New(Config{})
	outer := m.OpenScope()
	pushInts(t, m, 1)

	inner := m.OpenScope()
	pushInts(t, m, 2, 3)
	inner.Close()
	assert.Equal(t, 1, m.Depth())

	outer.Close()
	assert.Equal(t, 0, m.Depth())

	// Closing twice is harmless
	outer.Close()
	assert.Equal(t, 0, m.Depth())
}
