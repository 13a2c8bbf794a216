// ABOUTME: Error values returned by the memory manager
// ABOUTME: Contract violations are surfaced as sentinel errors for errors.Is

package gc

import "errors"

var (
	// ErrStackOverflow is returned when pushing onto a full root stack
	ErrStackOverflow = errors.New("gc: root stack overflow")

	// ErrStackUnderflow is returned when popping, or building a pair,
	// with fewer roots than required
	ErrStackUnderflow = errors.New("gc: root stack underflow")

	// ErrOutOfMemory is returned when an allocation would exceed MaxObjects
	// even after a full collection
	ErrOutOfMemory = errors.New("gc: out of memory")

	// ErrStaleRef is returned for a Ref that does not name a live value
	ErrStaleRef = errors.New("gc: stale or invalid reference")

	// ErrReleased is returned by every operation after Teardown
	ErrReleased = errors.New("gc: manager released")
)
