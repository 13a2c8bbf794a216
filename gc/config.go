// ABOUTME: Configuration for a Manager instance
// ABOUTME: Holds root stack capacity, threshold baseline, heap limit and hooks

package gc

import "golang.org/x/exp/slog"

const (
	// DefaultStackCapacity is the root stack capacity used when none is set
	DefaultStackCapacity = 100

	// DefaultBaselineThreshold is the live count that triggers the first
	// collection, and the threshold restored after a collection empties the heap
	DefaultBaselineThreshold = 10

	// growthFactor scales the surviving live count into the next threshold
	growthFactor = 2
)

// Config tunes a Manager. The zero value is usable.
type Config struct {
	// StackCapacity bounds the number of roots; <= 0 means DefaultStackCapacity
	StackCapacity int

	// BaselineThreshold is the initial collection threshold; <= 0 means
	// DefaultBaselineThreshold
	BaselineThreshold int

	// MaxObjects caps the live count; 0 means unbounded
	MaxObjects int

	// Logger receives a debug record per collection; nil uses slog.Default()
	Logger *slog.Logger

	// OnCollect, if set, is called after every completed collection
	OnCollect func(Stats)
}

func (c Config) withDefaults() Config {
	if c.StackCapacity <= 0 {
		c.StackCapacity = DefaultStackCapacity
	}
	if c.BaselineThreshold <= 0 {
		c.BaselineThreshold = DefaultBaselineThreshold
	}
	if c.MaxObjects < 0 {
		c.MaxObjects = 0
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
