// ABOUTME: Collector orchestration and the allocation-triggered policy
// ABOUTME: Runs mark then sweep, regrows the threshold and reports statistics

package gc

import "fmt"

// collect runs one full stop-the-world cycle over the current roots
func (m *Manager) collect() Stats {
	before := m.heap.live

	m.work = m.heap.mark(m.roots.refs, m.work)
	m.heap.sweep()

	after := m.heap.live
	if after == 0 {
		m.threshold = m.cfg.BaselineThreshold
	} else {
		m.threshold = after * growthFactor
	}
	m.collections++

	stats := Stats{Collected: before - after, Remaining: after}
	m.log.Debug("Collected garbage", "collected", stats.Collected, "remaining", stats.Remaining,
		"threshold", m.threshold, "roots", m.roots.len(), "cycle", m.collections)
	if m.cfg.OnCollect != nil {
		m.cfg.OnCollect(stats)
	}
	return stats
}

// reserve makes room for one more value. It collects when the live count
// has reached the threshold, or when the heap is full under MaxObjects,
// and fails only if the heap is still full afterwards.
func (m *Manager) reserve() error {
	full := func() bool {
		return m.cfg.MaxObjects > 0 && m.heap.live >= m.cfg.MaxObjects
	}
	if m.heap.live >= m.threshold || full() {
		m.collect()
	}
	if full() {
		return fmt.Errorf("%w: %d of %d values live after collection", ErrOutOfMemory, m.heap.live, m.cfg.MaxObjects)
	}
	return nil
}
