// ABOUTME: Sweep phase of the collector
// ABOUTME: One linear pass over the arena reclaiming every unmarked value

package gc

// sweep frees every live, unmarked slot and clears the mark on the rest.
// It must only run after a complete mark over the current roots. Returns
// the number of values reclaimed.
func (h *heap) sweep() int {
	freed := 0
	for i := range h.slots {
		s := &h.slots[i]
		if !s.live {
			continue
		}
		if !s.marked {
			h.release(uint32(i))
			freed++
			continue
		}
		s.marked = false
	}
	return freed
}
