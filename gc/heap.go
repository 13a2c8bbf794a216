// ABOUTME: Arena storage for managed values
// ABOUTME: Slots are addressed by index and generation and reused through a free list

package gc

// slot is one arena cell. marked is only ever true between a mark phase
// and the sweep that follows it.
type slot struct {
	val    Value
	gen    uint32
	live   bool
	marked bool
}

// heap owns every allocated value of one Manager
type heap struct {
	slots []slot
	free  []uint32 // indices of reclaimed slots, reused LIFO
	live  int
}

// alloc stores v in a free slot and returns its Ref. The new value starts
// unmarked.
func (h *heap) alloc(v Value) Ref {
	var idx uint32
	if n := len(h.free); n > 0 {
		idx = h.free[n-1]
		h.free = h.free[:n-1]
	} else {
		h.slots = append(h.slots, slot{gen: 1})
		idx = uint32(len(h.slots) - 1)
	}

	s := &h.slots[idx]
	s.val = v
	s.live = true
	s.marked = false
	h.live++
	return makeRef(idx, s.gen)
}

// resolve returns the slot named by r, or false if r is stale
func (h *heap) resolve(r Ref) (*slot, bool) {
	if r == Nil {
		return nil, false
	}
	idx := r.index()
	if int(idx) >= len(h.slots) {
		return nil, false
	}
	s := &h.slots[idx]
	if !s.live || s.gen != r.gen() {
		return nil, false
	}
	return s, true
}

// release frees the slot at idx. The generation bump invalidates every
// outstanding Ref to it.
func (h *heap) release(idx uint32) {
	s := &h.slots[idx]
	s.val = Value{}
	s.live = false
	s.marked = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	h.free = append(h.free, idx)
	h.live--
}

// forEach calls fn for every live value in slot order
func (h *heap) forEach(fn func(Ref, Value)) {
	for i := range h.slots {
		s := &h.slots[i]
		if s.live {
			fn(makeRef(uint32(i), s.gen), s.val)
		}
	}
}
