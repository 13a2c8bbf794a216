// ABOUTME: Mark phase of the collector
// ABOUTME: Depth-first traversal from each root, flagging every reachable value

package gc

// mark flags every value reachable from roots. Roots are visited in stack
// index order and pairs head before tail. A value that is already marked
// is skipped, so shared substructure is visited once and cycles terminate.
// work is a scratch buffer reused across cycles; the grown buffer is
// returned.
func (h *heap) mark(roots []Ref, work []Ref) []Ref {
	for _, root := range roots {
		work = append(work[:0], root)
		for len(work) > 0 {
			r := work[len(work)-1]
			work = work[:len(work)-1]

			s, ok := h.resolve(r)
			if !ok || s.marked {
				continue
			}
			s.marked = true

			if s.val.Kind == KindPair {
				// Tail goes underneath so head is traversed first
				work = append(work, s.val.Tail, s.val.Head)
			}
		}
	}
	return work[:0]
}
