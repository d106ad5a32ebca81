package core

// manualTracker holds series allocated outside GC management (§3.3
// "unmanaged series are tracked on a manuals list and must be freed or
// promoted before evaluation that could recycle"). It is a flat slice
// rather than a set since the manuals list is typically shallow and
// short-lived -- entries are pushed during construction of one value and
// popped once that value is managed or explicitly freed.
type manualTracker struct {
	pending []NodeID
}

func (m *manualTracker) Track(id NodeID) { m.pending = append(m.pending, id) }

// Promote marks id as GC-managed and removes it from the manuals list.
func (m *manualTracker) Promote(arena *nodeArena, id NodeID) {
	arena.SetFlags(id, NodeFlagManaged)
	m.remove(id)
}

// Release frees id immediately without waiting for a GC cycle, used when
// construction fails partway through and the half-built node must not
// leak until the next collection.
func (m *manualTracker) Release(arena *nodeArena, id NodeID) {
	arena.freeNode(id)
	m.remove(id)
}

func (m *manualTracker) remove(id NodeID) {
	for i, v := range m.pending {
		if v == id {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// AssertEmpty panics if any manually-tracked node is still tracked at a
// point where none should (e.g. end of a top-level evaluation), the
// "double-recycle check" debug assertion referenced by §4.4
// "Cancellation": a correctly balanced evaluation leaves nothing
// outstanding on the manuals list.
func (m *manualTracker) AssertEmpty() {
	if len(m.pending) != 0 {
		panic("core: manually-tracked series leaked past evaluation boundary")
	}
}
