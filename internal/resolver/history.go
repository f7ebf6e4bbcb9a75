package resolver

// History is the append-only list of committed snapshots of a session. The
// last element is the current state; the first one is never removed.
type History struct {
	snapshots []*State
}

func NewHistory(initial *State) *History {
	return &History{snapshots: []*State{initial}}
}

func (h *History) Current() *State {
	return h.snapshots[len(h.snapshots)-1]
}

// Initial returns the snapshot the history was created with.
func (h *History) Initial() *State {
	return h.snapshots[0]
}

func (h *History) Push(s *State) {
	h.snapshots = append(h.snapshots, s)
}

// Pop discards the current snapshot. It reports false, leaving the history
// untouched, when only the initial snapshot is left.
func (h *History) Pop() bool {
	if len(h.snapshots) <= 1 {
		return false
	}
	h.snapshots[len(h.snapshots)-1] = nil
	h.snapshots = h.snapshots[:len(h.snapshots)-1]
	return true
}

// Len returns the number of snapshots, including the initial one.
func (h *History) Len() int {
	return len(h.snapshots)
}
