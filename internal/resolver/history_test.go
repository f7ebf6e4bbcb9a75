package resolver

import "testing"

func TestHistory(t *testing.T) {
	initial := &State{Action: ActionStart}
	h := NewHistory(initial)
	if h.Pop() {
		t.Fatal("Pop() on a fresh history = true")
	}

	a := initial.next(ActionMarkRow)
	b := a.next(ActionSelectProblem)
	h.Push(a)
	h.Push(b)
	if h.Len() != 3 || h.Current() != b {
		t.Fatalf("Len() = %d, current = %v", h.Len(), h.Current().Action)
	}

	if !h.Pop() || h.Current() != a {
		t.Fatal("Pop() did not restore the previous snapshot")
	}
	if !h.Pop() || h.Current() != initial {
		t.Fatal("Pop() did not restore the initial snapshot")
	}
	if h.Pop() || h.Current() != initial || h.Len() != 1 {
		t.Fatal("the initial snapshot must never be removed")
	}
}

func TestHistoryInitial(t *testing.T) {
	initial := &State{Action: ActionStart}
	h := NewHistory(initial)
	h.Push(initial.next(ActionMarkRow))
	if h.Initial() != initial {
		t.Fatal("Initial() did not return the first snapshot")
	}
}
