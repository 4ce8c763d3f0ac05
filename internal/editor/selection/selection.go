// Package selection tracks a multi-member node selection and a single
// focused member over an externally supplied ordering.
//
// The selection is backed by an insertion-ordered slice with a membership
// index, not an unordered set, so every "arbitrary member" fallback is
// deterministic: it is always the earliest remaining member in insertion
// order.
//
// A Tracker is mutated synchronously and is not safe for concurrent
// writers; the owning session serializes access.
package selection

// Tracker holds the current selection and focus.
type Tracker struct {
	ids     []string            // insertion order
	members map[string]struct{} // membership index
	focused string              // "" when nothing is focused
}

// NewTracker creates an empty selection tracker.
func NewTracker() *Tracker {
	return &Tracker{
		members: make(map[string]struct{}),
	}
}

// Selected returns the selected ids in insertion order.
// The returned slice is safe to modify without affecting the Tracker.
func (t *Tracker) Selected() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Focused returns the focused id, or empty string when nothing is focused.
func (t *Tracker) Focused() string {
	return t.focused
}

// Contains returns true if the id is a selection member.
func (t *Tracker) Contains(id string) bool {
	_, ok := t.members[id]
	return ok
}

// Len returns the number of selected ids.
func (t *Tracker) Len() int {
	return len(t.ids)
}

// Clear empties the selection and drops focus.
func (t *Tracker) Clear() {
	t.ids = t.ids[:0]
	clear(t.members)
	t.focused = ""
}

// Select updates the selection with a single id.
//
// When additive is false the selection becomes exactly {id}. When additive
// is true the id is toggled: removed if already a member, added otherwise.
// When focus is true the id becomes focused if it is still a member after
// the operation. Whenever the focused id ends up outside the selection,
// focus falls back to the earliest remaining member in insertion order.
func (t *Tracker) Select(id string, additive, focus bool) {
	switch {
	case !additive:
		t.ids = append(t.ids[:0], id)
		clear(t.members)
		t.members[id] = struct{}{}
	case t.Contains(id):
		t.remove(id)
	default:
		t.ids = append(t.ids, id)
		t.members[id] = struct{}{}
	}

	if focus && t.Contains(id) {
		t.focused = id
		return
	}
	t.ensureFocus()
}

// SetSelection replaces the entire selection. Duplicate ids keep their
// first position. When focusLast is true focus moves to the last provided
// id; otherwise the previous focus is preserved if still a member, else
// reassigned to the first provided id.
func (t *Tracker) SetSelection(ids []string, focusLast bool) {
	t.ids = t.ids[:0]
	clear(t.members)
	for _, id := range ids {
		if _, dup := t.members[id]; dup {
			continue
		}
		t.ids = append(t.ids, id)
		t.members[id] = struct{}{}
	}

	switch {
	case len(t.ids) == 0:
		t.focused = ""
	case focusLast:
		t.focused = t.ids[len(t.ids)-1]
	case t.Contains(t.focused):
		// keep
	default:
		t.focused = t.ids[0]
	}
}

// Focus moves focus. A member id changes only the focus. A non-member,
// non-empty id collapses the selection to {id} and focuses it. An empty id
// recomputes focus from the current membership without changing the
// selection.
func (t *Tracker) Focus(id string) {
	switch {
	case id == "":
		t.ensureFocus()
	case t.Contains(id):
		t.focused = id
	default:
		t.Select(id, false, true)
	}
}

// FocusNext navigates focus through an externally supplied total ordering,
// typically the document's pre-order id list. The target replaces the
// selection outright; this is a navigation primitive, not an additive one.
//
// The next index is (current + direction + len) mod len, where current is
// the focused id's position in order, or -1 when unfocused, so direction
// +1 from no focus lands on the first entry. An empty order clears both
// selection and focus.
func (t *Tracker) FocusNext(order []string, direction int) {
	if len(order) == 0 {
		t.Clear()
		return
	}
	current := -1
	for i, id := range order {
		if id == t.focused && t.focused != "" {
			current = i
			break
		}
	}
	n := len(order)
	next := ((current+direction)%n + n) % n
	t.Select(order[next], false, true)
}

// Prune drops every selected id not present in alive, reassigning focus
// deterministically when the focused id is dropped.
func (t *Tracker) Prune(alive map[string]struct{}) {
	kept := t.ids[:0]
	for _, id := range t.ids {
		if _, ok := alive[id]; ok {
			kept = append(kept, id)
		} else {
			delete(t.members, id)
		}
	}
	t.ids = kept
	if !t.Contains(t.focused) {
		t.focused = ""
		t.ensureFocus()
	}
}

// remove deletes id from the selection, preserving insertion order.
func (t *Tracker) remove(id string) {
	for i, existing := range t.ids {
		if existing == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	delete(t.members, id)
}

// ensureFocus reassigns focus to the earliest member in insertion order
// when the current focus is no longer a member.
func (t *Tracker) ensureFocus() {
	if t.Contains(t.focused) {
		return
	}
	if len(t.ids) > 0 {
		t.focused = t.ids[0]
		return
	}
	t.focused = ""
}
