// Package history provides bounded undo/redo over immutable document
// snapshots. Because documents structurally share unchanged subtrees,
// snapshots cost one pointer each, not a deep copy.
package history

import "github.com/dshills/scenestorm/internal/scene"

// DefaultLimit is the undo depth used when no limit is configured.
const DefaultLimit = 100

// Stack holds past and future document snapshots.
type Stack struct {
	past   []*scene.Document
	future []*scene.Document
	limit  int
}

// NewStack creates a history stack. A non-positive limit uses DefaultLimit.
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

// Push records the document state preceding a mutation and clears the redo
// branch. The oldest snapshot is dropped once the limit is reached.
func (s *Stack) Push(doc *scene.Document) {
	if len(s.past) >= s.limit {
		copy(s.past, s.past[1:])
		s.past = s.past[:len(s.past)-1]
	}
	s.past = append(s.past, doc)
	s.future = s.future[:0]
}

// Undo exchanges the current document for the most recent snapshot.
// Returns nil and false when there is nothing to undo.
func (s *Stack) Undo(current *scene.Document) (*scene.Document, bool) {
	if len(s.past) == 0 {
		return nil, false
	}
	prev := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append(s.future, current)
	return prev, true
}

// Redo exchanges the current document for the most recently undone state.
// Returns nil and false when there is nothing to redo.
func (s *Stack) Redo(current *scene.Document) (*scene.Document, bool) {
	if len(s.future) == 0 {
		return nil, false
	}
	next := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.past = append(s.past, current)
	return next, true
}

// CanUndo reports whether an undo snapshot exists.
func (s *Stack) CanUndo() bool { return len(s.past) > 0 }

// CanRedo reports whether a redo snapshot exists.
func (s *Stack) CanRedo() bool { return len(s.future) > 0 }

// Len returns the number of undo snapshots.
func (s *Stack) Len() int { return len(s.past) }

// Clear drops all snapshots, e.g. after importing a new document.
func (s *Stack) Clear() {
	s.past = s.past[:0]
	s.future = s.future[:0]
}
