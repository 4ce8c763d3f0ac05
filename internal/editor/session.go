// Package editor provides the editing session over a world document: it
// owns the current document, the selection tracker, the mode manager, and
// the undo history, and wires every mutation through them.
package editor

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/scenestorm/internal/editor/history"
	"github.com/dshills/scenestorm/internal/editor/mode"
	"github.com/dshills/scenestorm/internal/editor/selection"
	"github.com/dshills/scenestorm/internal/scene"
	"github.com/dshills/scenestorm/internal/scene/tree"
	"github.com/dshills/scenestorm/internal/scene/wire"
)

// Session is the composition root for document editing. All mutation entry
// points are serialized through a single mutex, including any wait on an
// injected autosave or confirmation policy, so a second mutation can never
// observe stale mode or dirty state.
//
// Mode subscribers are notified synchronously while a mutation is in
// flight and must not issue session mutations from the callback.
type Session struct {
	mu sync.Mutex

	doc    *scene.Document
	sel    *selection.Tracker
	modes  *mode.Manager
	hist   *history.Stack
	log    *Logger
	closed bool
}

// Options configures a session. Every field is optional.
type Options struct {
	// Document is the starting document. Nil uses the built-in default.
	// Callers hand-building a document are responsible for validating it.
	Document *scene.Document

	// InitialMode is the starting mode. Defaults to edit.
	InitialMode mode.Mode

	// ModeContexts builds the per-mode lifecycle contexts.
	ModeContexts mode.Factory

	// Autosave and Confirm form the unsaved-changes gate policy. Autosave
	// receives the already-exported document; it must not call back into
	// the session, whose mutation lock is held for the whole switch.
	Autosave func(ctx context.Context, res *ExportResult) error
	Confirm  func(ctx context.Context, from, to mode.Mode) (bool, error)

	// HistoryLimit bounds the undo stack depth.
	HistoryLimit int

	// Logger receives session diagnostics. Nil uses the default config.
	Logger *Logger
}

// ExportResult is the outcome of a successful export.
type ExportResult struct {
	// Data is the versioned wire text.
	Data []byte

	// Fingerprint is a non-cryptographic, order-dependent hash of Data,
	// for user-facing change confirmation only, not integrity.
	Fingerprint uint64
}

// New creates a session over the given (or default) document.
func New(opts Options) *Session {
	doc := opts.Document
	if doc == nil {
		doc = scene.DefaultDocument()
	}
	log := opts.Logger
	if log == nil {
		log = NewLogger(DefaultLoggerConfig())
	}
	s := &Session{
		doc:  doc,
		sel:  selection.NewTracker(),
		hist: history.NewStack(opts.HistoryLimit),
		log:  log.WithComponent("session"),
	}
	policy := mode.Policy{Confirm: opts.Confirm}
	if opts.Autosave != nil {
		save := opts.Autosave
		// The gate runs under the session lock, so the document is read
		// directly and handed to the policy pre-exported.
		policy.Autosave = func(ctx context.Context) error {
			data, err := wire.Marshal(s.doc)
			if err != nil {
				return err
			}
			return save(ctx, &ExportResult{Data: data, Fingerprint: fingerprint(data)})
		}
	}
	s.modes = mode.NewManager(opts.InitialMode, opts.ModeContexts, policy)
	return s
}

// fingerprint hashes wire text for user-facing change confirmation.
func fingerprint(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}

// Document returns the current document. The returned value must be
// treated as immutable; edits go through UpdateNode and friends.
func (s *Session) Document() *scene.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// UpdateNode applies fn to the node with the given id and replaces the
// owned document with the structure-sharing result. The updater must not
// mutate its argument; it returns a modified clone, or nil (or the
// argument) to decline. Returns false, without touching dirty state or
// history, when no node matched or the updater declined.
func (s *Session) UpdateNode(id string, fn func(*scene.Node) *scene.Node) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	nodes, changed := tree.UpdateByID(s.doc.Nodes, id, fn)
	if !changed {
		return false
	}
	s.hist.Push(s.doc)
	s.doc = s.doc.WithNodes(nodes)
	s.modes.MarkDirty()
	s.log.Debug("updated node %s", id)
	return true
}

// AddNode inserts a node under the parent with the given id (empty
// parentID adds a forest root) and returns the node's id, generating one
// when the node has none.
func (s *Session) AddNode(parentID string, n *scene.Node) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}

	added := n.Clone()
	if added.ID == "" {
		added.ID = uuid.New().String()
	}
	if tree.FindByID(s.doc.Nodes, added.ID) != nil {
		return "", NewOperationError("add-node", added.ID, ErrDuplicateNodeID)
	}

	nodes, ok := tree.Insert(s.doc.Nodes, parentID, added)
	if !ok {
		return "", NewOperationError("add-node", parentID, ErrParentNotFound)
	}
	s.hist.Push(s.doc)
	s.doc = s.doc.WithNodes(nodes)
	s.modes.MarkDirty()
	s.log.Debug("added node %s under %q", added.ID, parentID)
	return added.ID, nil
}

// RemoveNode deletes the node with the given id and its subtree, pruning
// the selection of removed members. Returns false when no node matched.
func (s *Session) RemoveNode(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	nodes, changed := tree.Remove(s.doc.Nodes, id)
	if !changed {
		return false
	}
	s.hist.Push(s.doc)
	s.doc = s.doc.WithNodes(nodes)
	s.modes.MarkDirty()
	s.pruneSelectionLocked()
	s.log.Debug("removed node %s", id)
	return true
}

// Select updates the selection with a single id. See selection.Tracker.
func (s *Session) Select(id string, additive, focus bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Select(id, additive, focus)
}

// SetSelection replaces the entire selection.
func (s *Session) SetSelection(ids []string, focusLast bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.SetSelection(ids, focusLast)
}

// Focus moves focus. See selection.Tracker.
func (s *Session) Focus(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Focus(id)
}

// FocusNext cycles focus through the document's pre-order node ordering.
func (s *Session) FocusNext(direction int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.FocusNext(tree.FlattenIDs(s.doc.Nodes), direction)
}

// Selected returns the selected ids in insertion order.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Selected()
}

// Focused returns the focused id, or empty string.
func (s *Session) Focused() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Focused()
}

// SwitchMode transitions between edit and play, running the
// unsaved-changes gate. Returns true only for a committed transition.
func (s *Session) SwitchMode(ctx context.Context, target mode.Mode) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	ok, err := s.modes.Switch(ctx, target)
	if err != nil {
		s.log.Error("mode switch to %s failed: %v", target, err)
	}
	return ok, err
}

// Mode returns the current mode.
func (s *Session) Mode() mode.Mode {
	return s.modes.Current()
}

// SubscribeMode registers a mode listener, invoked immediately and on
// every committed transition. Returns an unsubscribe handle.
func (s *Session) SubscribeMode(l mode.Listener) func() {
	return s.modes.Subscribe(l)
}

// IsDirty reports uncommitted edits relative to the last import/export.
func (s *Session) IsDirty() bool {
	return s.modes.IsDirty()
}

// Import replaces the document wholesale from wire text, resets the
// selection to the first root node, clears the dirty flag, and drops undo
// history. Serializer errors are surfaced to the caller, not swallowed.
func (s *Session) Import(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	doc, err := wire.Unmarshal(data)
	if err != nil {
		s.log.Error("import failed: %v", err)
		return NewOperationError("import", "", err)
	}

	s.doc = doc
	s.hist.Clear()
	if len(doc.Nodes) > 0 && doc.Nodes[0] != nil {
		s.sel.SetSelection([]string{doc.Nodes[0].ID}, true)
	} else {
		s.sel.Clear()
	}
	s.modes.ClearDirty()
	s.log.Info("imported document with %d root nodes", len(doc.Nodes))
	return nil
}

// Export serializes the current document and returns the wire text with
// its content fingerprint. The document is validated on the way out.
func (s *Session) Export() (*ExportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	data, err := wire.Marshal(s.doc)
	if err != nil {
		s.log.Error("export failed: %v", err)
		return nil, NewOperationError("export", "", err)
	}

	return &ExportResult{Data: data, Fingerprint: fingerprint(data)}, nil
}

// Undo restores the document state preceding the last mutation. Returns
// false when there is nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	doc, ok := s.hist.Undo(s.doc)
	if !ok {
		return false
	}
	s.doc = doc
	s.modes.MarkDirty()
	s.pruneSelectionLocked()
	return true
}

// Redo restores the most recently undone document state. Returns false
// when there is nothing to redo.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	doc, ok := s.hist.Redo(s.doc)
	if !ok {
		return false
	}
	s.doc = doc
	s.modes.MarkDirty()
	s.pruneSelectionLocked()
	return true
}

// RenderState is the read-only snapshot consumed by the out-of-scope
// renderer collaborator. The renderer applies its own identity defaults
// for absent transform sub-fields and resolves asset references itself.
type RenderState struct {
	Document *scene.Document
	Selected []string
	Focused  string
	Mode     mode.Mode
}

// RenderState returns a consistent snapshot of the session for drawing.
func (s *Session) RenderState() RenderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RenderState{
		Document: s.doc,
		Selected: s.sel.Selected(),
		Focused:  s.sel.Focused(),
		Mode:     s.modes.Current(),
	}
}

// Close destroys the mode manager (disposing every mode context) and
// rejects further mutations. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.modes.Destroy()
	s.log.Debug("session closed")
}

// pruneSelectionLocked drops selected ids that no longer exist in the
// document. Callers must hold mu.
func (s *Session) pruneSelectionLocked() {
	alive := make(map[string]struct{})
	for _, id := range tree.FlattenIDs(s.doc.Nodes) {
		alive[id] = struct{}{}
	}
	s.sel.Prune(alive)
}
