package mode

import (
	"context"
	"fmt"
	"sync"
)

// Manager coordinates transitions between the edit and play modes. Mode
// contexts are created lazily by the injected factory; the unsaved-changes
// gate runs before any lifecycle hook fires.
type Manager struct {
	mu sync.Mutex

	current  Mode
	factory  Factory
	policy   Policy
	contexts map[Mode]Context

	dirty     bool
	listeners []Listener
	destroyed bool
}

// NewManager creates a manager starting in the given mode. An invalid or
// empty initial mode falls back to edit. A nil factory yields hook-less
// nil contexts.
func NewManager(initial Mode, factory Factory, policy Policy) *Manager {
	if !initial.Valid() {
		initial = ModeEdit
	}
	return &Manager{
		current:  initial,
		factory:  factory,
		policy:   policy,
		contexts: make(map[Mode]Context),
	}
}

// Current returns the current mode.
func (m *Manager) Current() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsDirty reports unsaved changes, deferring to the policy's dirty
// predicate when one is configured.
func (m *Manager) IsDirty() bool {
	if m.policy.Dirty != nil {
		return m.policy.Dirty()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// MarkDirty sets the local dirty flag.
func (m *Manager) MarkDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = true
}

// ClearDirty clears the local dirty flag.
func (m *Manager) ClearDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = false
}

// Switch transitions to the target mode.
//
// Switching to the current mode succeeds immediately with no side effects.
// Otherwise the unsaved-changes gate runs first: a clean manager always
// passes; a dirty one autosaves if an autosave policy is configured, else
// asks the confirm policy, else passes by default (dirty state alone is
// not a veto). A blocked or failed gate leaves the mode unchanged and no
// hook fires.
//
// On an allowed switch the outgoing context's Deactivate hook runs, then
// the target context (created on first use) is activated, the mode
// commits, and every subscriber is notified synchronously. Returns true
// only for a committed transition.
func (m *Manager) Switch(ctx context.Context, target Mode) (bool, error) {
	if !target.Valid() {
		return false, fmt.Errorf("unknown mode: %s", target)
	}

	m.mu.Lock()
	if m.destroyed {
		m.mu.Unlock()
		return false, ErrDestroyed
	}
	from := m.current
	if from == target {
		m.mu.Unlock()
		return true, nil
	}
	m.mu.Unlock()

	allowed, err := m.gate(ctx, from, target)
	if err != nil || !allowed {
		return false, err
	}

	m.mu.Lock()
	if m.current != from {
		// A competing switch committed while the gate was waiting.
		committed := m.current == target
		m.mu.Unlock()
		return committed, nil
	}

	if d, ok := m.contextLocked(from).(Deactivatable); ok {
		if err := d.Deactivate(); err != nil {
			m.mu.Unlock()
			return false, fmt.Errorf("deactivate %s: %w", from, err)
		}
	}
	if a, ok := m.contextLocked(target).(Activatable); ok {
		if err := a.Activate(); err != nil {
			m.mu.Unlock()
			return false, fmt.Errorf("activate %s: %w", target, err)
		}
	}
	m.current = target
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, l := range listeners {
		if l != nil {
			l(target)
		}
	}
	return true, nil
}

// gate evaluates the unsaved-changes policy chain. It may suspend while an
// autosave or confirmation is awaited.
func (m *Manager) gate(ctx context.Context, from, to Mode) (bool, error) {
	if !m.IsDirty() {
		return true, nil
	}
	if m.policy.Autosave != nil {
		if err := m.policy.Autosave(ctx); err != nil {
			return false, fmt.Errorf("autosave before %s: %w", to, err)
		}
		m.ClearDirty()
		return true, nil
	}
	if m.policy.Confirm != nil {
		ok, err := m.policy.Confirm(ctx, from, to)
		if err != nil {
			return false, fmt.Errorf("confirm switch to %s: %w", to, err)
		}
		if !ok {
			return false, nil
		}
		m.ClearDirty()
		return true, nil
	}
	return true, nil
}

// Subscribe registers a listener, invokes it immediately with the current
// mode, and returns an unsubscribe handle.
func (m *Manager) Subscribe(l Listener) func() {
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	index := len(m.listeners) - 1
	current := m.current
	m.mu.Unlock()

	l(current)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Nil out rather than shift, so other handles keep their index.
		if index < len(m.listeners) {
			m.listeners[index] = nil
		}
	}
}

// Destroy realizes both mode contexts, disposes every context that
// implements Disposable, and clears all subscribers. No context's Dispose
// hook is skipped, even for a mode that was never entered. Destroy is
// idempotent.
func (m *Manager) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	m.destroyed = true
	for _, mode := range []Mode{ModeEdit, ModePlay} {
		if d, ok := m.contextLocked(mode).(Disposable); ok {
			d.Dispose()
		}
	}
	m.listeners = nil
}

// contextLocked returns the mode's context, creating it on first use.
// Callers must hold mu.
func (m *Manager) contextLocked(mode Mode) Context {
	if c, ok := m.contexts[mode]; ok {
		return c
	}
	var c Context
	if m.factory != nil {
		c = m.factory(mode)
	}
	m.contexts[mode] = c
	return c
}
