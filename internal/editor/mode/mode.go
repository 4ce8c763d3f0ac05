// Package mode governs the transition between the two exclusive editing
// modes, edit and play, with unsaved-change gating and per-mode lifecycle
// hooks.
package mode

import "context"

// Mode identifies an editing mode.
type Mode string

// The two editing modes. There are exactly these two; there is no terminal
// state, Destroy simply ends the manager's lifecycle.
const (
	ModeEdit Mode = "edit"
	ModePlay Mode = "play"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeEdit || m == ModePlay
}

// Context is an opaque per-mode value produced by a Factory. A context may
// implement any of the optional capability interfaces below; the manager
// discovers them by type assertion.
type Context any

// Factory creates the context for a mode on first use.
type Factory func(Mode) Context

// Activatable is implemented by contexts that need setup when their mode
// becomes current.
type Activatable interface {
	Activate() error
}

// Deactivatable is implemented by contexts that need teardown when their
// mode stops being current.
type Deactivatable interface {
	Deactivate() error
}

// Disposable is implemented by contexts holding resources that must be
// released when the manager is destroyed.
type Disposable interface {
	Dispose()
}

// Policy supplies the externally owned pieces of the unsaved-changes gate.
// Every field is optional.
type Policy struct {
	// Dirty, when set, overrides the manager's local dirty flag.
	Dirty func() bool

	// Autosave persists unsaved changes before a mode switch. When set it
	// takes precedence over Confirm.
	Autosave func(ctx context.Context) error

	// Confirm asks whether a switch may discard unsaved changes. A false
	// result blocks the switch.
	Confirm func(ctx context.Context, from, to Mode) (bool, error)
}

// Listener is notified synchronously with the committed mode.
type Listener func(Mode)
