package mode

import (
	"context"
	"errors"
	"testing"
)

// recorder is a mode context that records its lifecycle calls.
type recorder struct {
	mode        Mode
	activated   int
	deactivated int
	disposed    int
}

func (r *recorder) Activate() error   { r.activated++; return nil }
func (r *recorder) Deactivate() error { r.deactivated++; return nil }
func (r *recorder) Dispose()          { r.disposed++ }

// recordingFactory tracks every context it creates.
func recordingFactory() (Factory, map[Mode]*recorder) {
	created := make(map[Mode]*recorder)
	return func(m Mode) Context {
		r := &recorder{mode: m}
		created[m] = r
		return r
	}, created
}

func TestNewManagerDefaults(t *testing.T) {
	m := NewManager("", nil, Policy{})
	if m.Current() != ModeEdit {
		t.Errorf("Current() = %q, want default edit", m.Current())
	}

	m = NewManager(ModePlay, nil, Policy{})
	if m.Current() != ModePlay {
		t.Errorf("Current() = %q, want play", m.Current())
	}
}

func TestSwitchSameModeNoop(t *testing.T) {
	factory, created := recordingFactory()
	m := NewManager(ModeEdit, factory, Policy{})

	ok, err := m.Switch(context.Background(), ModeEdit)
	if !ok || err != nil {
		t.Fatalf("Switch(edit) = %v, %v, want true, nil", ok, err)
	}
	if len(created) != 0 {
		t.Error("same-mode switch must have no side effects")
	}
}

func TestSwitchUnknownMode(t *testing.T) {
	m := NewManager(ModeEdit, nil, Policy{})
	if _, err := m.Switch(context.Background(), "replay"); err == nil {
		t.Error("Switch to unknown mode should fail")
	}
}

func TestSwitchHookOrder(t *testing.T) {
	factory, created := recordingFactory()
	m := NewManager(ModeEdit, factory, Policy{})

	ok, err := m.Switch(context.Background(), ModePlay)
	if !ok || err != nil {
		t.Fatalf("Switch(play) = %v, %v", ok, err)
	}
	if m.Current() != ModePlay {
		t.Errorf("Current() = %q, want play", m.Current())
	}
	if created[ModeEdit].deactivated != 1 {
		t.Error("outgoing context should be deactivated once")
	}
	if created[ModePlay].activated != 1 {
		t.Error("target context should be activated once")
	}
}

func TestSwitchContextsLazy(t *testing.T) {
	factory, created := recordingFactory()
	m := NewManager(ModeEdit, factory, Policy{})

	_, _ = m.Switch(context.Background(), ModePlay)
	_, _ = m.Switch(context.Background(), ModeEdit)

	// Contexts are created once and reused across transitions.
	if created[ModeEdit].activated != 1 || created[ModeEdit].deactivated != 1 {
		t.Errorf("edit context lifecycle = %+v", created[ModeEdit])
	}
	if created[ModePlay].activated != 1 || created[ModePlay].deactivated != 1 {
		t.Errorf("play context lifecycle = %+v", created[ModePlay])
	}
}

func TestGateCleanAlwaysAllows(t *testing.T) {
	confirmed := false
	m := NewManager(ModeEdit, nil, Policy{
		Confirm: func(context.Context, Mode, Mode) (bool, error) {
			confirmed = true
			return false, nil
		},
	})

	ok, err := m.Switch(context.Background(), ModePlay)
	if !ok || err != nil {
		t.Fatalf("Switch() = %v, %v", ok, err)
	}
	if confirmed {
		t.Error("confirm policy must not run when not dirty")
	}
}

func TestGateConfirmBlocks(t *testing.T) {
	m := NewManager(ModeEdit, nil, Policy{
		Confirm: func(context.Context, Mode, Mode) (bool, error) { return false, nil },
	})
	m.MarkDirty()

	notified := 0
	unsub := m.Subscribe(func(Mode) { notified++ })
	defer unsub()
	notified = 0 // discard the immediate call

	ok, err := m.Switch(context.Background(), ModePlay)
	if ok || err != nil {
		t.Fatalf("Switch() = %v, %v, want false, nil", ok, err)
	}
	if m.Current() != ModeEdit {
		t.Errorf("Current() = %q, want unchanged edit", m.Current())
	}
	if notified != 0 {
		t.Error("no subscriber may be notified on a blocked switch")
	}
	if !m.IsDirty() {
		t.Error("a blocked switch must not clear dirty")
	}
}

func TestGateConfirmAllows(t *testing.T) {
	var gotFrom, gotTo Mode
	m := NewManager(ModeEdit, nil, Policy{
		Confirm: func(_ context.Context, from, to Mode) (bool, error) {
			gotFrom, gotTo = from, to
			return true, nil
		},
	})
	m.MarkDirty()

	ok, err := m.Switch(context.Background(), ModePlay)
	if !ok || err != nil {
		t.Fatalf("Switch() = %v, %v", ok, err)
	}
	if gotFrom != ModeEdit || gotTo != ModePlay {
		t.Errorf("confirm called with (%q, %q), want (edit, play)", gotFrom, gotTo)
	}
	if m.IsDirty() {
		t.Error("a confirmed switch clears dirty")
	}
}

func TestGateAutosavePrecedence(t *testing.T) {
	saved := false
	m := NewManager(ModeEdit, nil, Policy{
		Autosave: func(context.Context) error { saved = true; return nil },
		Confirm: func(context.Context, Mode, Mode) (bool, error) {
			t.Error("confirm must not run when autosave is configured")
			return false, nil
		},
	})
	m.MarkDirty()

	ok, err := m.Switch(context.Background(), ModePlay)
	if !ok || err != nil {
		t.Fatalf("Switch() = %v, %v", ok, err)
	}
	if !saved {
		t.Error("autosave policy should run")
	}
	if m.IsDirty() {
		t.Error("autosave clears dirty")
	}
}

func TestGateAutosaveFailure(t *testing.T) {
	wantErr := errors.New("disk full")
	m := NewManager(ModeEdit, nil, Policy{
		Autosave: func(context.Context) error { return wantErr },
	})
	m.MarkDirty()

	ok, err := m.Switch(context.Background(), ModePlay)
	if ok {
		t.Error("failed autosave must block the switch")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
	if m.Current() != ModeEdit {
		t.Errorf("Current() = %q, want unchanged edit", m.Current())
	}
}

func TestGateDirtyWithoutPolicyAllows(t *testing.T) {
	m := NewManager(ModeEdit, nil, Policy{})
	m.MarkDirty()

	ok, err := m.Switch(context.Background(), ModePlay)
	if !ok || err != nil {
		t.Errorf("Switch() = %v, %v, want allowed by default", ok, err)
	}
}

func TestDirtyPredicateOverridesLocalFlag(t *testing.T) {
	external := true
	m := NewManager(ModeEdit, nil, Policy{
		Dirty: func() bool { return external },
	})

	if !m.IsDirty() {
		t.Error("IsDirty() should defer to the predicate")
	}
	external = false
	m.MarkDirty()
	if m.IsDirty() {
		t.Error("the local flag must not win over the predicate")
	}
}

func TestSubscribe(t *testing.T) {
	m := NewManager(ModeEdit, nil, Policy{})

	var got []Mode
	unsub := m.Subscribe(func(mo Mode) { got = append(got, mo) })

	if len(got) != 1 || got[0] != ModeEdit {
		t.Fatalf("subscriber should be invoked immediately with edit, got %v", got)
	}

	_, _ = m.Switch(context.Background(), ModePlay)
	if len(got) != 2 || got[1] != ModePlay {
		t.Errorf("subscriber calls = %v, want [edit play]", got)
	}

	unsub()
	_, _ = m.Switch(context.Background(), ModeEdit)
	if len(got) != 2 {
		t.Error("unsubscribed listener must not be notified")
	}
}

func TestDestroyDisposesUnenteredContexts(t *testing.T) {
	factory, created := recordingFactory()
	m := NewManager(ModeEdit, factory, Policy{})

	// Play mode was never entered; Destroy still realizes and disposes it.
	m.Destroy()

	if len(created) != 2 {
		t.Fatalf("Destroy should realize both contexts, created %d", len(created))
	}
	for mo, r := range created {
		if r.disposed != 1 {
			t.Errorf("%s context disposed %d times, want 1", mo, r.disposed)
		}
	}

	// Idempotent.
	m.Destroy()
	for _, r := range created {
		if r.disposed != 1 {
			t.Error("second Destroy must not dispose again")
		}
	}

	if _, err := m.Switch(context.Background(), ModePlay); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Switch after Destroy = %v, want ErrDestroyed", err)
	}
}
