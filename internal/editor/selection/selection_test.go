package selection

import (
	"reflect"
	"testing"
)

func TestSelectReplace(t *testing.T) {
	tr := NewTracker()
	tr.Select("a", false, true)
	tr.Select("b", false, true)

	if got := tr.Selected(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Selected() = %v, want [b]", got)
	}
	if tr.Focused() != "b" {
		t.Errorf("Focused() = %q, want b", tr.Focused())
	}
}

func TestSelectAdditiveToggle(t *testing.T) {
	tr := NewTracker()
	tr.Select("a", false, true)
	tr.Select("b", true, true)
	tr.Select("c", true, true)

	if got := tr.Selected(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Selected() = %v, want [a b c]", got)
	}

	// Toggling a member removes it.
	tr.Select("b", true, true)
	if got := tr.Selected(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Selected() after toggle = %v, want [a c]", got)
	}
}

func TestSelectToggleRemovesFocused(t *testing.T) {
	tr := NewTracker()
	tr.Select("a", false, true)
	tr.Select("b", true, true)

	// Removing the focused member reassigns focus to the earliest
	// remaining member in insertion order.
	tr.Select("b", true, true)
	if tr.Focused() != "a" {
		t.Errorf("Focused() = %q, want a", tr.Focused())
	}
}

func TestSelectNoFocus(t *testing.T) {
	tr := NewTracker()
	tr.Select("a", false, true)
	tr.Select("b", true, false)

	if tr.Focused() != "a" {
		t.Errorf("Focused() = %q, want a (unchanged)", tr.Focused())
	}
}

func TestSetSelection(t *testing.T) {
	tr := NewTracker()
	tr.SetSelection([]string{"a", "b", "b", "c"}, true)

	if got := tr.Selected(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Selected() = %v, want deduped [a b c]", got)
	}
	if tr.Focused() != "c" {
		t.Errorf("Focused() = %q, want last id c", tr.Focused())
	}
}

func TestSetSelectionPreservesFocus(t *testing.T) {
	tr := NewTracker()
	tr.Select("b", false, true)

	tr.SetSelection([]string{"a", "b", "c"}, false)
	if tr.Focused() != "b" {
		t.Errorf("Focused() = %q, want preserved b", tr.Focused())
	}

	tr.SetSelection([]string{"x", "y"}, false)
	if tr.Focused() != "x" {
		t.Errorf("Focused() = %q, want first provided x", tr.Focused())
	}

	tr.SetSelection(nil, false)
	if tr.Focused() != "" || tr.Len() != 0 {
		t.Errorf("empty SetSelection: focused=%q len=%d, want cleared", tr.Focused(), tr.Len())
	}
}

func TestFocusMember(t *testing.T) {
	tr := NewTracker()
	tr.SetSelection([]string{"a", "b"}, true)

	tr.Focus("a")
	if tr.Focused() != "a" {
		t.Errorf("Focused() = %q, want a", tr.Focused())
	}
	if tr.Len() != 2 {
		t.Error("focusing a member must not change the selection")
	}
}

func TestFocusNonMemberCollapses(t *testing.T) {
	tr := NewTracker()
	tr.SetSelection([]string{"a", "b"}, true)

	tr.Focus("z")
	if got := tr.Selected(); !reflect.DeepEqual(got, []string{"z"}) {
		t.Errorf("Selected() = %v, want collapsed [z]", got)
	}
	if tr.Focused() != "z" {
		t.Errorf("Focused() = %q, want z", tr.Focused())
	}
}

func TestFocusEmptyRecomputes(t *testing.T) {
	tr := NewTracker()
	tr.SetSelection([]string{"a", "b"}, true)

	tr.Focus("")
	if tr.Focused() != "b" {
		t.Errorf("Focused() = %q, want existing focus kept", tr.Focused())
	}
	if tr.Len() != 2 {
		t.Error("empty focus must not change the selection")
	}
}

func TestFocusNextFromUnfocused(t *testing.T) {
	order := []string{"a", "b", "c"}
	tr := NewTracker()

	tr.FocusNext(order, 1)
	if tr.Focused() != "a" {
		t.Errorf("Focused() = %q, want a (direction +1 from no focus)", tr.Focused())
	}

	tr.FocusNext(order, 1)
	if tr.Focused() != "b" {
		t.Errorf("Focused() = %q, want b", tr.Focused())
	}
}

func TestFocusNextWraparound(t *testing.T) {
	order := []string{"a", "b", "c"}
	tr := NewTracker()
	tr.Select("a", false, true)

	tr.FocusNext(order, -1)
	if tr.Focused() != "c" {
		t.Errorf("Focused() = %q, want wraparound to c", tr.Focused())
	}
}

func TestFocusNextCollapsesSelection(t *testing.T) {
	order := []string{"a", "b", "c"}
	tr := NewTracker()
	tr.SetSelection([]string{"a", "b", "c"}, true)

	tr.FocusNext(order, 1)
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want navigation to collapse the selection", tr.Len())
	}
}

func TestFocusNextEmptyOrder(t *testing.T) {
	tr := NewTracker()
	tr.SetSelection([]string{"a"}, true)

	tr.FocusNext(nil, 1)
	if tr.Len() != 0 || tr.Focused() != "" {
		t.Errorf("empty order: len=%d focused=%q, want cleared", tr.Len(), tr.Focused())
	}
}

func TestPrune(t *testing.T) {
	tr := NewTracker()
	tr.SetSelection([]string{"a", "b", "c"}, true)

	tr.Prune(map[string]struct{}{"a": {}, "b": {}})
	if got := tr.Selected(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Selected() = %v, want [a b]", got)
	}
	if tr.Focused() != "a" {
		t.Errorf("Focused() = %q, want reassigned a", tr.Focused())
	}
}
