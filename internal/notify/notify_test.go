package notify

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

type shown struct {
	title   string
	message string
}

func newTestNotifier(t *testing.T, enabled bool) (*Notifier, *[]shown) {
	t.Helper()
	var got []shown
	n := New(enabled, "keyremap", nil)
	n.notifyFn = func(title, message string) error {
		got = append(got, shown{title: title, message: message})
		return nil
	}
	return n, &got
}

func TestNotifierShowsNewProblems(t *testing.T) {
	n, got := newTestNotifier(t, true)
	id := uuid.New()

	n.ErrorCleared()
	n.ErrorTriggered(id, "Shortcut already in use")

	if len(*got) != 1 {
		t.Fatalf("shown %d notifications, want 1", len(*got))
	}
	if (*got)[0].title != "keyremap" || (*got)[0].message != "Shortcut already in use" {
		t.Errorf("notification = %+v", (*got)[0])
	}
}

func TestNotifierSuppressesRepeats(t *testing.T) {
	n, got := newTestNotifier(t, true)
	id := uuid.New()

	for i := 0; i < 3; i++ {
		n.ErrorCleared()
		n.ErrorTriggered(id, "Shortcut already in use")
	}
	if len(*got) != 1 {
		t.Fatalf("shown %d notifications across repeated passes, want 1", len(*got))
	}

	n.ErrorCleared()
	n.ErrorCleared()
	n.ErrorTriggered(id, "Shortcut already in use")
	if len(*got) != 2 {
		t.Errorf("problem that came back after a clean pass shown %d times in total, want 2", len(*got))
	}

	n.ErrorTriggered(id, "Fn function already in use")
	if len(*got) != 3 {
		t.Errorf("a different message for the same id was suppressed")
	}
}

func TestNotifierDisabledOnlyLogs(t *testing.T) {
	n, got := newTestNotifier(t, false)

	n.ErrorCleared()
	n.ErrorTriggered(uuid.New(), "Shortcut already in use")

	if len(*got) != 0 {
		t.Errorf("notifications shown while disabled: %+v", *got)
	}
}

func TestNotifierUsesLookup(t *testing.T) {
	n, got := newTestNotifier(t, true)
	id := uuid.New()
	n.SetLookup(func(u uuid.UUID) (Mapping, bool) {
		if u == id {
			return Mapping{Source: "Ctrl+1", Target: "F13"}, true
		}
		return Mapping{}, false
	})

	n.ErrorCleared()
	n.ErrorTriggered(id, "Shortcut already in use")
	n.ErrorTriggered(uuid.New(), "Fn function already in use")

	if len(*got) != 2 {
		t.Fatalf("shown %d notifications, want 2", len(*got))
	}
	if (*got)[0].message != "Ctrl+1 → F13: Shortcut already in use" {
		t.Errorf("message = %q", (*got)[0].message)
	}
	if (*got)[1].message != "Fn function already in use" {
		t.Errorf("message without mapping = %q", (*got)[1].message)
	}
}

func TestNotifierDedupesAcrossNewIDs(t *testing.T) {
	n, got := newTestNotifier(t, true)
	mappings := make(map[uuid.UUID]Mapping)
	n.SetLookup(func(id uuid.UUID) (Mapping, bool) {
		m, ok := mappings[id]
		return m, ok
	})

	// Each pass sees the same conflict under fresh ids, as after a reload.
	for i := 0; i < 3; i++ {
		a, b := uuid.New(), uuid.New()
		mappings[a] = Mapping{Source: "Ctrl+1", Target: "F13"}
		mappings[b] = Mapping{Source: "Ctrl+1", Target: "F14"}
		n.ErrorCleared()
		n.ErrorTriggered(a, "Shortcut already in use")
		n.ErrorTriggered(b, "Shortcut already in use")
	}
	if len(*got) != 2 {
		t.Errorf("shown %d notifications, want 2", len(*got))
	}
}

func TestNotifierSurvivesPlatformErrors(t *testing.T) {
	n := New(true, "keyremap", nil)
	n.notifyFn = func(string, string) error { return errors.New("no dbus") }

	n.ErrorCleared()
	n.ErrorTriggered(uuid.New(), "Shortcut already in use")
}
