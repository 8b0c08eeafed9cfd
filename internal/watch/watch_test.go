package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestShouldReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	base := "data.json"

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "write", event: fsnotify.Event{Name: path, Op: fsnotify.Write}, want: true},
		{name: "create", event: fsnotify.Event{Name: path, Op: fsnotify.Create}, want: true},
		{name: "rename", event: fsnotify.Event{Name: path, Op: fsnotify.Rename}, want: true},
		{name: "remove", event: fsnotify.Event{Name: path, Op: fsnotify.Remove}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: path, Op: fsnotify.Chmod}, want: false},
		{name: "unclean path", event: fsnotify.Event{Name: dir + "/./data.json", Op: fsnotify.Write}, want: true},
		{name: "same base elsewhere", event: fsnotify.Event{Name: filepath.Join("other", "data.json"), Op: fsnotify.Create}, want: true},
		{name: "temp file", event: fsnotify.Event{Name: filepath.Join(dir, ".data.json.tmp.123"), Op: fsnotify.Create}, want: false},
		{name: "backup", event: fsnotify.Event{Name: path + ".bak", Op: fsnotify.Write}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldReload(path, base, tt.event); got != tt.want {
				t.Errorf("shouldReload(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func waitEvent(t *testing.T, w *Watcher, within time.Duration) bool {
	t.Helper()
	select {
	case _, ok := <-w.Events():
		return ok
	case <-time.After(within):
		return false
	}
}

func TestWatcherSignalsContentChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("[]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`[{"source":"Ctrl+1","target":"F13"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if !waitEvent(t, w, 3*time.Second) {
		t.Fatal("no event after content change")
	}

	// Rewriting identical content is not a change.
	if err := os.WriteFile(path, []byte(`[{"source":"Ctrl+1","target":"F13"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if waitEvent(t, w, 300*time.Millisecond) {
		t.Error("event for unchanged content")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	w, err := New(path, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if waitEvent(t, w, 300*time.Millisecond) {
		t.Error("event for unrelated file")
	}
}

func TestWatcherCloseClosesEvents(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "data.json"), 0, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("Events() still open after Close")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNewMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing", "data.json"), 0, nil); err == nil {
		t.Error("New() on missing directory succeeded")
	}
}

func TestWatcherPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("[]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	quiet, err := New(path, time.Hour, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := quiet.Close(); err != nil {
		t.Fatal(err)
	}
	if quiet.Pending() {
		t.Error("Pending() with no change = true")
	}

	// A write still inside the debounce window.
	w, err := New(path, time.Hour, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`[{"source":"Ctrl+1","target":"F13"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if !w.Pending() {
		t.Error("Pending() after an undelivered change = false")
	}
}
