package remap

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/TanaroSch/keyremap/internal/store"
)

type fakeHandle struct {
	chord   string
	keydown chan struct{}
}

func (h *fakeHandle) Keydown() <-chan struct{} {
	if h.keydown == nil {
		return nil
	}
	return h.keydown
}

type fakeHooks struct {
	bound       map[*fakeHandle]bool
	binds       []string
	unbinds     []string
	reject      map[string]error
	withKeydown bool
}

func newFakeHooks() *fakeHooks {
	return &fakeHooks{
		bound:  make(map[*fakeHandle]bool),
		reject: make(map[string]error),
	}
}

func (f *fakeHooks) Bind(chord string) (Handle, error) {
	f.binds = append(f.binds, chord)
	if err, ok := f.reject[chord]; ok {
		return nil, err
	}
	h := &fakeHandle{chord: chord}
	if f.withKeydown {
		h.keydown = make(chan struct{}, 1)
	}
	f.bound[h] = true
	return h, nil
}

func (f *fakeHooks) Unbind(h Handle) error {
	fh := h.(*fakeHandle)
	f.unbinds = append(f.unbinds, fh.chord)
	delete(f.bound, fh)
	if fh.keydown != nil {
		close(fh.keydown)
	}
	return nil
}

func (f *fakeHooks) boundChords() []string {
	out := make([]string, 0, len(f.bound))
	for h := range f.bound {
		out = append(out, h.chord)
	}
	sort.Strings(out)
	return out
}

type listenerEvent struct {
	cleared bool
	id      uuid.UUID
	message string
}

type recordingListener struct {
	events []listenerEvent
}

func (l *recordingListener) ErrorTriggered(id uuid.UUID, message string) {
	l.events = append(l.events, listenerEvent{id: id, message: message})
}

func (l *recordingListener) ErrorCleared() {
	l.events = append(l.events, listenerEvent{cleared: true})
}

// triggered returns the ErrorTriggered events since the last ErrorCleared.
func (l *recordingListener) triggered() []listenerEvent {
	var out []listenerEvent
	for _, ev := range l.events {
		if ev.cleared {
			out = nil
			continue
		}
		out = append(out, ev)
	}
	return out
}

type fixture struct {
	store    *store.Store
	registry *Registry
	hooks    *fakeHooks
	listener *recordingListener
	manager  *Manager
	logs     *bytes.Buffer
}

func newFixture(t *testing.T, records ...store.Record) *fixture {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	st := store.New(filepath.Join(t.TempDir(), "data.json"), logger)
	if records != nil {
		if err := st.Write(records); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	reg := NewRegistry(st, logger)
	if err := reg.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	hooks := newFakeHooks()
	listener := &recordingListener{}
	return &fixture{
		store:    st,
		registry: reg,
		hooks:    hooks,
		listener: listener,
		manager:  NewManager(reg, hooks, nil, listener, logger),
		logs:     logs,
	}
}

func (f *fixture) entry(t *testing.T, i int) *Entry {
	t.Helper()
	e, ok := f.registry.At(i)
	if !ok {
		t.Fatalf("no entry at index %d", i)
	}
	return e
}

// assertNoEnabledCollisions checks that no two enabled entries share a
// non-empty source or target.
func assertNoEnabledCollisions(t *testing.T, entries []*Entry) {
	t.Helper()
	sources := make(map[string]bool)
	targets := make(map[string]bool)
	for _, e := range entries {
		if e.Disabled() {
			continue
		}
		if e.Source() != "" {
			if sources[e.Source()] {
				t.Errorf("two enabled entries share source %q", e.Source())
			}
			sources[e.Source()] = true
		}
		if e.Target() != "" {
			if targets[e.Target()] {
				t.Errorf("two enabled entries share target %q", e.Target())
			}
			targets[e.Target()] = true
		}
	}
}
