package remap

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TanaroSch/keyremap/internal/logging"
)

// Handle is a live hotkey binding. Keydown delivers one value per press
// and is closed when the binding is released; it may be nil.
type Handle interface {
	Keydown() <-chan struct{}
}

// HookService binds chord text (see HookText) to a global hotkey.
type HookService interface {
	Bind(chord string) (Handle, error)
	Unbind(h Handle) error
}

// Emitter produces the target key when a bound chord is pressed.
type Emitter interface {
	Press(target string) error
}

// Manager owns the registration lifecycle of a registry's entries and
// routes every mutation through a sanitize pass.
//
// All methods must be called from a single goroutine.
type Manager struct {
	registry  *Registry
	hooks     HookService
	emitter   Emitter
	listener  Listener
	log       *slog.Logger
	editDepth int
}

// NewManager creates a manager. emitter, listener and logger may be nil.
func NewManager(reg *Registry, hooks HookService, emitter Emitter, listener Listener, logger *slog.Logger) *Manager {
	if listener == nil {
		listener = nopListener{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		registry: reg,
		hooks:    hooks,
		emitter:  emitter,
		listener: listener,
		log:      logger.With("component", "manager"),
	}
}

// Registry returns the registry the manager operates on.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Sanitize recomputes conflicts and releases any binding held by an entry
// that is now disabled or invalid.
func (m *Manager) Sanitize() {
	Sanitize(m.registry.entries, m.listener)
	for _, e := range m.registry.entries {
		if e.handle != nil && (e.disabled || !e.IsValid()) {
			m.log.Debug("releasing conflicting hotkey", "id", e.id, "source", e.source)
			m.release(e)
		}
	}
}

// RegisterAll sanitizes, then binds every valid, enabled, unbound entry.
// Calling it again without changes binds nothing new.
func (m *Manager) RegisterAll() {
	m.Sanitize()
	for _, e := range m.registry.entries {
		if !e.IsValid() || e.IsRegistered() || e.disabled {
			continue
		}
		m.bind(e)
	}
}

// UnregisterAll releases every live binding.
func (m *Manager) UnregisterAll() {
	for _, e := range m.registry.entries {
		if e.IsRegistered() {
			m.release(e)
		}
	}
}

// Create appends a new entry and binds it right away if it is valid and
// does not collide with another one. Inside an edit session binding is
// left to EndEdit.
func (m *Manager) Create(source, target string) *Entry {
	m.log.Debug("create hotkey", "source", source, "target", target)
	e := newEntry(source, target)
	m.registry.append(e)
	m.Sanitize()
	if m.editDepth == 0 && e.IsValid() && !e.disabled {
		m.bind(e)
	}
	return e
}

// Delete releases the entry's binding, removes it and sanitizes the rest.
func (m *Manager) Delete(id uuid.UUID) error {
	e, ok := m.registry.Find(id)
	if !ok {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	m.log.Debug("delete hotkey", "id", id, "source", e.source, "target", e.target)
	m.release(e)
	m.registry.remove(id)
	m.Sanitize()
	return nil
}

// ModifySource changes an entry's source chord. A binding made for the old
// chord is released; re-binding is left to the caller (see EndEdit).
// An unknown id is logged and reported as ErrNotFound.
func (m *Manager) ModifySource(id uuid.UUID, source string) error {
	e, ok := m.registry.Find(id)
	if !ok {
		m.log.Info("modify source: hotkey not found", "id", id)
		return fmt.Errorf("modify source %s: %w", id, ErrNotFound)
	}
	if e.source != source {
		m.release(e)
		e.source = source
	}
	m.Sanitize()
	return nil
}

// ModifyTarget changes an entry's target. Same rules as ModifySource.
func (m *Manager) ModifyTarget(id uuid.UUID, target string) error {
	e, ok := m.registry.Find(id)
	if !ok {
		m.log.Info("modify target: hotkey not found", "id", id)
		return fmt.Errorf("modify target %s: %w", id, ErrNotFound)
	}
	if e.target != target {
		m.release(e)
		e.target = target
	}
	m.Sanitize()
	return nil
}

// BeginEdit opens an edit session: every binding is released so the chord
// being typed is not intercepted. Sessions nest; only the outermost acts.
func (m *Manager) BeginEdit() {
	m.editDepth++
	if m.editDepth == 1 {
		m.log.Debug("edit session started")
		m.UnregisterAll()
	}
}

// EndEdit closes an edit session and registers everything again.
func (m *Manager) EndEdit() {
	if m.editDepth == 0 {
		m.log.Warn("EndEdit called without BeginEdit")
		return
	}
	m.editDepth--
	if m.editDepth == 0 {
		m.log.Debug("edit session finished")
		m.RegisterAll()
	}
}

// Editing reports whether an edit session is open.
func (m *Manager) Editing() bool {
	return m.editDepth > 0
}

// Reload re-reads the registry from its store and re-registers it. On a
// load error the previous entries are registered again.
func (m *Manager) Reload() error {
	m.UnregisterAll()
	err := m.registry.Load()
	if !m.Editing() {
		m.RegisterAll()
	} else {
		m.Sanitize()
	}
	return err
}

func (m *Manager) bind(e *Entry) {
	chord := HookText(e.source)
	m.log.Debug("register hotkey", "source", e.source, "target", e.target, "chord", chord)

	h, err := m.hooks.Bind(chord)
	if err != nil {
		m.log.Warn("could not register hotkey", "id", e.id, "source", e.source, "chord", chord, "error", err)
		m.listener.ErrorTriggered(e.id, MsgBindFailed)
		return
	}
	e.handle = h
	m.listen(h, e.source, e.target)
}

func (m *Manager) release(e *Entry) {
	if e.handle == nil {
		return
	}
	m.log.Debug("unregister hotkey", "source", e.source, "target", e.target)
	if err := m.hooks.Unbind(e.handle); err != nil {
		m.log.Warn("could not unregister hotkey", "id", e.id, "source", e.source, "error", err)
	}
	e.handle = nil
}

// listen presses target for every keydown on h until h is released. The
// target is captured here so the goroutine never reads the entry.
func (m *Manager) listen(h Handle, source, target string) {
	if m.emitter == nil {
		return
	}
	keydown := h.Keydown()
	if keydown == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("recovered from panic in hotkey listener", "source", source, "panic", r)
			}
		}()
		for range keydown {
			m.log.Debug("hotkey pressed", "source", source, "target", target)
			if err := m.emitter.Press(target); err != nil {
				m.log.Warn("could not press target key", "source", source, "target", target, "error", err)
			}
		}
	}()
}
