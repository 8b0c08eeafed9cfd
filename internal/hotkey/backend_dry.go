package hotkey

import (
	"fmt"
	"log/slog"
	"sync"
)

// DryBackend validates chords and tracks them like a real backend but
// never grabs keys, so its hotkeys never fire. It serves one-shot CLI
// edits and systems where no real backend is available.
type DryBackend struct {
	mu         sync.Mutex
	registered map[string]*dryHotkey
	log        *slog.Logger
}

// NewDryBackend creates a backend that only validates.
func NewDryBackend(logger *slog.Logger) *DryBackend {
	return &DryBackend{
		registered: make(map[string]*dryHotkey),
		log:        logger.With("backend", "dry"),
	}
}

func (b *DryBackend) Name() string {
	return "Dry run (validation only)"
}

func (b *DryBackend) IsAvailable() bool {
	return true
}

func (b *DryBackend) Register(chord string) (RegisteredHotkey, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.registered[chord]; exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, chord)
	}
	if _, err := ParseChord(chord); err != nil {
		return nil, fmt.Errorf("failed to parse hotkey '%s': %w", chord, err)
	}

	hk := &dryHotkey{chord: chord}
	b.registered[chord] = hk
	b.log.Debug("validated hotkey", "chord", chord)
	return hk, nil
}

func (b *DryBackend) Unregister(hk RegisteredHotkey) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.registered[hk.Chord()]; ok && existing == hk {
		delete(b.registered, hk.Chord())
	}
	return nil
}

func (b *DryBackend) UnregisterAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.registered = make(map[string]*dryHotkey)
	return nil
}

type dryHotkey struct {
	chord string
}

func (h *dryHotkey) Chord() string            { return h.chord }
func (h *dryHotkey) Keydown() <-chan struct{} { return nil }
func (h *dryHotkey) Close() error             { return nil }
