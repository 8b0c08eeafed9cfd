// Package legacy grabs global hotkeys through golang.design/x/hotkey.
// Importing it installs the backend for hotkey.SelectBackend.
//
// On Linux the library connects to the X11 display in its init function
// and panics when there is none. On macOS the program must run its main
// function through mainthread.Init.
package legacy

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"

	remaphk "github.com/TanaroSch/keyremap/internal/hotkey"
)

func init() {
	remaphk.RegisterGrabber(func(logger *slog.Logger) remaphk.Backend {
		return NewLegacyBackend(logger)
	})
}

// LegacyBackend wraps golang.design/x/hotkey.
// It supports Windows, macOS and X11 on Linux, not Wayland.
type LegacyBackend struct {
	mu             sync.Mutex
	registeredKeys map[string]*legacyHotkey
	displayServer  remaphk.DisplayServer
	log            *slog.Logger
}

// NewLegacyBackend creates a new legacy backend using golang.design/x/hotkey.
func NewLegacyBackend(logger *slog.Logger) *LegacyBackend {
	ds := remaphk.DetectDisplayServer()
	logger = logger.With("backend", "legacy")
	logger.Debug("detected display server", "display_server", ds)

	return &LegacyBackend{
		registeredKeys: make(map[string]*legacyHotkey),
		displayServer:  ds,
		log:            logger,
	}
}

// Name returns the name of this backend.
func (b *LegacyBackend) Name() string {
	return "Legacy (golang.design/x/hotkey)"
}

// IsAvailable checks if this backend can be used on the current system.
func (b *LegacyBackend) IsAvailable() bool {
	return b.displayServer.SupportsGlobalHotkeys()
}

// Register grabs chord. On X11 the chord is also grabbed with the
// NumLock/CapsLock masks; only the plain grab is required to succeed.
func (b *LegacyBackend) Register(chord string) (remaphk.RegisteredHotkey, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.registeredKeys[chord]; exists {
		return nil, fmt.Errorf("%w: %s", remaphk.ErrAlreadyRegistered, chord)
	}

	parsed, err := remaphk.ParseChord(chord)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hotkey '%s': %w", chord, err)
	}

	wrapped := &legacyHotkey{
		chord:     chord,
		keydownCh: make(chan struct{}),
		stopCh:    make(chan struct{}),
	}
	for i, mods := range parsed.Variants() {
		hk := hotkey.New(libModifiers(mods), hotkey.Key(parsed.Key))
		if err := hk.Register(); err != nil {
			if i == 0 {
				return nil, fmt.Errorf("failed to register hotkey '%s': %w", chord, err)
			}
			b.log.Debug("lock-mask variant not registered", "chord", chord, "variant", i, "error", err)
			continue
		}
		wrapped.hotkeys = append(wrapped.hotkeys, hk)
	}

	wrapped.startEventConverter(b.log)
	b.registeredKeys[chord] = wrapped
	b.log.Debug("registered hotkey", "chord", chord, "grabs", len(wrapped.hotkeys))

	return wrapped, nil
}

// Unregister releases a hotkey returned by Register.
func (b *LegacyBackend) Unregister(hk remaphk.RegisteredHotkey) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, exists := b.registeredKeys[hk.Chord()]
	if !exists || existing != hk {
		b.log.Debug("hotkey not found for unregister", "chord", hk.Chord())
		return nil
	}

	delete(b.registeredKeys, hk.Chord())
	if err := existing.Close(); err != nil {
		return err
	}
	b.log.Debug("unregistered hotkey", "chord", hk.Chord())
	return nil
}

// UnregisterAll removes all registered hotkeys.
func (b *LegacyBackend) UnregisterAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.log.Debug("unregistering all hotkeys", "count", len(b.registeredKeys))

	var errs []error
	for _, hk := range b.registeredKeys {
		if err := hk.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	b.registeredKeys = make(map[string]*legacyHotkey)
	return errors.Join(errs...)
}

func libModifiers(mods []remaphk.Modifier) []hotkey.Modifier {
	out := make([]hotkey.Modifier, len(mods))
	for i, m := range mods {
		out[i] = hotkey.Modifier(m)
	}
	return out
}

// legacyHotkey groups the grabs made for one chord behind a single
// keydown channel.
type legacyHotkey struct {
	chord     string
	hotkeys   []*hotkey.Hotkey
	keydownCh chan struct{}
	stopCh    chan struct{}
	closeOnce sync.Once
}

func (lh *legacyHotkey) Chord() string {
	return lh.chord
}

func (lh *legacyHotkey) Keydown() <-chan struct{} {
	return lh.keydownCh
}

// startEventConverter forwards hotkey.Event values from every grab to
// keydownCh, which is closed once all forwarders have stopped.
func (lh *legacyHotkey) startEventConverter(logger *slog.Logger) {
	var wg sync.WaitGroup
	for _, hk := range lh.hotkeys {
		wg.Add(1)
		go func(hk *hotkey.Hotkey) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Error("recovered from panic in hotkey converter", "chord", lh.chord, "panic", r)
				}
			}()

			for {
				select {
				case <-lh.stopCh:
					return
				case _, ok := <-hk.Keydown():
					if !ok {
						return
					}
					select {
					case lh.keydownCh <- struct{}{}:
					case <-lh.stopCh:
						return
					}
				}
			}
		}(hk)
	}

	go func() {
		wg.Wait()
		close(lh.keydownCh)
	}()
}

func (lh *legacyHotkey) unregisterAll() error {
	var errs []error
	for _, hk := range lh.hotkeys {
		if err := hk.Unregister(); err != nil {
			errs = append(errs, fmt.Errorf("failed to unregister hotkey '%s': %w", lh.chord, err))
		}
	}
	return errors.Join(errs...)
}

// Close stops the converters and unregisters every grab. Safe to call twice.
func (lh *legacyHotkey) Close() error {
	var err error
	lh.closeOnce.Do(func() {
		close(lh.stopCh)
		err = lh.unregisterAll()
	})
	return err
}
