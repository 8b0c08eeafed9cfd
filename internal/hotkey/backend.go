package hotkey

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendNotAvailable is returned when a backend cannot be used on the current system.
	ErrBackendNotAvailable = errors.New("backend not available on this system")

	// ErrAlreadyRegistered is returned when the chord is already held by this process.
	ErrAlreadyRegistered = errors.New("hotkey already registered")
)

// UnknownKeyError reports a key or modifier name the backend cannot map.
type UnknownKeyError struct {
	Key      string
	Modifier bool
}

func (e *UnknownKeyError) Error() string {
	if e.Modifier {
		return fmt.Sprintf("unsupported modifier: %s", e.Key)
	}
	return fmt.Sprintf("unsupported key: %s", e.Key)
}

// Backend abstracts the hotkey registration implementations so the same
// code runs on Windows, X11 and macOS, or without grabbing keys at all.
type Backend interface {
	// Register grabs the chord (e.g. "ctrl+alt+v") globally.
	Register(chord string) (RegisteredHotkey, error)

	// Unregister releases a hotkey returned by Register.
	Unregister(hk RegisteredHotkey) error

	// UnregisterAll releases every hotkey registered by this backend.
	UnregisterAll() error

	// Name returns a human-readable name for this backend (for logging).
	Name() string

	// IsAvailable returns true if this backend can be used on the current system.
	IsAvailable() bool
}

// RegisteredHotkey is a live registration.
type RegisteredHotkey interface {
	// Chord returns the chord text the hotkey was registered with.
	Chord() string

	// Keydown receives one value per press and is closed after Close.
	// Backends that never deliver presses return nil.
	Keydown() <-chan struct{}

	// Close releases the OS registration.
	Close() error
}
