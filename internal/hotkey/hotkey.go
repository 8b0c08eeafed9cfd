// Package hotkey registers global hotkeys for the remapper.
//
// The package itself never grabs keys: the backend that does lives in
// hotkey/legacy and installs itself with RegisterGrabber when linked in.
// On Linux the hotkey library opens the X11 display while the program
// starts, so binaries and tests that must run headless leave it out.
package hotkey

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/TanaroSch/keyremap/internal/remap"
)

// Backend kinds accepted by SelectBackend.
const (
	KindAuto = "auto"
	KindNone = "none"
)

var (
	grabberMu  sync.Mutex
	newGrabber func(*slog.Logger) Backend
)

// RegisterGrabber installs the constructor of the key-grabbing backend.
func RegisterGrabber(fn func(*slog.Logger) Backend) {
	grabberMu.Lock()
	defer grabberMu.Unlock()
	newGrabber = fn
}

func grabber() func(*slog.Logger) Backend {
	grabberMu.Lock()
	defer grabberMu.Unlock()
	return newGrabber
}

// SelectBackend chooses the backend for kind. "none" always yields the dry
// backend. "auto" yields the grabbing backend on Windows, macOS and X11,
// and ErrBackendNotAvailable elsewhere (Wayland has no global grab API
// the hotkey library can use) or when no grabbing backend is linked in.
func SelectBackend(kind string, logger *slog.Logger) (Backend, error) {
	switch kind {
	case KindNone:
		return NewDryBackend(logger), nil
	case KindAuto, "":
	default:
		return nil, fmt.Errorf("unknown hotkey backend %q", kind)
	}

	ds := DetectDisplayServer()
	if !ds.SupportsGlobalHotkeys() {
		return nil, fmt.Errorf("%w: display server %s", ErrBackendNotAvailable, ds)
	}
	newBackend := grabber()
	if newBackend == nil {
		return nil, fmt.Errorf("%w: built without a key-grabbing backend", ErrBackendNotAvailable)
	}
	backend := newBackend(logger)
	if !backend.IsAvailable() {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotAvailable, backend.Name())
	}
	logger.Info("selected hotkey backend", "backend", backend.Name(), "display_server", ds)
	return backend, nil
}

// Service adapts a Backend to remap.HookService.
type Service struct {
	backend Backend
}

// NewService wraps backend.
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Backend returns the wrapped backend.
func (s *Service) Backend() Backend {
	return s.backend
}

// Bind registers chord with the backend.
func (s *Service) Bind(chord string) (remap.Handle, error) {
	hk, err := s.backend.Register(chord)
	if err != nil {
		return nil, err
	}
	return hk, nil
}

// Unbind releases a handle returned by Bind.
func (s *Service) Unbind(h remap.Handle) error {
	hk, ok := h.(RegisteredHotkey)
	if !ok {
		return fmt.Errorf("unbind: handle %T was not created by this service", h)
	}
	return s.backend.Unregister(hk)
}

// Close releases everything the backend still holds.
func (s *Service) Close() error {
	return s.backend.UnregisterAll()
}
