// Package app wires the store, registry, hotkey backend, key sender and
// notifier into the running remapper and into one-shot CLI sessions.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/TanaroSch/keyremap/internal/config"
	"github.com/TanaroSch/keyremap/internal/hotkey"
	"github.com/TanaroSch/keyremap/internal/keysend"
	"github.com/TanaroSch/keyremap/internal/logging"
	"github.com/TanaroSch/keyremap/internal/notify"
	"github.com/TanaroSch/keyremap/internal/remap"
	"github.com/TanaroSch/keyremap/internal/store"
	"github.com/TanaroSch/keyremap/internal/watch"
)

// AppName is used as notification title and application id.
const AppName = "keyremap"

// Application represents the running remapper.
type Application struct {
	config   *config.Config
	version  string
	log      *slog.Logger
	store    *store.Store
	registry *remap.Registry
	service  *hotkey.Service
	notifier *notify.Notifier
	manager  *remap.Manager

	// watchDelay is the store watcher debounce window.
	watchDelay time.Duration
}

// New creates a new application instance. When the platform has no usable
// global hotkey API the application falls back to the dry backend and
// keeps running without grabbing keys.
func New(cfg *config.Config, version string, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	st, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	reg := remap.NewRegistry(st, logger)

	notifier := notify.New(cfg.UseNotifications, AppName, logger)
	notifier.SetLookup(lookup(reg))

	backend, err := hotkey.SelectBackend(cfg.Backend, logger)
	if errors.Is(err, hotkey.ErrBackendNotAvailable) {
		logger.Warn("global hotkeys unavailable, mappings will not fire", "error", err)
		notifier.ShowNotification(AppName, "Global hotkeys are not available on this system")
		backend = hotkey.NewDryBackend(logger)
	} else if err != nil {
		return nil, err
	}
	service := hotkey.NewService(backend)

	return &Application{
		config:     cfg,
		version:    version,
		log:        logger,
		store:      st,
		registry:   reg,
		service:    service,
		notifier:   notifier,
		manager:    remap.NewManager(reg, service, keysend.NewSender(logger), notifier, logger),
		watchDelay: watch.DefaultDelay,
	}, nil
}

// Run loads and registers the mappings, then reloads them whenever the
// store changes on disk until ctx is done. Every binding is released
// before Run returns.
func (a *Application) Run(ctx context.Context) error {
	a.log.Info("keyremap starting", "version", a.version, "config", a.config.GetConfigPath(),
		"store", a.store.Path(), "backend", a.service.Backend().Name())

	if err := a.registry.Load(); err != nil {
		a.log.Error("could not load mappings", "path", a.store.Path(), "error", err)
	}
	a.manager.RegisterAll()
	a.log.Info("mappings registered", "count", a.registry.Len())

	var w *watch.Watcher
	var events <-chan struct{}
	if a.config.WatchStore {
		var err error
		if w, err = watch.New(a.store.Path(), a.watchDelay, a.log); err != nil {
			a.log.Warn("could not watch store, edits need a restart", "error", err)
			w = nil
		} else {
			defer w.Close()
			events = w.Events()
			a.log.Debug("watching store", "path", a.store.Path())
		}
	}

	for {
		select {
		case <-ctx.Done():
			return a.shutdown(w)
		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := a.manager.Reload(); err != nil {
				a.log.Warn("reload failed, keeping previous mappings", "error", err)
				continue
			}
			a.log.Info("mappings reloaded", "count", a.registry.Len())
		}
	}
}

// shutdown releases every binding. The registry is written back only when
// it tracked the store, so edits made on disk while unwatched survive. A
// change still inside the watcher's debounce window is loaded first.
func (a *Application) shutdown(w *watch.Watcher) error {
	a.log.Info("keyremap stopping")
	a.manager.UnregisterAll()
	if err := a.service.Close(); err != nil {
		a.log.Warn("could not release hotkeys", "error", err)
	}
	if w == nil {
		return nil
	}
	if err := w.Close(); err != nil {
		a.log.Debug("closing store watcher", "error", err)
	}
	if w.Pending() {
		a.log.Debug("store changed during shutdown, loading it before saving")
		if err := a.registry.Load(); err != nil {
			a.log.Warn("could not load pending store change, leaving the file as is", "error", err)
			return nil
		}
	}
	if err := a.registry.Save(); err != nil {
		return fmt.Errorf("save mappings: %w", err)
	}
	return nil
}

func openStore(cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	path := cfg.ResolveStorePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return store.New(path, logger), nil
}

func lookup(reg *remap.Registry) notify.Lookup {
	return func(id uuid.UUID) (notify.Mapping, bool) {
		e, ok := reg.Find(id)
		if !ok {
			return notify.Mapping{}, false
		}
		return notify.Mapping{Source: e.Source(), Target: e.Target()}, true
	}
}

// Describe renders a mapping for humans.
func Describe(source, target string) string {
	if source == "" {
		source = "(none)"
	}
	if target == "" {
		target = "(none)"
	}
	return source + " → " + target
}
