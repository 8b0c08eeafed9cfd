// Package watch reports changes to the mapping store made by other
// processes or editors.
package watch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/TanaroSch/keyremap/internal/logging"
)

// DefaultDelay is the debounce window applied to bursts of events.
const DefaultDelay = 200 * time.Millisecond

// Watcher watches the directory holding a single file and signals on
// Events when that file's content changed.
type Watcher struct {
	fsw    *fsnotify.Watcher
	path   string
	base   string
	delay  time.Duration
	log    *slog.Logger
	events chan struct{}

	lastHash  string
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New starts watching path. The parent directory must exist.
func New(path string, delay time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	abs = filepath.Clean(abs)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory, editors replace the file via rename.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch '%s': %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fsw:    fsw,
		path:   abs,
		base:   filepath.Base(abs),
		delay:  delay,
		log:    logger.With("component", "watch"),
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	w.lastHash, _ = fileHash(abs)

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Events delivers one value per settled change. Pending signals coalesce.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher. Events is closed afterwards.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.events)
	})
	return err
}

// Pending reports whether a change has not been consumed from Events yet:
// a signal is queued, or the file differs from the content last signalled
// (an event still inside the debounce window). Call it after Close.
func (w *Watcher) Pending() bool {
	if len(w.events) > 0 {
		return true
	}
	hash, err := fileHash(w.path)
	if err != nil {
		hash = ""
	}
	return hash != w.lastHash
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !shouldReload(w.path, w.base, event) {
				continue
			}
			w.log.Debug("store event", "op", event.Op.String(), "name", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", "error", err)
		case <-fire:
			fire = nil
			if !w.changed() {
				w.log.Debug("store content unchanged, ignoring event")
				continue
			}
			select {
			case w.events <- struct{}{}:
			default:
			}
		}
	}
}

// changed reports whether the file content differs from the last signal.
// A missing file counts as a change once.
func (w *Watcher) changed() bool {
	hash, err := fileHash(w.path)
	if err != nil {
		hash = ""
	}
	if hash == w.lastHash {
		return false
	}
	w.lastHash = hash
	return true
}

// shouldReload reports whether an fsnotify event names the watched file.
func shouldReload(path, base string, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == path {
		return true
	}
	// Some editors write via temp + rename, resulting in partial paths.
	return filepath.Base(name) == base
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
