package remap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/TanaroSch/keyremap/internal/logging"
	"github.com/TanaroSch/keyremap/internal/store"
)

// Registry is the ordered list of entries backed by a store. Order is
// insertion order and is kept across save and load.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	entries []*Entry
	store   *store.Store
	log     *slog.Logger
}

// NewRegistry returns an empty registry bound to st. Call Load to read it.
func NewRegistry(st *store.Store, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Registry{
		store: st,
		log:   logger.With("component", "registry"),
	}
}

// Load replaces the entries with the store content, each with a fresh id.
// A missing or malformed store leaves the registry empty and is replaced
// by an empty store; a malformed file is backed up first. Any other read
// error is returned and the current entries are kept.
func (r *Registry) Load() error {
	records, err := r.store.Read()
	if err != nil {
		var malformed *store.MalformedError
		switch {
		case errors.Is(err, os.ErrNotExist):
			r.log.Info("store not found, creating an empty one", "path", r.store.Path())
		case errors.As(err, &malformed):
			r.log.Warn("store is malformed, starting empty", "path", r.store.Path(), "error", err)
			if _, backupErr := r.store.Backup(); backupErr != nil {
				r.log.Warn("could not back up malformed store", "path", r.store.Path(), "error", backupErr)
			}
		default:
			return fmt.Errorf("load registry: %w", err)
		}

		r.entries = nil
		if err := r.store.Write(nil); err != nil {
			return fmt.Errorf("load registry: write empty store: %w", err)
		}
		return nil
	}

	entries := make([]*Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, NewEntryFromRecord(rec))
	}
	r.entries = entries
	r.log.Debug("entries loaded", "count", len(entries))
	return nil
}

// Save writes every valid entry to the store, replacing its content.
// Invalid entries stay in memory but are not persisted.
func (r *Registry) Save() error {
	records := make([]store.Record, 0, len(r.entries))
	for _, e := range r.entries {
		if e.IsValid() {
			records = append(records, e.Record())
		}
	}
	if err := r.store.Write(records); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	r.log.Debug("entries saved", "count", len(records), "dropped", len(r.entries)-len(records))
	return nil
}

// Entries returns the entries in order. The slice is a copy.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// At returns the entry at index i.
func (r *Registry) At(i int) (*Entry, bool) {
	if i < 0 || i >= len(r.entries) {
		return nil, false
	}
	return r.entries[i], true
}

// Find returns the entry with the given id.
func (r *Registry) Find(id uuid.UUID) (*Entry, bool) {
	for _, e := range r.entries {
		if e.id == id {
			return e, true
		}
	}
	return nil, false
}

func (r *Registry) append(e *Entry) {
	r.entries = append(r.entries, e)
}

func (r *Registry) remove(id uuid.UUID) bool {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}
