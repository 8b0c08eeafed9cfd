// Package remap keeps the list of key remappings, resolves conflicts
// between them and drives their registration as global hotkeys.
package remap

import (
	"errors"

	"github.com/google/uuid"

	"github.com/TanaroSch/keyremap/internal/store"
)

// ErrNotFound is returned when an id does not name an entry.
var ErrNotFound = errors.New("hotkey not found")

// Entry is one source chord → target key mapping.
type Entry struct {
	id       uuid.UUID
	source   string
	target   string
	disabled bool
	handle   Handle // nil while unbound
}

func newEntry(source, target string) *Entry {
	return &Entry{
		id:     uuid.New(),
		source: source,
		target: target,
	}
}

// NewEntryFromRecord builds an entry with a fresh id from a persisted record.
func NewEntryFromRecord(rec store.Record) *Entry {
	return newEntry(rec.Source, rec.Target)
}

func (e *Entry) ID() uuid.UUID  { return e.id }
func (e *Entry) Source() string { return e.source }
func (e *Entry) Target() string { return e.target }

// Disabled reports whether the last sanitize pass found a collision on
// this entry's source or target.
func (e *Entry) Disabled() bool { return e.disabled }

// IsValid reports whether both source and target are set.
func (e *Entry) IsValid() bool {
	return e.source != "" && e.target != ""
}

// IsRegistered reports whether the entry currently holds a hotkey binding.
func (e *Entry) IsRegistered() bool {
	return e.handle != nil
}

// Record returns the persisted form of the entry.
func (e *Entry) Record() store.Record {
	return store.Record{Source: e.source, Target: e.target}
}
