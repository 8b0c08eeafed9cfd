// Package store persists hotkey mappings as a JSON array of
// {"source", "target"} records.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/TanaroSch/keyremap/internal/logging"
)

// ErrMissingField is matched by every *MissingFieldError.
var ErrMissingField = errors.New("missing field")

// Record is the persisted form of one mapping.
type Record struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// MissingFieldError reports a record without one of its required keys.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record is missing field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// UnmarshalJSON requires both "source" and "target" to be present.
// Empty strings are accepted; absent keys are not.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Source *string `json:"source"`
		Target *string `json:"target"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Source == nil {
		return &MissingFieldError{Field: "source"}
	}
	if raw.Target == nil {
		return &MissingFieldError{Field: "target"}
	}
	r.Source = *raw.Source
	r.Target = *raw.Target
	return nil
}

// MalformedError is returned by Read when the file exists but cannot be
// decoded into records.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed store '%s': %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Store reads and writes the mapping file at a fixed path.
type Store struct {
	path string
	log  *slog.Logger
}

// New creates a store for path. A nil logger discards output.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		path: path,
		log:  logger.With("component", "store"),
	}
}

// Path returns the file the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Read loads every record. A missing file yields an error matching
// os.ErrNotExist; undecodable content yields *MalformedError.
func (s *Store) Read() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read store '%s': %w", s.path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &MalformedError{Path: s.path, Err: err}
	}
	s.log.Debug("store loaded", "path", s.path, "records", len(records))
	return records, nil
}

// Write replaces the whole file with records. The write goes through a
// temp file and a rename so a crash never leaves a truncated store.
func (s *Store) Write(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	data = append(data, '\n')

	if s.log.Enabled(context.Background(), slog.LevelDebug) {
		previous, _ := os.ReadFile(s.path)
		changes, summary := lineDiff(string(previous), string(data))
		if len(changes) > 0 {
			s.log.Debug("store changed", "path", s.path, "summary", summary, "diff", strings.Join(changes, "\n"))
		}
	}

	if err := atomicWrite(s.path, data); err != nil {
		return err
	}
	s.log.Debug("store saved", "path", s.path, "records", len(records))
	return nil
}

// Backup copies the current file to "<path>.bak". It is used before a
// malformed store is overwritten with an empty one.
func (s *Store) Backup() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("backup store '%s': %w", s.path, err)
	}
	backupPath := s.path + ".bak"
	if err := atomicWrite(backupPath, data); err != nil {
		return "", err
	}
	s.log.Info("store backed up", "path", s.path, "backup", backupPath)
	return backupPath, nil
}
