package app

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TanaroSch/keyremap/internal/config"
	"github.com/TanaroSch/keyremap/internal/hotkey"
	"github.com/TanaroSch/keyremap/internal/keysend"
	"github.com/TanaroSch/keyremap/internal/logging"
	"github.com/TanaroSch/keyremap/internal/remap"
)

// MsgUnknownTarget flags a target the key sender cannot produce.
const MsgUnknownTarget = "Target key not supported"

// Problem is one issue found with a mapping. Index is zero-based.
type Problem struct {
	Index   int
	Source  string
	Target  string
	Message string
}

type report struct {
	id      uuid.UUID
	message string
}

// recorder keeps the reports of the latest sanitize pass.
type recorder struct {
	reports []report
}

func (r *recorder) ErrorCleared() { r.reports = nil }

func (r *recorder) ErrorTriggered(id uuid.UUID, message string) {
	r.reports = append(r.reports, report{id: id, message: message})
}

// Session edits the store outside the running remapper. Chords are
// validated through the dry backend so nothing is grabbed.
type Session struct {
	manager  *remap.Manager
	registry *remap.Registry
	service  *hotkey.Service
	recorder *recorder
	log      *slog.Logger
}

// OpenSession loads the store and validates every mapping.
func OpenSession(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	st, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	reg := remap.NewRegistry(st, logger)
	if err := reg.Load(); err != nil {
		return nil, fmt.Errorf("load mappings: %w", err)
	}

	rec := &recorder{}
	service := hotkey.NewService(hotkey.NewDryBackend(logger))
	s := &Session{
		manager:  remap.NewManager(reg, service, nil, rec, logger),
		registry: reg,
		service:  service,
		recorder: rec,
		log:      logger,
	}
	s.manager.RegisterAll()
	return s, nil
}

// Entries returns the mappings in store order.
func (s *Session) Entries() []*remap.Entry {
	return s.registry.Entries()
}

// Add appends a mapping and returns it.
func (s *Session) Add(source, target string) *remap.Entry {
	s.manager.BeginEdit()
	defer s.manager.EndEdit()
	return s.manager.Create(source, target)
}

// Remove deletes the mapping at index.
func (s *Session) Remove(index int) error {
	e, err := s.at(index)
	if err != nil {
		return err
	}
	s.manager.BeginEdit()
	defer s.manager.EndEdit()
	return s.manager.Delete(e.ID())
}

// SetSource changes the chord of the mapping at index.
func (s *Session) SetSource(index int, source string) error {
	e, err := s.at(index)
	if err != nil {
		return err
	}
	s.manager.BeginEdit()
	defer s.manager.EndEdit()
	return s.manager.ModifySource(e.ID(), source)
}

// SetTarget changes the target key of the mapping at index.
func (s *Session) SetTarget(index int, target string) error {
	e, err := s.at(index)
	if err != nil {
		return err
	}
	s.manager.BeginEdit()
	defer s.manager.EndEdit()
	return s.manager.ModifyTarget(e.ID(), target)
}

// Problems lists conflicts, chords that failed validation and targets the
// key sender does not know, in store order.
func (s *Session) Problems() []Problem {
	byID := make(map[uuid.UUID][]string)
	for _, r := range s.recorder.reports {
		byID[r.id] = append(byID[r.id], r.message)
	}

	var problems []Problem
	for i, e := range s.registry.Entries() {
		messages := byID[e.ID()]
		if e.Target() != "" && !keysend.IsKnown(e.Target()) {
			messages = append(messages, MsgUnknownTarget)
		}
		for _, msg := range messages {
			problems = append(problems, Problem{Index: i, Source: e.Source(), Target: e.Target(), Message: msg})
		}
	}
	return problems
}

// Close releases the dry bindings and writes the store.
func (s *Session) Close() error {
	s.manager.UnregisterAll()
	if err := s.service.Close(); err != nil {
		s.log.Warn("could not release hotkeys", "error", err)
	}
	if err := s.registry.Save(); err != nil {
		return fmt.Errorf("save mappings: %w", err)
	}
	return nil
}

func (s *Session) at(index int) (*remap.Entry, error) {
	e, ok := s.registry.At(index)
	if !ok {
		return nil, fmt.Errorf("no mapping at index %d: %w", index+1, remap.ErrNotFound)
	}
	return e, nil
}
