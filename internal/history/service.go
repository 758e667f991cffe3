package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Service exposes the history operations over an injected Store.
// It holds no state of its own; every operation re-reads the store, so
// retrying any operation with the store unchanged is idempotent. Callers
// are expected to serialize operations on the same log (the CLI runs one
// command at a time); concurrent writers race as last-writer-wins.
type Service struct {
	store Store
}

// NewService creates a Service over store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// LoadSingle returns the single-prediction log, newest first.
// An absent key yields an empty log.
func (s *Service) LoadSingle() ([]SinglePredictionRecord, error) {
	return readLog[SinglePredictionRecord](s.store, KeySingle)
}

// LoadBulk returns the bulk-aggregate log, newest first.
// Re-reading replaces any caller-held copy; there is no merge.
func (s *Service) LoadBulk() ([]BulkAggregateRecord, error) {
	return readLog[BulkAggregateRecord](s.store, KeyBulk)
}

// RecordSingle prepends rec to the single-prediction log, truncates to
// SingleCap, persists, and returns the updated log.
func (s *Service) RecordSingle(rec SinglePredictionRecord) ([]SinglePredictionRecord, error) {
	log, err := readLog[SinglePredictionRecord](s.store, KeySingle)
	if err != nil {
		return nil, err
	}
	log = prependCapped(log, rec, SingleCap)
	if err := writeLog(s.store, KeySingle, log); err != nil {
		return nil, err
	}
	return log, nil
}

// UpdateNote replaces the note on log[index] and persists the whole log.
// If persistence fails the in-memory edit is rolled back, so log and
// store never diverge.
func (s *Service) UpdateNote(log []SinglePredictionRecord, index int, note string) error {
	if index < 0 || index >= len(log) {
		return fmt.Errorf("history index %d out of range (log has %d entries)", index, len(log))
	}
	prev := log[index].Note
	log[index].Note = note
	if err := writeLog(s.store, KeySingle, log); err != nil {
		log[index].Note = prev
		return err
	}
	return nil
}

// ResetSingle clears the entire single-prediction log.
func (s *Service) ResetSingle() error {
	return s.store.Clear(KeySingle)
}

// CommitBulk prepends rec to the bulk-aggregate log, truncates to
// BulkCap, persists, and returns the updated log.
func (s *Service) CommitBulk(rec BulkAggregateRecord) ([]BulkAggregateRecord, error) {
	log, err := readLog[BulkAggregateRecord](s.store, KeyBulk)
	if err != nil {
		return nil, err
	}
	log = prependCapped(log, rec, BulkCap)
	if err := writeLog(s.store, KeyBulk, log); err != nil {
		return nil, err
	}
	return log, nil
}

// DeleteBulk removes the record whose CreatedAt equals createdAt and
// returns the updated log. An absent timestamp leaves the log unchanged
// and is not an error.
func (s *Service) DeleteBulk(createdAt time.Time) ([]BulkAggregateRecord, error) {
	log, err := readLog[BulkAggregateRecord](s.store, KeyBulk)
	if err != nil {
		return nil, err
	}
	kept := log[:0:0]
	removed := false
	for _, rec := range log {
		if !removed && rec.CreatedAt.Equal(createdAt) {
			removed = true
			continue
		}
		kept = append(kept, rec)
	}
	if !removed {
		return log, nil
	}
	if err := writeLog(s.store, KeyBulk, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func readLog[T any](store Store, key string) ([]T, error) {
	data, err := store.Read(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}
	var log []T
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return log, nil
}

func writeLog[T any](store Store, key string, log []T) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}
	data = append(data, '\n')
	return store.Write(key, data)
}
