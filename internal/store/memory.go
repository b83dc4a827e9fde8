// internal/store/memory.go
package store

import (
	"context"
	"sync"
	"time"
)

// Memory is a mutex-guarded in-process Store with the same CAS semantics as
// Postgres. Used by tests and by the server's dev mode when no database is
// configured.
type Memory struct {
	mu   sync.Mutex
	recs map[string]*Record
}

func NewMemory() *Memory {
	return &Memory{recs: make(map[string]*Record)}
}

func (s *Memory) Create(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[rec.ID]; ok {
		return ErrExists
	}
	now := time.Now()
	rec.Version = 1
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.recs[rec.ID] = snapshot(rec)
	return nil
}

func (s *Memory) Get(_ context.Context, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(rec), nil
}

func (s *Memory) Update(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.recs[rec.ID]
	if !ok {
		return ErrNotFound
	}
	if cur.Version != rec.Version {
		return ErrVersionConflict
	}
	rec.Version++
	rec.CreatedAt = cur.CreatedAt
	rec.UpdatedAt = time.Now()
	s.recs[rec.ID] = snapshot(rec)
	return nil
}

func (s *Memory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return ErrNotFound
	}
	delete(s.recs, id)
	return nil
}

// snapshot copies a record deeply enough that callers and the store never
// alias the same Game value.
func snapshot(rec *Record) *Record {
	cp := *rec
	if rec.Game != nil {
		cp.Game = rec.Game.Clone()
	}
	return &cp
}
