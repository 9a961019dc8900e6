// Package codestore keeps verification codes with a time to live, in memory
// or on Redis.
package codestore

import (
	"context"
	"sync"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/verification"
)

type entry struct {
	code      verification.Code
	expiresAt time.Time
}

// MemoryStore is a process-local CodeStore. Expired entries are invisible to
// reads and removed by SweepExpired.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	clock   kernel.Clock
}

func NewMemoryStore(clock kernel.Clock) *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry), clock: clock}
}

func (s *MemoryStore) Put(_ context.Context, key string, code verification.Code, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{code: code, expiresAt: s.clock.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) GetIfNotExpired(_ context.Context, key string) (verification.Code, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !s.clock.Now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.code, true, nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) SweepExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	removed := 0
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}
