// Package session provides the backends holding each browser's view state
package session

import (
	"context"
	"sync"
	"time"

	"weatherlookup.app/pkg/errors"
)

// MemorySessionStore keeps session state in process memory.
// Expired entries are dropped lazily on access and swept on Save.
type MemorySessionStore struct {
	data      map[string]memoryEntry
	mutex     sync.RWMutex
	now       func() time.Time
	lastSweep time.Time
}

type memoryEntry struct {
	state     []byte
	expiresAt time.Time
}

const sweepInterval = time.Minute

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (s *MemorySessionStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	if sessionID == "" {
		return nil, errors.NewValidationError("session id cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	entry, exists := s.data[sessionID]
	s.mutex.RUnlock()

	if !exists || !s.now().Before(entry.expiresAt) {
		return nil, errors.NewNotFoundError("session not found")
	}

	out := make([]byte, len(entry.state))
	copy(out, entry.state)
	return out, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, sessionID string, state []byte, ttl time.Duration) error {
	if sessionID == "" {
		return errors.NewValidationError("session id cannot be empty")
	}
	if state == nil {
		return errors.NewValidationError("session state cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("session TTL must be positive")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := make([]byte, len(state))
	copy(stored, state)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	s.data[sessionID] = memoryEntry{state: stored, expiresAt: now.Add(ttl)}
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweep(now)
	}
	return nil
}

func (s *MemorySessionStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemorySessionStore) Name() string {
	return "memory"
}

// Len reports the number of stored sessions, expired ones included
func (s *MemorySessionStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// sweep must be called with the write lock held
func (s *MemorySessionStore) sweep(now time.Time) {
	for id, entry := range s.data {
		if !now.Before(entry.expiresAt) {
			delete(s.data, id)
		}
	}
	s.lastSweep = now
}
