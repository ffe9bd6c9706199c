package session

import (
	"context"
	"time"

	"weatherlookup.app/internal/ports"
	"weatherlookup.app/pkg/errors"
)

// InstrumentedSessionStore counts store operations by result.
// A missing session is a successful load.
type InstrumentedSessionStore struct {
	store   ports.SessionStore
	metrics ports.SessionMetrics
}

func NewInstrumentedSessionStore(store ports.SessionStore, metrics ports.SessionMetrics) *InstrumentedSessionStore {
	return &InstrumentedSessionStore{store: store, metrics: metrics}
}

func (s *InstrumentedSessionStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	state, err := s.store.Load(ctx, sessionID)
	s.metrics.RecordSessionOperation(s.store.Name(), "load", err == nil || errors.IsNotFoundError(err))
	return state, err
}

func (s *InstrumentedSessionStore) Save(ctx context.Context, sessionID string, state []byte, ttl time.Duration) error {
	err := s.store.Save(ctx, sessionID, state, ttl)
	s.metrics.RecordSessionOperation(s.store.Name(), "save", err == nil)
	return err
}

func (s *InstrumentedSessionStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *InstrumentedSessionStore) Name() string {
	return s.store.Name()
}

// Unwrap returns the decorated store
func (s *InstrumentedSessionStore) Unwrap() ports.SessionStore {
	return s.store
}
