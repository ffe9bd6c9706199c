package ports

import (
	"context"
	"time"
)

// SessionStore holds the serialized view state of each browser session.
// Load returns a NotFound application error for unknown or expired sessions.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, state []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Name() string
}

// SessionMetrics defines the contract for session store instrumentation
type SessionMetrics interface {
	RecordSessionOperation(store, operation string, success bool)
}
