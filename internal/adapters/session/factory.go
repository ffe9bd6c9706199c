package session

import (
	"fmt"

	"weatherlookup.app/internal/config"
	"weatherlookup.app/internal/ports"
	"weatherlookup.app/pkg/errors"
)

// CreateSessionStore builds the backend selected by SESSION_STORE
func CreateSessionStore(cfg *config.SessionConfig) (ports.SessionStore, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("session config cannot be nil", nil)
	}

	switch cfg.Store {
	case config.StoreTypeMemory:
		return NewMemorySessionStore(), nil
	case config.StoreTypeRedis:
		return NewRedisSessionStore(&cfg.Redis)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported session store: %s", cfg.Store.String()), nil)
	}
}
