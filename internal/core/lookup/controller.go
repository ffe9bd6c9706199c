package lookup

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"weatherlookup.app/internal/core/weather"
	"weatherlookup.app/internal/ports"
	"weatherlookup.app/pkg/errors"
)

const (
	storeWriteTimeout     = 5 * time.Second
	storeWriteAttempts    = 3
	defaultLoadingTimeout = 30 * time.Second
)

// storeRetryDelay is multiplied by the attempt number between result writes
var storeRetryDelay = 100 * time.Millisecond

// Lookuper performs one weather lookup
type Lookuper interface {
	Lookup(ctx context.Context, request weather.LookupRequest) (*weather.Snapshot, error)
}

// Controller drives the lookup view of every session. State transitions for a
// session are serialized; the network call runs outside the session lock.
type Controller struct {
	store    ports.SessionStore
	lookuper Lookuper
	logger   ports.Logger
	ttl      time.Duration
	baseCtx  context.Context

	loadingTimeout time.Duration
	now            func() time.Time

	locks    *keyedMutex
	inflight sync.WaitGroup
}

type ControllerDependencies struct {
	Store    ports.SessionStore
	Lookuper Lookuper
	Logger   ports.Logger
	TTL      time.Duration
	// LoadingTimeout is how long a Loading view may go unresolved before it
	// is reported as Failed. Defaults to 30s.
	LoadingTimeout time.Duration
	// BaseContext bounds in-flight lookups; it outlives single HTTP requests.
	BaseContext context.Context
}

func NewController(deps ControllerDependencies) (*Controller, error) {
	if deps.Store == nil {
		return nil, errors.NewValidationError("session store is required")
	}
	if deps.Lookuper == nil {
		return nil, errors.NewValidationError("lookuper is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.TTL <= 0 {
		return nil, errors.NewValidationError("session TTL must be positive")
	}
	base := deps.BaseContext
	if base == nil {
		base = context.Background()
	}
	loadingTimeout := deps.LoadingTimeout
	if loadingTimeout <= 0 {
		loadingTimeout = defaultLoadingTimeout
	}

	return &Controller{
		store:    deps.Store,
		lookuper: deps.Lookuper,
		logger:   deps.Logger,
		ttl:      deps.TTL,
		baseCtx:  base,
		locks:    newKeyedMutex(),

		loadingTimeout: loadingTimeout,
		now:            time.Now,
	}, nil
}

// Submit handles a form submission for the session. Blank input is ignored
// and reported as false. A valid submission is stored as Loading before
// Submit returns; the lookup itself completes in the background.
func (c *Controller) Submit(ctx context.Context, sessionID, city string) (bool, error) {
	unlock := c.locks.Lock(sessionID)
	view, err := c.load(ctx, sessionID)
	if err != nil {
		unlock()
		return false, err
	}

	next, ok := view.Submit(city)
	if !ok {
		unlock()
		return false, nil
	}
	next.SubmittedAt = c.now()
	if err := c.save(ctx, sessionID, next); err != nil {
		unlock()
		return false, err
	}
	unlock()

	c.logger.Debug("Lookup submitted",
		ports.F("session", sessionID),
		ports.F("city", next.Query),
		ports.F("generation", next.Generation))

	c.inflight.Add(1)
	go c.run(sessionID, next.Query, next.Generation)
	return true, nil
}

// State returns the current view of the session. Unknown sessions are Idle.
// A Loading view older than the loading timeout is reported as Failed.
func (c *Controller) State(ctx context.Context, sessionID string) (ViewState, error) {
	view, err := c.load(ctx, sessionID)
	if err != nil {
		return ViewState{}, err
	}
	if expired, ok := view.Expire(c.now().Add(-c.loadingTimeout)); ok {
		c.logger.Warn("Lookup result never stored, reporting failure",
			ports.F("session", sessionID),
			ports.F("generation", view.Generation),
			ports.F("submitted_at", view.SubmittedAt))
		return expired, nil
	}
	return view, nil
}

// Wait blocks until every in-flight lookup has been resolved
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) run(sessionID, city string, generation uint64) {
	defer c.inflight.Done()

	snapshot, lookupErr := c.lookuper.Lookup(c.baseCtx, weather.LookupRequest{City: city})

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.baseCtx), storeWriteTimeout)
	defer cancel()

	unlock := c.locks.Lock(sessionID)
	defer unlock()

	view, err := c.load(ctx, sessionID)
	if err != nil {
		c.logger.Error("Failed to load session for lookup result",
			ports.F("session", sessionID), ports.F("error", err.Error()))
		return
	}

	next, applied := view.Resolve(generation, snapshot, lookupErr)
	if !applied {
		c.logger.Debug("Discarding superseded lookup result",
			ports.F("session", sessionID),
			ports.F("city", city),
			ports.F("generation", generation),
			ports.F("current_generation", view.Generation))
		return
	}

	if err := c.saveResult(ctx, sessionID, next); err != nil {
		c.logger.Error("Failed to store lookup result",
			ports.F("session", sessionID), ports.F("error", err.Error()))
		return
	}

	c.logger.Info("Lookup resolved",
		ports.F("session", sessionID),
		ports.F("city", city),
		ports.F("state", string(next.Current().Kind())))
}

// saveResult writes a resolved view, trying at most storeWriteAttempts times
func (c *Controller) saveResult(ctx context.Context, sessionID string, view ViewState) error {
	var err error
	for attempt := 1; attempt <= storeWriteAttempts; attempt++ {
		if err = c.save(ctx, sessionID, view); err == nil {
			return nil
		}
		if attempt == storeWriteAttempts {
			break
		}
		c.logger.Warn("Retrying lookup result write",
			ports.F("session", sessionID),
			ports.F("attempt", attempt),
			ports.F("error", err.Error()))
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt) * storeRetryDelay):
		}
	}
	return err
}

func (c *Controller) load(ctx context.Context, sessionID string) (ViewState, error) {
	data, err := c.store.Load(ctx, sessionID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return ViewState{}, nil
		}
		return ViewState{}, errors.NewSessionError("load session", err)
	}

	var view ViewState
	if err := json.Unmarshal(data, &view); err != nil {
		c.logger.Warn("Discarding unreadable session state",
			ports.F("session", sessionID), ports.F("error", err.Error()))
		return ViewState{}, nil
	}
	return view, nil
}

func (c *Controller) save(ctx context.Context, sessionID string, view ViewState) error {
	data, err := json.Marshal(view)
	if err != nil {
		return errors.NewSessionError("encode session", err)
	}
	if err := c.store.Save(ctx, sessionID, data, c.ttl); err != nil {
		return errors.NewSessionError("save session", err)
	}
	return nil
}

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedEntry)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
