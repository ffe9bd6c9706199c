// Package lookup models the weather lookup view: the query text and the
// request lifecycle of the most recent submission.
package lookup

import (
	"encoding/json"
	"fmt"
	"time"

	"weatherlookup.app/internal/core/weather"
	"weatherlookup.app/pkg/validation"
)

// FailureMessage is the only text users see when a lookup fails
const FailureMessage = "Error fetching weather data. Please try again."

// RequestState is one of Idle, Loading, Success or Failed.
type RequestState interface {
	Kind() StateKind
	isRequestState()
}

// StateKind names a RequestState variant
type StateKind string

const (
	KindIdle    StateKind = "idle"
	KindLoading StateKind = "loading"
	KindSuccess StateKind = "success"
	KindFailed  StateKind = "failed"
)

// Idle means no lookup has been submitted yet
type Idle struct{}

// Loading means a lookup is in flight
type Loading struct{}

// Success carries the snapshot of the latest completed lookup
type Success struct {
	Snapshot *weather.Snapshot
}

// Failed carries the message shown after a failed lookup
type Failed struct {
	Message string
}

func (Idle) Kind() StateKind    { return KindIdle }
func (Loading) Kind() StateKind { return KindLoading }
func (Success) Kind() StateKind { return KindSuccess }
func (Failed) Kind() StateKind  { return KindFailed }

func (Idle) isRequestState()    {}
func (Loading) isRequestState() {}
func (Success) isRequestState() {}
func (Failed) isRequestState()  {}

// ViewState is the immutable state of one lookup view. Transitions return a
// new value and never modify the receiver.
type ViewState struct {
	Query      string
	State      RequestState
	Generation uint64

	// SubmittedAt is when the current Loading state was entered
	SubmittedAt time.Time
}

// Current returns the request state, treating the zero value as Idle
func (v ViewState) Current() RequestState {
	if v.State == nil {
		return Idle{}
	}
	return v.State
}

// Submit starts a lookup for city. Blank input leaves the view untouched and
// reports false.
func (v ViewState) Submit(city string) (ViewState, bool) {
	trimmed, ok := validation.TrimAndValidate(city)
	if !ok {
		return v, false
	}
	return ViewState{
		Query:      trimmed,
		State:      Loading{},
		Generation: v.Generation + 1,
	}, true
}

// Resolve applies the outcome of the lookup started at generation. Outcomes of
// superseded submissions are dropped and reported as false.
func (v ViewState) Resolve(generation uint64, snapshot *weather.Snapshot, err error) (ViewState, bool) {
	if generation != v.Generation || v.Current().Kind() != KindLoading {
		return v, false
	}
	next := ViewState{Query: v.Query, Generation: v.Generation}
	if err != nil || snapshot == nil {
		next.State = Failed{Message: FailureMessage}
	} else {
		next.State = Success{Snapshot: snapshot}
	}
	return next, true
}

// Expire turns a Loading view entered before deadline into Failed. It covers
// lookups whose outcome could not be stored.
func (v ViewState) Expire(deadline time.Time) (ViewState, bool) {
	if v.Current().Kind() != KindLoading || v.SubmittedAt.IsZero() || !v.SubmittedAt.Before(deadline) {
		return v, false
	}
	return ViewState{Query: v.Query, State: Failed{Message: FailureMessage}, Generation: v.Generation}, true
}

type stateRecord struct {
	Query       string            `json:"query"`
	Kind        StateKind         `json:"kind"`
	Generation  uint64            `json:"generation"`
	SubmittedAt int64             `json:"submitted_at,omitempty"`
	Snapshot    *weather.Snapshot `json:"snapshot,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// MarshalJSON encodes the view for the session store
func (v ViewState) MarshalJSON() ([]byte, error) {
	rec := stateRecord{Query: v.Query, Generation: v.Generation}
	if !v.SubmittedAt.IsZero() {
		rec.SubmittedAt = v.SubmittedAt.UnixMilli()
	}
	switch s := v.Current().(type) {
	case Idle:
		rec.Kind = KindIdle
	case Loading:
		rec.Kind = KindLoading
	case Success:
		rec.Kind = KindSuccess
		rec.Snapshot = s.Snapshot
	case Failed:
		rec.Kind = KindFailed
		rec.Message = s.Message
	}
	return json.Marshal(rec)
}

// UnmarshalJSON decodes a view written by MarshalJSON
func (v *ViewState) UnmarshalJSON(data []byte) error {
	var rec stateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	var state RequestState
	switch rec.Kind {
	case KindIdle, "":
		state = Idle{}
	case KindLoading:
		state = Loading{}
	case KindSuccess:
		if rec.Snapshot == nil {
			return fmt.Errorf("success state without snapshot")
		}
		state = Success{Snapshot: rec.Snapshot}
	case KindFailed:
		state = Failed{Message: rec.Message}
	default:
		return fmt.Errorf("unknown state kind %q", rec.Kind)
	}

	*v = ViewState{Query: rec.Query, State: state, Generation: rec.Generation}
	if rec.SubmittedAt > 0 {
		v.SubmittedAt = time.UnixMilli(rec.SubmittedAt)
	}
	return nil
}
