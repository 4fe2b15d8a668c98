// Package finitestate provides the load-state machine guarding definition
// reloads.
//
// Load states:
//   - clean: the last discovery pass produced real definitions
//   - reloading: a recompute is in flight
//   - failed: the last pass needed the error placeholder
package finitestate

import (
	"context"
	"log/slog"

	"github.com/robbyt/go-fsm"
)

// Load state constants
const (
	StateClean     = "clean"
	StateReloading = "reloading"
	StateFailed    = "failed"
)

// LoadTransitions defines the valid load-state transitions. There is no
// terminal state: a failed pass is always retriable.
var LoadTransitions = map[string][]string{
	StateClean:     {StateReloading},
	StateReloading: {StateClean, StateFailed},
	StateFailed:    {StateReloading},
}

// Machine defines the interface for the load-state machine.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// TransitionIfCurrentState attempts to transition the state machine to the specified state
	TransitionIfCurrentState(currentState, newState string) error

	// SetState sets the state of the state machine to the specified state.
	SetState(state string) error

	// GetState returns the current state of the state machine.
	GetState() string

	// GetStateChan returns a channel that emits the state machine's state whenever it changes.
	// The channel is closed when the provided context is canceled.
	GetStateChan(ctx context.Context) <-chan string
}

// New creates a new load-state machine starting in the clean state.
func New(handler slog.Handler) (Machine, error) {
	return fsm.New(handler, StateClean, LoadTransitions)
}
