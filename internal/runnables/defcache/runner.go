// Package defcache owns the cached script definition set for one project. It
// recomputes the set through the project's contributor whenever a reload is
// requested and broadcasts the replacement to subscribers. Invalidation is
// whole-set: there is no partial cache update.
package defcache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gradlekit/scriptdefs/internal/contributor"
	"github.com/gradlekit/scriptdefs/internal/definition"
	"github.com/gradlekit/scriptdefs/internal/runnables/finitestate"
	"github.com/robbyt/go-supervisor/supervisor"
)

var (
	_ supervisor.Runnable         = (*Runner)(nil)
	_ supervisor.Reloadable       = (*Runner)(nil)
	_ supervisor.Stateable        = (*Runner)(nil)
	_ contributor.ReloadRequester = (*Runner)(nil)
)

// Runner caches the definitions produced by a single contributor.
type Runner struct {
	contrib         *contributor.Contributor
	lastDefinitions atomic.Pointer[[]definition.ScriptDefinition]
	reloadCh        chan struct{}

	logger *slog.Logger
	fsm    finitestate.Machine

	runCtx    context.Context
	runCancel context.CancelFunc
	parentCtx context.Context

	subscribers       sync.Map
	subscriberCounter atomic.Uint64
}

// NewRunner creates a Runner caching definitions for the given contributor.
func NewRunner(contrib *contributor.Contributor, opts ...Option) (*Runner, error) {
	if contrib == nil {
		return nil, fmt.Errorf("contributor cannot be nil")
	}

	runner := &Runner{
		contrib:   contrib,
		reloadCh:  make(chan struct{}, 1),
		logger:    slog.Default().WithGroup("defcache.Runner"),
		parentCtx: context.Background(),
	}

	// Apply functional options
	for _, opt := range opts {
		opt(runner)
	}

	fsm, err := finitestate.New(runner.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	runner.fsm = fsm

	return runner, nil
}

// String implements the supervisor.Runnable interface
func (r *Runner) String() string {
	return "defcache.Runner"
}

// Run implements the supervisor.Runnable interface
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting Runner")

	if err := r.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	r.runCtx, r.runCancel = context.WithCancel(ctx)

	// Compute the initial definition set
	r.recompute(r.runCtx)

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		return fmt.Errorf("failed to transition to running state: %w", err)
	}

	for {
		select {
		case <-r.parentCtx.Done():
			r.logger.Debug("Parent context canceled")
			return r.shutdown()
		case <-r.runCtx.Done():
			r.logger.Debug("Run context canceled")
			return r.shutdown()
		case <-r.reloadCh:
			r.recompute(r.runCtx)
		}
	}
}

func (r *Runner) shutdown() error {
	r.logger.Info("Runner shutting down")

	if r.fsm.GetState() != finitestate.StatusStopping {
		if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
			r.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}

	if err := r.fsm.Transition(finitestate.StatusStopped); err != nil {
		return fmt.Errorf("failed to transition to stopped state: %w", err)
	}

	// Clear the cached definition set
	r.lastDefinitions.Store(nil)

	return nil
}

// Stop implements the supervisor.Runnable interface
func (r *Runner) Stop() {
	r.logger.Debug("Stopping Runner")
	if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
		r.logger.Error("Failed to transition to stopping state", "error", err)
		// Continue with shutdown despite the state transition error
	}
	if r.runCancel != nil {
		r.runCancel()
	}
}

// Reload implements the supervisor.Reloadable interface
func (r *Runner) Reload() {
	r.logger.Debug("Starting Reload...")
	ctx := r.runCtx
	if ctx == nil {
		ctx = r.parentCtx
	}
	r.recompute(ctx)
	r.logger.Debug("Reload completed")
}

// RequestReload implements the contributor.ReloadRequester interface. The send
// is non-blocking: a pending request already covers this one.
func (r *Runner) RequestReload(projectRoot string) {
	select {
	case r.reloadCh <- struct{}{}:
		r.logger.Debug("Reload requested", "project", projectRoot)
	default:
		r.logger.Debug("Reload already pending", "project", projectRoot)
	}
}

// recompute runs one pass through the contributor and broadcasts the result
// when the definition set changed.
func (r *Runner) recompute(ctx context.Context) {
	pass := newPass(r.logger.Handler(), r.contrib.ProjectRoot())
	pass.Logger().Debug("Recomputing script definitions")

	defs := r.contrib.Definitions(ctx)

	old := r.lastDefinitions.Load()
	if old != nil && equalSets(*old, defs) {
		pass.Logger().Debug("Definition set unchanged, skipping broadcast")
		return
	}

	r.lastDefinitions.Store(&defs)
	r.broadcast(defs)
	pass.Logger().Debug("Definition set replaced", "count", len(defs))
}

// GetDefinitions returns the cached definition set, or nil before the first pass.
func (r *Runner) GetDefinitions() []definition.ScriptDefinition {
	defs := r.lastDefinitions.Load()
	if defs == nil {
		return nil
	}
	return *defs
}

// GetDefinitionsChan returns a channel receiving each replacement definition
// set. The current set is delivered immediately when available.
func (r *Runner) GetDefinitionsChan() <-chan []definition.ScriptDefinition {
	ch := make(chan []definition.ScriptDefinition, 1)

	if current := r.lastDefinitions.Load(); current != nil {
		select {
		case ch <- *current:
		default: // channel full, skip
		}
	}

	id := r.subscriberCounter.Add(1)
	r.subscribers.Store(id, ch)

	// Cleanup when Runner's parent context is done
	go func() {
		<-r.parentCtx.Done()
		r.subscribers.Delete(id)
		close(ch)
	}()

	return ch
}

// broadcast sends the definition set to all subscribers
func (r *Runner) broadcast(defs []definition.ScriptDefinition) {
	r.subscribers.Range(func(key, value any) bool {
		ch, ok := value.(chan []definition.ScriptDefinition)
		if !ok {
			r.logger.Error("Invalid subscriber channel type", "key", key)
			r.subscribers.Delete(key)
			return true
		}

		select {
		case ch <- defs:
			r.logger.Debug("Definition set sent to subscriber", "subscriber_id", key)
		default:
			r.logger.Warn("Subscriber channel full, skipping", "subscriber_id", key)
		}
		return true
	})
}

// equalSets compares two definition sets by identity and order.
func equalSets(a, b []definition.ScriptDefinition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}
