// Package settingswatcher watches the scriptdefs settings file and forwards
// tracked installation-setting changes to the registered contributors. Only
// the four tracked change kinds are forwarded; everything else a settings
// edit touches is ignored here.
package settingswatcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gradlekit/scriptdefs/internal/contributor"
	"github.com/gradlekit/scriptdefs/internal/runnables/finitestate"
	"github.com/gradlekit/scriptdefs/internal/settings"
	"github.com/robbyt/go-supervisor/supervisor"
)

var (
	_ supervisor.Runnable   = (*Runner)(nil)
	_ supervisor.Reloadable = (*Runner)(nil)
	_ supervisor.Stateable  = (*Runner)(nil)
)

const defaultDebounce = 500 * time.Millisecond

// Runner watches a settings file and notifies contributors of tracked changes.
type Runner struct {
	filePath string
	registry *contributor.Registry

	mu          sync.Mutex
	snapshot    map[string]*settings.Settings
	pendingAt   time.Time
	pending     bool
	debounceDur time.Duration

	logger *slog.Logger
	fsm    finitestate.Machine

	runCtx    context.Context
	runCancel context.CancelFunc
	parentCtx context.Context
}

// NewRunner creates a Runner watching the given settings file.
func NewRunner(filePath string, registry *contributor.Registry, opts ...Option) (*Runner, error) {
	if filePath == "" {
		return nil, fmt.Errorf("settings file path cannot be empty")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}

	runner := &Runner{
		filePath:    filePath,
		registry:    registry,
		snapshot:    make(map[string]*settings.Settings),
		debounceDur: defaultDebounce,
		logger:      slog.Default().WithGroup("settingswatcher.Runner"),
		parentCtx:   context.Background(),
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
	return "settingswatcher.Runner"
}

// Run implements the supervisor.Runnable interface
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting Runner", "file", r.filePath)

	if err := r.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	r.runCtx, r.runCancel = context.WithCancel(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.setStateError()
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			r.logger.Error("Failed to close file watcher", "error", err)
		}
	}()

	// Watch the parent directory: editors replace the file via rename, which
	// drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(r.filePath)); err != nil {
		r.setStateError()
		return fmt.Errorf("failed to watch settings directory: %w", err)
	}

	r.loadSnapshot()

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		return fmt.Errorf("failed to transition to running state: %w", err)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-r.parentCtx.Done():
			r.logger.Debug("Parent context canceled")
			return r.shutdown()
		case <-r.runCtx.Done():
			r.logger.Debug("Run context canceled")
			return r.shutdown()
		case event, ok := <-watcher.Events:
			if !ok {
				r.logger.Debug("Watcher event channel closed")
				return r.shutdown()
			}
			r.handleEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				r.logger.Debug("Watcher error channel closed")
				return r.shutdown()
			}
			r.logger.Error("File watcher error", "error", err)
		case <-ticker.C:
			r.processSettled()
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

	return nil
}

// Stop implements the supervisor.Runnable interface
func (r *Runner) Stop() {
	r.logger.Debug("Stopping Runner")
	if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
		r.logger.Error("Failed to transition to stopping state", "error", err)
	}
	if r.runCancel != nil {
		r.runCancel()
	}
}

// Reload implements the supervisor.Reloadable interface. It re-reads the
// settings file immediately instead of waiting for a filesystem event.
func (r *Runner) Reload() {
	r.logger.Debug("Starting Reload...")
	r.applyChanges()
	r.logger.Debug("Reload completed")
}

// handleEvent records a debounced change for the watched settings file.
func (r *Runner) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(r.filePath) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	r.logger.Debug("Settings file event", "op", event.Op.String())

	r.mu.Lock()
	r.pending = true
	r.pendingAt = time.Now()
	r.mu.Unlock()
}

// processSettled applies a pending change once it has settled past the
// debounce window, so a burst of editor writes triggers a single pass.
func (r *Runner) processSettled() {
	r.mu.Lock()
	settled := r.pending && time.Since(r.pendingAt) >= r.debounceDur
	if settled {
		r.pending = false
	}
	r.mu.Unlock()

	if settled {
		r.applyChanges()
	}
}

// loadSnapshot seeds the per-project snapshot from the current file contents.
func (r *Runner) loadSnapshot() {
	current := r.readProjects()

	r.mu.Lock()
	r.snapshot = current
	r.mu.Unlock()
}

// applyChanges re-reads the settings file, diffs each registered project
// against its snapshot, and forwards tracked changes to its contributor.
func (r *Runner) applyChanges() {
	current := r.readProjects()

	r.mu.Lock()
	previous := r.snapshot
	r.snapshot = current
	r.mu.Unlock()

	r.registry.Range(func(c *contributor.Contributor) bool {
		root := c.ProjectRoot()
		changes := settings.Diff(previous[root], current[root])
		for _, kind := range changes {
			r.logger.Info("Installation setting changed",
				"project", root,
				"change", kind.String(),
			)
			c.OnSettingsChange(kind)
		}
		return true
	})
}

// readProjects parses the settings file into a per-project map. A missing or
// unreadable file yields an empty map, which diffs as every record removed.
func (r *Runner) readProjects() map[string]*settings.Settings {
	projects := make(map[string]*settings.Settings)

	file, err := settings.FromFile(r.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("Settings file absent", "file", r.filePath)
		} else {
			r.logger.Warn("Failed to read settings file", "file", r.filePath, "error", err)
		}
		return projects
	}

	for i := range file.Projects {
		s := file.Projects[i]
		projects[s.ProjectRoot] = &s
	}
	return projects
}
