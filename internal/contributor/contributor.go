// Package contributor produces the ordered list of script definitions for a
// project's linked Gradle installation and tracks the failure state that
// drives cache reloads.
package contributor

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gradlekit/scriptdefs/internal/contributor/finitestate"
	"github.com/gradlekit/scriptdefs/internal/definition"
	"github.com/gradlekit/scriptdefs/internal/discovery"
	"github.com/gradlekit/scriptdefs/internal/loader"
	"github.com/gradlekit/scriptdefs/internal/settings"
)

// ReloadRequester triggers a recompute of the cached definition set sourced
// from one contributor.
type ReloadRequester interface {
	RequestReload(projectRoot string)
}

// Contributor discovers script definitions for one project. The host serializes
// calls per instance; the failure flag is the only state shared between the
// read path (Definitions) and the write paths (ReloadIfNecessary,
// OnSettingsChange), so it is the only atomic.
type Contributor struct {
	projectRoot string
	provider    settings.Provider
	loader      loader.TemplateLoader
	requester   ReloadRequester

	// failed records whether the last pass needed the error placeholder.
	failed atomic.Bool

	fsm    finitestate.Machine
	logger *slog.Logger
}

type Option func(*Contributor)

// WithLogHandler sets a custom log handler for the Contributor instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Contributor) {
		c.logger = slog.New(handler).WithGroup("contributor")
	}
}

// New creates a Contributor for the given project.
func New(
	projectRoot string,
	provider settings.Provider,
	ldr loader.TemplateLoader,
	requester ReloadRequester,
	opts ...Option,
) (*Contributor, error) {
	if projectRoot == "" {
		return nil, fmt.Errorf("project root cannot be empty")
	}
	if provider == nil {
		return nil, fmt.Errorf("settings provider cannot be nil")
	}
	if ldr == nil {
		return nil, fmt.Errorf("template loader cannot be nil")
	}

	c := &Contributor{
		projectRoot: projectRoot,
		provider:    provider,
		loader:      ldr,
		requester:   requester,
		logger:      slog.Default().WithGroup("contributor"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("project", projectRoot)

	fsm, err := finitestate.New(c.logger.WithGroup("fsm").Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create load-state machine: %w", err)
	}
	c.fsm = fsm

	return c, nil
}

// ProjectRoot returns the project this contributor serves.
func (c *Contributor) ProjectRoot() string {
	return c.projectRoot
}

// SetRequester installs the reload requester. The cache runner that serves
// this contributor is built after it, so the requester is wired in a second
// step, before any reload can be requested.
func (c *Contributor) SetRequester(requester ReloadRequester) {
	c.requester = requester
}

// String returns a short description of the contributor.
func (c *Contributor) String() string {
	return fmt.Sprintf("contributor.Contributor(%s)", c.projectRoot)
}

// Definitions recomputes the definition list for the project. The result is
// never empty: when every discovery attempt fails, it is a single error
// placeholder. Caching is the caller's responsibility.
func (c *Contributor) Definitions(ctx context.Context) []definition.ScriptDefinition {
	c.fsm.TransitionBool(finitestate.StateReloading)
	c.failed.Store(false)

	var defs []definition.ScriptDefinition
	var lastFailure *discovery.Failure

	for _, tmpl := range discovery.PrimaryTemplates {
		found, failure := discovery.Discover(ctx, c.provider, c.loader, c.projectRoot, tmpl)
		if failure != nil {
			c.logger.Debug("Template discovery failed",
				"template", tmpl.Class, "kind", failure.Kind, "error", failure)
			c.failed.Store(true)
			lastFailure = failure
			continue
		}
		defs = append(defs, found...)
	}

	// The legacy template is a fallback only: it is not attempted when any
	// primary template produced definitions.
	if len(defs) == 0 {
		found, failure := discovery.Discover(ctx, c.provider, c.loader, c.projectRoot, discovery.LegacyTemplate)
		if failure != nil {
			c.logger.Debug("Legacy template discovery failed",
				"template", discovery.LegacyTemplate.Class, "kind", failure.Kind, "error", failure)
			c.failed.Store(true)
			lastFailure = failure
		} else {
			defs = append(defs, found...)
		}
	}

	if len(defs) == 0 {
		c.failed.Store(true)
		message := discovery.PlaceholderMessage(c.provider, c.projectRoot, lastFailure)
		c.fsm.TransitionBool(finitestate.StateFailed)
		c.logger.Warn("No script definitions discovered", "reason", message)
		return []definition.ScriptDefinition{definition.NewPlaceholder(message)}
	}

	c.fsm.TransitionBool(finitestate.StateClean)
	result := definition.Dedupe(defs)
	c.logger.Debug("Script definitions discovered", "count", len(result))
	return result
}

// ReloadIfNecessary requests exactly one reload when a prior pass failed, and
// is a no-op otherwise. The compare-and-set keeps a racing settings-change
// notification from doubling the reload.
func (c *Contributor) ReloadIfNecessary() {
	if !c.failed.CompareAndSwap(true, false) {
		return
	}
	c.logger.Debug("Prior failure recorded, requesting reload")
	c.requestReload()
}

// OnSettingsChange handles one tracked installation-setting change. Any of the
// four tracked kinds invalidates the cache unconditionally, regardless of the
// failure flag.
func (c *Contributor) OnSettingsChange(kind settings.ChangeKind) {
	switch kind {
	case settings.ChangeVMOptions,
		settings.ChangeHomePath,
		settings.ChangeServiceDirectory,
		settings.ChangeDistributionType:
		c.logger.Debug("Installation setting changed, requesting reload", "kind", kind)
		c.requestReload()
	default:
		c.logger.Debug("Ignoring untracked setting change", "kind", kind)
	}
}

// LoadState returns the current load state (clean, reloading, or failed).
func (c *Contributor) LoadState() string {
	return c.fsm.GetState()
}

func (c *Contributor) requestReload() {
	if c.requester == nil {
		c.logger.Warn("No reload requester configured, dropping reload request")
		return
	}
	c.requester.RequestReload(c.projectRoot)
}
