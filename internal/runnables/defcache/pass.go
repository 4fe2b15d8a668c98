package defcache

import (
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-loglater"
)

// Pass identifies one recompute of the cached definition set. Its logger
// writes through a loglater collector so the records of a pass can be
// replayed when diagnosing a bad reload.
type Pass struct {
	// ID is the unique identifier for this pass
	ID uuid.UUID

	// StartedAt is when the pass was created
	StartedAt time.Time

	logger       *slog.Logger
	logCollector *loglater.LogCollector
}

// newPass creates a Pass for the given project.
func newPass(handler slog.Handler, projectRoot string) *Pass {
	id := uuid.Must(uuid.NewV6())

	logCollector := loglater.NewLogCollector(handler)
	logger := slog.New(logCollector).With(
		"pass_id", id,
		"project", projectRoot,
	)

	return &Pass{
		ID:           id,
		StartedAt:    time.Now(),
		logger:       logger,
		logCollector: logCollector,
	}
}

// Logger returns the pass-scoped logger.
func (p *Pass) Logger() *slog.Logger {
	return p.logger
}

// LogCollector exposes the collected log records of the pass.
func (p *Pass) LogCollector() *loglater.LogCollector {
	return p.logCollector
}
