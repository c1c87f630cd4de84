package generation

import (
	"errors"
	"sync"

	"github.com/ternarybob/arbor"
)

// ErrBusy is returned when a generation action is triggered while
// another is still in flight. Triggers are rejected, not queued.
var ErrBusy = errors.New("a generation action is already in progress")

// StatusTracker models the single global busy flag plus its
// human-readable label. Acquire/Release bracket every generation action;
// release is guaranteed on all exit paths via defer in the orchestrator.
type StatusTracker struct {
	mu     sync.RWMutex
	busy   bool
	label  string
	logger arbor.ILogger
}

// NewStatusTracker creates an idle tracker
func NewStatusTracker(logger arbor.ILogger) *StatusTracker {
	return &StatusTracker{logger: logger}
}

// Acquire enters the busy state with an action-specific label, or
// returns ErrBusy when another action holds it.
func (t *StatusTracker) Acquire(label string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.busy {
		t.logger.Warn().Str("in_flight", t.label).Str("rejected", label).Msg("Generation trigger rejected while busy")
		return ErrBusy
	}
	t.busy = true
	t.label = label
	t.logger.Info().Str("status", label).Msg("Generation started")
	return nil
}

// Release clears the busy state and label
func (t *StatusTracker) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = false
	t.label = ""
}

// Snapshot returns the current busy flag and status label
func (t *StatusTracker) Snapshot() (bool, string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.busy, t.label
}
