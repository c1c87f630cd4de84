package badger

import (
	"errors"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// Maintenance runs scheduled value-log garbage collection against the
// Badger store. Badger never reclaims value-log space on its own, so a
// long-running process has to trigger GC periodically.
type Maintenance struct {
	db     *BadgerDB
	cron   *cron.Cron
	logger arbor.ILogger
}

// NewMaintenance creates a maintenance runner for the given database
func NewMaintenance(db *BadgerDB, logger arbor.ILogger) *Maintenance {
	return &Maintenance{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start schedules GC on the given cron expression. An empty schedule
// disables maintenance entirely.
func (m *Maintenance) Start(schedule string) error {
	if schedule == "" {
		m.logger.Debug().Msg("Storage maintenance disabled (empty schedule)")
		return nil
	}

	if _, err := m.cron.AddFunc(schedule, m.runGC); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", schedule, err)
	}

	m.cron.Start()
	m.logger.Info().Str("schedule", schedule).Msg("Storage maintenance scheduled")
	return nil
}

// Stop halts the maintenance schedule; a GC pass already in flight runs to completion
func (m *Maintenance) Stop() {
	m.cron.Stop()
}

func (m *Maintenance) runGC() {
	// RunValueLogGC rewrites at most one value-log file per call; loop
	// until it reports nothing left to rewrite.
	rewritten := 0
	for {
		err := m.db.Store().Badger().RunValueLogGC(0.5)
		if err != nil {
			if !errors.Is(err, badgerdb.ErrNoRewrite) {
				m.logger.Warn().Err(err).Msg("Badger value-log GC failed")
			}
			break
		}
		rewritten++
	}

	m.logger.Debug().Int("files_rewritten", rewritten).Msg("Badger value-log GC pass complete")
}
