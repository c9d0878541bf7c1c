// Between Us - Couples Companion Content Engine
// Copyright 2026 Brit Hornick (brithornick92-max)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/brithornick92-max/BetweenUs-sub001

package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/brithornick92-max/BetweenUs-sub001/internal/metrics"
)

// maintenanceStore is the slice of the history store the maintenance loop
// needs: retention pruning and value-log garbage collection.
type maintenanceStore interface {
	PruneMonths(ctx context.Context, now time.Time) (int, error)
	RunGC() error
}

// MaintenanceService periodically prunes expired history buckets and runs
// badger value-log GC. Failures are logged and retried on the next tick;
// they never crash the service.
type MaintenanceService struct {
	store    maintenanceStore
	interval time.Duration
	logger   zerolog.Logger
}

// NewMaintenanceService creates the maintenance loop. interval must be
// positive; it defaults to ten minutes otherwise.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(store maintenanceStore, interval time.Duration, logger zerolog.Logger) *MaintenanceService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &MaintenanceService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "maintenance").Logger(),
	}
}

// Serve implements suture.Service.
func (m *MaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.runOnce(ctx)
		}
	}
}

func (m *MaintenanceService) runOnce(ctx context.Context) {
	pruned, err := m.store.PruneMonths(ctx, time.Now())
	metrics.RecordHistoryOperation("prune", err)
	if err != nil {
		m.logger.Warn().Err(err).Msg("history pruning failed")
	} else if pruned > 0 {
		m.logger.Info().Int("buckets", pruned).Msg("pruned expired history")
	}

	err = m.store.RunGC()
	metrics.RecordHistoryOperation("gc", err)
	if err != nil {
		m.logger.Warn().Err(err).Msg("value log gc failed")
	}
}

// String identifies the service in suture's event log.
func (m *MaintenanceService) String() string {
	return "storage-maintenance"
}
