// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/cinebase/cinebase/internal/logging"
)

// GarbageCollector is the slice of the store this service needs.
type GarbageCollector interface {
	RunGC() error
}

// StoreGCService runs Badger value-log garbage collection on a fixed
// interval. Badger never reclaims value-log space on its own; without
// this loop the database grows unbounded under write load.
type StoreGCService struct {
	store    GarbageCollector
	interval time.Duration
}

// NewStoreGCService creates the GC loop with the given interval.
func NewStoreGCService(store GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &StoreGCService{store: store, interval: interval}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// One GC call rewrites at most one value log file, so keep
			// calling until there is nothing left to reclaim.
			for {
				err := s.store.RunGC()
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					logging.Warn().Err(err).Msg("Value log garbage collection failed")
					break
				}
				logging.Debug().Msg("Value log file garbage collected")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (s *StoreGCService) String() string {
	return "store-gc"
}
