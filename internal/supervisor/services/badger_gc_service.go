// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cinemoment/internal/logging"
)

// ValueLogGC matches the badger DB method used for value-log garbage
// collection, kept as an interface so tests can substitute a fake.
type ValueLogGC interface {
	RunValueLogGC(discardRatio float64) error
}

// BadgerGCService runs badger value-log garbage collection on a fixed
// interval. Badger never reclaims value-log space on its own; without this
// loop the session store's disk usage only grows.
type BadgerGCService struct {
	db           ValueLogGC
	interval     time.Duration
	discardRatio float64
	name         string
}

// NewBadgerGCService creates a GC loop over an open badger DB. A discard
// ratio of 0.5 means a value-log file is rewritten once half of it is stale.
func NewBadgerGCService(db ValueLogGC, interval time.Duration, discardRatio float64) *BadgerGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &BadgerGCService{
		db:           db,
		interval:     interval,
		discardRatio: discardRatio,
		name:         "badger-gc",
	}
}

// Serve implements suture.Service. Each tick it runs GC repeatedly until
// badger reports nothing left to rewrite.
func (g *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			g.collect(ctx)
		}
	}
}

func (g *BadgerGCService) collect(ctx context.Context) {
	rewritten := 0
	for {
		if ctx.Err() != nil {
			return
		}
		err := g.db.RunValueLogGC(g.discardRatio)
		if err == nil {
			rewritten++
			continue
		}
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			break
		}
		logging.Warn().Err(err).Msg("Badger value-log GC failed")
		return
	}
	if rewritten > 0 {
		logging.Debug().Int("files_rewritten", rewritten).Msg("Badger value-log GC completed")
	}
}

// String implements fmt.Stringer for supervisor log output.
func (g *BadgerGCService) String() string {
	return g.name
}
