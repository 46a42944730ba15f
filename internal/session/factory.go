// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package session

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/cinemoment/internal/config"
)

// NewStore builds the configured backend wrapped with single-retry
// semantics. The badger DB is shared with the caches and owned by the
// caller; it may be nil for the memory and redis backends.
func NewStore(cfg config.SessionConfig, db *badger.DB) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return WithRetry(NewMemoryStore(cfg.TTL)), nil
	case "badger":
		if db == nil {
			return nil, fmt.Errorf("session backend badger requires an open database")
		}
		return WithRetry(NewBadgerStore(db, cfg.TTL)), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPass,
		})
		return WithRetry(NewRedisStore(client, cfg.TTL)), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
