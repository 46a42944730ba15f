// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package session

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/models"
)

// RedisStore is the shared-backend option for multi-node deployments.
// Writers on the same session still serialize through the local keyed mutex;
// cross-node serialization is out of scope for the core (each session is
// sticky to one node at the transport layer).
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	locks  *keyedMutex
	now    func() time.Time
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		locks:  newKeyedMutex(),
		now:    time.Now,
	}
}

func redisKey(id string) string {
	return sessionKeyPrefix + id
}

// Create persists a new session with TTL.
func (s *RedisStore) Create(ctx context.Context, sess *models.Session) (*models.Session, error) {
	stamp(sess, s.now())
	if err := s.put(ctx, sess); err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// Get returns a snapshot or SessionExpired.
func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	return s.load(ctx, id)
}

// Update applies the mutator under the per-session lock and re-arms TTL.
func (s *RedisStore) Update(ctx context.Context, id string, mutate func(*models.Session) error) (*models.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = s.now()
	if err := s.put(ctx, sess); err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// Touch refreshes the TTL without rewriting the record.
func (s *RedisStore) Touch(ctx context.Context, id string) error {
	ok, err := s.client.Expire(ctx, redisKey(id), s.ttl).Result()
	if err != nil {
		return faults.Unavailable("session backend expire failed", err)
	}
	if !ok {
		return errExpired(id)
	}
	return nil
}

// Close closes the redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) load(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errExpired(id)
	}
	if err != nil {
		return nil, faults.Unavailable("session backend read failed", err)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, faults.Internal(err)
	}
	return &sess, nil
}

func (s *RedisStore) put(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return faults.Internal(err)
	}
	if err := s.client.Set(ctx, redisKey(sess.ID), data, s.ttl).Err(); err != nil {
		return faults.Unavailable("session backend write failed", err)
	}
	return nil
}
