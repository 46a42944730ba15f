// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package session implements the session store: exclusive owner of Session
// state with TTL expiry, per-session write serialization, and idempotent
// answer recording. Three backends (memory, badger, redis) sit behind one
// interface; callers always receive snapshots.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/models"
)

// Store is the session persistence contract. Get and Update return
// faults.SessionExpired for missing or expired sessions and
// faults.Unavailable for backend failures.
type Store interface {
	// Create persists a new session, assigning its identifier and
	// timestamps, and arms the TTL.
	Create(ctx context.Context, sess *models.Session) (*models.Session, error)

	// Get returns a snapshot of the session.
	Get(ctx context.Context, id string) (*models.Session, error)

	// Update applies the mutator under the per-session lock, refreshes the
	// TTL, and returns the updated snapshot. The mutator sees the current
	// state; returning an error aborts the write.
	Update(ctx context.Context, id string, mutate func(*models.Session) error) (*models.Session, error)

	// Touch refreshes the TTL without mutating the session.
	Touch(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// newSessionID allocates a fresh 128-bit opaque identifier (36-char UUID).
func newSessionID() string {
	return uuid.New().String()
}

// stamp fills identity and timestamps on a freshly created session.
func stamp(sess *models.Session, now time.Time) {
	if sess.ID == "" {
		sess.ID = newSessionID()
	}
	sess.CreatedAt = now
	sess.UpdatedAt = now
}

// keyedMutex serializes writers per session ID. Entries are reference
// counted and removed when the last holder unlocks, so the map does not grow
// with dead sessions.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*lockEntry)}
}

// lock acquires the per-key mutex and returns its release func.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// retryStore retries each operation once when the backend reports
// Unavailable. Expired-session results are never retried.
type retryStore struct {
	inner Store
}

// WithRetry wraps a store with single-retry semantics for backend failures.
func WithRetry(inner Store) Store {
	return &retryStore{inner: inner}
}

func retriable(err error) bool {
	return err != nil && faults.IsCode(err, faults.CodeUnavailable)
}

func (r *retryStore) Create(ctx context.Context, sess *models.Session) (*models.Session, error) {
	out, err := r.inner.Create(ctx, sess)
	if retriable(err) {
		out, err = r.inner.Create(ctx, sess)
	}
	return out, err
}

func (r *retryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	out, err := r.inner.Get(ctx, id)
	if retriable(err) {
		out, err = r.inner.Get(ctx, id)
	}
	return out, err
}

func (r *retryStore) Update(ctx context.Context, id string, mutate func(*models.Session) error) (*models.Session, error) {
	out, err := r.inner.Update(ctx, id, mutate)
	if retriable(err) {
		out, err = r.inner.Update(ctx, id, mutate)
	}
	return out, err
}

func (r *retryStore) Touch(ctx context.Context, id string) error {
	err := r.inner.Touch(ctx, id)
	if retriable(err) {
		err = r.inner.Touch(ctx, id)
	}
	return err
}

func (r *retryStore) Close() error { return r.inner.Close() }
