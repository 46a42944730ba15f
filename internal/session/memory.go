// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package session

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/models"
)

// MemoryStore is the in-process backend. It backs tests and single-node
// deployments that accept losing sessions on restart.
type MemoryStore struct {
	ttl   time.Duration
	locks *keyedMutex

	mu       sync.RWMutex
	sessions map[string]memoryEntry

	// now is swappable in tests.
	now func() time.Time
}

type memoryEntry struct {
	sess      *models.Session
	expiresAt time.Time
}

// NewMemoryStore creates a memory-backed store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		locks:    newKeyedMutex(),
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// Create persists a new session and arms its TTL.
func (s *MemoryStore) Create(_ context.Context, sess *models.Session) (*models.Session, error) {
	now := s.now()
	stamp(sess, now)

	s.mu.Lock()
	s.sessions[sess.ID] = memoryEntry{sess: sess.Clone(), expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	return sess.Clone(), nil
}

// Get returns a snapshot or SessionExpired.
func (s *MemoryStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return nil, errExpired(id)
	}
	return entry.sess.Clone(), nil
}

// Update applies the mutator under the per-session lock and refreshes TTL.
func (s *MemoryStore) Update(_ context.Context, id string, mutate func(*models.Session) error) (*models.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	now := s.now()
	if !ok || now.After(entry.expiresAt) {
		return nil, errExpired(id)
	}

	working := entry.sess.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = now

	s.mu.Lock()
	s.sessions[id] = memoryEntry{sess: working, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	return working.Clone(), nil
}

// Touch refreshes the TTL without mutation.
func (s *MemoryStore) Touch(_ context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	now := s.now()
	if !ok || now.After(entry.expiresAt) {
		return errExpired(id)
	}
	entry.expiresAt = now.Add(s.ttl)
	s.sessions[id] = entry
	return nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error { return nil }

func errExpired(id string) error {
	return faults.SessionExpired("session " + id + " expired or not found")
}
