// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package session

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/models"
)

const sessionKeyPrefix = "session:"

// BadgerStore is the durable backend. TTL is enforced by badger entry
// expiry, so expired sessions vanish without a sweeper.
type BadgerStore struct {
	db    *badger.DB
	ttl   time.Duration
	locks *keyedMutex
	now   func() time.Time
}

// NewBadgerStore creates a badger-backed store over an already-open DB.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	return &BadgerStore{
		db:    db,
		ttl:   ttl,
		locks: newKeyedMutex(),
		now:   time.Now,
	}
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

// Create persists a new session with TTL.
func (s *BadgerStore) Create(_ context.Context, sess *models.Session) (*models.Session, error) {
	stamp(sess, s.now())
	if err := s.put(sess); err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// Get returns a snapshot or SessionExpired.
func (s *BadgerStore) Get(_ context.Context, id string) (*models.Session, error) {
	return s.load(id)
}

// Update applies the mutator under the per-session lock and re-arms TTL.
func (s *BadgerStore) Update(_ context.Context, id string, mutate func(*models.Session) error) (*models.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := mutate(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = s.now()
	if err := s.put(sess); err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// Touch rewrites the record with a fresh TTL.
func (s *BadgerStore) Touch(_ context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.load(id)
	if err != nil {
		return err
	}
	return s.put(sess)
}

// Close is a no-op: the shared badger DB is owned by the caller.
func (s *BadgerStore) Close() error { return nil }

func (s *BadgerStore) load(id string) (*models.Session, error) {
	var sess models.Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errExpired(id)
		}
		if err != nil {
			return faults.Unavailable("session backend read failed", err)
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &sess); err != nil {
				return faults.Internal(err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *BadgerStore) put(sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return faults.Internal(err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(sess.ID), data).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return faults.Unavailable("session backend write failed", err)
	}
	return nil
}
