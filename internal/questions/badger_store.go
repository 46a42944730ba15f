// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package questions

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemoment/internal/models"
)

const questionKeyPrefix = "questions:"

// BadgerStore persists curated question sets in BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a store over an already-open badger database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// LoadQuestions returns the curated set for a domain, or (nil, nil) when
// none has been saved.
func (s *BadgerStore) LoadQuestions(_ context.Context, domain models.Domain) ([]models.Question, error) {
	var qs []models.Question
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(questionKeyPrefix + string(domain)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get questions: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &qs)
		})
	})
	if err != nil {
		return nil, err
	}
	return qs, nil
}

// SaveQuestions replaces the curated set for a domain.
func (s *BadgerStore) SaveQuestions(_ context.Context, domain models.Domain, qs []models.Question) error {
	data, err := json.Marshal(qs)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(questionKeyPrefix+string(domain)), data)
	})
}
