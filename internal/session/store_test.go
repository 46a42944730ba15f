// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/cinemoment/internal/config"
	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/models"
)

func configFor(backend string) config.SessionConfig {
	return config.SessionConfig{Backend: backend, TTL: time.Hour}
}

// backends lists every store implementation under one test surface so the
// contract holds regardless of the configured backend.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return map[string]Store{
		"memory": NewMemoryStore(time.Hour),
		"badger": NewBadgerStore(db, time.Hour),
		"redis":  NewRedisStore(client, time.Hour),
	}
}

func newSession() *models.Session {
	return &models.Session{
		Domain: models.DomainMovies,
		Flow:   models.FlowStandard,
		Questions: []models.Question{
			{ID: "q1", Ordinal: 1, Options: []models.Option{{ID: "a"}, {ID: "b"}}},
			{ID: "q2", Ordinal: 2, Options: []models.Option{{ID: "a"}, {ID: "b"}}},
		},
	}
}

func TestStoreCreateAssignsIdentity(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			created, err := store.Create(context.Background(), newSession())
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if len(created.ID) != 36 {
				t.Errorf("ID %q is not a 36-char UUID", created.ID)
			}
			if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
				t.Error("timestamps not stamped")
			}
		})
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := store.Create(ctx, newSession())
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			got, err := store.Get(ctx, created.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Domain != models.DomainMovies || len(got.Questions) != 2 {
				t.Errorf("round trip mangled session: %+v", got)
			}
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "00000000-0000-0000-0000-000000000000")
			if !faults.IsCode(err, faults.CodeSessionExpired) {
				t.Errorf("err = %v, want SESSION_EXPIRED", err)
			}
		})
	}
}

func TestStoreUpdateRecordsAnswerIdempotently(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, _ := store.Create(ctx, newSession())

			record := func(option string) (*models.Session, error) {
				return store.Update(ctx, created.ID, func(s *models.Session) error {
					s.RecordAnswer(models.Answer{QuestionID: "q1", OptionID: option})
					return nil
				})
			}

			if _, err := record("a"); err != nil {
				t.Fatalf("first answer: %v", err)
			}
			// Resubmission with a different option is a silent no-op.
			after, err := record("b")
			if err != nil {
				t.Fatalf("duplicate answer: %v", err)
			}

			if len(after.Answers) != 1 {
				t.Fatalf("answers = %d, want 1", len(after.Answers))
			}
			if after.Answers[0].OptionID != "a" {
				t.Errorf("recorded option = %q, want first writer", after.Answers[0].OptionID)
			}
		})
	}
}

func TestStoreUpdateMutatorErrorAborts(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, _ := store.Create(ctx, newSession())

			boom := errors.New("boom")
			if _, err := store.Update(ctx, created.ID, func(s *models.Session) error {
				s.Answers = append(s.Answers, models.Answer{QuestionID: "q1", OptionID: "a"})
				return boom
			}); !errors.Is(err, boom) {
				t.Fatalf("err = %v, want mutator error", err)
			}

			got, _ := store.Get(ctx, created.ID)
			if len(got.Answers) != 0 {
				t.Error("aborted mutation was persisted")
			}
		})
	}
}

func TestStoreConcurrentSameQuestionSingleWrite(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, _ := store.Create(ctx, newSession())

			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					_, _ = store.Update(ctx, created.ID, func(s *models.Session) error {
						s.RecordAnswer(models.Answer{QuestionID: "q1", OptionID: fmt.Sprintf("opt-%d", n)})
						return nil
					})
				}(i)
			}
			wg.Wait()

			got, err := store.Get(ctx, created.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if len(got.Answers) != 1 {
				t.Errorf("answers = %d, want exactly 1 visible write", len(got.Answers))
			}
		})
	}
}

func TestStoreConcurrentDistinctQuestionsAllLand(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, _ := store.Create(ctx, newSession())

			var wg sync.WaitGroup
			for _, q := range []string{"q1", "q2"} {
				wg.Add(1)
				go func(questionID string) {
					defer wg.Done()
					_, _ = store.Update(ctx, created.ID, func(s *models.Session) error {
						s.RecordAnswer(models.Answer{QuestionID: questionID, OptionID: "a"})
						return nil
					})
				}(q)
			}
			wg.Wait()

			got, _ := store.Get(ctx, created.ID)
			if len(got.Answers) != 2 {
				t.Errorf("answers = %d, want 2", len(got.Answers))
			}
		})
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	created, _ := store.Create(ctx, newSession())

	// Mutating the snapshot must not leak into the store.
	created.Answers = append(created.Answers, models.Answer{QuestionID: "q1", OptionID: "a"})

	got, _ := store.Get(ctx, created.ID)
	if len(got.Answers) != 0 {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	current := time.Now()
	store.now = func() time.Time { return current }

	ctx := context.Background()
	created, _ := store.Create(ctx, newSession())

	current = current.Add(30 * time.Minute)
	if _, err := store.Get(ctx, created.ID); err != nil {
		t.Fatalf("get before expiry: %v", err)
	}

	// Touch re-arms the TTL, so the session survives past the original
	// deadline.
	if err := store.Touch(ctx, created.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}
	current = current.Add(45 * time.Minute)
	if _, err := store.Get(ctx, created.ID); err != nil {
		t.Fatalf("get after touch: %v", err)
	}

	current = current.Add(2 * time.Hour)
	if _, err := store.Get(ctx, created.ID); !faults.IsCode(err, faults.CodeSessionExpired) {
		t.Errorf("err = %v, want SESSION_EXPIRED after TTL", err)
	}
}

func TestMemoryStoreUpdateRefreshesTTL(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	current := time.Now()
	store.now = func() time.Time { return current }

	ctx := context.Background()
	created, _ := store.Create(ctx, newSession())

	current = current.Add(50 * time.Minute)
	if _, err := store.Update(ctx, created.ID, func(*models.Session) error { return nil }); err != nil {
		t.Fatalf("update: %v", err)
	}

	// 50 more minutes is past the original deadline but inside the
	// refreshed one.
	current = current.Add(50 * time.Minute)
	if _, err := store.Get(ctx, created.ID); err != nil {
		t.Errorf("get after refreshed TTL: %v", err)
	}
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, time.Hour)

	ctx := context.Background()
	created, err := store.Create(ctx, newSession())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, created.ID); !faults.IsCode(err, faults.CodeSessionExpired) {
		t.Errorf("err = %v, want SESSION_EXPIRED after TTL", err)
	}
}

func TestRedisStoreTouchMissing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, time.Hour)

	err := store.Touch(context.Background(), "nope")
	if !faults.IsCode(err, faults.CodeSessionExpired) {
		t.Errorf("err = %v, want SESSION_EXPIRED", err)
	}
}

func TestRedisStoreBackendDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, time.Hour)
	mr.Close()

	_, err := store.Get(context.Background(), "any")
	if !faults.IsCode(err, faults.CodeUnavailable) {
		t.Errorf("err = %v, want UNAVAILABLE on backend failure", err)
	}
}

// flakyStore fails each operation a fixed number of times with Unavailable.
type flakyStore struct {
	Store
	failures int
	calls    int
}

func (f *flakyStore) Get(ctx context.Context, id string) (*models.Session, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, faults.Unavailable("backend down", nil)
	}
	return f.Store.Get(ctx, id)
}

func TestWithRetryRecoversOnce(t *testing.T) {
	mem := NewMemoryStore(time.Hour)
	created, _ := mem.Create(context.Background(), newSession())

	flaky := &flakyStore{Store: mem, failures: 1}
	store := WithRetry(flaky)

	got, err := store.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get through retry: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got session %q, want %q", got.ID, created.ID)
	}
	if flaky.calls != 2 {
		t.Errorf("backend calls = %d, want 2", flaky.calls)
	}
}

func TestWithRetryGivesUpAfterSecondFailure(t *testing.T) {
	mem := NewMemoryStore(time.Hour)
	created, _ := mem.Create(context.Background(), newSession())

	flaky := &flakyStore{Store: mem, failures: 2}
	store := WithRetry(flaky)

	_, err := store.Get(context.Background(), created.ID)
	if !faults.IsCode(err, faults.CodeUnavailable) {
		t.Errorf("err = %v, want UNAVAILABLE after retry exhausted", err)
	}
}

func TestWithRetryDoesNotRetryExpired(t *testing.T) {
	mem := NewMemoryStore(time.Hour)
	flaky := &flakyStore{Store: mem, failures: 0}
	store := WithRetry(flaky)

	_, err := store.Get(context.Background(), "missing")
	if !faults.IsCode(err, faults.CodeSessionExpired) {
		t.Fatalf("err = %v, want SESSION_EXPIRED", err)
	}
	if flaky.calls != 1 {
		t.Errorf("backend calls = %d, want 1 (no retry on expiry)", flaky.calls)
	}
}

func TestNewStoreFactory(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := NewStore(configFor("memory"), nil)
		if err != nil {
			t.Fatalf("factory: %v", err)
		}
		defer store.Close()
		if _, err := store.Create(context.Background(), newSession()); err != nil {
			t.Errorf("create through factory store: %v", err)
		}
	})

	t.Run("badger requires db", func(t *testing.T) {
		if _, err := NewStore(configFor("badger"), nil); err == nil {
			t.Error("expected error for badger backend without database")
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := NewStore(configFor("paper"), nil); err == nil {
			t.Error("expected error for unknown backend")
		}
	})
}
