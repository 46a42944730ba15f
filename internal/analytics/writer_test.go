// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinemoment/internal/models"
)

// recordingSink captures written events.
type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingSink) Write(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingSink) Close() error { return nil }

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestWriterDeliversEvents(t *testing.T) {
	sink := &recordingSink{}
	w := NewWriter(sink, 32, 2, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Serve(ctx)
		close(done)
	}()

	for i := 0; i < 10; i++ {
		w.Emit(Event{Type: EventAnswerRecorded, SessionID: "s1", Domain: models.DomainMovies})
	}

	deadline := time.After(2 * time.Second)
	for sink.count() < 10 {
		select {
		case <-deadline:
			t.Fatalf("delivered %d events, want 10", sink.count())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done
	if w.Dropped() != 0 {
		t.Errorf("dropped = %d, want 0", w.Dropped())
	}
}

func TestWriterDropsOnOverflowWithoutBlocking(t *testing.T) {
	// No Serve running: the queue fills and Emit must not block.
	w := NewWriter(&recordingSink{}, 4, 1, zerolog.Nop())

	start := time.Now()
	for i := 0; i < 100; i++ {
		w.Emit(Event{Type: EventRecommendations, SessionID: "s1"})
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("Emit blocked for %s", elapsed)
	}
	if got := w.Dropped(); got != 96 {
		t.Errorf("dropped = %d, want 96", got)
	}
	if depth := w.QueueDepth(); depth != 4 {
		t.Errorf("queue depth = %d, want 4", depth)
	}
}

func TestWriterStampsOccurredAt(t *testing.T) {
	w := NewWriter(&recordingSink{}, 4, 1, zerolog.Nop())
	w.Emit(Event{Type: EventSessionStarted, SessionID: "s1"})

	e := <-w.queue
	if e.OccurredAt.IsZero() {
		t.Error("OccurredAt should be stamped on emit")
	}
}
