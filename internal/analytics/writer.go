// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package analytics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Writer is the bounded fire-and-forget queue in front of a Sink. Emit
// never blocks: when the queue is full the event is dropped and counted.
// Writer implements suture's Service interface and is run supervised.
type Writer struct {
	sink    Sink
	queue   chan Event
	workers int
	dropped atomic.Uint64
	logger  zerolog.Logger
}

// NewWriter builds a writer with the given queue size and worker count.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWriter(sink Sink, queueSize, workers int, logger zerolog.Logger) *Writer {
	if queueSize < 1 {
		queueSize = 256
	}
	if workers < 1 {
		workers = 2
	}
	return &Writer{
		sink:    sink,
		queue:   make(chan Event, queueSize),
		workers: workers,
		logger:  logger.With().Str("component", "analytics").Logger(),
	}
}

// Emit enqueues an event without blocking. Overflow drops the event and
// increments the drop counter; user-facing latency always wins.
func (w *Writer) Emit(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	select {
	case w.queue <- e:
	default:
		dropped := w.dropped.Add(1)
		if dropped%100 == 1 {
			w.logger.Warn().Uint64("dropped_total", dropped).Msg("analytics queue full, dropping events")
		}
	}
}

// Dropped reports how many events overflowed the queue.
func (w *Writer) Dropped() uint64 {
	return w.dropped.Load()
}

// QueueDepth reports the current backlog, for metrics.
func (w *Writer) QueueDepth() int {
	return len(w.queue)
}

// Serve drains the queue with the configured workers until the supervisor
// cancels the context. Sink errors are logged and swallowed; analytics is
// best-effort by contract.
func (w *Writer) Serve(ctx context.Context) error {
	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.drain(ctx)
		}()
	}
	wg.Wait()
	return ctx.Err()
}

func (w *Writer) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-w.queue:
			writeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := w.sink.Write(writeCtx, e); err != nil {
				w.logger.Warn().Err(err).Str("event_type", string(e.Type)).Msg("analytics write failed")
			}
			cancel()
		}
	}
}

// String names the service in supervisor logs.
func (w *Writer) String() string { return "analytics-writer" }
