// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package analytics

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Sink is an append-only event destination.
type Sink interface {
	Write(ctx context.Context, e Event) error
	Close() error
}

// DuckDBSink appends events to an embedded DuckDB file. One table, one
// prepared insert; dashboard queries live outside this service.
type DuckDBSink struct {
	conn   *sql.DB
	insert *sql.Stmt
}

const eventsSchema = `
CREATE TABLE IF NOT EXISTS events (
	id          VARCHAR PRIMARY KEY,
	event_type  VARCHAR NOT NULL,
	session_id  VARCHAR NOT NULL,
	domain      VARCHAR,
	occurred_at TIMESTAMP NOT NULL,
	payload     VARCHAR
)`

// NewDuckDBSink opens (or creates) the analytics database at path. An empty
// path opens an in-memory database, useful for tests.
func NewDuckDBSink(path string) (*DuckDBSink, error) {
	if path == "" {
		path = ":memory:"
	}
	// Auto-install/auto-load disabled: no extension is needed and fetching
	// them can hang in restricted networks.
	conn, err := sql.Open("duckdb", path+"?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open analytics database: %w", err)
	}

	if _, err := conn.Exec(eventsSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}

	insert, err := conn.Prepare(`INSERT INTO events (id, event_type, session_id, domain, occurred_at, payload) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("prepare events insert: %w", err)
	}

	return &DuckDBSink{conn: conn, insert: insert}, nil
}

// Write appends one event.
func (s *DuckDBSink) Write(ctx context.Context, e Event) error {
	var payload []byte
	if e.Payload != nil {
		var err error
		payload, err = json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("marshal event payload: %w", err)
		}
	}

	_, err := s.insert.ExecContext(ctx,
		uuid.NewString(), string(e.Type), e.SessionID, string(e.Domain), e.OccurredAt, string(payload))
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Ping verifies the database connection, for readiness probes.
func (s *DuckDBSink) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close releases the statement and connection.
func (s *DuckDBSink) Close() error {
	if s.insert != nil {
		_ = s.insert.Close()
	}
	return s.conn.Close()
}

// NopSink discards every event. Used when analytics is disabled.
type NopSink struct{}

func (NopSink) Write(context.Context, Event) error { return nil }
func (NopSink) Close() error                       { return nil }
