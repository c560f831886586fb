// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records local chat activity in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed        = errors.New("history store closed")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// EVENTS
// =============================================================================

// Kind classifies a recorded activity event.
type Kind string

const (
	KindSend       Kind = "send"
	KindEdit       Kind = "edit"
	KindRoomCreate Kind = "room_create"
	KindRoomDelete Kind = "room_delete"
)

// Event is one recorded activity entry.
type Event struct {
	ID        int64
	SessionID string
	Kind      Kind
	RoomID    string
	MessageID string
	// Detail carries kind-specific context: a message preview for sends and
	// edits, the room name for room events.
	Detail    string
	CreatedAt time.Time
}

// =============================================================================
// STORE
// =============================================================================

// Store is an append-mostly activity log. One store is opened per program
// run; every event recorded through it carries the same session id.
type Store struct {
	db        *sql.DB
	sessionID string
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	kind       TEXT NOT NULL,
	room_id    TEXT NOT NULL DEFAULT '',
	message_id TEXT NOT NULL DEFAULT '',
	detail     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_events_room ON events(room_id);
CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at);
`

// Open opens (creating if needed) the activity database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to initialize schema: %v", ErrDatabaseError, err)
	}

	return &Store{
		db:        db,
		sessionID: uuid.NewString(),
	}, nil
}

// SessionID returns the id stamped on every event this store records.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Record appends an event. The event's SessionID and CreatedAt are filled in
// by the store.
func (s *Store) Record(ctx context.Context, e Event) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (session_id, kind, room_id, message_id, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.sessionID, string(e.Kind), e.RoomID, e.MessageID, e.Detail, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Recent returns the newest events first, up to limit.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, kind, room_id, message_id, detail, created_at
		 FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var kind string
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &e.RoomID, &e.MessageID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		e.Kind = Kind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountByRoom returns the number of recorded events for a room.
func (s *Store) CountByRoom(ctx context.Context, roomID string) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE room_id = ?`, roomID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// Prune deletes events older than the retention window.
func (s *Store) Prune(ctx context.Context, keep time.Duration) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM events WHERE created_at < ?`, time.Now().UTC().Add(-keep))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database. Safe to call twice.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
