package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AabiaAli/Evora/internal/progression"
)

// EventStore persists the progression ledger, one append-only row per
// reported event. Mood re-logs land as extra rows; replay collapses
// them the same way the live engine did.
type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) Append(ctx context.Context, userID string, ev progression.Event) error {
	var metadata []byte
	if ev.Metadata != nil {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return fmt.Errorf("event metadata marshal: %w", err)
		}
		metadata = b
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (user_id, kind, day, metadata)
		VALUES (?, ?, ?, ?)
	`, userID, string(ev.Kind), string(ev.Day), metadata)
	if err != nil {
		return fmt.Errorf("event insert: %w", err)
	}
	return nil
}

// ListByUser returns a user's events in insertion order.
func (s *EventStore) ListByUser(ctx context.Context, userID string) ([]progression.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, day, metadata
		FROM events
		WHERE user_id = ?
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("event list: %w", err)
	}
	defer rows.Close()

	var out []progression.Event
	for rows.Next() {
		var (
			ev       progression.Event
			kind     string
			day      string
			metadata []byte
		)
		if err := rows.Scan(&ev.ID, &kind, &day, &metadata); err != nil {
			return nil, fmt.Errorf("event scan: %w", err)
		}
		ev.Kind = progression.Kind(kind)
		ev.Day = progression.Day(day)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &ev.Metadata); err != nil {
				return nil, fmt.Errorf("event metadata unmarshal: %w", err)
			}
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Users returns every user id with at least one event.
func (s *EventStore) Users(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT user_id FROM events ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("event users: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("user scan: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
