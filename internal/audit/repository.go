package audit

import (
	"context"
	"fmt"

	"github.com/opensplit/opensplit/internal/database"
)

// Repository handles audit event persistence. Methods take a Querier so
// inserts can join the transaction of the record they describe.
type Repository struct {
	q database.Querier
}

// NewRepository creates a new audit repository
func NewRepository(q database.Querier) *Repository {
	return &Repository{q: q}
}

// Insert writes an audit event through q.
func (r *Repository) Insert(ctx context.Context, q database.Querier, event *Event) error {
	query := `
		INSERT INTO audit_events (id, group_id, event_type, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRowContext(ctx, query, event.ID, event.GroupID, event.EventType, []byte(event.Payload)).
		Scan(&event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}

	return nil
}

// ListByGroup retrieves a group's audit events, newest first.
func (r *Repository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*Event, error) {
	query := `
		SELECT id, group_id, event_type, payload, created_at
		FROM audit_events
		WHERE group_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event := &Event{}
		var payload []byte
		if err := rows.Scan(
			&event.ID,
			&event.GroupID,
			&event.EventType,
			&payload,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		event.Payload = payload
		events = append(events, event)
	}

	return events, rows.Err()
}
