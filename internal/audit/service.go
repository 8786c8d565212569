package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/opensplit/opensplit/internal/database"
	"github.com/opensplit/opensplit/internal/ids"
)

// Publisher fans an event out after its transaction commits. The AMQP
// client implements it; a nil publisher disables fan-out.
type Publisher interface {
	PublishAuditEvent(ctx context.Context, event *Event) error
}

// Service handles audit event business logic
type Service struct {
	repo      *Repository
	publisher Publisher
}

// NewService creates a new audit service. publisher may be nil.
func NewService(repo *Repository, publisher Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Record writes an event describing payload through q, joining the
// caller's transaction when q is one.
func (s *Service) Record(ctx context.Context, q database.Querier, groupID int64, eventType EventType, payload interface{}) (*Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	event := &Event{
		ID:        ids.New(),
		GroupID:   groupID,
		EventType: eventType,
		Payload:   body,
	}

	if err := s.repo.Insert(ctx, q, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Publish fans the event out, best-effort. Call it only after the
// recording transaction has committed.
func (s *Service) Publish(ctx context.Context, event *Event) {
	if s.publisher == nil || event == nil {
		return
	}
	if err := s.publisher.PublishAuditEvent(ctx, event); err != nil {
		log.Printf("audit publish failed for event %s: %v", event.ID, err)
	}
}

// ListByGroup retrieves a group's audit events, newest first.
func (s *Service) ListByGroup(ctx context.Context, groupID int64, page, perPage int) ([]*Event, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroup(ctx, groupID, perPage, offset)
}
