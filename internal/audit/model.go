package audit

import (
	"encoding/json"
	"time"
)

// EventType says which kind of record produced the event
type EventType string

const (
	EventTypeExpense    EventType = "EXPENSE"
	EventTypeSettlement EventType = "SETTLEMENT"
)

// Event is an immutable audit record written in the same transaction as
// the expense or settlement it describes. IDs are ULIDs so events sort
// by creation time.
type Event struct {
	ID        string          `json:"id"`
	GroupID   int64           `json:"group_id"`
	EventType EventType       `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
