package settlement

import (
	"time"

	"github.com/opensplit/opensplit/pkg/money"
)

// SettlementStatus represents the status of a settlement
type SettlementStatus string

// Settlements are validated before they are written, so the only
// persisted status is COMPLETED.
const (
	SettlementStatusCompleted SettlementStatus = "COMPLETED"
)

// Settlement represents a repayment from a debtor to a creditor
// within a group
type Settlement struct {
	ID         int64            `json:"id"`
	GroupID    int64            `json:"group_id"`
	FromUserID int64            `json:"from_user_id"` // Who sends the money
	ToUserID   int64            `json:"to_user_id"`   // Who receives it
	Amount     money.Amount     `json:"amount"`
	Currency   string           `json:"currency"`
	Status     SettlementStatus `json:"status"`
	Reference  string           `json:"reference"`
	CreatedAt  time.Time        `json:"created_at"`

	// Populated via JOIN
	FromUserName string `json:"from_user_name,omitempty"`
	ToUserName   string `json:"to_user_name,omitempty"`
}
