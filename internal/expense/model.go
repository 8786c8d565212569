package expense

import (
	"time"

	"github.com/opensplit/opensplit/internal/expense/split"
	"github.com/opensplit/opensplit/pkg/money"
)

// Expense represents a shared expense. Expenses are immutable once
// created: there are no update or delete operations, and repayment
// happens through settlements only.
type Expense struct {
	ID          int64        `json:"id"`
	GroupID     int64        `json:"group_id"`
	PayerID     int64        `json:"payer_id"`
	Amount      money.Amount `json:"amount"`
	Currency    string       `json:"currency"`
	SplitType   split.Type   `json:"split_type"`
	Description string       `json:"description"`
	ExpenseDate time.Time    `json:"expense_date"`
	CreatedAt   time.Time    `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Share is one member's part of an expense. Every roster member at
// creation time gets exactly one share; shares are created atomically
// with their expense header.
type Share struct {
	ID           int64          `json:"id"`
	ExpenseID    int64          `json:"expense_id"`
	UserID       int64          `json:"user_id"`
	ShareAmount  money.Amount   `json:"share_amount"`
	SharePercent *money.Percent `json:"share_percent,omitempty"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}

// ExpenseWithShares combines an expense with its shares
type ExpenseWithShares struct {
	Expense *Expense
	Shares  []*Share
}
