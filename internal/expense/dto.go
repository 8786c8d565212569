package expense

import (
	"github.com/opensplit/opensplit/pkg/money"
)

// CreateExpenseRequest represents the request to create an expense.
// ExactShares and Percentages are positionally aligned with the group
// roster in ascending user id order.
type CreateExpenseRequest struct {
	GroupID     int64          `json:"group_id" validate:"required"`
	PayerID     int64          `json:"payer_id" validate:"required"`
	Amount      money.Amount   `json:"amount" validate:"required"`
	Currency    string         `json:"currency" validate:"required,len=3"`
	SplitType   string         `json:"split_type" validate:"required,oneof=EQUAL EXACT PERCENTAGE"`
	Description string         `json:"description,omitempty"`
	ExpenseDate string         `json:"expense_date,omitempty"` // YYYY-MM-DD, defaults to today
	ExactShares []money.Amount `json:"exact_shares,omitempty"`
	Percentages []money.Percent `json:"percentages,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          int64            `json:"id"`
	GroupID     int64            `json:"group_id"`
	PayerID     int64            `json:"payer_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	Amount      money.Amount     `json:"amount"`
	Currency    string           `json:"currency"`
	SplitType   string           `json:"split_type"`
	Description string           `json:"description,omitempty"`
	ExpenseDate string           `json:"expense_date"`
	CreatedAt   string           `json:"created_at"`
	Shares      []*ShareResponse `json:"shares,omitempty"`
}

// ShareResponse represents the response for an expense share
type ShareResponse struct {
	ID           int64          `json:"id"`
	ExpenseID    int64          `json:"expense_id"`
	UserID       int64          `json:"user_id"`
	UserName     string         `json:"user_name,omitempty"`
	ShareAmount  money.Amount   `json:"share_amount"`
	SharePercent *money.Percent `json:"share_percent,omitempty"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		PayerName:   e.PayerName,
		Amount:      e.Amount,
		Currency:    e.Currency,
		SplitType:   string(e.SplitType),
		Description: e.Description,
		ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Share model to a ShareResponse DTO
func (s *Share) ToResponse() *ShareResponse {
	return &ShareResponse{
		ID:           s.ID,
		ExpenseID:    s.ExpenseID,
		UserID:       s.UserID,
		UserName:     s.UserName,
		ShareAmount:  s.ShareAmount,
		SharePercent: s.SharePercent,
	}
}
