package settlement

import (
	"time"

	"github.com/opensplit/opensplit/pkg/money"
)

// CreateSettlementRequest represents the request to create a settlement
type CreateSettlementRequest struct {
	GroupID    int64        `json:"group_id" validate:"required"`
	FromUserID int64        `json:"from_user_id" validate:"required"`
	ToUserID   int64        `json:"to_user_id" validate:"required"`
	Amount     money.Amount `json:"amount" validate:"required"`
	Currency   string       `json:"currency" validate:"required,len=3"`
}

// SettlementResponse represents the settlement API response
type SettlementResponse struct {
	ID           int64        `json:"id"`
	GroupID      int64        `json:"group_id"`
	FromUserID   int64        `json:"from_user_id"`
	ToUserID     int64        `json:"to_user_id"`
	Amount       money.Amount `json:"amount"`
	Currency     string       `json:"currency"`
	Status       string       `json:"status"`
	Reference    string       `json:"reference"`
	CreatedAt    time.Time    `json:"created_at"`
	FromUserName string       `json:"from_user_name,omitempty"`
	ToUserName   string       `json:"to_user_name,omitempty"`
}

// ToResponse converts a Settlement model to a SettlementResponse
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:           s.ID,
		GroupID:      s.GroupID,
		FromUserID:   s.FromUserID,
		ToUserID:     s.ToUserID,
		Amount:       s.Amount,
		Currency:     s.Currency,
		Status:       string(s.Status),
		Reference:    s.Reference,
		CreatedAt:    s.CreatedAt,
		FromUserName: s.FromUserName,
		ToUserName:   s.ToUserName,
	}
}
