package ledger

import (
	"strconv"

	"github.com/opensplit/opensplit/pkg/money"
)

// BalanceResponse is one member's row in the balances listing.
// PairwiseBalances maps counterparty id to the outstanding amount this member
// has been charged toward them.
type BalanceResponse struct {
	UserID           int64                   `json:"user_id"`
	NetBalance       money.Amount            `json:"net_balance"`
	PairwiseBalances map[string]money.Amount `json:"pairwise_balances"`
}

// TransferResponse is one suggested repayment.
type TransferResponse struct {
	FromUserID int64        `json:"from_user_id"`
	ToUserID   int64        `json:"to_user_id"`
	Amount     money.Amount `json:"amount"`
}

// ToResponse renders a snapshot as one row per roster member.
func (b *Balances) ToResponse() []*BalanceResponse {
	out := make([]*BalanceResponse, 0, len(b.Members))
	for _, m := range b.Members {
		pairwise := make(map[string]money.Amount, len(b.Pairwise[m]))
		for to, amt := range b.Pairwise[m] {
			pairwise[strconv.FormatInt(to, 10)] = amt
		}
		out = append(out, &BalanceResponse{
			UserID:           m,
			NetBalance:       b.Net[m],
			PairwiseBalances: pairwise,
		})
	}
	return out
}

// ToResponse converts a Transfer to its API shape.
func (t Transfer) ToResponse() *TransferResponse {
	return &TransferResponse{
		FromUserID: t.FromID,
		ToUserID:   t.ToID,
		Amount:     t.Amount,
	}
}
