package settlement

import (
	"errors"

	"github.com/opensplit/opensplit/internal/ledger"
	"github.com/opensplit/opensplit/pkg/apperr"
)

// Validation failures, with the reason strings callers see.
var (
	ErrNonPositiveAmount = apperr.Validation("non-positive amount")
	ErrCurrencyMismatch  = apperr.Validation("currency mismatch")
	ErrSelfSettlement    = apperr.Validation("self settlement")
	ErrExceedsOwed       = apperr.Validation("exceeds owed amount")
)

// Validate checks a proposed settlement against the group's current
// balances. Rules run in a fixed order and the first failure wins:
// amount sign, currency, distinct parties, then the overdraw check.
// The overdraw rule compares against the outstanding pairwise debt
// from payer to payee, so a payment equal to the debt passes and one
// cent more does not.
func Validate(req *CreateSettlementRequest, baseCurrency string, balances *ledger.Balances) error {
	if !req.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	if req.Currency != baseCurrency {
		return ErrCurrencyMismatch
	}

	if req.FromUserID == req.ToUserID {
		return ErrSelfSettlement
	}

	owed := ledger.AmountOwed(balances.Pairwise, req.FromUserID, req.ToUserID)
	if req.Amount.GreaterThan(owed) {
		return ErrExceedsOwed
	}

	return nil
}

// reasonLabel maps a validation failure to a metrics label. Unknown
// errors fall through as "other".
func reasonLabel(err error) string {
	switch {
	case errors.Is(err, ErrNonPositiveAmount):
		return "non_positive_amount"
	case errors.Is(err, ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, ErrSelfSettlement):
		return "self_settlement"
	case errors.Is(err, ErrExceedsOwed):
		return "exceeds_owed"
	default:
		return "other"
	}
}
