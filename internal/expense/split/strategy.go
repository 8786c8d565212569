package split

import (
	"fmt"

	"github.com/opensplit/opensplit/pkg/apperr"
	"github.com/opensplit/opensplit/pkg/money"
)

// Type identifies a split strategy
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypeExact      Type = "EXACT"
	TypePercentage Type = "PERCENTAGE"
)

// Valid reports whether t is one of the closed set of split types.
func (t Type) Valid() bool {
	switch t {
	case TypeEqual, TypeExact, TypePercentage:
		return true
	}
	return false
}

// Input carries strategy-specific data, positionally aligned with the
// roster the expense is split over: ExactShares[i] / Percentages[i]
// belong to roster[i].
type Input struct {
	ExactShares []money.Amount
	Percentages []money.Percent
}

// Share is the calculated share for a single roster member.
// Percent is retained on PERCENTAGE splits for audit/display.
type Share struct {
	MemberID int64
	Amount   money.Amount
	Percent  *money.Percent
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes one share per roster member, in roster order
	Calculate(amount money.Amount, roster []int64, in Input) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() Type

	// Validate checks if the inputs are valid for this strategy
	Validate(amount money.Amount, roster []int64, in Input) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(t Type) (Strategy, error) {
	switch t {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypeExact:
		return &ExactStrategy{}, nil
	case TypePercentage:
		return &PercentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", t)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(t string) (Strategy, error) {
	return f.Create(Type(t))
}

// Validation failures, with the reason strings callers see.
var (
	ErrEmptyRoster        = apperr.Validation("empty roster")
	ErrNonPositiveAmount  = apperr.Validation("non-positive amount")
	ErrNegativeShare      = apperr.Validation("negative share")
	ErrCountMismatch      = apperr.Validation("count mismatch")
	ErrSumMismatch        = apperr.Validation("sum mismatch")
	ErrPercentSumMismatch = apperr.Validation("percent sum mismatch")
)

// validateCommon holds the checks shared by every strategy.
func validateCommon(amount money.Amount, roster []int64) error {
	if len(roster) == 0 {
		return ErrEmptyRoster
	}
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return nil
}
