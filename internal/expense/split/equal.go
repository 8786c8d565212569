package split

import "github.com/opensplit/opensplit/pkg/money"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all roster members
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(amount money.Amount, roster []int64, _ Input) error {
	return validateCommon(amount, roster)
}

// Calculate divides the amount equally among all roster members.
//
// The per-member share is amount/n rounded half-up once and applied
// uniformly; leftover cents are NOT redistributed, so the shares may sum
// to as much as n-1 cents away from the amount when the division is
// inexact. Existing balances were produced under this rule, so it must
// not be "fixed".
func (s *EqualStrategy) Calculate(amount money.Amount, roster []int64, in Input) ([]Share, error) {
	if err := s.Validate(amount, roster, in); err != nil {
		return nil, err
	}

	per := amount.Div(len(roster))

	shares := make([]Share, len(roster))
	for i, memberID := range roster {
		shares[i] = Share{
			MemberID: memberID,
			Amount:   per,
		}
	}

	return shares, nil
}
