package split

import "github.com/opensplit/opensplit/pkg/money"

// =============================================================================
// EXACT SPLIT STRATEGY
// Each roster member owes a caller-supplied amount (must sum to total)
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() Type {
	return TypeExact
}

// Validate checks if the inputs are valid for an exact split
func (s *ExactStrategy) Validate(amount money.Amount, roster []int64, in Input) error {
	if err := validateCommon(amount, roster); err != nil {
		return err
	}

	if len(in.ExactShares) != len(roster) {
		return ErrCountMismatch
	}

	for _, share := range in.ExactShares {
		if share.IsNegative() {
			return ErrNegativeShare
		}
	}

	// Fixed-point sum; no tolerance window.
	if !money.Sum(in.ExactShares).Equal(amount) {
		return ErrSumMismatch
	}

	return nil
}

// Calculate assigns each roster member its caller-supplied amount
func (s *ExactStrategy) Calculate(amount money.Amount, roster []int64, in Input) ([]Share, error) {
	if err := s.Validate(amount, roster, in); err != nil {
		return nil, err
	}

	shares := make([]Share, len(roster))
	for i, memberID := range roster {
		shares[i] = Share{
			MemberID: memberID,
			Amount:   in.ExactShares[i],
		}
	}

	return shares, nil
}
