package split

import "github.com/opensplit/opensplit/pkg/money"

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on a percentage per roster member
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() Type {
	return TypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(amount money.Amount, roster []int64, in Input) error {
	if err := validateCommon(amount, roster); err != nil {
		return err
	}

	if len(in.Percentages) != len(roster) {
		return ErrCountMismatch
	}

	// Must sum to exactly 100.00. Individual values are range-checked
	// at parse time (0-100, two decimal places).
	if !money.SumPercents(in.Percentages).IsFull() {
		return ErrPercentSumMismatch
	}

	return nil
}

// Calculate gives each roster member round_half_up(amount*percent/100, 2).
// The percentage is retained on the share for audit/display.
func (s *PercentageStrategy) Calculate(amount money.Amount, roster []int64, in Input) ([]Share, error) {
	if err := s.Validate(amount, roster, in); err != nil {
		return nil, err
	}

	shares := make([]Share, len(roster))
	for i, memberID := range roster {
		percent := in.Percentages[i]
		shares[i] = Share{
			MemberID: memberID,
			Amount:   amount.ApplyPercent(percent),
			Percent:  &percent,
		}
	}

	return shares, nil
}
