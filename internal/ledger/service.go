package ledger

import "context"

// Store is the persistence collaborator the ledger reads from. The
// engine never touches the database directly; implementations decide
// how history is fetched.
type Store interface {
	// ListRoster returns a group's member ids in ascending id order.
	ListRoster(ctx context.Context, groupID int64) ([]int64, error)

	// ListExpenses returns all expenses for a group, each carrying its shares.
	ListExpenses(ctx context.Context, groupID int64) ([]Expense, error)

	// ListSettlements returns all settlements for a group.
	ListSettlements(ctx context.Context, groupID int64) ([]Transfer, error)
}

// Service computes balance snapshots for groups.
type Service struct {
	store Store
}

// NewService creates a new ledger service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ComputeBalances aggregates the group's full history into a fresh
// snapshot. Nothing is cached between calls.
func (s *Service) ComputeBalances(ctx context.Context, groupID int64) (*Balances, error) {
	roster, err := s.store.ListRoster(ctx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlements(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return Aggregate(roster, expenses, settlements), nil
}

// SuggestTransfers computes a fresh snapshot and reduces it to
// suggested repayments.
func (s *Service) SuggestTransfers(ctx context.Context, groupID int64) ([]Transfer, error) {
	balances, err := s.ComputeBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return Suggest(balances), nil
}
