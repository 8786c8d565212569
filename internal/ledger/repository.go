package ledger

import (
	"context"
	"fmt"

	"github.com/opensplit/opensplit/internal/database"
)

// Repository implements Store over Postgres. Constructed over a
// database.Querier so it can participate in a caller's transaction
// (the settlement validator reads through the same transaction it
// writes in).
type Repository struct {
	q database.Querier
}

// NewRepository creates a new ledger repository
func NewRepository(q database.Querier) *Repository {
	return &Repository{q: q}
}

// ListRoster returns the group's member ids in ascending id order.
func (r *Repository) ListRoster(ctx context.Context, groupID int64) ([]int64, error) {
	query := `
		SELECT gm.user_id
		FROM group_members gm
		WHERE gm.group_id = $1
		ORDER BY gm.user_id
	`

	rows, err := r.q.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	defer rows.Close()

	var roster []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan roster member: %w", err)
		}
		roster = append(roster, userID)
	}

	return roster, rows.Err()
}

// ListExpenses returns all expenses for the group with their shares.
func (r *Repository) ListExpenses(ctx context.Context, groupID int64) ([]Expense, error) {
	query := `
		SELECT e.id, e.payer_id, e.amount
		FROM expenses e
		WHERE e.group_id = $1
		ORDER BY e.id
	`

	rows, err := r.q.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id int64
			e  Expense
		)
		if err := rows.Scan(&id, &e.PayerID, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[id] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shareQuery := `
		SELECT es.expense_id, es.user_id, es.share_amount
		FROM expense_shares es
		JOIN expenses e ON es.expense_id = e.id
		WHERE e.group_id = $1
		ORDER BY es.expense_id, es.user_id
	`

	shareRows, err := r.q.QueryContext(ctx, shareQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense shares: %w", err)
	}
	defer shareRows.Close()

	for shareRows.Next() {
		var (
			expenseID int64
			s         Share
		)
		if err := shareRows.Scan(&expenseID, &s.MemberID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].Shares = append(expenses[i].Shares, s)
		}
	}

	return expenses, shareRows.Err()
}

// ListSettlements returns all settlements for the group.
func (r *Repository) ListSettlements(ctx context.Context, groupID int64) ([]Transfer, error) {
	query := `
		SELECT s.from_user_id, s.to_user_id, s.amount
		FROM settlements s
		WHERE s.group_id = $1
		ORDER BY s.id
	`

	rows, err := r.q.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []Transfer
	for rows.Next() {
		var t Transfer
		if err := rows.Scan(&t.FromID, &t.ToID, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, t)
	}

	return settlements, rows.Err()
}
