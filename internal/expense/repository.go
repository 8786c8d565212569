package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/opensplit/opensplit/internal/database"
	"github.com/opensplit/opensplit/internal/expense/split"
)

// Repository handles expense and share data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts the expense header through q, joining the
// caller's transaction when q is one.
func (r *Repository) CreateExpense(ctx context.Context, q database.Querier, req *CreateExpenseRequest, expenseDate time.Time) (*Expense, error) {
	query := `
		INSERT INTO expenses (group_id, payer_id, amount, currency, split_type, description, expense_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, group_id, payer_id, amount, currency, split_type, description, expense_date, created_at
	`

	expense := &Expense{}
	err := q.QueryRowContext(ctx, query,
		req.GroupID,
		req.PayerID,
		req.Amount,
		req.Currency,
		req.SplitType,
		req.Description,
		expenseDate,
	).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Amount,
		&expense.Currency,
		&expense.SplitType,
		&expense.Description,
		&expense.ExpenseDate,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// CreateShare inserts a single calculated share for an expense.
func (r *Repository) CreateShare(ctx context.Context, q database.Querier, expenseID int64, sh split.Share) (*Share, error) {
	query := `
		INSERT INTO expense_shares (expense_id, user_id, share_amount, share_percent)
		VALUES ($1, $2, $3, $4)
		RETURNING id, expense_id, user_id, share_amount, share_percent
	`

	share := &Share{}
	err := q.QueryRowContext(ctx, query,
		expenseID,
		sh.MemberID,
		sh.Amount,
		sh.Percent,
	).Scan(
		&share.ID,
		&share.ExpenseID,
		&share.UserID,
		&share.ShareAmount,
		&share.SharePercent,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense share: %w", err)
	}

	return share, nil
}

// GetExpenseByID retrieves an expense with the payer's name joined in
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.amount, e.currency, e.split_type,
		       e.description, e.expense_date, e.created_at, u.name AS payer_name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.Amount,
		&expense.Currency,
		&expense.SplitType,
		&expense.Description,
		&expense.ExpenseDate,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSharesByExpenseID retrieves all shares for an expense
func (r *Repository) GetSharesByExpenseID(ctx context.Context, expenseID int64) ([]*Share, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.share_amount, s.share_percent, u.name AS user_name
		FROM expense_shares s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.user_id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	var shares []*Share
	for rows.Next() {
		share := &Share{}
		err := rows.Scan(
			&share.ID,
			&share.ExpenseID,
			&share.UserID,
			&share.ShareAmount,
			&share.SharePercent,
			&share.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		shares = append(shares, share)
	}

	return shares, rows.Err()
}

// ListExpensesByGroupID retrieves a page of a group's expenses, newest first
func (r *Repository) ListExpensesByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.amount, e.currency, e.split_type,
		       e.description, e.expense_date, e.created_at, u.name AS payer_name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.expense_date DESC, e.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PayerID,
			&expense.Amount,
			&expense.Currency,
			&expense.SplitType,
			&expense.Description,
			&expense.ExpenseDate,
			&expense.CreatedAt,
			&expense.PayerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, rows.Err()
}
