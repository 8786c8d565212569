package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/opensplit/opensplit/internal/database"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a validated settlement through q, joining the
// caller's transaction when q is one.
func (r *Repository) Create(ctx context.Context, q database.Querier, req *CreateSettlementRequest, reference string) (*Settlement, error) {
	query := `
		INSERT INTO settlements (group_id, from_user_id, to_user_id, amount, currency, status, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, group_id, from_user_id, to_user_id, amount, currency, status, reference, created_at
	`

	settlement := &Settlement{}
	err := q.QueryRowContext(ctx, query,
		req.GroupID,
		req.FromUserID,
		req.ToUserID,
		req.Amount,
		req.Currency,
		SettlementStatusCompleted,
		reference,
	).Scan(
		&settlement.ID,
		&settlement.GroupID,
		&settlement.FromUserID,
		&settlement.ToUserID,
		&settlement.Amount,
		&settlement.Currency,
		&settlement.Status,
		&settlement.Reference,
		&settlement.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	return settlement, nil
}

// GetByID retrieves a settlement with both party names joined in
func (r *Repository) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	query := `
		SELECT s.id, s.group_id, s.from_user_id, s.to_user_id, s.amount, s.currency,
		       s.status, s.reference, s.created_at,
		       uf.name AS from_user_name, ut.name AS to_user_name
		FROM settlements s
		JOIN users uf ON s.from_user_id = uf.id
		JOIN users ut ON s.to_user_id = ut.id
		WHERE s.id = $1
	`

	settlement := &Settlement{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&settlement.ID,
		&settlement.GroupID,
		&settlement.FromUserID,
		&settlement.ToUserID,
		&settlement.Amount,
		&settlement.Currency,
		&settlement.Status,
		&settlement.Reference,
		&settlement.CreatedAt,
		&settlement.FromUserName,
		&settlement.ToUserName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return settlement, nil
}

// ListByGroupID retrieves a page of a group's settlements, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Settlement, int, error) {
	countQuery := `SELECT COUNT(*) FROM settlements WHERE group_id = $1`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT s.id, s.group_id, s.from_user_id, s.to_user_id, s.amount, s.currency,
		       s.status, s.reference, s.created_at,
		       uf.name AS from_user_name, ut.name AS to_user_name
		FROM settlements s
		JOIN users uf ON s.from_user_id = uf.id
		JOIN users ut ON s.to_user_id = ut.id
		WHERE s.group_id = $1
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		settlement := &Settlement{}
		err := rows.Scan(
			&settlement.ID,
			&settlement.GroupID,
			&settlement.FromUserID,
			&settlement.ToUserID,
			&settlement.Amount,
			&settlement.Currency,
			&settlement.Status,
			&settlement.Reference,
			&settlement.CreatedAt,
			&settlement.FromUserName,
			&settlement.ToUserName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}

	return settlements, total, rows.Err()
}
