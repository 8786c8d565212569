package expense

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/opensplit/opensplit/internal/audit"
	"github.com/opensplit/opensplit/internal/database"
	"github.com/opensplit/opensplit/internal/expense/split"
	"github.com/opensplit/opensplit/internal/group"
	"github.com/opensplit/opensplit/internal/obs"
	"github.com/opensplit/opensplit/pkg/apperr"
)

// Common errors
var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrCurrencyMismatch   = apperr.Validation("currency mismatch")
	ErrInvalidExpenseDate = apperr.Validation("invalid expense date")
)

// Service handles expense business logic
type Service struct {
	db           *sql.DB
	repo         *Repository
	groupRepo    *group.Repository
	splitFactory *split.Factory
	audit        *audit.Service
}

// NewService creates a new expense service with dependencies injected
func NewService(db *sql.DB, repo *Repository, groupRepo *group.Repository, splitFactory *split.Factory, auditSvc *audit.Service) *Service {
	return &Service{
		db:           db,
		repo:         repo,
		groupRepo:    groupRepo,
		splitFactory: splitFactory,
		audit:        auditSvc,
	}
}

// CreateExpense validates the request against the group, calculates
// shares with the requested split strategy, and persists the expense
// header, all shares, and the audit event as one atomic unit. A
// partially written expense is never observable.
func (s *Service) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (*ExpenseWithShares, error) {
	grp, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if grp == nil {
		return nil, ErrGroupNotFound
	}

	if req.Currency != grp.BaseCurrency {
		return nil, ErrCurrencyMismatch
	}

	expenseDate := time.Now().UTC()
	if req.ExpenseDate != "" {
		expenseDate, err = time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			return nil, ErrInvalidExpenseDate
		}
	}

	members, err := s.groupRepo.GetMembers(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	roster := make([]int64, len(members))
	for i, m := range members {
		roster[i] = m.UserID
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	shares, err := strategy.Calculate(req.Amount, roster, split.Input{
		ExactShares: req.ExactShares,
		Percentages: req.Percentages,
	})
	if err != nil {
		return nil, err
	}

	var (
		result     *ExpenseWithShares
		auditEvent *audit.Event
	)
	err = database.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		created, err := s.repo.CreateExpense(ctx, tx, req, expenseDate)
		if err != nil {
			return err
		}

		createdShares := make([]*Share, len(shares))
		for i, sh := range shares {
			createdShares[i], err = s.repo.CreateShare(ctx, tx, created.ID, sh)
			if err != nil {
				return err
			}
		}

		result = &ExpenseWithShares{Expense: created, Shares: createdShares}

		auditEvent, err = s.audit.Record(ctx, tx, req.GroupID, audit.EventTypeExpense, created)
		return err
	})
	if err != nil {
		return nil, err
	}

	obs.ExpensesCreated.WithLabelValues(req.SplitType).Inc()
	s.audit.Publish(ctx, auditEvent)

	return result, nil
}

// GetExpenseByID retrieves an expense with its shares
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithShares, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	shares, err := s.repo.GetSharesByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithShares{
		Expense: expense,
		Shares:  shares,
	}, nil
}

// ListExpensesByGroupID retrieves expenses for a group
func (s *Service) ListExpensesByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListExpensesByGroupID(ctx, groupID, perPage, offset)
}
