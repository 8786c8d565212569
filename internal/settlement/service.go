package settlement

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/opensplit/opensplit/internal/audit"
	"github.com/opensplit/opensplit/internal/database"
	"github.com/opensplit/opensplit/internal/group"
	"github.com/opensplit/opensplit/internal/ledger"
	"github.com/opensplit/opensplit/internal/obs"
	"github.com/opensplit/opensplit/pkg/apperr"
)

// Common errors
var (
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrGroupNotFound      = errors.New("group not found")
)

// Service handles settlement business logic
type Service struct {
	db        *sql.DB
	repo      *Repository
	groupRepo *group.Repository
	audit     *audit.Service
}

// NewService creates a new settlement service with dependencies injected
func NewService(db *sql.DB, repo *Repository, groupRepo *group.Repository, auditSvc *audit.Service) *Service {
	return &Service{
		db:        db,
		repo:      repo,
		groupRepo: groupRepo,
		audit:     auditSvc,
	}
}

// Create validates a settlement against the group's live balances and
// persists it. Balance read, validation, insert, and the audit event
// run in one serializable transaction so two concurrent settlements
// cannot both drain the same debt.
func (s *Service) Create(ctx context.Context, req *CreateSettlementRequest) (*Settlement, error) {
	grp, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if grp == nil {
		return nil, ErrGroupNotFound
	}

	reference := uuid.NewString()

	var (
		created    *Settlement
		auditEvent *audit.Event
	)
	err = database.WithTx(ctx, s.db, database.Serializable, func(tx *sql.Tx) error {
		balances, err := ledger.NewService(ledger.NewRepository(tx)).ComputeBalances(ctx, req.GroupID)
		if err != nil {
			return err
		}

		if err := Validate(req, grp.BaseCurrency, balances); err != nil {
			return err
		}

		created, err = s.repo.Create(ctx, tx, req, reference)
		if err != nil {
			return err
		}

		auditEvent, err = s.audit.Record(ctx, tx, req.GroupID, audit.EventTypeSettlement, created)
		return err
	})
	if err != nil {
		if apperr.IsValidation(err) {
			obs.SettlementsRejected.WithLabelValues(reasonLabel(err)).Inc()
		}
		return nil, err
	}

	obs.SettlementsCreated.Inc()
	s.audit.Publish(ctx, auditEvent)

	return created, nil
}

// GetByID retrieves a settlement
func (s *Service) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	settlement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}
	return settlement, nil
}

// ListByGroupID retrieves settlements for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Settlement, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}
