package group

import (
	"context"
	"errors"

	"github.com/opensplit/opensplit/pkg/apperr"
	"github.com/opensplit/opensplit/pkg/money"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
	ErrInvalidCurrency     = apperr.Validation("currency must be a 3-letter code")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group and adds the creator as its first member
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	if !money.ValidCurrencyCode(req.BaseCurrency) {
		return nil, ErrInvalidCurrency
	}

	group, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.AddMember(ctx, group.ID, &AddMemberRequest{
		UserID: req.CreatorID,
		Role:   MemberRoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetByIDWithMembers retrieves a group with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id int64) (*Group, []*GroupMember, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// ListByUserID retrieves all groups for a user
func (s *Service) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*Group, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// AddMember adds a user to a group
func (s *Service) AddMember(ctx context.Context, groupID int64, req *AddMemberRequest) (*GroupMember, error) {
	// Check if group exists
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	// Check if user is already a member
	existing, err := s.repo.GetMember(ctx, groupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	if req.Role == "" {
		req.Role = MemberRoleMember
	}

	return s.repo.AddMember(ctx, groupID, req)
}

// GetMembers retrieves all members of a group in roster order
func (s *Service) GetMembers(ctx context.Context, groupID int64) ([]*GroupMember, error) {
	// Check if group exists
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.GetMembers(ctx, groupID)
}
