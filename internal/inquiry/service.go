// AngelaMos | 2026
// service.go

package inquiry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/dealership/internal/middleware"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidDate   = errors.New("invalid date")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records an inquiry from caller. Status always starts at pending.
func (s *Service) Create(
	ctx context.Context,
	caller *middleware.Principal,
	req CreateInquiryRequest,
) (*Inquiry, error) {
	inquiry := &Inquiry{
		ID:            uuid.New().String(),
		CarID:         req.CarID,
		UserID:        caller.UserID,
		Name:          req.Name,
		Email:         req.Email,
		City:          req.City,
		ContactNumber: req.ContactNumber,
		Message:       req.Inquiry,
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	return inquiry, nil
}

// List shows admins every inquiry and everyone else only their own.
func (s *Service) List(
	ctx context.Context,
	caller *middleware.Principal,
	filter Filter,
) ([]InquiryWithCar, int, error) {
	filter.OwnerID = ownerScope(caller)
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(
	ctx context.Context,
	caller *middleware.Principal,
	id string,
) (*InquiryWithCar, error) {
	return s.repo.GetByID(ctx, id, ownerScope(caller))
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*Inquiry, error) {
	if !IsValidStatus(status) {
		return nil, fmt.Errorf("update inquiry status: %w", ErrInvalidStatus)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) CountByStatus(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStatus(ctx)
}

func ownerScope(caller *middleware.Principal) string {
	if caller.IsAdmin {
		return ""
	}
	return caller.UserID
}
