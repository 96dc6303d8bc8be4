// AngelaMos | 2026
// service.go

package vehicle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/dealership/internal/core"
)

var ErrInvalidStatus = errors.New("invalid status")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	createdBy string,
	req CreateCarRequest,
) (*Car, error) {
	if req.Status != "" && !IsValidStatus(req.Status) {
		return nil, fmt.Errorf("create car: %w", ErrInvalidStatus)
	}

	car := req.ToCar(createdBy)
	car.ID = uuid.New().String()

	if err := s.repo.Create(ctx, car); err != nil {
		return nil, err
	}

	return car, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Car, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Car, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListPage(
	ctx context.Context,
	params ListCarsParams,
) ([]Car, int, error) {
	params.Normalize()
	if params.Status != "" && !IsValidStatus(params.Status) {
		return nil, 0, fmt.Errorf("list cars: %w", ErrInvalidStatus)
	}
	return s.repo.ListPage(ctx, params)
}

// Update validates the patch before touching the store, so a rejected
// status never causes a write.
func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateCarRequest,
) (*Car, error) {
	if req.Status != nil && !IsValidStatus(*req.Status) {
		return nil, fmt.Errorf("update car: %w", ErrInvalidStatus)
	}

	ctx, span := core.StartSpan(ctx, "vehicle.Update",
		attribute.String("car_id", id),
	)
	defer span.End()

	changes := req.Changes()
	span.SetAttributes(attribute.Int("columns", len(changes)))

	car, err := s.repo.Update(ctx, id, changes)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		core.SetSpanError(ctx, err)
	}
	return car, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) CountByStatus(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStatus(ctx)
}
