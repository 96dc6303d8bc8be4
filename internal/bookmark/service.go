// AngelaMos | 2026
// service.go

package bookmark

import (
	"context"

	"github.com/carterperez-dev/dealership/internal/vehicle"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, userID, carID string) error {
	return s.repo.Add(ctx, userID, carID)
}

func (s *Service) Remove(ctx context.Context, userID, carID string) error {
	return s.repo.Remove(ctx, userID, carID)
}

func (s *Service) IsBookmarked(ctx context.Context, userID, carID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.repo.Exists(ctx, userID, carID)
}

func (s *Service) List(ctx context.Context, userID string) ([]vehicle.Car, error) {
	return s.repo.ListCars(ctx, userID)
}
