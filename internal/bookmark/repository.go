// AngelaMos | 2026
// repository.go

package bookmark

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/vehicle"
)

type Repository interface {
	Add(ctx context.Context, userID, carID string) error
	Remove(ctx context.Context, userID, carID string) error
	Exists(ctx context.Context, userID, carID string) (bool, error)
	ListCars(ctx context.Context, userID string) ([]vehicle.Car, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Add is idempotent. An unknown car is reported as ErrNotFound.
func (r *repository) Add(ctx context.Context, userID, carID string) error {
	query := `
		INSERT INTO bookmarks (user_id, car_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, car_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, carID); err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("add bookmark: %w", core.ErrNotFound)
		}
		return fmt.Errorf("add bookmark: %w", err)
	}

	return nil
}

func (r *repository) Remove(ctx context.Context, userID, carID string) error {
	query := `DELETE FROM bookmarks WHERE user_id = $1 AND car_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, carID); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}

	return nil
}

func (r *repository) Exists(ctx context.Context, userID, carID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND car_id = $2)`,
		userID, carID)
	if err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}

	return exists, nil
}

// ListCars returns the bookmarked listings, most recently bookmarked first.
func (r *repository) ListCars(ctx context.Context, userID string) ([]vehicle.Car, error) {
	query := `
		SELECT c.id, c.stock_number, c.brand, c.model, c.year, c.month,
		       c.mileage, c.fuel_type, c.transmission, c.price, c.engine_size,
		       c.horsepower, c.drive_type, c.exterior_color, c.interior_color,
		       c.number_of_doors, c.seating_capacity, c.vin, c.condition,
		       c.description, c.features, c.image_urls, c.status,
		       c.created_by, c.created_at, c.updated_at
		FROM bookmarks b
		JOIN cars c ON c.id = b.car_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`

	cars := []vehicle.Car{}
	if err := r.db.SelectContext(ctx, &cars, query, userID); err != nil {
		return nil, fmt.Errorf("list bookmarked cars: %w", err)
	}

	return cars, nil
}
