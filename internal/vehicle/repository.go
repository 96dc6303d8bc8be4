// AngelaMos | 2026
// repository.go

package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/dealership/internal/core"
)

const carColumns = `
	id, stock_number, brand, model, year, month, mileage, fuel_type,
	transmission, price, engine_size, horsepower, drive_type,
	exterior_color, interior_color, number_of_doors, seating_capacity,
	vin, condition, description, features, image_urls, status,
	created_by, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, car *Car) error
	GetByID(ctx context.Context, id string) (*Car, error)
	List(ctx context.Context) ([]Car, error)
	ListPage(ctx context.Context, params ListCarsParams) ([]Car, int, error)
	Update(ctx context.Context, id string, changes []Column) (*Car, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, car *Car) error {
	query := `
		INSERT INTO cars (
			id, stock_number, brand, model, year, month, mileage, fuel_type,
			transmission, price, engine_size, horsepower, drive_type,
			exterior_color, interior_color, number_of_doors, seating_capacity,
			vin, condition, description, features, image_urls, status,
			created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		car.ID,
		car.StockNumber,
		car.Brand,
		car.Model,
		car.Year,
		car.Month,
		car.Mileage,
		car.FuelType,
		car.Transmission,
		car.Price,
		car.EngineSize,
		car.Horsepower,
		car.DriveType,
		car.ExteriorColor,
		car.InteriorColor,
		car.NumberOfDoors,
		car.SeatingCapacity,
		car.VIN,
		car.Condition,
		car.Description,
		car.Features,
		car.ImageURLs,
		car.Status,
		car.CreatedBy,
	).Scan(&car.CreatedAt, &car.UpdatedAt)
	if core.IsCheckViolation(err) {
		return fmt.Errorf("create car: %w", ErrInvalidStatus)
	}
	if err != nil {
		return fmt.Errorf("create car: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	var car Car
	err := r.db.GetContext(ctx, &car, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get car: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get car: %w", err)
	}

	return &car, nil
}

// List returns every listing, newest first.
func (r *repository) List(ctx context.Context) ([]Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY created_at DESC, id`

	cars := []Car{}
	if err := r.db.SelectContext(ctx, &cars, query); err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}

	return cars, nil
}

func (r *repository) ListPage(
	ctx context.Context,
	params ListCarsParams,
) ([]Car, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(brand ILIKE $%d OR model ILIKE $%d OR stock_number ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM cars WHERE " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count cars: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM cars
		WHERE %s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d`,
		carColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	cars := []Car{}
	if err := r.db.SelectContext(ctx, &cars, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list cars page: %w", err)
	}

	return cars, total, nil
}

// Update applies changes in a single statement and returns the stored row.
// updated_at is always refreshed.
func (r *repository) Update(
	ctx context.Context,
	id string,
	changes []Column,
) (*Car, error) {
	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+1)
	args = append(args, id)

	for i, c := range changes {
		sets = append(sets, fmt.Sprintf("%s = $%d", c.Name, i+2))
		args = append(args, c.Value)
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(
		"UPDATE cars SET %s WHERE id = $1 RETURNING %s",
		strings.Join(sets, ", "),
		carColumns,
	)

	var car Car
	err := r.db.GetContext(ctx, &car, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update car: %w", core.ErrNotFound)
	}
	if core.IsCheckViolation(err) {
		return nil, fmt.Errorf("update car: %w", ErrInvalidStatus)
	}
	if err != nil {
		return nil, fmt.Errorf("update car: %w", err)
	}

	return &car, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := core.ExecOne(ctx, r.db, `DELETE FROM cars WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}

	err := r.db.SelectContext(ctx, &rows,
		`SELECT status, COUNT(*) AS count FROM cars GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count cars by status: %w", err)
	}

	counts := make(map[string]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
