// AngelaMos | 2026
// repository.go

package inquiry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/carterperez-dev/dealership/internal/core"
)

const joinedColumns = `
	i.id, i.car_id, i.user_id, i.name, i.email, i.city, i.contact_number,
	i.inquiry, i.status, i.created_at, i.updated_at,
	c.id AS "car.id", c.brand AS "car.brand", c.model AS "car.model",
	c.year AS "car.year", c.stock_number AS "car.stock_number"`

type Repository interface {
	Create(ctx context.Context, inquiry *Inquiry) error
	GetByID(ctx context.Context, id, ownerID string) (*InquiryWithCar, error)
	List(ctx context.Context, filter Filter) ([]InquiryWithCar, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*Inquiry, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, inquiry *Inquiry) error {
	query := `
		INSERT INTO inquiries (
			id, car_id, user_id, name, email, city, contact_number,
			inquiry, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		inquiry.ID,
		inquiry.CarID,
		inquiry.UserID,
		inquiry.Name,
		inquiry.Email,
		inquiry.City,
		inquiry.ContactNumber,
		inquiry.Message,
		inquiry.Status,
	).Scan(&inquiry.CreatedAt, &inquiry.UpdatedAt)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create inquiry: car %q: %w", inquiry.CarID, core.ErrNotFound)
		}
		return fmt.Errorf("create inquiry: %w", err)
	}

	return nil
}

// GetByID loads one inquiry with its car summary. A non-empty ownerID hides
// rows belonging to anyone else.
func (r *repository) GetByID(
	ctx context.Context,
	id, ownerID string,
) (*InquiryWithCar, error) {
	query := `
		SELECT ` + joinedColumns + `, c.price AS "car.price"
		FROM inquiries i
		JOIN cars c ON c.id = i.car_id
		WHERE i.id = $1 AND ($2 = '' OR i.user_id = $2)`

	var row InquiryWithCar
	err := r.db.GetContext(ctx, &row, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get inquiry: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get inquiry: %w", err)
	}

	return &row, nil
}

// List returns matching inquiries newest first together with the total
// match count. Without a page every match is returned.
func (r *repository) List(
	ctx context.Context,
	filter Filter,
) ([]InquiryWithCar, int, error) {
	where, args := filter.Where()

	from := `
		FROM inquiries i
		JOIN cars c ON c.id = i.car_id
		WHERE ` + where

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*)"+from, args...); err != nil {
		return nil, 0, fmt.Errorf("count inquiries: %w", err)
	}

	query := "SELECT " + joinedColumns + from + " ORDER BY i.created_at DESC, i.id"
	if filter.Paginated() {
		n := len(args)
		query += " LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
		args = append(args, filter.PageSize, filter.Offset())
	}

	rows := []InquiryWithCar{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}

	return rows, total, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*Inquiry, error) {
	query := `
		UPDATE inquiries
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, car_id, user_id, name, email, city, contact_number,
		          inquiry, status, created_at, updated_at`

	var inquiry Inquiry
	err := r.db.GetContext(ctx, &inquiry, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update inquiry status: %w", core.ErrNotFound)
	}
	if core.IsCheckViolation(err) {
		return nil, fmt.Errorf("update inquiry status: %w", ErrInvalidStatus)
	}
	if err != nil {
		return nil, fmt.Errorf("update inquiry status: %w", err)
	}

	return &inquiry, nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}

	err := r.db.SelectContext(ctx, &rows,
		`SELECT status, COUNT(*) AS count FROM inquiries GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count inquiries by status: %w", err)
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
