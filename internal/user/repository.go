// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/dealership/internal/core"
)

type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetAccessLevel(ctx context.Context, userID string) (int, error)
	SetAccessLevelByEmail(ctx context.Context, email string, level int) error
	CountByAccessLevel(ctx context.Context, level int) (int, error)
	List(ctx context.Context, params ListProfilesParams) ([]Profile, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, first_name, middle_name, last_name, email,
			contact_number, access_level
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.MiddleName,
		profile.LastName,
		profile.Email,
		profile.ContactNumber,
		profile.AccessLevel,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create profile: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*Profile, error) {
	query := `
		SELECT user_id, first_name, middle_name, last_name, email,
		       contact_number, access_level, created_at, updated_at
		FROM profiles
		WHERE user_id = $1`

	var profile Profile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}

func (r *repository) GetAccessLevel(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `SELECT access_level FROM profiles WHERE user_id = $1`

	var level int
	err := r.db.GetContext(ctx, &level, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get access level: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get access level: %w", err)
	}

	return level, nil
}

func (r *repository) SetAccessLevelByEmail(
	ctx context.Context,
	email string,
	level int,
) error {
	query := `
		UPDATE profiles
		SET access_level = $2, updated_at = NOW()
		WHERE email = $1`

	if err := core.ExecOne(ctx, r.db, query, email, level); err != nil {
		return fmt.Errorf("set access level: %w", err)
	}

	return nil
}

func (r *repository) CountByAccessLevel(
	ctx context.Context,
	level int,
) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM profiles WHERE access_level = $1`, level)
	if err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}

	return count, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListProfilesParams,
) ([]Profile, int, error) {
	params.Normalize()

	conditions := []string{"TRUE"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argIdx++
	}

	switch params.Role {
	case RoleAdmin:
		conditions = append(conditions, fmt.Sprintf("access_level = $%d", argIdx))
		args = append(args, AccessLevelAdmin)
		argIdx++
	case RoleUser:
		conditions = append(conditions, fmt.Sprintf("access_level = $%d", argIdx))
		args = append(args, AccessLevelRegular)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM profiles WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT user_id, first_name, middle_name, last_name, email,
		       contact_number, access_level, created_at, updated_at
		FROM profiles
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var profiles []Profile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, total, nil
}
