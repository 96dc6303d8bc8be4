// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/dealership/internal/core"
)

// IdentityRepository stores credentials. Profiles are kept separately and
// may be missing for an identity whose signup failed halfway.
type IdentityRepository interface {
	CreateIdentity(ctx context.Context, identity *Identity) error
	GetIdentityByEmail(ctx context.Context, email string) (*Identity, error)
	GetIdentityByID(ctx context.Context, id string) (*Identity, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	DeleteIdentity(ctx context.Context, id string) error
}

// TokenRepository stores refresh tokens. Tokens rotate within a family and
// a family is revoked as a whole when reuse is detected.
type TokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	MarkAsUsed(ctx context.Context, id, replacedByID string) error
	RevokeByID(ctx context.Context, id string) error
	RevokeByFamilyID(ctx context.Context, familyID string) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

type Repository interface {
	IdentityRepository
	TokenRepository
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const identityColumns = `id, email, password_hash, created_at, updated_at`

func (r *repository) CreateIdentity(ctx context.Context, identity *Identity) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO identities (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`,
		identity.ID, identity.Email, identity.PasswordHash,
	).Scan(&identity.CreatedAt, &identity.UpdatedAt)

	switch {
	case core.IsDuplicateKeyError(err):
		return fmt.Errorf("create identity: %w", core.ErrDuplicateKey)
	case err != nil:
		return fmt.Errorf("create identity: %w", err)
	}
	return nil
}

func (r *repository) GetIdentityByEmail(ctx context.Context, email string) (*Identity, error) {
	return r.getIdentity(ctx, "email", email)
}

func (r *repository) GetIdentityByID(ctx context.Context, id string) (*Identity, error) {
	return r.getIdentity(ctx, "id", id)
}

// getIdentity looks an identity up by a unique column. column is always a
// literal from this file.
func (r *repository) getIdentity(ctx context.Context, column, value string) (*Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE ` + column + ` = $1`

	var identity Identity
	err := r.db.GetContext(ctx, &identity, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		err = core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get identity by %s: %w", column, err)
	}
	return &identity, nil
}

func (r *repository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	err := core.ExecOne(ctx, r.db,
		`UPDATE identities SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

// DeleteIdentity hard-deletes the identity. Profiles and refresh tokens go
// with it through ON DELETE CASCADE.
func (r *repository) DeleteIdentity(ctx context.Context, id string) error {
	if err := core.ExecOne(ctx, r.db, `DELETE FROM identities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return nil
}
