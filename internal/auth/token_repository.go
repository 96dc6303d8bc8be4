// AngelaMos | 2026
// token_repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/dealership/internal/core"
)

const refreshTokenColumns = `
	id, user_id, token_hash, family_id, expires_at, created_at,
	is_used, used_at, revoked_at, replaced_by_id, user_agent, ip_address`

func (r *repository) Create(ctx context.Context, token *RefreshToken) error {
	err := r.db.GetContext(ctx, &token.CreatedAt, `
		INSERT INTO refresh_tokens
			(id, user_id, token_hash, family_id, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		token.ID, token.UserID, token.TokenHash, token.FamilyID,
		token.ExpiresAt, token.UserAgent, token.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (r *repository) FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	var token RefreshToken
	err := r.db.GetContext(ctx, &token,
		`SELECT `+refreshTokenColumns+` FROM refresh_tokens WHERE token_hash = $1`,
		tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		err = core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &token, nil
}

// MarkAsUsed consumes a token exactly once. A second call for the same id
// reports ErrNotFound, which rotation treats as a lost race.
func (r *repository) MarkAsUsed(ctx context.Context, id, replacedByID string) error {
	err := core.ExecOne(ctx, r.db, `
		UPDATE refresh_tokens
		SET is_used = true, used_at = NOW(), replaced_by_id = $2
		WHERE id = $1 AND NOT is_used`,
		id, replacedByID)
	if err != nil {
		return fmt.Errorf("consume refresh token: %w", err)
	}
	return nil
}

func (r *repository) RevokeByID(ctx context.Context, id string) error {
	err := core.ExecOne(ctx, r.db,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE id = $1 AND revoked_at IS NULL`,
		id)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *repository) RevokeByFamilyID(ctx context.Context, familyID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE family_id = $1 AND revoked_at IS NULL`,
		familyID)
	if err != nil {
		return fmt.Errorf("revoke token family %s: %w", familyID, err)
	}
	return nil
}

// DeleteExpired purges tokens whose expiry is more than olderThan in the
// past and reports how many went.
func (r *repository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < $1`,
		time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("purge expired refresh tokens: %w", err)
	}
	return result.RowsAffected()
}
