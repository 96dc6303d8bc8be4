// AngelaMos | 2026
// resolver.go

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/dealership/internal/core"
	"github.com/carterperez-dev/dealership/internal/middleware"
)

type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*AccessTokenClaims, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RoleLookup answers whether a user currently holds the admin role.
type RoleLookup interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Resolver turns a raw access token into a Principal. The admin flag is
// read from the profile store on every call.
type Resolver struct {
	verifier TokenVerifier
	revoked  RevocationChecker
	roles    RoleLookup
	logger   *slog.Logger
}

func NewResolver(
	verifier TokenVerifier,
	revoked RevocationChecker,
	roles RoleLookup,
	logger *slog.Logger,
) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		verifier: verifier,
		revoked:  revoked,
		roles:    roles,
		logger:   logger,
	}
}

func (r *Resolver) Resolve(
	ctx context.Context,
	token string,
) (*middleware.Principal, error) {
	claims, err := r.verifier.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if r.revoked != nil {
		revoked, revErr := r.revoked.IsRevoked(ctx, claims.TokenID)
		if revErr != nil {
			r.logger.WarnContext(ctx, "token blacklist unavailable",
				"error", revErr,
				"user_id", claims.UserID,
			)
		}
		if revoked {
			return nil, fmt.Errorf("resolve principal: %w", core.ErrTokenRevoked)
		}
	}

	// A failed role lookup yields a non-admin principal rather than an error.
	isAdmin, err := r.roles.IsAdmin(ctx, claims.UserID)
	if err != nil {
		r.logger.WarnContext(ctx, "role lookup failed",
			"error", err,
			"user_id", claims.UserID,
		)
		isAdmin = false
	}

	return &middleware.Principal{
		UserID:  claims.UserID,
		Email:   claims.Email,
		IsAdmin: isAdmin,
		TokenID: claims.TokenID,
	}, nil
}
