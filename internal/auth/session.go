// AngelaMos | 2026
// session.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/dealership/internal/core"
)

// client describes where a session was opened from. Stored with every
// refresh token.
type client struct {
	userAgent string
	ip        string
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	identity, err := s.repo.GetIdentityByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, core.ErrNotFound) {
		// burn the same argon2 time as a real check so unknown emails
		// cannot be told apart by latency
		//nolint:errcheck // result is irrelevant
		_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, upgraded, err := core.VerifyPasswordTimingSafe(req.Password, &identity.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if upgraded != "" {
		if err := s.repo.UpdatePasswordHash(ctx, identity.ID, upgraded); err != nil {
			s.logger.WarnContext(ctx, "password rehash failed", "user_id", identity.ID, "error", err)
		}
	}

	return s.openSession(ctx, identity, client{userAgent, ipAddress})
}

// Refresh trades a refresh token for a new pair. The presented token is
// consumed before its successor is issued; presenting a consumed token
// revokes its whole family.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken, userAgent, ipAddress string,
) (*AuthResponse, error) {
	stored, err := s.repo.FindByHash(ctx, core.HashToken(refreshToken))
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
	}
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	switch {
	case stored.IsUsed:
		return nil, s.revokeFamily(ctx, stored)
	case stored.IsRevoked():
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
	case stored.IsExpired():
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenExpired)
	}

	identity, err := s.repo.GetIdentityByID(ctx, stored.UserID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
	}
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	successorID := uuid.New().String()
	if err := s.repo.MarkAsUsed(ctx, stored.ID, successorID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// a concurrent refresh consumed it first
			return nil, s.revokeFamily(ctx, stored)
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	return s.issue(ctx, identity, client{userAgent, ipAddress}, stored.FamilyID, successorID)
}

func (s *Service) revokeFamily(ctx context.Context, token *RefreshToken) error {
	s.logger.WarnContext(ctx, "refresh token reuse",
		"user_id", token.UserID,
		"family_id", token.FamilyID,
	)
	if err := s.repo.RevokeByFamilyID(ctx, token.FamilyID); err != nil {
		s.logger.ErrorContext(ctx, "revoke token family failed", "family_id", token.FamilyID, "error", err)
	}
	return ErrTokenReuse
}

// Logout revokes the refresh token, when given, and blacklists the access
// token that authenticated the call.
func (s *Service) Logout(
	ctx context.Context,
	refreshToken, userID, accessTokenID string,
) error {
	if refreshToken != "" {
		stored, err := s.repo.FindByHash(ctx, core.HashToken(refreshToken))
		switch {
		case errors.Is(err, core.ErrNotFound):
		case err != nil:
			return fmt.Errorf("logout: %w", err)
		case stored.UserID != userID:
			return fmt.Errorf("logout: %w", core.ErrForbidden)
		default:
			err := s.repo.RevokeByID(ctx, stored.ID)
			if err != nil && !errors.Is(err, core.ErrNotFound) {
				return fmt.Errorf("logout: %w", err)
			}
		}
	}

	if s.blacklist == nil || accessTokenID == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, accessTokenID, time.Now().Add(s.jwt.AccessTokenTTL())); err != nil {
		return fmt.Errorf("logout: blacklist access token: %w", err)
	}
	return nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID string) (*UserResponse, error) {
	identity, err := s.repo.GetIdentityByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := s.describe(ctx, identity)
	return &user, nil
}

// describe builds the public view of identity. A failed role lookup
// reports a non-admin.
func (s *Service) describe(ctx context.Context, identity *Identity) UserResponse {
	isAdmin, err := s.profiles.IsAdmin(ctx, identity.ID)
	if err != nil {
		isAdmin = false
	}
	createdAt := identity.CreatedAt
	return UserResponse{
		ID:        identity.ID,
		Email:     identity.Email,
		IsAdmin:   isAdmin,
		CreatedAt: &createdAt,
	}
}

// openSession starts a new token family.
func (s *Service) openSession(
	ctx context.Context,
	identity *Identity,
	c client,
) (*AuthResponse, error) {
	return s.issue(ctx, identity, c, "", uuid.New().String())
}

// issue mints an access token and stores refresh token tokenID in familyID.
// An empty familyID starts a new family.
func (s *Service) issue(
	ctx context.Context,
	identity *Identity,
	c client,
	familyID, tokenID string,
) (*AuthResponse, error) {
	access, expiresAt, err := s.jwt.CreateAccessToken(identity.ID, identity.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := s.jwt.CreateRefreshToken(familyID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	err = s.repo.Create(ctx, &RefreshToken{
		ID:        tokenID,
		UserID:    identity.ID,
		TokenHash: refresh.Hash,
		FamilyID:  refresh.FamilyID,
		ExpiresAt: refresh.ExpiresAt,
		UserAgent: c.userAgent,
		IPAddress: c.ip,
	})
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &AuthResponse{
		User: s.describe(ctx, identity),
		Tokens: TokenResponse{
			AccessToken:  access,
			RefreshToken: refresh.Token,
			TokenType:    "Bearer",
			ExpiresIn:    int(s.jwt.AccessTokenTTL() / time.Second),
			ExpiresAt:    expiresAt,
		},
	}, nil
}
