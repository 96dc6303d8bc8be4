// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/dealership/internal/auth"
	"github.com/carterperez-dev/dealership/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateProfile writes the profile half of a new account. New accounts are
// always regular users.
func (s *Service) CreateProfile(
	ctx context.Context,
	p auth.NewProfile,
) (*auth.ProfileInfo, error) {
	profile := &Profile{
		UserID:        p.UserID,
		FirstName:     p.FirstName,
		MiddleName:    p.MiddleName,
		LastName:      p.LastName,
		Email:         strings.ToLower(p.Email),
		ContactNumber: p.ContactNumber,
		AccessLevel:   AccessLevelRegular,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return &auth.ProfileInfo{
		UserID:    profile.UserID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		IsAdmin:   profile.IsAdmin(),
	}, nil
}

// IsAdmin reads the caller's access level. A missing profile is reported
// as an error, never as admin.
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	level, err := s.repo.GetAccessLevel(ctx, userID)
	if err != nil {
		return false, err
	}
	return level == AccessLevelAdmin, nil
}

func (s *Service) GetMe(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) ListProfiles(
	ctx context.Context,
	params ListProfilesParams,
) ([]Profile, int, error) {
	if params.Role != "" && params.Role != RoleAdmin && params.Role != RoleUser {
		return nil, 0, fmt.Errorf(
			"list profiles: invalid role %q: %w",
			params.Role,
			core.ErrInvalidInput,
		)
	}
	return s.repo.List(ctx, params)
}

func (s *Service) CountCustomers(ctx context.Context) (int, error) {
	return s.repo.CountByAccessLevel(ctx, AccessLevelRegular)
}

// SetRole changes the access level of the profile with the given email.
// Only the operator CLI calls this.
func (s *Service) SetRole(ctx context.Context, email, role string) error {
	var level int
	switch role {
	case RoleAdmin:
		level = AccessLevelAdmin
	case RoleUser:
		level = AccessLevelRegular
	default:
		return fmt.Errorf("set role: invalid role %q: %w", role, core.ErrInvalidInput)
	}

	return s.repo.SetAccessLevelByEmail(
		ctx,
		strings.ToLower(strings.TrimSpace(email)),
		level,
	)
}

var (
	_ auth.ProfileProvider = (*Service)(nil)
	_ auth.RoleLookup      = (*Service)(nil)
)
