// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/dealership/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenReuse         = errors.New("token reuse detected")
	ErrEmailExists        = errors.New("User already registered")
	ErrInvalidEmail       = errors.New(
		"Unable to validate email address: invalid format",
	)
	ErrWeakPassword = errors.New("weak password")

	// ErrProfileSetupFailed means the profile insert failed and the identity
	// was rolled back.
	ErrProfileSetupFailed = errors.New("profile setup failed")
	// ErrOrphanedIdentity means the profile insert failed and the identity
	// could not be removed either.
	ErrOrphanedIdentity = errors.New("identity left without profile")
)

// ProviderError is a rejection from the identity provider that is safe to
// show to the caller verbatim.
type ProviderError struct {
	Err     error
	Message string
}

func (e *ProviderError) Error() string { return e.Message }
func (e *ProviderError) Unwrap() error { return e.Err }

type NewProfile struct {
	UserID        string
	FirstName     string
	MiddleName    *string
	LastName      string
	Email         string
	ContactNumber string
}

type ProfileInfo struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

// ProfileProvider owns the profile half of an account.
type ProfileProvider interface {
	CreateProfile(ctx context.Context, p NewProfile) (*ProfileInfo, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type accessTokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}

type Service struct {
	repo              Repository
	jwt               *JWTManager
	profiles          ProfileProvider
	blacklist         accessTokenRevoker
	minPasswordLength int
	logger            *slog.Logger
}

func NewService(
	repo Repository,
	jwt *JWTManager,
	profiles ProfileProvider,
	blacklist accessTokenRevoker,
	minPasswordLength int,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:              repo,
		jwt:               jwt,
		profiles:          profiles,
		blacklist:         blacklist,
		minPasswordLength: minPasswordLength,
		logger:            logger,
	}
}

// Signup creates an identity and then its profile. If the profile cannot be
// written the identity is deleted again so the email can be reused.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*SignupResponse, error) {
	ctx, span := core.StartSpan(ctx, "auth.Signup")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !core.IsContactEmail(email) {
		return nil, &ProviderError{Err: ErrInvalidEmail, Message: ErrInvalidEmail.Error()}
	}

	if len(req.Password) < s.minPasswordLength {
		return nil, &ProviderError{
			Err: ErrWeakPassword,
			Message: fmt.Sprintf(
				"Password should be at least %d characters",
				s.minPasswordLength,
			),
		}
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	identity := &Identity{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.repo.CreateIdentity(ctx, identity); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, &ProviderError{Err: ErrEmailExists, Message: ErrEmailExists.Error()}
		}
		return nil, fmt.Errorf("create identity: %w", err)
	}

	profile, err := s.profiles.CreateProfile(ctx, NewProfile{
		UserID:        identity.ID,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Email:         email,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, s.compensateSignup(ctx, identity.ID, err)
	}

	createdAt := identity.CreatedAt
	return &SignupResponse{
		Message: "Account created successfully",
		User: UserResponse{
			ID:        identity.ID,
			Email:     identity.Email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			IsAdmin:   profile.IsAdmin,
			CreatedAt: &createdAt,
		},
	}, nil
}

func (s *Service) compensateSignup(
	ctx context.Context,
	identityID string,
	cause error,
) error {
	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if delErr := s.repo.DeleteIdentity(delCtx, identityID); delErr != nil {
		s.logger.ErrorContext(ctx, "signup compensation failed",
			"user_id", identityID,
			"profile_error", cause,
			"delete_error", delErr,
		)
		return fmt.Errorf("%w: %w", ErrOrphanedIdentity, cause)
	}

	s.logger.WarnContext(ctx, "signup rolled back after profile failure",
		"user_id", identityID,
		"error", cause,
	)
	core.AddSpanEvent(ctx, "signup.rolled_back",
		attribute.String("user_id", identityID),
	)
	return fmt.Errorf("%w: %w", ErrProfileSetupFailed, cause)
}
