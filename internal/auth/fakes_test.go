// AngelaMos | 2026
// fakes_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dealership/internal/config"
	"github.com/carterperez-dev/dealership/internal/core"
)

type memRepo struct {
	mu         sync.Mutex
	identities map[string]*Identity
	tokens     map[string]*RefreshToken
	deleteErr  error
	deleted    []string
}

func newMemRepo() *memRepo {
	return &memRepo{
		identities: map[string]*Identity{},
		tokens:     map[string]*RefreshToken{},
	}
}

func (m *memRepo) CreateIdentity(_ context.Context, identity *Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.identities {
		if existing.Email == identity.Email {
			return fmt.Errorf("create identity: %w", core.ErrDuplicateKey)
		}
	}
	identity.CreatedAt = time.Now()
	identity.UpdatedAt = identity.CreatedAt
	cp := *identity
	m.identities[identity.ID] = &cp
	return nil
}

func (m *memRepo) GetIdentityByEmail(_ context.Context, email string) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.identities {
		if i.Email == email {
			cp := *i
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get identity: %w", core.ErrNotFound)
}

func (m *memRepo) GetIdentityByID(_ context.Context, id string) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.identities[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, fmt.Errorf("get identity: %w", core.ErrNotFound)
}

func (m *memRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.identities[id]; ok {
		i.PasswordHash = hash
		return nil
	}
	return fmt.Errorf("update password: %w", core.ErrNotFound)
}

func (m *memRepo) DeleteIdentity(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.identities, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memRepo) Create(_ context.Context, token *RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	token.CreatedAt = time.Now()
	cp := *token
	m.tokens[token.ID] = &cp
	return nil
}

func (m *memRepo) FindByHash(_ context.Context, hash string) (*RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		if t.TokenHash == hash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("find token: %w", core.ErrNotFound)
}

func (m *memRepo) MarkAsUsed(_ context.Context, id, replacedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[id]
	if !ok || t.IsUsed {
		return fmt.Errorf("consume token: %w", core.ErrNotFound)
	}
	now := time.Now()
	t.IsUsed = true
	t.UsedAt = &now
	t.ReplacedByID = &replacedBy
	return nil
}

func (m *memRepo) RevokeByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[id]; ok {
		now := time.Now()
		t.RevokedAt = &now
		return nil
	}
	return fmt.Errorf("revoke token: %w", core.ErrNotFound)
}

func (m *memRepo) RevokeByFamilyID(_ context.Context, familyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, t := range m.tokens {
		if t.FamilyID == familyID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (m *memRepo) DeleteExpired(_ context.Context, olderThan time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	var n int64
	for id, t := range m.tokens {
		if t.ExpiresAt.Before(cutoff) {
			delete(m.tokens, id)
			n++
		}
	}
	return n, nil
}

type fakeProfiles struct {
	mu        sync.Mutex
	createErr error
	admins    map[string]bool
	roleErr   error
	created   []NewProfile
}

func (f *fakeProfiles) CreateProfile(_ context.Context, p NewProfile) (*ProfileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, p)
	return &ProfileInfo{
		UserID:    p.UserID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
	}, nil
}

func (f *fakeProfiles) IsAdmin(_ context.Context, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roleErr != nil {
		return false, f.roleErr
	}
	return f.admins[userID], nil
}

var errStore = errors.New("store unavailable")

func newTestJWT(t *testing.T) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(priv, pub))

	m, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     priv,
		PublicKeyPath:      pub,
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 24 * time.Hour,
		Issuer:             "dealership-test",
		Audience:           "dealership-test-api",
	})
	require.NoError(t, err)
	return m
}
