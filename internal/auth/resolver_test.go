// AngelaMos | 2026
// resolver_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dealership/internal/core"
)

func TestResolver(t *testing.T) {
	ctx := context.Background()
	jwtManager := newTestJWT(t)

	token, _, err := jwtManager.CreateAccessToken("user-1", "user@example.com")
	require.NoError(t, err)

	t.Run("admin flag comes from the profile store", func(t *testing.T) {
		blacklist, _ := newBlacklist(t)
		profiles := &fakeProfiles{admins: map[string]bool{"user-1": true}}
		r := NewResolver(jwtManager, blacklist, profiles, nil)

		p, err := r.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", p.UserID)
		assert.Equal(t, "user@example.com", p.Email)
		assert.True(t, p.IsAdmin)
		assert.NotEmpty(t, p.TokenID)

		profiles.admins["user-1"] = false
		p, err = r.Resolve(ctx, token)
		require.NoError(t, err)
		assert.False(t, p.IsAdmin, "demotion applies on the next request")
	})

	t.Run("role lookup failure yields non-admin", func(t *testing.T) {
		profiles := &fakeProfiles{roleErr: errStore}
		r := NewResolver(jwtManager, nil, profiles, nil)

		p, err := r.Resolve(ctx, token)
		require.NoError(t, err)
		assert.False(t, p.IsAdmin)
	})

	t.Run("blacklisted token", func(t *testing.T) {
		blacklist, _ := newBlacklist(t)
		r := NewResolver(jwtManager, blacklist, &fakeProfiles{}, nil)

		p, err := r.Resolve(ctx, token)
		require.NoError(t, err)
		require.NoError(t, blacklist.Revoke(ctx, p.TokenID, time.Now().Add(time.Minute)))

		_, err = r.Resolve(ctx, token)
		assert.ErrorIs(t, err, core.ErrTokenRevoked)
	})

	t.Run("blacklist outage fails open", func(t *testing.T) {
		blacklist, mr := newBlacklist(t)
		mr.Close()
		r := NewResolver(jwtManager, blacklist, &fakeProfiles{}, nil)

		p, err := r.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", p.UserID)
	})

	t.Run("garbage token", func(t *testing.T) {
		r := NewResolver(jwtManager, nil, &fakeProfiles{}, nil)
		_, err := r.Resolve(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, core.ErrTokenInvalid)
	})

	t.Run("token signed by another key", func(t *testing.T) {
		other := newTestJWT(t)
		foreign, _, err := other.CreateAccessToken("user-1", "user@example.com")
		require.NoError(t, err)

		r := NewResolver(jwtManager, nil, &fakeProfiles{}, nil)
		_, err = r.Resolve(ctx, foreign)
		assert.ErrorIs(t, err, core.ErrTokenInvalid)
	})
}

func TestBlacklistIgnoresExpiredTokens(t *testing.T) {
	ctx := context.Background()
	blacklist, mr := newBlacklist(t)

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists(blacklistPrefix+"jti-1"))

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestJanitorPurgesExpiredTokens(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	require.NoError(t, repo.Create(ctx, &RefreshToken{ID: "old", ExpiresAt: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &RefreshToken{ID: "fresh", ExpiresAt: time.Now().Add(time.Hour)}))

	j, err := NewJanitor(repo, "@every 1h", nil)
	require.NoError(t, err)
	j.purge()

	assert.NotContains(t, repo.tokens, "old")
	assert.Contains(t, repo.tokens, "fresh")

	_, err = NewJanitor(repo, "not a schedule", nil)
	assert.Error(t, err)
}
