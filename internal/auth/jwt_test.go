// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dealership/internal/config"
	"github.com/carterperez-dev/dealership/internal/core"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestJWT(t)

	token, expiresAt, err := m.CreateAccessToken("user-1", "ada@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := m.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
}

func TestVerifyRejectsTokenFromAnotherKey(t *testing.T) {
	signer := newTestJWT(t)
	verifier := newTestJWT(t)

	token, _, err := signer.CreateAccessToken("user-1", "ada@example.com")
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyReportsExpiry(t *testing.T) {
	m := newTestJWT(t)
	m.config.AccessTokenExpire = -time.Minute

	token, _, err := m.CreateAccessToken("user-1", "ada@example.com")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := newTestJWT(t).VerifyAccessToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestRefreshTokenKeepsFamily(t *testing.T) {
	m := newTestJWT(t)

	first, err := m.CreateRefreshToken("")
	require.NoError(t, err)
	assert.NotEmpty(t, first.FamilyID)
	assert.Equal(t, core.HashToken(first.Token), first.Hash)

	next, err := m.CreateRefreshToken(first.FamilyID)
	require.NoError(t, err)
	assert.Equal(t, first.FamilyID, next.FamilyID)
	assert.NotEqual(t, first.Token, next.Token)
}

func TestJWKSHandlerPublishesSigningKey(t *testing.T) {
	m := newTestJWT(t)

	rec := httptest.NewRecorder()
	m.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Keys, 1)
	assert.Equal(t, m.GetKeyID(), body.Keys[0]["kid"])
	assert.Equal(t, "EC", body.Keys[0]["kty"])
	assert.NotContains(t, body.Keys[0], "d")
}

func TestKeyIDIsStableAcrossManagers(t *testing.T) {
	dir := t.TempDir()
	cfg := config.JWTConfig{
		PrivateKeyPath:    filepath.Join(dir, "keys", "private.pem"),
		PublicKeyPath:     filepath.Join(dir, "keys", "public.pem"),
		AccessTokenExpire: time.Minute,
		Issuer:            "dealership-test",
		Audience:          "dealership-test-api",
	}
	require.NoError(t, GenerateKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath))

	a, err := NewJWTManager(cfg)
	require.NoError(t, err)
	b, err := NewJWTManager(cfg)
	require.NoError(t, err)
	assert.Equal(t, a.GetKeyID(), b.GetKeyID())

	token, _, err := a.CreateAccessToken("user-1", "ada@example.com")
	require.NoError(t, err)
	_, err = b.VerifyAccessToken(context.Background(), token)
	assert.NoError(t, err)
}

func TestGenerateKeyPairKeepsExistingKey(t *testing.T) {
	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(priv, pub))
	before, err := os.ReadFile(priv)
	require.NoError(t, err)

	assert.ErrorIs(t, GenerateKeyPair(priv, pub), os.ErrExist)

	after, err := os.ReadFile(priv)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestNewJWTManagerRejectsForeignPublicKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateKeyPair(filepath.Join(dir, "a.pem"), filepath.Join(dir, "a.pub")))
	require.NoError(t, GenerateKeyPair(filepath.Join(dir, "b.pem"), filepath.Join(dir, "b.pub")))

	_, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath: filepath.Join(dir, "a.pem"),
		PublicKeyPath:  filepath.Join(dir, "b.pub"),
	})
	assert.ErrorContains(t, err, "does not match")
}
