// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/dealership/internal/config"
	"github.com/carterperez-dev/dealership/internal/core"
)

type JWTManager struct {
	privateKey jwk.Key
	publicKey  jwk.Key
	publicJWKS jwk.Set
	keyID      string
	config     config.JWTConfig
}

// NewJWTManager loads the ES256 signing key. The key id is the RFC 7638
// thumbprint of the public key, so every replica publishes the same JWKS.
// When a public key path is configured it must hold the matching key.
func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	privateKey, err := readPEMKey(cfg.PrivateKeyPath)
	if err != nil {
		return nil, err
	}

	publicKey, err := privateKey.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	keyID, err := thumbprint(publicKey)
	if err != nil {
		return nil, err
	}

	if cfg.PublicKeyPath != "" {
		published, readErr := readPEMKey(cfg.PublicKeyPath)
		if readErr != nil {
			return nil, readErr
		}
		publishedID, tpErr := thumbprint(published)
		if tpErr != nil {
			return nil, tpErr
		}
		if publishedID != keyID {
			return nil, fmt.Errorf("public key %s does not match the signing key", cfg.PublicKeyPath)
		}
	}

	for _, k := range []jwk.Key{privateKey, publicKey} {
		if setErr := k.Set(jwk.KeyIDKey, keyID); setErr != nil {
			return nil, fmt.Errorf("set key id: %w", setErr)
		}
		if setErr := k.Set(jwk.AlgorithmKey, jwa.ES256()); setErr != nil {
			return nil, fmt.Errorf("set algorithm: %w", setErr)
		}
	}
	if setErr := publicKey.Set(jwk.KeyUsageKey, "sig"); setErr != nil {
		return nil, fmt.Errorf("set key usage: %w", setErr)
	}

	publicJWKS := jwk.NewSet()
	if addErr := publicJWKS.AddKey(publicKey); addErr != nil {
		return nil, fmt.Errorf("add key to set: %w", addErr)
	}

	return &JWTManager{
		privateKey: privateKey,
		publicKey:  publicKey,
		publicJWKS: publicJWKS,
		keyID:      keyID,
		config:     cfg,
	}, nil
}

// AccessTokenClaims is what a verified access token asserts. Roles are not
// carried in the token; they are looked up per request.
type AccessTokenClaims struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

func (m *JWTManager) AccessTokenTTL() time.Duration {
	return m.config.AccessTokenExpire
}

const (
	claimEmail      = "email"
	claimType       = "type"
	tokenTypeAccess = "access"
)

func (m *JWTManager) CreateAccessToken(userID, email string) (string, time.Time, error) {
	issuedAt := time.Now()
	expiresAt := issuedAt.Add(m.config.AccessTokenExpire)

	token, err := jwt.NewBuilder().
		Subject(userID).
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		IssuedAt(issuedAt).
		NotBefore(issuedAt).
		Expiration(expiresAt).
		Claim(claimType, tokenTypeAccess).
		Claim(claimEmail, email).
		Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build access token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.privateKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return string(signed), expiresAt, nil
}

// VerifyAccessToken checks signature, issuer, audience and lifetime. An
// expired token reports core.ErrTokenExpired; every other failure is
// core.ErrTokenInvalid.
func (m *JWTManager) VerifyAccessToken(_ context.Context, raw string) (*AccessTokenClaims, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.ES256(), m.publicKey),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if errors.Is(err, jwt.TokenExpiredError()) {
		return nil, fmt.Errorf("verify access token: %w", core.ErrTokenExpired)
	}
	if err != nil {
		return nil, fmt.Errorf("verify access token: %w", core.ErrTokenInvalid)
	}

	var kind string
	if err := token.Get(claimType, &kind); err != nil || kind != tokenTypeAccess {
		return nil, fmt.Errorf("verify access token: wrong type %q: %w", kind, core.ErrTokenInvalid)
	}

	claims := &AccessTokenClaims{}
	var ok bool
	if claims.UserID, ok = token.Subject(); !ok || claims.UserID == "" {
		return nil, fmt.Errorf("verify access token: no subject: %w", core.ErrTokenInvalid)
	}
	if claims.TokenID, ok = token.JwtID(); !ok || claims.TokenID == "" {
		return nil, fmt.Errorf("verify access token: no jti: %w", core.ErrTokenInvalid)
	}
	claims.ExpiresAt, _ = token.Expiration()
	//nolint:errcheck // email is informational
	_ = token.Get(claimEmail, &claims.Email)

	return claims, nil
}

// GetJWKSHandler serves the public key set. The set is fixed for the life
// of the process so it is encoded once.
func (m *JWTManager) GetJWKSHandler() http.HandlerFunc {
	body, err := json.Marshal(m.publicJWKS)
	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			core.InternalServerError(w, fmt.Errorf("encode jwks: %w", err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		//nolint:errcheck // best-effort response write
		_, _ = w.Write(body)
	}
}

func (m *JWTManager) GetKeyID() string {
	return m.keyID
}

type RefreshTokenData struct {
	Token     string
	Hash      string
	ExpiresAt time.Time
	FamilyID  string
}

// CreateRefreshToken mints an opaque refresh token. An empty familyID
// starts a new rotation family.
func (m *JWTManager) CreateRefreshToken(familyID string) (*RefreshTokenData, error) {
	token, err := core.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	hash := core.HashToken(token)
	expiresAt := time.Now().Add(m.config.RefreshTokenExpire)

	if familyID == "" {
		familyID = uuid.New().String()
	}

	return &RefreshTokenData{
		Token:     token,
		Hash:      hash,
		ExpiresAt: expiresAt,
		FamilyID:  familyID,
	}, nil
}
