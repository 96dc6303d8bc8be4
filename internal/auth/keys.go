// AngelaMos | 2026
// keys.go

package auth

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lestrrat-go/jwx/v3/jwk"
)

func readPEMKey(path string) (jwk.Key, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}

	key, err := jwk.ParseKey(raw, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse key %s: %w", path, err)
	}
	return key, nil
}

func thumbprint(key jwk.Key) (string, error) {
	sum, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("key thumbprint: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(sum), nil
}

// GenerateKeyPair writes a fresh P-256 key pair as PEM. It never replaces
// an existing private key.
func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	privateKey, err := jwk.Import(ecKey)
	if err != nil {
		return fmt.Errorf("import private key: %w", err)
	}

	publicKey, err := privateKey.PublicKey()
	if err != nil {
		return fmt.Errorf("derive public key: %w", err)
	}

	privatePEM, err := jwk.Pem(privateKey)
	if err != nil {
		return fmt.Errorf("encode private key: %w", err)
	}

	publicPEM, err := jwk.Pem(publicKey)
	if err != nil {
		return fmt.Errorf("encode public key: %w", err)
	}

	if err := writeNewFile(privateKeyPath, privatePEM, 0o600); err != nil {
		return err
	}
	//nolint:gosec // G306: the public half is meant to be readable
	return os.WriteFile(publicKeyPath, publicPEM, 0o644)
}

func writeNewFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create key directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close() //nolint:errcheck // write error takes precedence
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
