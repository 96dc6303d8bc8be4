// AngelaMos | 2026
// password.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

// PasswordParams are the argon2id costs recorded in every stored hash.
type PasswordParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultPasswordParams is what new hashes are written with. Hashes made
// with anything else are upgraded on the next successful login.
var DefaultPasswordParams = PasswordParams{
	Memory:  64 * 1024,
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

var ErrMalformedHash = errors.New("malformed password hash")

type passwordHash struct {
	params PasswordParams
	salt   []byte
	key    []byte
}

// String renders the PHC form:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
func (h passwordHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(h.salt),
		base64.RawStdEncoding.EncodeToString(h.key),
	)
}

func (h passwordHash) matches(password string) bool {
	candidate := argon2.IDKey(
		[]byte(password),
		h.salt,
		h.params.Time,
		h.params.Memory,
		h.params.Threads,
		h.params.KeyLen,
	)
	return subtle.ConstantTimeCompare(h.key, candidate) == 1
}

func (h passwordHash) outdated() bool {
	want := DefaultPasswordParams
	return h.params.Memory != want.Memory ||
		h.params.Time != want.Time ||
		h.params.Threads != want.Threads ||
		h.params.KeyLen != want.KeyLen
}

func parsePasswordHash(encoded string) (passwordHash, error) {
	fields := strings.Split(strings.TrimPrefix(encoded, "$"), "$")
	if len(fields) != 5 || fields[0] != "argon2id" {
		return passwordHash{}, ErrMalformedHash
	}

	if fields[1] != "v="+strconv.Itoa(argon2.Version) {
		return passwordHash{}, fmt.Errorf("version %q: %w", fields[1], ErrMalformedHash)
	}

	var h passwordHash
	if _, err := fmt.Sscanf(fields[2], "m=%d,t=%d,p=%d",
		&h.params.Memory, &h.params.Time, &h.params.Threads); err != nil {
		return passwordHash{}, fmt.Errorf("params: %w", ErrMalformedHash)
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(fields[3]); err != nil {
		return passwordHash{}, fmt.Errorf("salt: %w", ErrMalformedHash)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(fields[4]); err != nil {
		return passwordHash{}, fmt.Errorf("key: %w", ErrMalformedHash)
	}

	//nolint:gosec // G115: argon2id keys are a few dozen bytes
	h.params.KeyLen = uint32(len(h.key))
	h.params.SaltLen = len(h.salt)

	return h, nil
}

func HashPassword(password string) (string, error) {
	return hashPasswordWith(password, DefaultPasswordParams)
}

func hashPasswordWith(password string, params PasswordParams) (string, error) {
	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	h := passwordHash{params: params, salt: salt}
	h.key = argon2.IDKey(
		[]byte(password),
		salt,
		params.Time,
		params.Memory,
		params.Threads,
		params.KeyLen,
	)

	return h.String(), nil
}

var dummyHash = sync.OnceValue(func() string {
	//nolint:errcheck // an empty dummy only skips the decoy work
	h, _ := HashPassword("dealership-login-decoy")
	return h
})

// VerifyPasswordTimingSafe checks password against *encoded. A nil or empty
// hash is checked against a decoy so unknown accounts cost the same as wrong
// passwords, and always fails. On success the second result, when non-empty,
// is a replacement hash written with DefaultPasswordParams.
func VerifyPasswordTimingSafe(
	password string,
	encoded *string,
) (bool, string, error) {
	if encoded == nil || *encoded == "" {
		if h, err := parsePasswordHash(dummyHash()); err == nil {
			h.matches(password)
		}
		return false, "", nil
	}

	h, err := parsePasswordHash(*encoded)
	if err != nil {
		return false, "", err
	}

	if !h.matches(password) {
		return false, "", nil
	}

	if !h.outdated() {
		return true, "", nil
	}

	upgraded, err := HashPassword(password)
	if err != nil {
		//nolint:nilerr // the login itself succeeded
		return true, "", nil
	}
	return true, upgraded, nil
}
