package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	apperrors "commune/internal/errors"
)

// argon2id parameters. 64 MiB / 1 pass / 4 lanes is the RFC 9106
// second recommended option.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// CredentialManager hashes and verifies passwords using argon2id.
// Hashes are stored in the standard $argon2id$... encoded form, so the
// parameters a hash was created with travel with it.
type CredentialManager struct{}

// NewCredentialManager creates a credential manager.
func NewCredentialManager() *CredentialManager {
	return &CredentialManager{}
}

// Hash derives a one-way hash of the plaintext with a fresh random salt.
func (m *CredentialManager) Hash(plaintext string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %v", apperrors.ErrInternal, err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
	return encoded, nil
}

// Verify reports whether plaintext matches the encoded hash. The key
// comparison is constant time; a malformed hash verifies as false.
func (m *CredentialManager) Verify(encoded, plaintext string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, passes uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &passes, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return false
	}

	derived := argon2.IDKey([]byte(plaintext), salt, passes, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, derived) == 1
}
