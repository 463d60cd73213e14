package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialManager_HashAndVerify(t *testing.T) {
	m := NewCredentialManager()

	hash, err := m.Hash("pw1")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "pw1")

	assert.True(t, m.Verify(hash, "pw1"))
	assert.False(t, m.Verify(hash, "pw2"))
	assert.False(t, m.Verify(hash, ""))
}

func TestCredentialManager_SaltsDiffer(t *testing.T) {
	m := NewCredentialManager()

	first, err := m.Hash("same-password")
	assert.NoError(t, err)
	second, err := m.Hash("same-password")
	assert.NoError(t, err)

	// fresh random salt per hash: equal plaintexts must not collide
	assert.NotEqual(t, first, second)
	assert.True(t, m.Verify(first, "same-password"))
	assert.True(t, m.Verify(second, "same-password"))
}

func TestCredentialManager_MalformedHash(t *testing.T) {
	m := NewCredentialManager()

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "not a hash", encoded: "plaintext"},
		{name: "wrong algorithm", encoded: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "bad salt encoding", encoded: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{name: "bad key encoding", encoded: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
		{name: "missing sections", encoded: "$argon2id$v=19$m=65536,t=1,p=4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, m.Verify(tt.encoded, "anything"))
		})
	}
}
