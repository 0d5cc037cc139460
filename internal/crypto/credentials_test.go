package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// маленькие параметры, чтобы тесты не тратили 64 MiB на каждый вызов
func testHasher() *argonCredentialHasher {
	return newCredentialHasher(1, 1024, 1)
}

func TestCredentialHasher_RoundTrip(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("correct-horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := h.Verify("correct-horse", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong-horse", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialHasher_SaltIsRandom(t *testing.T) {
	h := testHasher()

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCredentialHasher_VerifyUsesEncodedParameters(t *testing.T) {
	encoded, err := newCredentialHasher(2, 2048, 2).Hash("pw-123456")
	require.NoError(t, err)

	// хешер с другими параметрами всё равно проверяет по параметрам из строки
	ok, err := testHasher().Verify("pw-123456", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCredentialHasher_MalformedDigest(t *testing.T) {
	h := testHasher()

	for _, encoded := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		_, err := h.Verify("pw", encoded)
		assert.ErrorIs(t, err, ErrMalformedDigest, encoded)
	}
}
