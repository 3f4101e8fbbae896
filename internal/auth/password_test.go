package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	passwords := []string{"secret", "", "contraseña-ñoquis", "with.dots.inside", "  spaces  "}

	for _, p := range passwords {
		stored, err := HashPassword(p)
		require.NoError(t, err)
		assert.True(t, CheckPassword(p, stored), "password %q should verify against its own hash", p)
		assert.False(t, CheckPassword(p+"x", stored))
	}
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	first, err := HashPassword("sorrentinos")
	require.NoError(t, err)
	second, err := HashPassword("sorrentinos")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must differ")
	assert.True(t, CheckPassword("sorrentinos", first))
	assert.True(t, CheckPassword("sorrentinos", second))
}

func TestCheckPasswordMalformedStoredForm(t *testing.T) {
	malformed := []string{
		"",
		"not-a-valid-stored-form",
		"deadbeef",
		".deadbeef",
		"deadbeef.",
		"a.b.c",
		"zzzz.deadbeef",
		"deadbeef.zzzz",
	}

	for _, stored := range malformed {
		assert.False(t, CheckPassword("anything", stored), "stored form %q must fail closed", stored)
	}
}

func TestLooksHashed(t *testing.T) {
	stored, err := HashPassword("ravioli")
	require.NoError(t, err)

	assert.True(t, LooksHashed(stored))
	assert.False(t, LooksHashed("ravioli"))
	assert.False(t, LooksHashed("plain.text"))
	assert.False(t, LooksHashed(""))
}
