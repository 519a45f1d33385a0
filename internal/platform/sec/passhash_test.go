// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebelkina/gatehouse/internal/platform/sec"
)

const saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

/*
TestGenerateSalt_LengthAndAlphabet verifies salts are exactly the requested
length and drawn only from the 62-symbol alphanumeric alphabet.
*/
func TestGenerateSalt_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		salt, err := sec.GenerateSalt(8)
		require.NoError(t, err)
		require.Len(t, salt, 8)

		for _, symbol := range salt {
			assert.True(t, strings.ContainsRune(saltAlphabet, symbol),
				"salt symbol %q outside alphanumeric alphabet", symbol)
		}
	}
}

/*
TestGenerateSalt_DefaultLength verifies a non-positive length falls back to
the default of 8.
*/
func TestGenerateSalt_DefaultLength(t *testing.T) {
	salt, err := sec.GenerateSalt(0)
	require.NoError(t, err)
	assert.Len(t, salt, sec.DefaultSaltLength)
}

/*
TestHashWithSalt_KnownVector pins the digest format against a precomputed
value: md5("abc12345" + "password") as lowercase hex.
*/
func TestHashWithSalt_KnownVector(t *testing.T) {
	digest, err := sec.HashWithSalt("password", "abc12345")
	require.NoError(t, err)

	// echo -n "abc12345password" | md5sum
	assert.Equal(t, "364bada94c2ca2150e4a45a3c947f43e", digest)
}

/*
TestHashWithSalt_Deterministic verifies identical inputs always yield the
identical digest.
*/
func TestHashWithSalt_Deterministic(t *testing.T) {
	first, err := sec.HashWithSalt("secret", "SALTsalt")
	require.NoError(t, err)

	second, err := sec.HashWithSalt("secret", "SALTsalt")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 32)
	assert.Equal(t, strings.ToLower(first), first, "digest must be lowercase hex")
}

/*
TestHashWithSalt_EmptyInputs verifies the input contract: an empty password
is valid, an empty salt is not.
*/
func TestHashWithSalt_EmptyInputs(t *testing.T) {
	digest, err := sec.HashWithSalt("", "SALTsalt")
	require.NoError(t, err, "empty password must hash successfully")
	assert.Len(t, digest, 32)

	_, err = sec.HashWithSalt("password", "")
	assert.ErrorIs(t, err, sec.ErrEmptySalt)
}

/*
TestHashWithSalt_DistinctPasswords verifies different plaintexts under the
same salt produce different digests.
*/
func TestHashWithSalt_DistinctPasswords(t *testing.T) {
	first, err := sec.HashWithSalt("password-one", "SALTsalt")
	require.NoError(t, err)

	second, err := sec.HashWithSalt("password-two", "SALTsalt")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestVerify_RoundTrip verifies that any digest produced by HashWithSalt is
accepted by Verify with the same inputs.
*/
func TestVerify_RoundTrip(t *testing.T) {
	passwords := []string{"", "p", "correct horse battery staple", "пароль", "123"}

	for _, password := range passwords {
		salt, err := sec.GenerateSalt(8)
		require.NoError(t, err)

		digest, err := sec.HashWithSalt(password, salt)
		require.NoError(t, err)

		assert.True(t, sec.Verify(password, salt, digest), "password %q", password)
	}
}

/*
TestVerify_Mismatches verifies Verify returns false for wrong passwords,
wrong salts, and malformed expected digests.
*/
func TestVerify_Mismatches(t *testing.T) {
	digest, err := sec.HashWithSalt("secret", "SALTsalt")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		salt     string
		expected string
	}{
		{"wrong_password", "not-secret", "SALTsalt", digest},
		{"wrong_salt", "secret", "saltSALT", digest},
		{"empty_expected", "secret", "SALTsalt", ""},
		{"truncated_expected", "secret", "SALTsalt", digest[:16]},
		{"garbage_expected", "secret", "SALTsalt", "not-a-hex-digest-at-all-nope-nah"},
		{"empty_salt", "secret", "", digest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.Verify(tt.password, tt.salt, tt.expected))
		})
	}
}
