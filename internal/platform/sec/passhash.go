// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

/*
Package sec implements the credential hashing scheme and the authenticated
Identity type shared between middleware and domain services.

# Hashing Scheme

Credentials are stored as hex(md5(salt || password)) with a per-account
8-character alphanumeric salt. The scheme is inherited from the legacy system
whose rows this service must keep verifying; it is NOT a recommendation —
MD5 is fast and unsuitable for new password storage designs.

# Known Weaknesses

  - MD5 offers no work factor; offline brute force of a leaked digest is cheap.
  - Salts are not checked for uniqueness at generation time. At length 8 over
    a 62-symbol alphabet a collision is improbable, and the salt is only ever
    combined with its own account's digest, never used as a cross-account
    identifier.
*/
package sec

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"math/big"
)

// DefaultSaltLength is the salt length used for every new credential.
const DefaultSaltLength = 8

// saltAlphabet is the 62-symbol set salts are drawn from.
const saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ErrEmptySalt is returned when a digest is requested without a salt.
// An absent salt is a programming error, not a user input problem.
var ErrEmptySalt = errors.New("sec: salt must not be empty")

// GenerateSalt returns a random string of length characters drawn uniformly
// from the alphanumeric alphabet using a cryptographically secure source.
//
// Salts are generated once at account creation and never deliberately reused.
// No uniqueness check is performed across existing accounts (see the package
// doc for why this is acceptable).
func GenerateSalt(length int) (string, error) {
	if length <= 0 {
		length = DefaultSaltLength
	}

	alphabetSize := big.NewInt(int64(len(saltAlphabet)))
	salt := make([]byte, length)

	for i := range salt {
		// crypto/rand.Int is uniform over [0, alphabetSize); no modulo bias.
		index, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", errors.Join(errors.New("sec: failed to read random source"), err)
		}
		salt[i] = saltAlphabet[index.Int64()]
	}

	return string(salt), nil
}

// HashWithSalt computes the lowercase hex MD5 digest of salt || password.
//
// The salt is prefixed, not appended — the digest must match rows written by
// the legacy system. An empty password is a valid input and hashes
// successfully; an empty salt returns [ErrEmptySalt].
//
// Deterministic: identical (password, salt) pairs always yield identical
// digests. All randomness enters through [GenerateSalt].
func HashWithSalt(password, salt string) (string, error) {
	if salt == "" {
		return "", ErrEmptySalt
	}

	sum := md5.Sum([]byte(salt + password))
	return hex.EncodeToString(sum[:]), nil
}

// Verify recomputes the digest for (password, salt) and compares it against
// expected. It returns false on any mismatch, including an empty or malformed
// expected value.
//
// The comparison is constant-time. The legacy system used plain string
// equality here, which leaks timing information; constant-time comparison is
// logically identical and closes that channel.
func Verify(password, salt, expected string) bool {
	digest, err := HashWithSalt(password, salt)
	if err != nil {
		return false
	}
	if len(digest) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(expected)) == 1
}
