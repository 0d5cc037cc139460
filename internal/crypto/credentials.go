// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

var ErrMalformedDigest = errors.New("malformed credential digest")

const (
	saltLength = 16
	keyLength  = 32
)

type argonCredentialHasher struct {
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewCredentialHasher returns an argon2id hasher with interactive-login
// parameters (64 MiB, one pass, four lanes).
func NewCredentialHasher() CredentialHasher {
	return newCredentialHasher(1, 64*1024, 4)
}

func newCredentialHasher(time, memoryKiB uint32, threads uint8) *argonCredentialHasher {
	return &argonCredentialHasher{
		argonTime:    time,
		argonMemory:  memoryKiB,
		argonThreads: threads,
	}
}

// Hash encodes the digest as $argon2id$v=19$m=<mem>,t=<time>,p=<threads>$<salt>$<key>
// with unpadded standard base64, the format used by the reference implementation.
func (a *argonCredentialHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, a.argonTime, a.argonMemory, a.argonThreads, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.argonMemory, a.argonTime, a.argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (a *argonCredentialHasher) Verify(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedDigest
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedDigest, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedDigest, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedDigest
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
