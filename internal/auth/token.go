// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth verifies the shared admin token. The configured secret is
// either the token itself or an argon2id hash of it.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 parameters (OWASP recommended second choice: m=19456, t=2, p=1)
const (
	Argon2Time    = 2
	Argon2Memory  = 19 * 1024
	Argon2Threads = 1
	Argon2KeyLen  = 32
	Argon2SaltLen = 16
)

const hashPrefix = "$argon2id$"

// ErrInvalidHash is returned for a secret that looks like an argon2id hash
// but cannot be decoded.
var ErrInvalidHash = errors.New("invalid argon2id hash")

// IsHash reports whether secret is written in the encoded argon2id form.
func IsHash(secret string) bool {
	return strings.HasPrefix(secret, hashPrefix)
}

// HashToken creates an Argon2id hash of the token.
// Returns encoded hash in format: $argon2id$v=19$m=19456,t=2,p=1$salt$hash
func HashToken(token string) (string, error) {
	salt := make([]byte, Argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(token), salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, Argon2Memory, Argon2Time, Argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

type argonHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func parseHash(encoded string) (*argonHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrInvalidHash, parts[2])
	}

	h := &argonHash{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.time, &h.threads); err != nil {
		return nil, fmt.Errorf("%w: parsing parameters: %v", ErrInvalidHash, err)
	}
	if h.memory == 0 || h.time == 0 || h.threads == 0 {
		return nil, fmt.Errorf("%w: zero cost parameter", ErrInvalidHash)
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: decoding salt: %v", ErrInvalidHash, err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(h.key) == 0 {
		return nil, fmt.Errorf("%w: decoding key", ErrInvalidHash)
	}
	return h, nil
}

// Verifier checks presented tokens against the configured secret.
type Verifier struct {
	plain []byte
	hash  *argonHash
}

// NewVerifier builds a Verifier for secret. A secret starting with
// "$argon2id$" is decoded as a hash; anything else is compared verbatim.
func NewVerifier(secret string) (*Verifier, error) {
	if !IsHash(secret) {
		return &Verifier{plain: []byte(secret)}, nil
	}
	h, err := parseHash(secret)
	if err != nil {
		return nil, err
	}
	return &Verifier{hash: h}, nil
}

// Verify reports whether token matches the secret in constant time.
func (v *Verifier) Verify(token string) bool {
	if v.hash == nil {
		return subtle.ConstantTimeCompare([]byte(token), v.plain) == 1
	}
	key := argon2.IDKey([]byte(token), v.hash.salt, v.hash.time, v.hash.memory, v.hash.threads, uint32(len(v.hash.key)))
	return subtle.ConstantTimeCompare(key, v.hash.key) == 1
}
