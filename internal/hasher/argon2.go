// Package hasher provides one-way salted password hashing built on
// Argon2id. Cost parameters are supplied at construction so they can
// be tuned without a rebuild; every produced hash is a self-describing
// PHC string, so hashes written under older parameters keep verifying.
package hasher

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength = 16 // bytes
	keyLength  = 32 // bytes

	// maxVerifyMemoryKiB bounds the memory cost accepted from an
	// encoded hash, so a crafted string cannot demand an arbitrarily
	// large allocation at verify time.
	maxVerifyMemoryKiB = 1 << 21 // 2 GiB
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// Params holds Argon2id cost parameters.
type Params struct {
	Time        uint32
	MemoryKiB   uint32
	Parallelism uint8
}

// Argon2id implements password hashing and verification.
type Argon2id struct {
	params Params
}

// New creates an Argon2id hasher with the given cost parameters.
// Zero values are raised to the smallest cost argon2 accepts, so a
// misconfigured deployment degrades to a weak hash instead of
// panicking on every request.
func New(params Params) *Argon2id {
	if params.Time == 0 {
		params.Time = 1
	}
	if params.Parallelism == 0 {
		params.Parallelism = 1
	}
	if params.MemoryKiB < 8*uint32(params.Parallelism) {
		params.MemoryKiB = 8 * uint32(params.Parallelism)
	}
	return &Argon2id{params: params}
}

// Hash produces an encoded Argon2id hash of the password with a fresh
// random salt: $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>.
func (h *Argon2id) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemoryKiB, h.params.Parallelism, keyLength)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKiB,
		h.params.Time,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return encoded, nil
}

// Verify reports whether the password matches the encoded hash.
// Parameters and salt are taken from the encoded string, so hashes
// produced under different cost settings still verify. Empty inputs,
// malformed encodings and mismatches all uniformly return false.
func (h *Argon2id) Verify(password, encodedHash string) bool {
	if password == "" || encodedHash == "" {
		return false
	}

	expected, salt, params, ok := decodeHash(encodedHash)
	if !ok {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, params.Time, params.MemoryKiB, params.Parallelism, uint32(len(expected)))

	return subtle.ConstantTimeCompare(computed, expected) == 1
}

func decodeHash(encodedHash string) (hash, salt []byte, params Params, ok bool) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, Params{}, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, Params{}, false
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, Params{}, false
	}
	// argon2.IDKey panics on zero rounds or threads; an out-of-range
	// cost is a malformed hash, not a reason to crash a login.
	if time == 0 || threads == 0 || threads > 255 {
		return nil, nil, Params{}, false
	}
	if memory > maxVerifyMemoryKiB {
		return nil, nil, Params{}, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, Params{}, false
	}

	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return nil, nil, Params{}, false
	}

	return hash, salt, Params{Time: time, MemoryKiB: memory, Parallelism: uint8(threads)}, true
}
