package secrets

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const argon2Prefix = "$argon2id$"

// Argon2ID hashes and verifies Argon2id PHC strings.
// Format: $argon2id$v=19$m=65536,t=2,p=1$<salt_b64>$<hash_b64>
type Argon2ID struct {
	params  argon2Params
	saltLen int
	keyLen  uint32
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

// NewArgon2ID returns an Argon2ID scheme with the usual interactive parameters
func NewArgon2ID() *Argon2ID {
	return &Argon2ID{
		params:  argon2Params{memory: 64 * 1024, time: 2, threads: 1},
		saltLen: 16,
		keyLen:  32,
	}
}

// Hash derives a PHC string for password with a random salt
func (a *Argon2ID) Hash(password string) (string, error) {
	salt := make([]byte, a.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, a.params.time, a.params.memory, a.params.threads, a.keyLen)
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, argon2.Version,
		a.params.memory, a.params.time, a.params.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword verifies a password against a PHC-formatted argon2id hash
func (a *Argon2ID) VerifyPassword(password, stored string) error {
	params, salt, expected, err := parseArgon2ID(stored)
	if err != nil {
		return err
	}

	derived := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(expected)))
	if subtle.ConstantTimeCompare(derived, expected) == 1 {
		return nil
	}
	return ErrMismatch
}

func parseArgon2ID(s string) (argon2Params, []byte, []byte, error) {
	params := argon2Params{memory: 64 * 1024, time: 2, threads: 1}

	if !strings.HasPrefix(s, argon2Prefix) {
		return params, nil, nil, fmt.Errorf("%w: not argon2id", ErrUnsupportedFormat)
	}
	parts := strings.Split(strings.TrimPrefix(s, argon2Prefix), "$")

	// version segment is optional
	if len(parts) > 0 && strings.HasPrefix(parts[0], "v=") {
		if _, err := strconv.Atoi(strings.TrimPrefix(parts[0], "v=")); err != nil {
			return params, nil, nil, fmt.Errorf("invalid argon2id version: %w", err)
		}
		parts = parts[1:]
	}
	if len(parts) != 3 {
		return params, nil, nil, fmt.Errorf("%w: malformed argon2id string", ErrUnsupportedFormat)
	}

	seen := 0
	for _, kv := range strings.Split(parts[0], ",") {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return params, nil, nil, fmt.Errorf("invalid argon2id parameter %q", kv)
		}
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return params, nil, nil, fmt.Errorf("invalid argon2id parameter %q", kv)
		}
		switch key {
		case "m":
			params.memory = uint32(n)
		case "t":
			params.time = uint32(n)
		case "p":
			if n > 255 {
				return params, nil, nil, fmt.Errorf("invalid argon2id parallelism %d", n)
			}
			params.threads = uint8(n)
		default:
			return params, nil, nil, fmt.Errorf("unknown argon2id parameter %q", key)
		}
		seen++
	}
	if seen != 3 {
		return params, nil, nil, fmt.Errorf("argon2id needs m, t and p parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return params, nil, nil, fmt.Errorf("invalid argon2id salt: %w", err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return params, nil, nil, fmt.Errorf("invalid argon2id hash: %w", err)
	}
	if len(hash) == 0 {
		return params, nil, nil, fmt.Errorf("invalid argon2id hash: empty")
	}
	return params, salt, hash, nil
}
