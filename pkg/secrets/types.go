// Package secrets holds the password schemes accounts are checked with.
//
// The portal stores passwords in plaintext by default, as the existing
// records do. Every comparison goes through a Scheme so a salted hash can be
// configured without touching the credential store or its callers.
package secrets

import (
	"errors"
	"fmt"
)

// Verifier checks a password against its stored form
type Verifier interface {
	// VerifyPassword returns nil if password matches stored
	VerifyPassword(password, stored string) error
}

// Hasher produces the stored form of a new password
type Hasher interface {
	Hash(password string) (string, error)
}

// Scheme both stores and verifies passwords
type Scheme interface {
	Verifier
	Hasher
}

var (
	// ErrMismatch is returned when a password does not match its stored form
	ErrMismatch = errors.New("password mismatch")

	// ErrUnsupportedFormat is returned for stored values no verifier understands
	ErrUnsupportedFormat = errors.New("unsupported password format")
)

// Scheme names accepted in configuration
const (
	SchemePlaintext = "plaintext"
	SchemeArgon2ID  = "argon2id"
	SchemeUnixCrypt = "unixcrypt"
)

// ByName returns the scheme for a configuration name. Hashing schemes are
// wrapped so that plaintext seed and legacy records keep verifying.
func ByName(name string) (Scheme, error) {
	switch name {
	case "", SchemePlaintext:
		return NewPlaintext(), nil
	case SchemeArgon2ID:
		return NewMultiVerifier(NewArgon2ID(), true), nil
	case SchemeUnixCrypt:
		return NewMultiVerifier(NewUnixCrypt(), true), nil
	}
	return nil, fmt.Errorf("unknown password scheme %q", name)
}
