package secrets

import (
	"errors"
	"strings"
)

// MultiVerifier detects the format of a stored password and delegates to the
// matching verifier. New passwords are hashed with the primary scheme.
type MultiVerifier struct {
	primary        Scheme
	argon2id       *Argon2ID
	unixCrypt      *UnixCrypt
	allowPlaintext bool
}

// NewMultiVerifier creates a verifier that understands Argon2id and Unix
// crypt. With allowPlaintext, stored values that are not recognisable hashes
// are compared as plaintext so seed accounts keep working after a scheme
// change. A 13-character plaintext made only of crypt characters reads as a
// crypt hash and is not supported.
func NewMultiVerifier(primary Scheme, allowPlaintext bool) *MultiVerifier {
	if primary == nil {
		primary = NewArgon2ID()
	}
	return &MultiVerifier{
		primary:        primary,
		argon2id:       NewArgon2ID(),
		unixCrypt:      NewUnixCrypt(),
		allowPlaintext: allowPlaintext,
	}
}

// Hash delegates to the primary scheme
func (v *MultiVerifier) Hash(password string) (string, error) {
	return v.primary.Hash(password)
}

// VerifyPassword dispatches on the stored format
func (v *MultiVerifier) VerifyPassword(password, stored string) error {
	if stored == "" {
		return errors.New("empty stored password")
	}

	if strings.HasPrefix(stored, argon2Prefix) {
		return v.argon2id.VerifyPassword(password, stored)
	}

	// A crypt-shaped value is never compared as plaintext, otherwise the
	// hash itself would be accepted as the password
	if isCryptHash(stored) {
		return v.unixCrypt.VerifyPassword(password, stored)
	}

	if v.allowPlaintext {
		return NewPlaintext().VerifyPassword(password, stored)
	}
	return ErrUnsupportedFormat
}

// isCryptHash reports whether stored has the shape of a DES crypt(3) hash
func isCryptHash(stored string) bool {
	if len(stored) != 13 {
		return false
	}
	for i := 0; i < len(stored); i++ {
		if !strings.ContainsRune(saltAlphabet, rune(stored[i])) {
			return false
		}
	}
	return true
}
