package secrets

import (
	"crypto/rand"
	"fmt"

	"github.com/digitive/crypt"
)

const saltAlphabet = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// UnixCrypt implements traditional 13-character DES crypt(3)
type UnixCrypt struct{}

// NewUnixCrypt creates a new Unix crypt scheme
func NewUnixCrypt() *UnixCrypt {
	return &UnixCrypt{}
}

// Hash crypts password with a random two-character salt
func (h *UnixCrypt) Hash(password string) (string, error) {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	salt := string([]byte{saltAlphabet[int(b[0])%len(saltAlphabet)], saltAlphabet[int(b[1])%len(saltAlphabet)]})
	return crypt.Crypt(password, salt)
}

// VerifyPassword recomputes the hash with the stored salt
func (h *UnixCrypt) VerifyPassword(password, stored string) error {
	if len(stored) != 13 {
		return fmt.Errorf("%w: crypt hash must be 13 characters", ErrUnsupportedFormat)
	}

	computed, err := crypt.Crypt(password, stored[:2])
	if err != nil {
		return err
	}
	if computed != stored {
		return ErrMismatch
	}
	return nil
}
