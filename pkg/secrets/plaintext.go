package secrets

import "crypto/subtle"

// Plaintext stores passwords as given and compares them byte for byte.
// This matches how the portal has always stored accounts and is not suitable for
// production data.
type Plaintext struct{}

// NewPlaintext returns the plaintext scheme
func NewPlaintext() *Plaintext { return &Plaintext{} }

// Hash returns the password unchanged
func (p *Plaintext) Hash(password string) (string, error) {
	return password, nil
}

// VerifyPassword compares in constant time
func (p *Plaintext) VerifyPassword(password, stored string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1 {
		return nil
	}
	return ErrMismatch
}
