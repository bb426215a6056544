package registration

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mmcdole/campus-transit/pkg/accounts"
	"github.com/mmcdole/campus-transit/pkg/logging"
	"github.com/mmcdole/campus-transit/pkg/secrets"
)

// DefaultMinPasswordLength is the shortest password Signup accepts
const DefaultMinPasswordLength = 6

var (
	// ErrUsernameTaken is returned when a seed or registered account already
	// uses the username
	ErrUsernameTaken = accounts.ErrUsernameTaken

	// ErrEmailTaken is returned when a seed or registered account already
	// uses the email
	ErrEmailTaken = accounts.ErrEmailTaken

	// ErrWeakPassword is returned for passwords below the minimum length
	ErrWeakPassword = errors.New("Password must be at least 6 characters long.")

	// ErrPasswordMismatch is returned by ConfirmPassword
	ErrPasswordMismatch = errors.New("Password and Confirm Password do not match.")
)

// Registrar creates self-registered student accounts
type Registrar struct {
	accounts  *accounts.Store
	hasher    secrets.Hasher
	minLength int
	newID     func() string
}

// Option configures a Registrar
type Option func(*Registrar)

// WithHasher sets how new passwords are stored
func WithHasher(h secrets.Hasher) Option {
	return func(r *Registrar) {
		if h != nil {
			r.hasher = h
		}
	}
}

// WithMinPasswordLength overrides DefaultMinPasswordLength
func WithMinPasswordLength(n int) Option {
	return func(r *Registrar) {
		if n > 0 {
			r.minLength = n
		}
	}
}

// NewRegistrar creates a Registrar appending to the given credential store
func NewRegistrar(accts *accounts.Store, opts ...Option) (*Registrar, error) {
	if accts == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	r := &Registrar{
		accounts:  accts,
		hasher:    secrets.NewPlaintext(),
		minLength: DefaultMinPasswordLength,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// MinPasswordLength returns the configured minimum
func (r *Registrar) MinPasswordLength() int {
	return r.minLength
}

// Signup validates the request and appends a new student account. It does
// not sign the new user in.
func (r *Registrar) Signup(fullName, username, email, password string) error {
	if len(password) < r.minLength {
		logging.Access.LogAuth("SIGNUP", username, "failure", "reason", "weak_password")
		if r.minLength != DefaultMinPasswordLength {
			return &weakPasswordError{min: r.minLength}
		}
		return ErrWeakPassword
	}

	taken, err := r.accounts.UsernameExists(username)
	if err != nil {
		return fmt.Errorf("checking username: %w", err)
	}
	if taken {
		logging.Access.LogAuth("SIGNUP", username, "failure", "reason", "username_taken")
		return ErrUsernameTaken
	}

	taken, err = r.accounts.EmailExists(email)
	if err != nil {
		return fmt.Errorf("checking email: %w", err)
	}
	if taken {
		logging.Access.LogAuth("SIGNUP", username, "failure", "reason", "email_taken")
		return ErrEmailTaken
	}

	stored, err := r.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	acct := accounts.Account{
		ID:       r.newID(),
		Username: username,
		Email:    email,
		FullName: fullName,
		Role:     accounts.DefaultRole,
		Password: stored,
	}
	if err := r.accounts.Append(acct); err != nil {
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) {
			logging.Access.LogAuth("SIGNUP", username, "failure", "reason", "conflict")
			return err
		}
		return fmt.Errorf("saving account: %w", err)
	}

	logging.Access.LogAuth("SIGNUP", username, "success", "id", acct.ID)
	logging.App.Info("Account registered", "username", username, "id", acct.ID)
	return nil
}

// weakPasswordError carries a non-default minimum and still matches
// ErrWeakPassword under errors.Is
type weakPasswordError struct {
	min int
}

func (e *weakPasswordError) Error() string {
	return fmt.Sprintf("Password must be at least %d characters long.", e.min)
}

func (e *weakPasswordError) Is(target error) bool {
	return target == ErrWeakPassword
}

// ConfirmPassword checks that a password and its confirmation agree
func ConfirmPassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}
