package accounts

import "errors"

var (
	// ErrNotFound is returned when no account matches
	ErrNotFound = errors.New("account not found")

	// ErrUsernameTaken is returned when a username is already in use
	ErrUsernameTaken = errors.New("Username already exists.")

	// ErrEmailTaken is returned when an email is already registered
	ErrEmailTaken = errors.New("Email already registered.")

	// ErrTooManyConflicts is returned when an append keeps losing races
	ErrTooManyConflicts = errors.New("registered accounts changed too often, try again")
)
