package accounts

import (
	"errors"
	"fmt"

	"github.com/mmcdole/campus-transit/pkg/logging"
	"github.com/mmcdole/campus-transit/pkg/secrets"
)

// Store is the credential store: the union of the seed accounts and the
// registered accounts, seeds first
type Store struct {
	seeds    *SeedSource
	registry *Registry
	verifier secrets.Verifier
}

// NewStore creates a credential store. A nil verifier compares passwords as
// plaintext.
func NewStore(seeds *SeedSource, registry *Registry, verifier secrets.Verifier) (*Store, error) {
	if seeds == nil {
		return nil, fmt.Errorf("seed source is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if verifier == nil {
		verifier = secrets.NewPlaintext()
	}
	return &Store{
		seeds:    seeds,
		registry: registry,
		verifier: verifier,
	}, nil
}

// sources returns the lookup order
func (s *Store) sources() []Source {
	return []Source{s.seeds, s.registry}
}

// FindByCredentials returns the first account whose username and password
// match, looking at seed accounts before registered ones
func (s *Store) FindByCredentials(username, password string) (*Account, error) {
	for _, src := range s.sources() {
		accts, err := src.Accounts()
		if err != nil {
			return nil, err
		}
		for i := range accts {
			if accts[i].Username != username {
				continue
			}
			err := s.verifier.VerifyPassword(password, accts[i].Password)
			if err == nil {
				acct := accts[i]
				return &acct, nil
			}
			if !errors.Is(err, secrets.ErrMismatch) {
				logging.App.Debug("Stored password not verifiable", "username", username, "error", err)
			}
		}
	}
	return nil, ErrNotFound
}

// UsernameExists reports whether any seed or registered account uses username
func (s *Store) UsernameExists(username string) (bool, error) {
	return s.exists(func(a *Account) bool { return a.Username == username })
}

// EmailExists reports whether any seed or registered account uses email
func (s *Store) EmailExists(email string) (bool, error) {
	return s.exists(func(a *Account) bool { return a.Email == email })
}

func (s *Store) exists(match func(*Account) bool) (bool, error) {
	for _, src := range s.sources() {
		accts, err := src.Accounts()
		if err != nil {
			return false, err
		}
		for i := range accts {
			if match(&accts[i]) {
				return true, nil
			}
		}
	}
	return false, nil
}

// Append adds acct to the registered accounts. Uniqueness is checked again
// against the collection actually being written, so two writers racing with
// the same username cannot both succeed.
func (s *Store) Append(acct Account) error {
	seeds, _ := s.seeds.Accounts()

	err := s.registry.Update(func(current []Account) ([]Account, error) {
		all := make([]Account, 0, len(seeds)+len(current))
		all = append(all, seeds...)
		all = append(all, current...)
		if err := checkUnique(all, acct); err != nil {
			return nil, err
		}
		return append(current, acct), nil
	})
	if err != nil {
		return err
	}

	logging.App.Debug("Appended registered account", "username", acct.Username, "id", acct.ID)
	return nil
}

func checkUnique(accts []Account, acct Account) error {
	for i := range accts {
		if accts[i].Username == acct.Username {
			return ErrUsernameTaken
		}
	}
	for i := range accts {
		if accts[i].Email == acct.Email {
			return ErrEmailTaken
		}
	}
	return nil
}

// Seeds returns the built-in accounts
func (s *Store) Seeds() []Account {
	accts, _ := s.seeds.Accounts()
	return accts
}

// Registered returns the registered accounts in registration order
func (s *Store) Registered() ([]Account, error) {
	return s.registry.Accounts()
}
