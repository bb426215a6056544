package accounts

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmcdole/campus-transit/pkg/kvstore"
	"github.com/mmcdole/campus-transit/pkg/logging"
)

// RegisteredAccountsKey is the record holding self-registered accounts as a
// JSON array in registration order
const RegisteredAccountsKey = "registered_accounts_record"

// defaultMaxAttempts bounds the read-modify-write retries of Update
const defaultMaxAttempts = 5

// Registry is the persisted, append-only collection of registered accounts
type Registry struct {
	kv          *kvstore.Store
	maxAttempts int
}

// NewRegistry creates a Registry backed by the given persistence context
func NewRegistry(kv *kvstore.Store) *Registry {
	return &Registry{
		kv:          kv,
		maxAttempts: defaultMaxAttempts,
	}
}

// Accounts implements Source
func (r *Registry) Accounts() ([]Account, error) {
	accts, _, err := r.load()
	return accts, err
}

func (r *Registry) load() ([]Account, kvstore.Version, error) {
	data, version, err := r.kv.Get(RegisteredAccountsKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, kvstore.NoVersion, nil
	}
	if err != nil {
		return nil, kvstore.NoVersion, err
	}

	var accts []Account
	if err := json.Unmarshal(data, &accts); err != nil {
		logging.App.Error("Registered accounts record is malformed", "error", err)
		return nil, kvstore.NoVersion, fmt.Errorf("decoding registered accounts: %w", err)
	}
	return accts, version, nil
}

// Update applies fn to the current collection and writes the result back.
// If another writer changed the record in between, the collection is re-read
// and fn runs again, so fn must make its decision from the slice it is given.
func (r *Registry) Update(fn func(current []Account) ([]Account, error)) error {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		current, version, err := r.load()
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encoding registered accounts: %w", err)
		}

		err = r.kv.CompareAndSwap(RegisteredAccountsKey, version, data)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kvstore.ErrVersionConflict) {
			return fmt.Errorf("writing registered accounts: %w", err)
		}
		logging.App.Debug("Registered accounts changed concurrently, retrying", "attempt", attempt)
	}
	return ErrTooManyConflicts
}
