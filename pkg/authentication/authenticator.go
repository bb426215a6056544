package authentication

import (
	"errors"
	"fmt"

	"github.com/mmcdole/campus-transit/pkg/accounts"
	"github.com/mmcdole/campus-transit/pkg/logging"
	"github.com/mmcdole/campus-transit/pkg/session"
)

// ErrInvalidCredentials is returned when no account matches. The message is
// shown to the user as is.
var ErrInvalidCredentials = errors.New("Invalid username or password.")

// Authenticator turns credentials into a session
type Authenticator struct {
	accounts *accounts.Store
	sessions *session.Store
}

// NewAuthenticator creates an authenticator over a credential store and the
// session store it signs users into
func NewAuthenticator(accts *accounts.Store, sessions *session.Store) (*Authenticator, error) {
	if accts == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	return &Authenticator{
		accounts: accts,
		sessions: sessions,
	}, nil
}

// Login looks up the account matching username and password exactly and
// replaces the current session with it. On failure the current session is
// left as it was.
func (a *Authenticator) Login(username, password string) (*session.Session, error) {
	acct, err := a.accounts.FindByCredentials(username, password)
	if errors.Is(err, accounts.ErrNotFound) {
		logging.Access.LogAuth("SIGNIN", username, "failure", "reason", "invalid_credentials")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		logging.Access.LogAuth("SIGNIN", username, "error")
		return nil, fmt.Errorf("looking up credentials: %w", err)
	}

	sess := session.FromAccount(acct)
	if err := a.sessions.Set(sess); err != nil {
		return nil, err
	}

	logging.Access.LogAuth("SIGNIN", username, "success", "role", acct.Role)
	logging.App.Info("User signed in", "username", username, "role", acct.Role)
	return sess, nil
}

// Logout ends the current session, if any
func (a *Authenticator) Logout() error {
	prev := a.sessions.Get()
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	if prev != nil {
		logging.Access.LogAuth("SIGNOUT", prev.Username, "success")
	}
	return nil
}
