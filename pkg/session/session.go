package session

import (
	"github.com/mmcdole/campus-transit/pkg/accounts"
)

// Key is the record holding the persisted session
const Key = "session_record"

// Session is a copy of the signed-in account. The password travels with it
// because the persisted record has always carried it.
type Session struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	FullName string        `json:"fullName"`
	Role     accounts.Role `json:"role"`
	Password string        `json:"password"`
}

// FromAccount builds a session from an authenticated account
func FromAccount(acct *accounts.Account) *Session {
	return &Session{
		ID:       acct.ID,
		Username: acct.Username,
		Email:    acct.Email,
		FullName: acct.FullName,
		Role:     acct.Role,
		Password: acct.Password,
	}
}

// State is the lifecycle state of a session store
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}
