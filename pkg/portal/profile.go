package portal

import (
	"github.com/mmcdole/campus-transit/pkg/accounts"
	"github.com/mmcdole/campus-transit/pkg/session"
)

// Profile is the part of a session that views may show
type Profile struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	FullName  string        `json:"fullName"`
	Role      accounts.Role `json:"role"`
	RoleLabel string        `json:"roleLabel"`
	Badge     string        `json:"badge"`
}

// ProfileOf strips the password from a session. Returns nil for nil.
func ProfileOf(sess *session.Session) *Profile {
	if sess == nil {
		return nil
	}
	return &Profile{
		ID:        sess.ID,
		Username:  sess.Username,
		Email:     sess.Email,
		FullName:  sess.FullName,
		Role:      sess.Role,
		RoleLabel: sess.Role.Label(),
		Badge:     sess.Role.Badge(),
	}
}
