package authorization

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mmcdole/campus-transit/pkg/accounts"
	"github.com/mmcdole/campus-transit/pkg/logging"
	"github.com/mmcdole/campus-transit/pkg/session"
)

// Authorize decides whether sess may open a screen restricted to allowed.
// An empty allowed list admits any signed-in user.
func Authorize(sess *session.Session, allowed []accounts.Role) Decision {
	if sess == nil {
		return RedirectToSignIn
	}
	if len(allowed) == 0 {
		return Allow
	}
	for _, r := range allowed {
		if r == sess.Role {
			return Allow
		}
	}
	return RedirectToUnauthorized
}

// Authorizer applies Authorize to a table of named screens
type Authorizer struct {
	source ScreenSource

	mu      sync.RWMutex
	screens map[string]Screen
	order   []string
}

// NewAuthorizer loads the screen table from source
func NewAuthorizer(source ScreenSource) (*Authorizer, error) {
	if source == nil {
		source = NewStaticSource(DefaultScreens())
	}
	a := &Authorizer{source: source}
	if err := a.Reload(); err != nil {
		return nil, err
	}
	return a, nil
}

// Reload re-reads the screen table. On error the previous table is kept.
func (a *Authorizer) Reload() error {
	screens, err := a.source.LoadScreens()
	if err != nil {
		return fmt.Errorf("loading screens: %w", err)
	}

	byName := make(map[string]Screen, len(screens))
	order := make([]string, 0, len(screens))
	for _, s := range screens {
		if s.Name == "" {
			return fmt.Errorf("screen with path %q has no name", s.Path)
		}
		if _, dup := byName[s.Name]; dup {
			return fmt.Errorf("duplicate screen %q", s.Name)
		}
		for _, r := range s.Roles {
			if !r.Valid() {
				return fmt.Errorf("screen %q: unknown role %q", s.Name, r)
			}
		}
		if s.AdminOnly && (len(s.Roles) != 1 || s.Roles[0] != accounts.RoleAdmin) {
			return fmt.Errorf("screen %q is admin only, roles must be [admin]", s.Name)
		}
		byName[s.Name] = s
		order = append(order, s.Name)
	}

	a.mu.Lock()
	a.screens = byName
	a.order = order
	a.mu.Unlock()

	logging.App.Debug("Loaded screen table", "screens", len(order))
	return nil
}

// Decide decides whether sess may open the named screen without recording
// the navigation. Unknown screens lead to the not-found view.
func (a *Authorizer) Decide(sess *session.Session, name string) Decision {
	screen, ok := a.Screen(name)
	switch {
	case !ok:
		return RedirectToUnauthorized
	case screen.Public:
		return Allow
	}
	return Authorize(sess, screen.Roles)
}

// AuthorizeScreen is Decide plus an access log entry for the navigation
func (a *Authorizer) AuthorizeScreen(sess *session.Session, name string) Decision {
	decision := a.Decide(sess, name)

	user := "-"
	if sess != nil {
		user = sess.Username
	}
	logging.Access.LogNavigation(name, user, decision.String())
	return decision
}

// Screen looks up a screen by name
func (a *Authorizer) Screen(name string) (Screen, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.screens[name]
	return s, ok
}

// Screens returns the table in its configured order
func (a *Authorizer) Screens() []Screen {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Screen, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, a.screens[name])
	}
	return out
}

// Visible returns the protected screens sess would be allowed to open
func (a *Authorizer) Visible(sess *session.Session) []Screen {
	var out []Screen
	for _, s := range a.Screens() {
		if s.Public || strings.Contains(s.Path, "{") {
			continue
		}
		if Authorize(sess, s.Roles) == Allow {
			out = append(out, s)
		}
	}
	return out
}
