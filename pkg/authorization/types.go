package authorization

import (
	"github.com/mmcdole/campus-transit/pkg/accounts"
)

// Decision is the outcome of an access check
type Decision int

const (
	Allow Decision = iota
	RedirectToSignIn
	RedirectToUnauthorized
)

// Paths the redirect decisions lead to
const (
	SignInPath       = "/signin"
	UnauthorizedPath = "/not-found"
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToSignIn:
		return "redirect_signin"
	case RedirectToUnauthorized:
		return "redirect_unauthorized"
	}
	return "unknown"
}

// Target is where the caller should go instead. Empty for Allow.
func (d Decision) Target() string {
	switch d {
	case RedirectToSignIn:
		return SignInPath
	case RedirectToUnauthorized:
		return UnauthorizedPath
	}
	return ""
}

// Screen names
const (
	ScreenLanding        = "landing"
	ScreenSignIn         = "signin"
	ScreenSignUp         = "signup"
	ScreenDashboard      = "dashboard"
	ScreenBusDetails     = "bus-details"
	ScreenAdminBuses     = "admin-buses"
	ScreenAdminRoutes    = "admin-routes"
	ScreenAdminSchedules = "admin-schedules"
	ScreenAdminDrivers   = "admin-drivers"
)

// Screen is a navigable view. Public screens skip the session check. For
// protected screens an empty Roles list admits any signed-in user.
// AdminOnly screens must keep Roles exactly [admin].
type Screen struct {
	Name      string          `json:"name"`
	Path      string          `json:"path"`
	Title     string          `json:"title,omitempty"`
	Public    bool            `json:"public,omitempty"`
	AdminOnly bool            `json:"adminOnly,omitempty"`
	Roles     []accounts.Role `json:"roles,omitempty"`
}

// ScreenSource provides the screen table
type ScreenSource interface {
	LoadScreens() ([]Screen, error)
}

// DefaultScreens returns the portal's built-in screen table
func DefaultScreens() []Screen {
	adminOnly := []accounts.Role{accounts.RoleAdmin}
	return []Screen{
		{Name: ScreenLanding, Path: "/", Title: "Home", Public: true},
		{Name: ScreenSignIn, Path: "/signin", Title: "Sign In", Public: true},
		{Name: ScreenSignUp, Path: "/signup", Title: "Sign Up", Public: true},
		{Name: ScreenDashboard, Path: "/dashboard", Title: "Dashboard"},
		{Name: ScreenBusDetails, Path: "/bus/{scheduleID}", Title: "Bus Details"},
		{Name: ScreenAdminBuses, Path: "/admin/buses", Title: "Manage Buses", AdminOnly: true, Roles: adminOnly},
		{Name: ScreenAdminRoutes, Path: "/admin/routes", Title: "Manage Routes", AdminOnly: true, Roles: adminOnly},
		{Name: ScreenAdminSchedules, Path: "/admin/schedules", Title: "Manage Schedules", AdminOnly: true, Roles: adminOnly},
		{Name: ScreenAdminDrivers, Path: "/admin/drivers", Title: "Manage Drivers", AdminOnly: true, Roles: adminOnly},
	}
}

// staticSource serves a fixed screen table
type staticSource []Screen

func (s staticSource) LoadScreens() ([]Screen, error) {
	return append([]Screen(nil), s...), nil
}

// NewStaticSource wraps a fixed screen table
func NewStaticSource(screens []Screen) ScreenSource {
	return staticSource(screens)
}
