package accounts

import "fmt"

// Role is the closed set of account roles
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// DefaultRole is given to every self-registered account
const DefaultRole = RoleStudent

// roleInfo is the per-role lookup table used by views
type roleInfo struct {
	label string
	badge string
}

var roles = map[Role]roleInfo{
	RoleStudent: {label: "Student", badge: "student"},
	RoleTeacher: {label: "Teacher", badge: "teacher"},
	RoleStaff:   {label: "Staff", badge: "staff"},
	RoleAdmin:   {label: "Admin", badge: "admin"},
}

// Roles lists every role in display order
var Roles = []Role{RoleStudent, RoleTeacher, RoleStaff, RoleAdmin}

// ParseRole converts a string into a Role, rejecting unknown values
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// Label is the human readable role name
func (r Role) Label() string {
	return roles[r].label
}

// Badge is the style key the UI uses for the role badge
func (r Role) Badge() string {
	if info, ok := roles[r]; ok {
		return info.badge
	}
	return "muted"
}

func (r Role) String() string {
	return string(r)
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects unknown roles
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
