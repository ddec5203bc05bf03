package domain

import "strings"

// Role is the privilege level attached to every account.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleSuperuser Role = "SUPERUSER"
)

// roleRank is the total order used for every authorization decision.
// Unknown roles are absent and rank 0.
var roleRank = map[Role]int{
	RoleUser:      1,
	RoleAdmin:     2,
	RoleSuperuser: 3,
}

// Roles lists the defined roles from least to most privileged.
func Roles() []Role {
	return []Role{RoleUser, RoleAdmin, RoleSuperuser}
}

// ParseRole maps a case-insensitive name to a Role. The second return value is
// false when the name is not a defined role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := roleRank[r]
	return r, ok
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Rank returns the hierarchy level of r, or 0 for an unknown role.
func (r Role) Rank() int {
	return roleRank[r]
}

// HasRole reports whether actual meets or exceeds required. Unknown roles on
// either side never satisfy the check.
func HasRole(actual, required Role) bool {
	have, ok := roleRank[actual]
	if !ok {
		return false
	}
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= need
}

// IsAdmin reports whether r is ADMIN or higher.
func IsAdmin(r Role) bool {
	return HasRole(r, RoleAdmin)
}

// IsSuperuser reports whether r is exactly SUPERUSER.
func IsSuperuser(r Role) bool {
	return r == RoleSuperuser
}

// DisplayName returns the human label shown in the admin panel.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAdmin:
		return "Administrator"
	case RoleSuperuser:
		return "Super Administrator"
	default:
		return "Unknown"
	}
}
