package storefront

// UserRole is the user's role
type UserRole string

const (
	// RoleUser is a regular shopper
	RoleUser UserRole = "user"
	// RoleAdmin can access the back-office
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the role is one of the predefined roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Is compares against a role name as stored in config
func (r UserRole) Is(role string) bool {
	return string(r) == role
}

// ParseRole safely parses a string into a UserRole
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}
