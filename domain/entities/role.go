package entities

import "fmt"

// Role represents a user's access level
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
	RoleRoot   Role = "root"
)

// ParseRole converts a string into a known Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleAdmin, RoleRoot:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// CanApproveTransfers returns true if the role may confirm or reject
// deposits and withdrawals
func (r Role) CanApproveTransfers() bool {
	return r == RoleAdmin || r == RoleRoot
}

// CanConductDraws returns true if the role may settle lottery draws
func (r Role) CanConductDraws() bool {
	return r == RoleAdmin || r == RoleRoot
}

// CanManageUsers returns true if the role may delete users or change roles
func (r Role) CanManageUsers() bool {
	return r == RoleRoot
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}
