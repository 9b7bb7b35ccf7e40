// Package actor names the roles the excluded auth layer hands to the core.
package actor

type Role string

const (
	RoleInvestor   Role = "investor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsAdmin reports whether the role carries admin privileges.
func (r Role) IsAdmin() bool { return r == RoleAdmin || r == RoleSuperAdmin }
