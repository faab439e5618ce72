package domain

import "slices"

// Role represents a user role within a tenant
type Role string

const (
	// RoleClient raises tickets and books consulting sessions for themselves
	RoleClient Role = "client"

	// RoleConsultant delivers booked sessions
	RoleConsultant Role = "consultant"

	// RoleAgent works the support queue across the tenant
	RoleAgent Role = "agent"

	// RoleAdmin manages users and everything an agent can do
	RoleAdmin Role = "admin"
)

// ValidRoles contains all valid roles in the system
var ValidRoles = []Role{RoleClient, RoleConsultant, RoleAgent, RoleAdmin}

// IsValidRole checks if a given role is valid
func IsValidRole(role string) bool {
	return slices.Contains(ValidRoles, Role(role))
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	return slices.Contains(roles, r)
}
