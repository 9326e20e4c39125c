package models

import "slices"

// Role is the authorization tag attached to an identity.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// Roles lists every role the client knows about.
var Roles = []Role{RoleCitizen, RoleOfficer, RoleAdmin}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return slices.Contains(Roles, r)
}

// Identity is the locally known user of a session. It is persisted as JSON
// next to the bearer token.
type Identity struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// HasRole reports whether the identity carries one of roles.
func (i Identity) HasRole(roles ...Role) bool {
	return slices.Contains(roles, i.Role)
}

// String renders "email (role)" for prompts.
func (i Identity) String() string {
	return i.Email + " (" + string(i.Role) + ")"
}
