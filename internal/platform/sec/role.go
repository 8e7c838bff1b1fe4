// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access (user listing, data administration)
	RoleAdmin UserRole = "ADMIN"

	// Default role for standard registered users
	RoleUser UserRole = "USER"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether the role is one of the known enumerated values.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
