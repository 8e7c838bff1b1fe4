// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Package auth defines the identity domain of the Tripmesh platform.
//
// # Architecture
//
// The [User] entity represents the "Truth" of the system. It has no
// dependencies on outer layers (databases, APIs, routers), which keeps the
// core logic testable and resilient to technology changes.
package auth

import (
	"time"

	"github.com/tripmesh/tripmesh/internal/platform/sec"
	"github.com/tripmesh/tripmesh/pkg/uuidv7"
)

// User represents a registered member of the Tripmesh platform.
//
// # Rules
//   - Username is unique and at least 3 characters.
//   - Email is unique and validated.
//   - PasswordHash is generated via Bcrypt exclusively by the Service.
//   - Role is always USER at construction. Promotion to ADMIN happens
//     out-of-band, never through the registration path.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewUser constructs a fresh account with a time-sortable ID and the USER role.
//
// # Why constructor-level defaults?
//
// Applying the role default here, rather than in the store, guarantees that
// every code path producing a User (service, tests, fixtures) yields the same
// invariant: no account ever exists without a role.
func NewUser(username, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         sec.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
