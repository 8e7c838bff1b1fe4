// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation for Tripmesh is PostgreSQL ([PostgresUserRepository]).
type UserRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	//
	// Returns [apperr.NotFound] if no user is registered with this email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	//
	// Returns [apperr.NotFound] if the username is available.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// List returns a page of accounts ordered by creation time,
	// together with the total count.
	List(ctx context.Context, limit, offset int) ([]*User, int, error)

	// Create persists a brand-new user account to the storage.
	//
	// Returns [apperr.Conflict] if a unique constraint (email/username) fails.
	Create(ctx context.Context, user *User) error

	// Update persists changes to mutable profile fields (Username, Email).
	// Passwords must be updated via [UpdatePassword].
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	// This is separate from [Update] to prevent accidental overwrites
	// during unrelated profile updates.
	UpdatePassword(ctx context.Context, userID, newHash string) error

	// Delete permanently removes the account row. Trips organized by the
	// user and buddy rows referencing it are removed by FK cascade.
	Delete(ctx context.Context, id string) error
}

// ResetTokenRepository defines the contract for storing volatile password
// reset tokens.
//
// # Implementations
//
// Backed by Redis ([RedisResetTokenRepository]): reset tokens are short-lived
// and carry no relational value, so they never touch PostgreSQL.
type ResetTokenRepository interface {
	// Set stores a reset token associated with a userID for a limited duration.
	Set(ctx context.Context, tokenHash string, userID string, ttl time.Duration) error

	// Get retrieves the userID associated with a given reset token.
	//
	// Returns [apperr.NotFound] if the token is unknown or expired.
	Get(ctx context.Context, tokenHash string) (string, error)

	// Delete removes a reset token after successful use.
	Delete(ctx context.Context, tokenHash string) error
}
