// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package buddy

import "context"

// Repository defines the data access contract for the relationship ledger.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresRepository]), which
// backs the one-row-per-pair invariant with a unique index over the
// normalized (LEAST, GREATEST) ID pair.
type Repository interface {
	// FindByID returns the relationship row with the given ID.
	//
	// Returns [apperr.NotFound] if no such row exists.
	FindByID(ctx context.Context, id string) (*Buddy, error)

	// FindByPair returns the row covering the unordered {userA, userB} pair,
	// regardless of which side initiated it.
	//
	// Returns [apperr.NotFound] if the pair has no relationship.
	FindByPair(ctx context.Context, userA, userB string) (*Buddy, error)

	// Create persists a new pending relationship row.
	//
	// Returns [apperr.Conflict] if the pair already has a row (unique index
	// on the normalized pair catches the race two concurrent requests in
	// opposite directions would otherwise win).
	Create(ctx context.Context, buddy *Buddy) error

	// Accept marks the row accepted and stamps AcceptedAt.
	Accept(ctx context.Context, buddy *Buddy) error

	// Delete removes the row entirely. Used for both reject and remove.
	Delete(ctx context.Context, id string) error

	// ListAccepted returns accepted rows where userID is either party,
	// each resolved to the counterpart's profile.
	ListAccepted(ctx context.Context, userID string) ([]*View, error)

	// ListIncoming returns pending rows where userID is the addressee.
	ListIncoming(ctx context.Context, userID string) ([]*View, error)

	// ListOutgoing returns pending rows where userID is the requester.
	ListOutgoing(ctx context.Context, userID string) ([]*View, error)
}

// UserFinder is the slice of the identity store the ledger needs: existence
// checks on the target of a new request.
type UserFinder interface {
	// Exists reports whether an account with the given ID exists.
	Exists(ctx context.Context, userID string) (bool, error)
}
