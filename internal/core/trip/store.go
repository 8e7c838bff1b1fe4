// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package trip

import (
	"context"
	"time"
)

// Filter holds the optional listing criteria. Zero values mean "no filter".
type Filter struct {
	OrganizerID   string
	ParticipantID string
	Status        Status
	Destination   string // case-insensitive contains
	From          *time.Time
	To            *time.Time
}

// Repository defines the data access contract for trips and their
// participant sets.
type Repository interface {
	// FindByID returns the trip with its participant set hydrated.
	//
	// Returns [apperr.NotFound] if no such trip exists.
	FindByID(ctx context.Context, id string) (*Trip, error)

	// List returns a filtered, paginated slice of trips and the total count.
	// Participant sets are hydrated for every returned trip.
	//
	// Date filtering uses overlap semantics: a trip matches when its
	// start_date <= Filter.To AND end_date >= Filter.From.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Trip, int, error)

	// Create persists the trip and its initial participant set atomically.
	Create(ctx context.Context, trip *Trip) error

	// Update persists changes to the trip's mutable fields. The participant
	// set is managed through [AddParticipant] and [RemoveParticipant].
	Update(ctx context.Context, trip *Trip) error

	// Delete removes the trip; participant rows and locations cascade.
	Delete(ctx context.Context, id string) error

	// AddParticipant inserts one membership row.
	//
	// Returns [apperr.Conflict] if the user is already a participant and
	// [apperr.NotFound] if the trip or user row is missing (FK violation).
	AddParticipant(ctx context.Context, tripID, userID string, joinedAt time.Time) error

	// RemoveParticipant deletes one membership row.
	RemoveParticipant(ctx context.Context, tripID, userID string) error
}

// UserFinder is the slice of the identity store the trip service needs:
// existence checks on organizers and participants.
type UserFinder interface {
	Exists(ctx context.Context, userID string) (bool, error)
}
