// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package location

import "context"

// Repository defines the data access contract for trip locations.
type Repository interface {
	// FindByID returns the location with the given ID.
	//
	// Returns [apperr.NotFound] if no such location exists.
	FindByID(ctx context.Context, id string) (*Location, error)

	// ListByTrip returns all locations pinned to the trip, oldest first.
	ListByTrip(ctx context.Context, tripID string) ([]*Location, error)

	// Create persists a new location row.
	//
	// Returns [apperr.NotFound] when the owning trip is missing (FK violation).
	Create(ctx context.Context, location *Location) error

	// Update persists changes to the location's mutable fields.
	Update(ctx context.Context, location *Location) error

	// Delete removes the location row.
	Delete(ctx context.Context, id string) error
}

// TripFinder is the slice of the trip store this package needs: existence
// checks before pinning a location.
type TripFinder interface {
	Exists(ctx context.Context, tripID string) (bool, error)
}
