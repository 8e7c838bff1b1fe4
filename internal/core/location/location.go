// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Package location implements the location records owned by trips:
// concrete places (hotels, trailheads, restaurants) pinned to an itinerary.
package location

import "time"

// Location is one pinned place belonging to a trip.
type Location struct {
	ID          string    `json:"id"`
	TripID      string    `json:"trip_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
