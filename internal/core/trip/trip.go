// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Package trip implements the trip store: planning records owned by an
// organizer and shared with a participant set.
package trip

import (
	"time"

	"github.com/tripmesh/tripmesh/internal/core/location"
	"github.com/tripmesh/tripmesh/pkg/slice"
)

// Status is the lifecycle state of a trip.
type Status string

const (
	StatusPlanning  Status = "PLANNING" // Default for new trips.
	StatusConfirmed Status = "CONFIRMED"
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var statuses = []Status{
	StatusPlanning, StatusConfirmed, StatusOngoing, StatusCompleted, StatusCancelled,
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	return slice.Contains(statuses, s)
}

// StatusNames lists every valid status, for validation messages.
func StatusNames() []string {
	return slice.Map(statuses, func(s Status) string { return string(s) })
}

// Trip represents one planned journey.
//
// # Invariants
//   - The organizer is always a member of Participants.
//   - EndDate is never before StartDate.
//   - Dates are date-only; time-of-day is always midnight UTC.
type Trip struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Destination  string        `json:"destination"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Status       Status        `json:"status"`
	OrganizerID  string        `json:"organizer_id"`
	Latitude     *float64      `json:"latitude,omitempty"`
	Longitude    *float64      `json:"longitude,omitempty"`
	Participants []Participant `json:"participants,omitempty"`

	// Locations is hydrated on single-trip reads only; list responses stay
	// lean.
	Locations []*location.Location `json:"locations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasParticipant reports whether userID is in the participant set.
func (t *Trip) HasParticipant(userID string) bool {
	for _, participant := range t.Participants {
		if participant.UserID == userID {
			return true
		}
	}
	return false
}

// Participant is one member of a trip's participant set.
type Participant struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}
