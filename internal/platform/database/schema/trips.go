// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package schema

// TripsTable represents the 'trips' table.
type TripsTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Destination string
	StartDate   string
	EndDate     string
	Status      string
	OrganizerID string
	Latitude    string
	Longitude   string
	CreatedAt   string
	UpdatedAt   string
}

// Trips is the schema definition for the trips table.
var Trips = TripsTable{
	Table:       "trips",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Destination: "destination",
	StartDate:   "start_date",
	EndDate:     "end_date",
	Status:      "status",
	OrganizerID: "organizer_id",
	Latitude:    "latitude",
	Longitude:   "longitude",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns all standard column names.
func (t TripsTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Destination, t.StartDate,
		t.EndDate, t.Status, t.OrganizerID, t.Latitude, t.Longitude,
		t.CreatedAt, t.UpdatedAt,
	}
}

// TripParticipantsTable represents the 'trip_participants' join table.
type TripParticipantsTable struct {
	Table    string
	TripID   string
	UserID   string
	JoinedAt string
}

// TripParticipants is the schema definition for the trip_participants table.
var TripParticipants = TripParticipantsTable{
	Table:    "trip_participants",
	TripID:   "trip_id",
	UserID:   "user_id",
	JoinedAt: "joined_at",
}

// Columns returns all standard column names.
func (t TripParticipantsTable) Columns() []string {
	return []string{t.TripID, t.UserID, t.JoinedAt}
}
