// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package schema

// LocationsTable represents the 'locations' table.
type LocationsTable struct {
	Table       string
	ID          string
	TripID      string
	Name        string
	Address     string
	Category    string
	Description string
	Latitude    string
	Longitude   string
	CreatedAt   string
	UpdatedAt   string
}

// Locations is the schema definition for the locations table.
var Locations = LocationsTable{
	Table:       "locations",
	ID:          "id",
	TripID:      "trip_id",
	Name:        "name",
	Address:     "address",
	Category:    "category",
	Description: "description",
	Latitude:    "latitude",
	Longitude:   "longitude",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns all standard column names.
func (t LocationsTable) Columns() []string {
	return []string{
		t.ID, t.TripID, t.Name, t.Address, t.Category, t.Description,
		t.Latitude, t.Longitude, t.CreatedAt, t.UpdatedAt,
	}
}
