// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package schema

// BuddiesTable represents the 'buddies' table.
//
// One row per unordered user pair. The symmetric uniqueness is enforced by
// a unique index over (LEAST(requester_id, addressee_id),
// GREATEST(requester_id, addressee_id)) so that two concurrent requests in
// opposite directions cannot both commit.
type BuddiesTable struct {
	Table       string
	ID          string
	RequesterID string
	AddresseeID string
	Accepted    string
	CreatedAt   string
	AcceptedAt  string
}

// Buddies is the schema definition for the buddies table.
var Buddies = BuddiesTable{
	Table:       "buddies",
	ID:          "id",
	RequesterID: "requester_id",
	AddresseeID: "addressee_id",
	Accepted:    "accepted",
	CreatedAt:   "created_at",
	AcceptedAt:  "accepted_at",
}

// Columns returns all standard column names.
func (t BuddiesTable) Columns() []string {
	return []string{t.ID, t.RequesterID, t.AddresseeID, t.Accepted, t.CreatedAt, t.AcceptedAt}
}
