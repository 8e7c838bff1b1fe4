// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Package buddy implements the symmetric friend-relationship ledger.
//
// # Model
//
// A relationship is a single row per unordered user pair, regardless of who
// initiated it. Direction is preserved (requester vs addressee) because the
// pending-request workflow is asymmetric: only the addressee may accept or
// reject. Once accepted, the relationship is fully symmetric.
package buddy

import "time"

// Buddy is one relationship row.
//
// # Invariants
//   - At most one row exists per unordered {RequesterID, AddresseeID} pair.
//   - AcceptedAt is non-nil if and only if Accepted is true.
type Buddy struct {
	ID          string     `json:"id"`
	RequesterID string     `json:"requester_id"`
	AddresseeID string     `json:"addressee_id"`
	Accepted    bool       `json:"accepted"`
	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
}

// OtherUser returns the counterpart of userID in this relationship.
// Returns an empty string if userID is not a party.
func (b *Buddy) OtherUser(userID string) string {
	switch userID {
	case b.RequesterID:
		return b.AddresseeID
	case b.AddresseeID:
		return b.RequesterID
	default:
		return ""
	}
}

// Involves reports whether userID is a party to this relationship.
func (b *Buddy) Involves(userID string) bool {
	return b.RequesterID == userID || b.AddresseeID == userID
}

// View is a relationship resolved from the perspective of one user:
// the row's identity plus the counterpart's public profile fields.
type View struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Accepted   bool       `json:"accepted"`
	CreatedAt  time.Time  `json:"created_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}
