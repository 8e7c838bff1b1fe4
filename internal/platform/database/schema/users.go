// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Package schema is the single registry of table and column names used by
// the PostgreSQL repositories.
//
// # Why a registry?
//
// Query strings are assembled from these values so a column rename is a
// one-file change, and typos surface as compile errors instead of runtime
// SQL failures.
package schema

// UsersTable represents the 'users' table.
type UsersTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    string
	UpdatedAt    string
}

// Users is the schema definition for the users table.
var Users = UsersTable{
	Table:        "users",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "password_hash",
	Role:         "role",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// Columns returns all standard column names.
func (t UsersTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.PasswordHash, t.Role, t.CreatedAt, t.UpdatedAt}
}
