// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/database/schema"
	"github.com/tripmesh/tripmesh/internal/platform/dberr"
)

// PostgresRepository implements [Repository] and [TripFinder] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL location store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const locationColumns = `
	id, trip_id, name, address, category, description,
	latitude, longitude, created_at, updated_at`

// Create persists a new location row.
func (repository *PostgresRepository) Create(ctx context.Context, location *Location) error {
	const query = `
		INSERT INTO locations (
			id, trip_id, name, address, category, description,
			latitude, longitude, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := repository.pool.Exec(ctx, query,
		location.ID,
		location.TripID,
		location.Name,
		location.Address,
		location.Category,
		location.Description,
		location.Latitude,
		location.Longitude,
		location.CreatedAt,
		location.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_location_repo_create_failed: %w", err), "Trip")
	}

	return nil
}

// FindByID returns the location with the given ID.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Location, error) {
	query := "SELECT " + locationColumns + " FROM locations WHERE id = $1"

	location := &Location{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&location.ID,
		&location.TripID,
		&location.Name,
		&location.Address,
		&location.Category,
		&location.Description,
		&location.Latitude,
		&location.Longitude,
		&location.CreatedAt,
		&location.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Location")
		}
		return nil, fmt.Errorf("postgres_location_repo_find_failed: %w", err)
	}

	return location, nil
}

// ListByTrip returns all locations pinned to the trip, oldest first.
func (repository *PostgresRepository) ListByTrip(ctx context.Context, tripID string) ([]*Location, error) {
	query := "SELECT " + locationColumns + " FROM locations WHERE trip_id = $1 ORDER BY created_at ASC"

	rows, err := repository.pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("postgres_location_repo_list_failed: %w", err)
	}
	defer rows.Close()

	locations := []*Location{}
	for rows.Next() {
		location := &Location{}
		if err := rows.Scan(
			&location.ID,
			&location.TripID,
			&location.Name,
			&location.Address,
			&location.Category,
			&location.Description,
			&location.Latitude,
			&location.Longitude,
			&location.CreatedAt,
			&location.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_location_repo_scan_failed: %w", err)
		}
		locations = append(locations, location)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_location_repo_rows_failed: %w", err)
	}

	return locations, nil
}

// Update persists changes to the location's mutable fields.
func (repository *PostgresRepository) Update(ctx context.Context, location *Location) error {
	const query = `
		UPDATE locations
		SET name = $2, address = $3, category = $4, description = $5,
		    latitude = $6, longitude = $7, updated_at = $8
		WHERE id = $1`

	_, err := repository.pool.Exec(ctx, query,
		location.ID,
		location.Name,
		location.Address,
		location.Category,
		location.Description,
		location.Latitude,
		location.Longitude,
		location.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_location_repo_update_failed: %w", err)
	}

	return nil
}

// Delete removes the location row.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Locations.Table, schema.Locations.ID)
	_, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_location_repo_delete_failed: %w", err)
	}
	return nil
}

// Exists implements [TripFinder] against the trips table.
func (repository *PostgresRepository) Exists(ctx context.Context, tripID string) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)",
		schema.Trips.Table, schema.Trips.ID,
	)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, tripID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_location_repo_trip_exists_failed: %w", err)
	}
	return exists, nil
}
