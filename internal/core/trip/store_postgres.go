// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/database/schema"
	"github.com/tripmesh/tripmesh/internal/platform/dberr"
)

// PostgresRepository implements [Repository] and [UserFinder] using pgx.
//
// # Hydration Strategy
//
// Participant sets are loaded with a single ANY($1) query over all trip IDs
// in the page, never one query per trip.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL trip store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const tripColumns = `
	t.id, t.title, t.description, t.destination, t.start_date, t.end_date,
	t.status, t.organizer_id, t.latitude, t.longitude, t.created_at, t.updated_at`

// Create persists the trip and its initial participant set in one transaction.
func (repository *PostgresRepository) Create(ctx context.Context, trip *Trip) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_trip_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(ctx)

	const insertTrip = `
		INSERT INTO trips (
			id, title, description, destination, start_date, end_date,
			status, organizer_id, latitude, longitude, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = transaction.Exec(ctx, insertTrip,
		trip.ID,
		trip.Title,
		trip.Description,
		trip.Destination,
		trip.StartDate,
		trip.EndDate,
		trip.Status,
		trip.OrganizerID,
		trip.Latitude,
		trip.Longitude,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_trip_repo_create_failed: %w", err), "Trip")
	}

	const insertParticipant = `
		INSERT INTO trip_participants (trip_id, user_id, joined_at)
		VALUES ($1, $2, $3)`

	for _, participant := range trip.Participants {
		if _, err := transaction.Exec(ctx, insertParticipant, trip.ID, participant.UserID, participant.JoinedAt); err != nil {
			return dberr.Wrap(fmt.Errorf("postgres_trip_repo_participant_failed: %w", err), "User")
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_trip_repo_commit_failed: %w", err)
	}

	return nil
}

// FindByID returns the trip with its participant set hydrated.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Trip, error) {
	query := "SELECT " + tripColumns + " FROM trips t WHERE t.id = $1"

	trip := &Trip{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.Title,
		&trip.Description,
		&trip.Destination,
		&trip.StartDate,
		&trip.EndDate,
		&trip.Status,
		&trip.OrganizerID,
		&trip.Latitude,
		&trip.Longitude,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Trip")
		}
		return nil, fmt.Errorf("postgres_trip_repo_find_failed: %w", err)
	}

	if err := repository.hydrateParticipants(ctx, []*Trip{trip}); err != nil {
		return nil, err
	}

	return trip, nil
}

// List returns a filtered, paginated slice of trips and the total count.
//
// The WHERE clause is built dynamically; COUNT(*) OVER() delivers the total
// in the same round-trip as the page.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Trip, int, error) {
	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString("SELECT " + tripColumns + `,
		COUNT(*) OVER() AS total_count
		FROM trips t
		WHERE TRUE`)

	// Organizer Filtering
	if filter.OrganizerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.organizer_id = $%d", argID))
		args = append(args, filter.OrganizerID)
		argID++
	}

	// Participant Filtering
	if filter.ParticipantID != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM trip_participants tp WHERE tp.trip_id = t.id AND tp.user_id = $%d)", argID))
		args = append(args, filter.ParticipantID)
		argID++
	}

	// Status Filtering
	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}

	// Destination Filtering (case-insensitive contains)
	if filter.Destination != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.destination ILIKE '%%' || $%d || '%%'", argID))
		args = append(args, filter.Destination)
		argID++
	}

	// Date Range Filtering (overlap semantics)
	if filter.From != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.end_date >= $%d", argID))
		args = append(args, *filter.From)
		argID++
	}
	if filter.To != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.start_date <= $%d", argID))
		args = append(args, *filter.To)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.start_date ASC, t.id ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_trip_repo_list_failed: %w", err)
	}
	defer rows.Close()

	trips := []*Trip{}
	total := 0
	for rows.Next() {
		trip := &Trip{}
		if err := rows.Scan(
			&trip.ID,
			&trip.Title,
			&trip.Description,
			&trip.Destination,
			&trip.StartDate,
			&trip.EndDate,
			&trip.Status,
			&trip.OrganizerID,
			&trip.Latitude,
			&trip.Longitude,
			&trip.CreatedAt,
			&trip.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_trip_repo_scan_failed: %w", err)
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_trip_repo_rows_failed: %w", err)
	}

	if err := repository.hydrateParticipants(ctx, trips); err != nil {
		return nil, 0, err
	}

	return trips, total, nil
}

// Update persists changes to the trip's mutable fields.
func (repository *PostgresRepository) Update(ctx context.Context, trip *Trip) error {
	const query = `
		UPDATE trips
		SET title = $2, description = $3, destination = $4, start_date = $5,
		    end_date = $6, status = $7, latitude = $8, longitude = $9, updated_at = $10
		WHERE id = $1`

	_, err := repository.pool.Exec(ctx, query,
		trip.ID,
		trip.Title,
		trip.Description,
		trip.Destination,
		trip.StartDate,
		trip.EndDate,
		trip.Status,
		trip.Latitude,
		trip.Longitude,
		trip.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_trip_repo_update_failed: %w", err)
	}

	return nil
}

// Delete removes the trip row. Participant rows and locations follow via
// ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Trips.Table, schema.Trips.ID)
	_, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_trip_repo_delete_failed: %w", err)
	}
	return nil
}

// AddParticipant inserts a membership row. The composite primary key turns
// duplicate joins into a Conflict; FK violations mean a missing trip or user.
func (repository *PostgresRepository) AddParticipant(ctx context.Context, tripID, userID string, joinedAt time.Time) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.TripParticipants.Table, schema.TripParticipants.TripID,
		schema.TripParticipants.UserID, schema.TripParticipants.JoinedAt,
	)

	_, err := repository.pool.Exec(ctx, query, tripID, userID, joinedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("User is already a participant of this trip")
		}
		return dberr.Wrap(fmt.Errorf("postgres_trip_repo_add_participant_failed: %w", err), "Trip or user")
	}

	return nil
}

// RemoveParticipant deletes a membership row.
func (repository *PostgresRepository) RemoveParticipant(ctx context.Context, tripID, userID string) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.TripParticipants.Table, schema.TripParticipants.TripID, schema.TripParticipants.UserID,
	)
	_, err := repository.pool.Exec(ctx, query, tripID, userID)
	if err != nil {
		return fmt.Errorf("postgres_trip_repo_remove_participant_failed: %w", err)
	}
	return nil
}

// Exists implements [UserFinder] against the users table.
func (repository *PostgresRepository) Exists(ctx context.Context, userID string) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)",
		schema.Users.Table, schema.Users.ID,
	)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_trip_repo_user_exists_failed: %w", err)
	}
	return exists, nil
}

// hydrateParticipants loads the participant sets for all given trips in one
// query and distributes them.
func (repository *PostgresRepository) hydrateParticipants(ctx context.Context, trips []*Trip) error {
	if len(trips) == 0 {
		return nil
	}

	tripIDs := make([]string, len(trips))
	byID := make(map[string]*Trip, len(trips))
	for i, trip := range trips {
		tripIDs[i] = trip.ID
		byID[trip.ID] = trip
	}

	const query = `
		SELECT tp.trip_id, tp.user_id, u.username, tp.joined_at
		FROM trip_participants tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.trip_id = ANY($1)
		ORDER BY tp.joined_at ASC`

	rows, err := repository.pool.Query(ctx, query, tripIDs)
	if err != nil {
		return fmt.Errorf("postgres_trip_repo_participants_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tripID string
		participant := Participant{}
		if err := rows.Scan(&tripID, &participant.UserID, &participant.Username, &participant.JoinedAt); err != nil {
			return fmt.Errorf("postgres_trip_repo_participants_scan_failed: %w", err)
		}
		if trip, ok := byID[tripID]; ok {
			trip.Participants = append(trip.Participants, participant)
		}
	}

	return rows.Err()
}
