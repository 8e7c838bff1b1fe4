// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package buddy

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

// PostgresRepository implements [Repository] and [UserFinder] using pgx.
//
// # Concurrency
//
// The duplicate-pair race is closed by the unique index
// buddies_pair_unique over (LEAST(requester_id, addressee_id),
// GREATEST(requester_id, addressee_id)); the SQLSTATE 23505 it raises is
// mapped to [apperr.Conflict] by [dberr.Wrap].
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL relationship ledger.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a pending relationship row.
func (repository *PostgresRepository) Create(ctx context.Context, buddy *Buddy) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)",
		schema.Buddies.Table, schema.Buddies.ID, schema.Buddies.RequesterID,
		schema.Buddies.AddresseeID, schema.Buddies.Accepted, schema.Buddies.CreatedAt,
	)

	_, err := repository.pool.Exec(ctx, query,
		buddy.ID,
		buddy.RequesterID,
		buddy.AddresseeID,
		buddy.Accepted,
		buddy.CreatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A buddy relationship already exists between these users")
		}
		return dberr.Wrap(fmt.Errorf("postgres_buddy_repo_create_failed: %w", err), "User")
	}

	return nil
}

// FindByID returns the relationship row with the given ID.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Buddy, error) {
	const query = `
		SELECT id, requester_id, addressee_id, accepted, created_at, accepted_at
		FROM buddies
		WHERE id = $1`

	return repository.scanOne(ctx, query, id)
}

// FindByPair returns the row for the unordered pair. The OR condition makes
// the lookup direction-agnostic.
func (repository *PostgresRepository) FindByPair(ctx context.Context, userA, userB string) (*Buddy, error) {
	const query = `
		SELECT id, requester_id, addressee_id, accepted, created_at, accepted_at
		FROM buddies
		WHERE (requester_id = $1 AND addressee_id = $2)
		   OR (requester_id = $2 AND addressee_id = $1)`

	return repository.scanOne(ctx, query, userA, userB)
}

// Accept marks the row accepted and stamps the acceptance time.
func (repository *PostgresRepository) Accept(ctx context.Context, buddy *Buddy) error {
	const query = `
		UPDATE buddies
		SET accepted = TRUE, accepted_at = $2
		WHERE id = $1`

	_, err := repository.pool.Exec(ctx, query, buddy.ID, buddy.AcceptedAt)
	if err != nil {
		return fmt.Errorf("postgres_buddy_repo_accept_failed: %w", err)
	}
	return nil
}

// Delete removes the relationship row.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Buddies.Table, schema.Buddies.ID)
	_, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_buddy_repo_delete_failed: %w", err)
	}
	return nil
}

// ListAccepted returns accepted rows with the counterpart's profile joined
// in. The CASE expressions pick "the other side" relative to $1 so a single
// query serves both directions.
func (repository *PostgresRepository) ListAccepted(ctx context.Context, userID string) ([]*View, error) {
	const query = `
		SELECT b.id,
		       u.id, u.username, u.email,
		       b.accepted, b.created_at, b.accepted_at
		FROM buddies b
		JOIN users u ON u.id = CASE WHEN b.requester_id = $1 THEN b.addressee_id ELSE b.requester_id END
		WHERE (b.requester_id = $1 OR b.addressee_id = $1)
		  AND b.accepted = TRUE
		ORDER BY b.accepted_at DESC`

	return repository.scanViews(ctx, query, userID)
}

// ListIncoming returns pending rows addressed to userID, requester joined in.
func (repository *PostgresRepository) ListIncoming(ctx context.Context, userID string) ([]*View, error) {
	const query = `
		SELECT b.id,
		       u.id, u.username, u.email,
		       b.accepted, b.created_at, b.accepted_at
		FROM buddies b
		JOIN users u ON u.id = b.requester_id
		WHERE b.addressee_id = $1 AND b.accepted = FALSE
		ORDER BY b.created_at DESC`

	return repository.scanViews(ctx, query, userID)
}

// ListOutgoing returns pending rows sent by userID, addressee joined in.
func (repository *PostgresRepository) ListOutgoing(ctx context.Context, userID string) ([]*View, error) {
	const query = `
		SELECT b.id,
		       u.id, u.username, u.email,
		       b.accepted, b.created_at, b.accepted_at
		FROM buddies b
		JOIN users u ON u.id = b.addressee_id
		WHERE b.requester_id = $1 AND b.accepted = FALSE
		ORDER BY b.created_at DESC`

	return repository.scanViews(ctx, query, userID)
}

// Exists implements [UserFinder] against the users table.
func (repository *PostgresRepository) Exists(ctx context.Context, userID string) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)",
		schema.Users.Table, schema.Users.ID,
	)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_buddy_repo_user_exists_failed: %w", err)
	}
	return exists, nil
}

func (repository *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*Buddy, error) {
	buddy := &Buddy{}
	err := repository.pool.QueryRow(ctx, query, args...).Scan(
		&buddy.ID,
		&buddy.RequesterID,
		&buddy.AddresseeID,
		&buddy.Accepted,
		&buddy.CreatedAt,
		&buddy.AcceptedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Buddy relationship")
		}
		return nil, fmt.Errorf("postgres_buddy_repo_find_failed: %w", err)
	}

	return buddy, nil
}

func (repository *PostgresRepository) scanViews(ctx context.Context, query string, userID string) ([]*View, error) {
	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_buddy_repo_list_failed: %w", err)
	}
	defer rows.Close()

	views := []*View{}
	for rows.Next() {
		view := &View{}
		if err := rows.Scan(
			&view.ID,
			&view.UserID,
			&view.Username,
			&view.Email,
			&view.Accepted,
			&view.CreatedAt,
			&view.AcceptedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_buddy_repo_scan_failed: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_buddy_repo_rows_failed: %w", err)
	}

	return views, nil
}
