// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripmesh/tripmesh/internal/platform/database/schema"
	"github.com/tripmesh/tripmesh/internal/platform/dberr"
)

// userColumns is the SELECT list shared by every user lookup, in scan order.
var userColumns = strings.Join(schema.Users.Columns(), ", ")

// PostgresUserRepository implements the [UserRepository] interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// domain-friendly [apperr.AppError] types via [dberr.Wrap] to avoid leaking
// storage implementation details.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user record into the users table.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		schema.Users.Table, userColumns,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_user_repo_create_failed: %w", err), "User")
	}

	return nil
}

// FindByID retrieves a user record by their unique ID.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findBy(ctx, schema.Users.ID, id)
}

// FindByEmail retrieves a user record by their unique email address.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findBy(ctx, schema.Users.Email, email)
}

// FindByUsername retrieves a user record by their unique username.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return repository.findBy(ctx, schema.Users.Username, username)
}

// List returns a page of accounts ordered by creation time, newest first,
// together with the total account count.
func (repository *PostgresUserRepository) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.Users.Table)

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s DESC LIMIT $1 OFFSET $2",
		userColumns, schema.Users.Table, schema.Users.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_user_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_rows_failed: %w", err)
	}

	return users, total, nil
}

// Update persists changes to a user's mutable profile fields.
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1",
		schema.Users.Table, schema.Users.Username, schema.Users.Email,
		schema.Users.UpdatedAt, schema.Users.ID,
	)

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_user_repo_update_failed: %w", err), "User")
	}

	return nil
}

// UpdatePassword updates only the password hash for a specific user.
func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, newHash string) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1",
		schema.Users.Table, schema.Users.PasswordHash, schema.Users.UpdatedAt, schema.Users.ID,
	)

	_, err := repository.pool.Exec(ctx, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}

// Delete permanently removes a user account. Trips organized by the user,
// their participant rows, and their buddy rows go with it via ON DELETE CASCADE.
func (repository *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Users.Table, schema.Users.ID)
	_, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_delete_failed: %w", err)
	}
	return nil
}

// findBy runs a single-row lookup on one column and maps pgx.ErrNoRows to
// [apperr.NotFound].
func (repository *PostgresUserRepository) findBy(ctx context.Context, column string, value any) (*User, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		userColumns, schema.Users.Table, column,
	)

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}
