// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows            → 404 NotFound for the given resource
//   - SQLSTATE 23505 (unique)  → 409 Conflict
//   - SQLSTATE 23503 (FK)      → 404 NotFound (the referenced row is gone)
//   - anything else            → 500 Internal
//
// The unique-violation mapping is load-bearing for the buddy ledger: the
// normalized-pair unique index turns a concurrent duplicate request race
// into a 23505, which callers must see as a Conflict, not a server error.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound(resource)
		}
	}

	return apperr.Internal(fmt.Errorf("dberr: %s: %w", resource, err))
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
