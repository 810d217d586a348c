// Package repository handles all interactions with the database.
//
// It contains the raw SQL queries and the methods that fetch or persist
// users, reservations and properties, keeping SQL away from the service layer.
// Every caller-supplied value is sent as a bound parameter.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DefaultLimit is applied by list queries when the caller passes limit <= 0.
const DefaultLimit = 10

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

// queryError logs a failed query with its stack and returns it wrapped
// with "table:<name>" so sqlerr can name the missing entity.
// pgx.ErrNoRows is not logged: a missing row is an answer, not a failure.
func queryError(log *zerolog.Logger, query, table string, err error) error {
	wrapped := errors.Wrapf(err, "%s table:%s", query, table)

	if !errors.Is(err, pgx.ErrNoRows) {
		log.Error().
			Stack().
			Err(wrapped).
			Str("query", query).
			Str("table", table).
			Msg("query error")
	}

	return wrapped
}
