// internal/adapters/db/repository.go
package db

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// psql builds Postgres statements with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// selectAll runs a built select and scans every row
func selectAll[T any](ctx context.Context, q querier, qb squirrel.SelectBuilder, scan func(pgx.Rows) (T, error)) ([]T, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return ScanMany(rows, scan)
}

// selectFirst runs a built select limited to the lowest id match
func selectFirst[T any](ctx context.Context, q querier, qb squirrel.SelectBuilder, scan func(pgx.Row) (*T, error)) (*T, error) {
	query, args, err := qb.OrderBy("id ASC").Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return ScanOne(q.QueryRow(ctx, query, args...), scan)
}
