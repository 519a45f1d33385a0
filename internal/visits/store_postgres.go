// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package visits

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ebelkina/gatehouse/internal/platform/dberr"
)

// PostgresVisitStore implements [VisitStore] using pgx.
type PostgresVisitStore struct {
	pool *pgxpool.Pool
}

// NewVisitStore creates a new PostgreSQL implementation of the VisitStore.
func NewVisitStore(pool *pgxpool.Pool) *PostgresVisitStore {
	return &PostgresVisitStore{pool: pool}
}

/*
RecordVisit appends one visit row and counts the caller's visits to the page.

The INSERT and the COUNT run inside one transaction, so the count always
includes the row just inserted and a concurrent visit by the same user cannot
produce a stale number under read committed.

Parameters:
  - ctx: context.Context
  - userID: string
  - pageName: string

Returns:
  - int64: Total visits by this user to this page, inclusive
  - error: Transaction or query failures
*/
func (store *PostgresVisitStore) RecordVisit(ctx context.Context, userID, pageName string) (int64, error) {
	const insertQuery = `
		INSERT INTO auth.user_visits (user_id, page_name, visited_at)
		VALUES ($1, $2, $3)`

	const countQuery = `
		SELECT COUNT(*)
		FROM auth.user_visits
		WHERE user_id = $1 AND page_name = $2`

	tx, err := store.pool.Begin(ctx)
	if err != nil {
		return 0, dberr.Wrap(fmt.Errorf("postgres_visit_begin_failed: %w", err))
	}
	// No-op after a successful Commit.
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, insertQuery, userID, pageName, time.Now()); err != nil {
		return 0, dberr.Wrap(fmt.Errorf("postgres_visit_insert_failed: %w", err))
	}

	var count int64
	if err := tx.QueryRow(ctx, countQuery, userID, pageName).Scan(&count); err != nil {
		return 0, dberr.Wrap(fmt.Errorf("postgres_visit_count_failed: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dberr.Wrap(fmt.Errorf("postgres_visit_commit_failed: %w", err))
	}

	return count, nil
}

/*
AggregateByPage returns per-user visit counts for one page.

Ordering is count descending with ties broken by login ascending, so the
most frequent visitors come first and equal counts list alphabetically.

Parameters:
  - ctx: context.Context
  - pageName: string

Returns:
  - []PageStat: One row per user who visited the page; empty slice when nobody has
  - error: Query failures
*/
func (store *PostgresVisitStore) AggregateByPage(ctx context.Context, pageName string) ([]PageStat, error) {
	const query = `
		SELECT u.login, v.page_name, COUNT(*) AS cnt
		FROM auth.user_visits v
		JOIN auth.users u ON u.user_id = v.user_id
		WHERE v.page_name = $1
		GROUP BY u.login, v.page_name
		ORDER BY cnt DESC, u.login ASC`

	rows, err := store.pool.Query(ctx, query, pageName)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_visit_aggregate_failed: %w", err))
	}
	defer rows.Close()

	stats := make([]PageStat, 0)
	for rows.Next() {
		var stat PageStat
		if err := rows.Scan(&stat.Login, &stat.PageName, &stat.Count); err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres_visit_scan_failed: %w", err))
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_visit_rows_failed: %w", err))
	}

	return stats, nil
}
